package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/couchcryptid/neighborhood-insights/internal/chat"
	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/insight"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

type placeRequest struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	region := r.URL.Query().Get("region")
	if city == "" || region == "" {
		writeError(w, r, http.StatusBadRequest, "city and region are required")
		return
	}
	s.writeLookup(w, r, city, region, nil)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"id": sess.ID})
}

func (s *Server) handleSelectPlace(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req placeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.City == "" || req.Region == "" {
		writeError(w, r, http.StatusBadRequest, "city and region are required")
		return
	}
	s.writeLookup(w, r, req.City, req.Region, sess)
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req messageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}
	msg := s.assistant.Ask(sess, req.Text)
	writeJSON(w, http.StatusAccepted, msg)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Log.Messages())
}

// writeLookup resolves a place and writes its report. When sess is non-nil the
// resolution also becomes the session's selection; a miss or invalid record
// clears any earlier one.
func (s *Server) writeLookup(w http.ResponseWriter, r *http.Request, city, region string, sess *chat.Session) {
	report, err := s.service.Lookup(r.Context(), city, region)
	if sess != nil {
		res := insight.Resolution{Key: report.Key}
		if err == nil && report.Found {
			res.Found = true
			res.Record = *report.Record
		}
		sess.Select(city, region, res)
	}

	var invalid *domain.InvalidMetricError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     err.Error(),
			Field:     invalid.Field,
			RequestID: middleware.GetReqID(r.Context()),
		})
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, err.Error())
	case !report.Found:
		writeJSON(w, http.StatusNotFound, report)
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*chat.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "session not found")
	}
	return sess, ok
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: middleware.GetReqID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
