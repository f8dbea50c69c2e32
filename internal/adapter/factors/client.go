package factors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
	"golang.org/x/sync/errgroup"
)

// codeAddressNotFound is the provider's error code for an unresolvable address.
const codeAddressNotFound = "ADDRESS_NOT_FOUND"

// errIncompletePayload marks a 200 response missing a field the record needs.
var errIncompletePayload = errors.New("incomplete factors payload")

// Client implements domain.PlaceStore against the external factors provider.
// A record is built from two calls: /v1/factors for scores and context, and
// /v1/trends for five-year price growth. The calls run concurrently and both
// must succeed for a record to be returned.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a factors provider client.
func NewClient(baseURL, apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Lookup fetches and projects the provider payload for a place key, which is
// sent as a free-text address.
func (c *Client) Lookup(ctx context.Context, key string) (domain.MetricsRecord, error) {
	var (
		fr factorsResponse
		tr trendResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.get(gctx, "factors", key, &fr) })
	g.Go(func() error { return c.get(gctx, "trend", key, &tr) })
	if err := g.Wait(); err != nil {
		return domain.MetricsRecord{}, err
	}

	rec, err := project(fr, tr)
	if err != nil {
		return domain.MetricsRecord{}, fmt.Errorf("%s: %w", key, err)
	}
	c.logger.Debug("factors resolved", "key", key, "address", fr.Location.FormattedAddress)
	return rec, nil
}

// CheckReadiness pings the provider health endpoint.
func (c *Client) CheckReadiness(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("factors provider health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("factors provider health: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint, address string, out any) error {
	path := "/v1/factors"
	if endpoint == "trend" {
		path = "/v1/trends"
	}
	u := c.baseURL + path + "?" + url.Values{"address": {address}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ProviderAPIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if isAddressNotFound(resp.StatusCode, body) {
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "not_found").Inc()
			return fmt.Errorf("%w: %q", domain.ErrPlaceNotFound, address)
		}
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("factors API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	c.metrics.ProviderRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// isAddressNotFound treats a bare 404 or an ADDRESS_NOT_FOUND error body as a miss.
func isAddressNotFound(status int, body []byte) bool {
	var e errorResponse
	if json.Unmarshal(body, &e) == nil && e.Error.Code == codeAddressNotFound {
		return true
	}
	return status == http.StatusNotFound
}

// project maps the provider payload onto a MetricsRecord. Every field is
// required; a partial payload yields no record.
func project(fr factorsResponse, tr trendResponse) (domain.MetricsRecord, error) {
	switch {
	case fr.Scores.Walk.WalkScore == nil:
		return domain.MetricsRecord{}, fmt.Errorf("%w: scores.walk.walkScore", errIncompletePayload)
	case fr.Scores.School.Value == nil:
		return domain.MetricsRecord{}, fmt.Errorf("%w: scores.school.value", errIncompletePayload)
	case fr.Scores.Crime.Index == nil:
		return domain.MetricsRecord{}, fmt.Errorf("%w: scores.crime.index", errIncompletePayload)
	case fr.Context.Income.MedianHousehold == nil:
		return domain.MetricsRecord{}, fmt.Errorf("%w: context.income.median_household", errIncompletePayload)
	case tr.PriceGrowth5y == nil:
		return domain.MetricsRecord{}, fmt.Errorf("%w: price_growth_5y", errIncompletePayload)
	}

	return domain.MetricsRecord{
		Walkability:   *fr.Scores.Walk.WalkScore,
		SchoolScore:   *fr.Scores.School.Value,
		CrimeIndex:    *fr.Scores.Crime.Index,
		MedianIncome:  *fr.Context.Income.MedianHousehold,
		PriceGrowth5y: *tr.PriceGrowth5y,
		Demographics:  demographics(fr.Context.Demographics.RaceEthnicity),
	}, nil
}

// demographics orders the breakdown by share descending, then group name, so
// the same payload always yields the same record.
func demographics(breakdown map[string]float64) []domain.Demographic {
	out := make([]domain.Demographic, 0, len(breakdown))
	for group, share := range breakdown {
		out = append(out, domain.Demographic{Group: group, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Share != out[j].Share {
			return out[i].Share > out[j].Share
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// Factors provider API response types.

type factorsResponse struct {
	Location struct {
		Lat              float64 `json:"lat"`
		Lon              float64 `json:"lon"`
		FormattedAddress string  `json:"formatted_address"`
	} `json:"location"`
	Scores struct {
		School struct {
			Value *float64 `json:"value"`
		} `json:"school"`
		Crime struct {
			Index *int `json:"index"`
		} `json:"crime"`
		Walk struct {
			WalkScore *int `json:"walkScore"`
		} `json:"walk"`
	} `json:"scores"`
	Context struct {
		Income struct {
			MedianHousehold *int `json:"median_household"`
		} `json:"income"`
		Demographics struct {
			RaceEthnicity map[string]float64 `json:"race_ethnicity"`
		} `json:"demographics"`
	} `json:"context"`
}

type trendResponse struct {
	PriceGrowth5y *float64 `json:"price_growth_5y"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
