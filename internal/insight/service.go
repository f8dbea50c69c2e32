package insight

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Report gathers everything the presentation surface shows for one place.
// On a miss Record is nil, Insights is empty and Narrative is the prompt to
// pick a place.
type Report struct {
	Key         string                `json:"key"`
	Found       bool                  `json:"found"`
	Record      *domain.MetricsRecord `json:"record,omitempty"`
	Insights    domain.Insights       `json:"insights"`
	Narrative   string                `json:"narrative"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// Publisher emits reports for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, report Report) error
}

// Service resolves places and builds reports.
type Service struct {
	resolver  *Resolver
	publisher Publisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a Service. Pass a nil publisher to disable publishing.
func NewService(resolver *Resolver, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		resolver:  resolver,
		publisher: publisher,
		clock:     clockwork.NewRealClock(),
		logger:    logger,
		metrics:   metrics,
	}
}

// WithClock replaces the time source used for GeneratedAt.
func (s *Service) WithClock(c clockwork.Clock) *Service {
	s.clock = c
	return s
}

// Resolver exposes the underlying resolver, e.g. for session place selection.
func (s *Service) Resolver() *Resolver { return s.resolver }

// Lookup resolves (city, region) and builds its report. The error is non-nil
// only for a record that fails validation.
func (s *Service) Lookup(ctx context.Context, city, region string) (Report, error) {
	res, err := s.resolver.Resolve(ctx, city, region)
	if err != nil {
		return Report{Key: res.Key}, err
	}
	report := BuildReport(res)
	report.GeneratedAt = s.clock.Now().UTC()

	if report.Found {
		s.metrics.Observations.WithLabelValues(string(domain.Positive)).Add(float64(len(report.Insights.Positives)))
		s.metrics.Observations.WithLabelValues(string(domain.Negative)).Add(float64(len(report.Insights.Negatives)))
		s.publish(ctx, report)
	}
	return report, nil
}

// BuildReport evaluates and composes a resolution without any side effects.
func BuildReport(res Resolution) Report {
	rec := res.RecordOrNil()
	report := Report{
		Key:       res.Key,
		Found:     res.Found,
		Record:    rec,
		Insights:  domain.Insights{Positives: []domain.Observation{}, Negatives: []domain.Observation{}},
		Narrative: domain.Compose(res.Key, rec),
	}
	if rec != nil {
		report.Insights = domain.Evaluate(*rec)
	}
	return report
}

func (s *Service) publish(ctx context.Context, report Report) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, report); err != nil {
		s.metrics.ReportsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("publish report failed", "key", report.Key, "error", err)
		return
	}
	s.metrics.ReportsPublished.WithLabelValues("success").Inc()
}

// CheckReadiness reports whether the underlying place store is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	return s.resolver.CheckReadiness(ctx)
}
