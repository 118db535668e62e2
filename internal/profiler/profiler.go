package profiler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/astro"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/metrics"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/session"
	"go.uber.org/zap"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrNoReport      = errors.New("no report available")
)

// Service ties the astro core to the caller-owned session store: it builds
// reports, remembers the latest one per session and answers questions about it.
type Service struct {
	builder *astro.Builder
	store   session.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewService(builder *astro.Builder, store session.Store, m *metrics.Metrics, logger *zap.Logger) *Service {
	if builder == nil {
		builder = astro.NewBuilder()
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		builder: builder,
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// GenerateReport validates the request, builds the profile and stores it as
// the session's latest report. Date/time failures are returned as
// *astro.DateTimeError.
func (s *Service) GenerateReport(ctx context.Context, sessionID string, req models.ReportRequest) (*models.Profile, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.DOB) == "" {
		s.metrics.IncrementReportsFailed()
		return nil, ErrMissingFields
	}

	profile, err := s.builder.Build(req.Name, req.DOB, req.TOB, req.Place)
	if err != nil {
		s.metrics.IncrementReportsFailed()
		s.logger.Info("Rejected birth details",
			zap.String("session", sessionID),
			zap.String("dob", req.DOB),
			zap.String("tob", req.TOB),
			zap.Error(err))
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, profile); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.metrics.IncrementReportsBuilt(astro.Sign(profile.SunSign))
	s.logger.Debug("Report generated",
		zap.String("session", sessionID),
		zap.String("sun_sign", profile.SunSign))
	return profile, nil
}

// AnswerQuestion answers against the session's latest report.
func (s *Service) AnswerQuestion(ctx context.Context, sessionID, question string) (string, error) {
	profile, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			s.metrics.IncrementMissingReports()
			return "", ErrNoReport
		}
		return "", fmt.Errorf("failed to load report: %w", err)
	}

	answer, category := astro.Classify(question, profile)
	s.metrics.IncrementQuestionsAnswered(category)
	s.logger.Debug("Question answered",
		zap.String("session", sessionID),
		zap.String("category", string(category)))
	return answer, nil
}

// FormatReport renders a profile as markdown for chat-style clients.
func FormatReport(p *models.Profile) string {
	if p == nil {
		return "No astrology report generated."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# Astrology Report for: %s\n\n", p.Name))
	builder.WriteString(p.FullText)
	builder.WriteString("\n\n**Details:**\n")
	builder.WriteString(fmt.Sprintf("- Born: %s\n", p.BirthDatetime))
	if p.Place != "" {
		builder.WriteString(fmt.Sprintf("- Place: %s\n", p.Place))
	}
	builder.WriteString(fmt.Sprintf("- Sun sign: %s\n", astro.Sign(p.SunSign).Title()))
	builder.WriteString(fmt.Sprintf("- Element: %s\n", p.Element))
	builder.WriteString(fmt.Sprintf("- Modality: %s\n", p.Mode))
	if p.Age != nil {
		builder.WriteString(fmt.Sprintf("- Age: %d\n", *p.Age))
	}
	return builder.String()
}
