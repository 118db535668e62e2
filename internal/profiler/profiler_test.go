package profiler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/astro"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	clock := func() time.Time { return time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC) }
	return NewService(astro.NewBuilder(astro.WithClock(clock)), session.NewMemoryStore(time.Hour), nil, nil)
}

var asha = models.ReportRequest{Name: "Asha", DOB: "1995-08-01", TOB: "09:30", Place: "Mumbai, India"}

func TestGenerateReport(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	p, err := s.GenerateReport(ctx, "s1", asha)
	require.NoError(t, err)
	assert.Equal(t, "leo", p.SunSign)

	stored, err := s.store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, p, stored)

	snap := s.Metrics().GetSnapshot()
	assert.EqualValues(t, 1, snap.ReportsBuilt)
	assert.EqualValues(t, 1, snap.Signs[astro.Leo])
}

func TestGenerateReport_MissingFields(t *testing.T) {
	s := newTestService()

	for _, req := range []models.ReportRequest{
		{DOB: "1995-08-01"},
		{Name: "Asha"},
		{Name: "  ", DOB: "1995-08-01"},
	} {
		_, err := s.GenerateReport(context.Background(), "s1", req)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
	assert.EqualValues(t, 3, s.Metrics().GetSnapshot().ReportsFailed)
}

func TestGenerateReport_InvalidDateKeepsPreviousReport(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.GenerateReport(ctx, "s1", asha)
	require.NoError(t, err)

	_, err = s.GenerateReport(ctx, "s1", models.ReportRequest{Name: "Asha", DOB: "not-a-date"})
	require.Error(t, err)
	var dtErr *astro.DateTimeError
	assert.True(t, errors.As(err, &dtErr))

	p, err := s.store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "leo", p.SunSign)
}

func TestAnswerQuestion(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.AnswerQuestion(ctx, "s1", "Will I get a promotion?")
	assert.ErrorIs(t, err, ErrNoReport)

	_, err = s.GenerateReport(ctx, "s1", asha)
	require.NoError(t, err)

	answer, err := s.AnswerQuestion(ctx, "s1", "Will I get a promotion?")
	require.NoError(t, err)
	assert.Contains(t, answer, "For a Leo (element: Fire)")

	_, err = s.AnswerQuestion(ctx, "other", "Will I get a promotion?")
	assert.ErrorIs(t, err, ErrNoReport)

	snap := s.Metrics().GetSnapshot()
	assert.EqualValues(t, 1, snap.QuestionsAnswered)
	assert.EqualValues(t, 2, snap.MissingReports)
	assert.EqualValues(t, 1, snap.Categories[astro.CategoryCareer])
}

func TestFormatReport(t *testing.T) {
	s := newTestService()
	p, err := s.GenerateReport(context.Background(), "s1", asha)
	require.NoError(t, err)

	out := FormatReport(p)
	assert.Contains(t, out, "# Astrology Report for: Asha")
	assert.Contains(t, out, p.FullText)
	assert.Contains(t, out, "- Place: Mumbai, India")
	assert.Contains(t, out, "- Sun sign: Leo")
	assert.Contains(t, out, "- Age: 31")

	assert.Equal(t, "No astrology report generated.", FormatReport(nil))
}
