package metrics

import (
	"sync"
	"testing"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/astro"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.IncrementReportsBuilt(astro.Leo)
	m.IncrementReportsBuilt(astro.Leo)
	m.IncrementReportsBuilt(astro.Pisces)
	m.IncrementReportsFailed()
	m.IncrementQuestionsAnswered(astro.CategoryCareer)
	m.IncrementMissingReports()

	s := m.GetSnapshot()
	assert.EqualValues(t, 3, s.ReportsBuilt)
	assert.EqualValues(t, 1, s.ReportsFailed)
	assert.EqualValues(t, 1, s.QuestionsAnswered)
	assert.EqualValues(t, 1, s.MissingReports)
	assert.EqualValues(t, 2, s.Signs[astro.Leo])
	assert.EqualValues(t, 1, s.Categories[astro.CategoryCareer])
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.IncrementReportsBuilt(astro.Leo)

	s := m.GetSnapshot()
	s.Signs[astro.Leo] = 100

	assert.EqualValues(t, 1, m.GetSnapshot().Signs[astro.Leo])
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementQuestionsAnswered(astro.CategoryFallback)
			_ = m.GetSnapshot()
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 20, m.GetSnapshot().QuestionsAnswered)
}
