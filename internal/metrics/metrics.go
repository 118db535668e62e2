package metrics

import (
	"sync"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/astro"
)

type Metrics struct {
	mu                sync.RWMutex
	ReportsBuilt      int64
	ReportsFailed     int64
	QuestionsAnswered int64
	MissingReports    int64
	Signs             map[astro.Sign]int64
	Categories        map[astro.Category]int64
	LastUpdateTime    time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		Signs:          map[astro.Sign]int64{},
		Categories:     map[astro.Category]int64{},
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementReportsBuilt(sign astro.Sign) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsBuilt++
	m.Signs[sign]++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementReportsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsFailed++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsAnswered(category astro.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAnswered++
	m.Categories[category]++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementMissingReports() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MissingReports++
	m.LastUpdateTime = time.Now()
}

// Snapshot is a copy of the counters that is safe to serialize.
type Snapshot struct {
	ReportsBuilt      int64                    `json:"reports_built"`
	ReportsFailed     int64                    `json:"reports_failed"`
	QuestionsAnswered int64                    `json:"questions_answered"`
	MissingReports    int64                    `json:"missing_reports"`
	Signs             map[astro.Sign]int64     `json:"signs"`
	Categories        map[astro.Category]int64 `json:"categories"`
	LastUpdateTime    time.Time                `json:"last_update_time"`
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	signs := make(map[astro.Sign]int64, len(m.Signs))
	for k, v := range m.Signs {
		signs[k] = v
	}
	categories := make(map[astro.Category]int64, len(m.Categories))
	for k, v := range m.Categories {
		categories[k] = v
	}

	return Snapshot{
		ReportsBuilt:      m.ReportsBuilt,
		ReportsFailed:     m.ReportsFailed,
		QuestionsAnswered: m.QuestionsAnswered,
		MissingReports:    m.MissingReports,
		Signs:             signs,
		Categories:        categories,
		LastUpdateTime:    m.LastUpdateTime,
	}
}
