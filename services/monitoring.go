package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"feed-beep/models"
)

// RunStats is the accounting for one pipeline run.
type RunStats struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time,omitempty"`
	ArticlesProcessed int       `json:"articles_processed"`
	ArticlesSaved     int       `json:"articles_saved"`
	Errors            int       `json:"errors"`
}

// MonitorSnapshot is the cumulative view served by the metrics endpoint.
type MonitorSnapshot struct {
	PipelineRuns        int            `json:"pipeline_runs"`
	TotalProcessed      int            `json:"total_articles_processed"`
	TotalSaved          int            `json:"total_articles_saved"`
	TotalErrors         int            `json:"total_errors"`
	SuccessRate         int            `json:"success_rate"`
	AvgProcessingTimeMs int64          `json:"average_processing_time_ms"`
	AvgQualityScore     int            `json:"average_quality_score"`
	QualityDistribution map[string]int `json:"quality_distribution"`
	LastRunTime         time.Time      `json:"last_run_time,omitempty"`
	CurrentRun          RunStats       `json:"current_run"`
}

// Monitor tracks pipeline runs. It is constructed explicitly and held by
// the orchestrator; there is no process-wide singleton. Runs are bracketed
// by StartRun/EndRun.
type Monitor struct {
	mu sync.Mutex

	logger *zap.Logger

	runs           int
	totalProcessed int
	totalSaved     int
	totalErrors    int
	totalDuration  time.Duration
	qualityScores  []int
	lastRun        time.Time

	current RunStats
}

// NewMonitor creates an empty monitor.
func NewMonitor(logger *zap.Logger) *Monitor {
	return &Monitor{logger: logger}
}

// StartRun begins a new run window.
func (m *Monitor) StartRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = RunStats{StartTime: time.Now()}
	m.logger.Info("Pipeline run started")
}

// EndRun closes the current run and folds it into the cumulative metrics.
func (m *Monitor) EndRun() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.EndTime = time.Now()
	duration := m.current.EndTime.Sub(m.current.StartTime)

	m.runs++
	m.totalProcessed += m.current.ArticlesProcessed
	m.totalSaved += m.current.ArticlesSaved
	m.totalErrors += m.current.Errors
	m.totalDuration += duration
	m.lastRun = m.current.EndTime

	m.logger.Info("Pipeline run completed",
		zap.Duration("duration", duration),
		zap.Int("articles_processed", m.current.ArticlesProcessed),
		zap.Int("articles_saved", m.current.ArticlesSaved),
		zap.Int("errors", m.current.Errors))
}

// RecordProcessed counts one article through the rewrite step, with its
// quality score.
func (m *Monitor) RecordProcessed(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.ArticlesProcessed++
	m.qualityScores = append(m.qualityScores, score)
}

// RecordSaved counts one article persisted.
func (m *Monitor) RecordSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.ArticlesSaved++
}

// RecordError counts one per-item failure.
func (m *Monitor) RecordError(itemErr models.ItemError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.Errors++
	m.logger.Error("Pipeline error recorded",
		zap.String("article", itemErr.Article),
		zap.String("step", itemErr.Step),
		zap.String("error", itemErr.Error))
}

// Metrics returns a snapshot of the cumulative state.
func (m *Monitor) Metrics() MonitorSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MonitorSnapshot{
		PipelineRuns:        m.runs,
		TotalProcessed:      m.totalProcessed,
		TotalSaved:          m.totalSaved,
		TotalErrors:         m.totalErrors,
		LastRunTime:         m.lastRun,
		CurrentRun:          m.current,
		QualityDistribution: map[string]int{},
	}

	if m.totalProcessed > 0 {
		snap.SuccessRate = int(float64(m.totalSaved) / float64(m.totalProcessed) * 100)
	}
	if m.runs > 0 {
		snap.AvgProcessingTimeMs = (m.totalDuration / time.Duration(m.runs)).Milliseconds()
	}

	if len(m.qualityScores) > 0 {
		sum := 0
		for _, score := range m.qualityScores {
			sum += score
			switch {
			case score >= 80:
				snap.QualityDistribution[models.QualityExcellent]++
			case score >= 60:
				snap.QualityDistribution[models.QualityGood]++
			case score >= 40:
				snap.QualityDistribution[models.QualityFair]++
			default:
				snap.QualityDistribution[models.QualityPoor]++
			}
		}
		snap.AvgQualityScore = sum / len(m.qualityScores)
	}

	return snap
}
