package models

import "time"

// ItemError records a single article failing one pipeline step. The batch
// keeps going; these are collected, not thrown.
type ItemError struct {
	Article string `json:"article"` // truncated title
	Step    string `json:"step"`    // "rewrite", "save", ...
	Error   string `json:"error"`
}

// PipelineResult aggregates one batch run.
type PipelineResult struct {
	TotalFetched int           `json:"total_fetched"`
	WithContent  int           `json:"with_content"`
	Processed    int           `json:"processed"`
	Saved        int           `json:"saved"`
	Errors       []ItemError   `json:"errors"`
	Duration     time.Duration `json:"duration_ms"`
}

// PipelineStatus reports collaborator health for the status endpoint.
type PipelineStatus struct {
	StoreConnected     bool      `json:"store_connected"`
	AiServiceAvailable bool      `json:"ai_service_available"`
	TotalArticles      int64     `json:"total_articles"`
	Timestamp          time.Time `json:"timestamp"`
}
