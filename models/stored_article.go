package models

import (
	"time"

	"gorm.io/datatypes"
)

// Article is the persisted form of a rewritten article. Records are created
// once by the writer after the duplicate check and never mutated afterwards.
// OriginalURL carries a plain index only: at-most-one-per-URL is enforced by
// the application-level duplicate check, not by a storage constraint.
type Article struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	CreatedAt time.Time `json:"created_at"`

	Title   string `json:"title" gorm:"not null"`
	Summary string `json:"summary" gorm:"type:text"`
	Body    string `json:"body" gorm:"type:text"`

	OriginalURL string `json:"original_url" gorm:"index;size:2048;not null"`
	Source      string `json:"source" gorm:"index"`

	Topics      datatypes.JSON `json:"topics,omitempty" gorm:"type:jsonb"`
	AiGenerated bool           `json:"ai_generated" gorm:"default:false"`
	ImageURL    string         `json:"image_url,omitempty"`

	// Advisory duplicate pre-check only; URL equality stays authoritative.
	ContentHash string `json:"content_hash" gorm:"index;size:32"`

	QualityScore int    `json:"quality_score"`
	QualityLevel string `json:"quality_level,omitempty" gorm:"index"`

	S3Link string `json:"s3_link,omitempty"`
}

// TableName sets the explicit table name.
func (Article) TableName() string {
	return "articles"
}
