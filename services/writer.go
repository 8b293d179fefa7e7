package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"feed-beep/config"
	"feed-beep/models"
	"feed-beep/storage"
)

// ArticleWriter is the duplicate-safe persistence gate. It owns the
// at-most-one-record-per-URL invariant; the store itself carries no
// uniqueness constraint.
type ArticleWriter struct {
	Config   *config.Config
	Store    storage.ArticleStore
	S3Client *s3.Client
	Logger   *zap.Logger
}

// NewArticleWriter creates the writer. s3Client may be nil when the archive
// is not configured.
func NewArticleWriter(cfg *config.Config, store storage.ArticleStore, s3Client *s3.Client, logger *zap.Logger) *ArticleWriter {
	return &ArticleWriter{Config: cfg, Store: store, S3Client: s3Client, Logger: logger}
}

// IsDuplicate checks whether an article with this exact URL is already
// stored. A failing lookup fails OPEN: ingestion availability wins over
// strict dedup, so infra errors read as "not a duplicate".
func (w *ArticleWriter) IsDuplicate(ctx context.Context, originalURL string) bool {
	_, err := w.Store.FindByURL(ctx, originalURL)
	if err == nil {
		return true
	}
	if err != storage.ErrNotFound {
		w.Logger.Warn("Duplicate check failed, allowing save", zap.String("url", originalURL), zap.Error(err))
	}
	return false
}

// SaveArticle validates, dedup-checks and persists one rewritten article.
// A duplicate returns (nil, nil): an expected skip, not a failure. Missing
// required fields are a hard error.
func (w *ArticleWriter) SaveArticle(ctx context.Context, article models.RewrittenArticle, quality models.QualityAnalysis) (*models.Article, error) {
	if err := validateForPersist(article); err != nil {
		return nil, err
	}

	if w.IsDuplicate(ctx, article.CanonicalURL) {
		w.Logger.Warn("Duplicate article found, skipping", zap.String("url", article.CanonicalURL))
		return nil, nil
	}

	topics, err := json.Marshal(article.Topics)
	if err != nil {
		return nil, fmt.Errorf("marshal topics: %w", err)
	}

	record := &models.Article{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Title:        strings.TrimSpace(article.Title),
		Summary:      strings.TrimSpace(article.Summary),
		Body:         strings.TrimSpace(article.Body),
		OriginalURL:  article.CanonicalURL,
		Source:       sourceOrUnknown(article.SourceDomain),
		Topics:       topics,
		AiGenerated:  article.AiGenerated,
		ImageURL:     article.ImageURL,
		ContentHash:  Fingerprint(article.Title, article.CanonicalURL),
		QualityScore: quality.OverallScore,
		QualityLevel: quality.QualityLevel,
	}

	// Optional archive first so the link lands in the record. Archive
	// failure never blocks the save.
	if w.S3Client != nil && w.Config.ArchiveEnabled() {
		link, err := storage.ArchiveArticle(ctx, w.S3Client, w.Config, record)
		if err != nil {
			w.Logger.Warn("Article archive upload failed", zap.String("id", record.ID), zap.Error(err))
		} else {
			record.S3Link = link
		}
	}

	if err := w.Store.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	w.Logger.Info("Article saved",
		zap.String("id", record.ID),
		zap.String("source", record.Source),
		zap.Int("quality_score", record.QualityScore))
	return record, nil
}

func validateForPersist(article models.RewrittenArticle) error {
	var missing []string
	if article.Title == "" {
		missing = append(missing, "title")
	}
	if article.Summary == "" {
		missing = append(missing, "summary")
	}
	if article.Body == "" {
		missing = append(missing, "body")
	}
	if article.CanonicalURL == "" {
		missing = append(missing, "originalUrl")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func sourceOrUnknown(domain string) string {
	if domain == "" {
		return "unknown"
	}
	return domain
}

// Fingerprint is a cheap rolling hash of lower-cased title+URL, rendered in
// base 36. Advisory only; collisions are fine since URL equality stays the
// authoritative duplicate key.
func Fingerprint(title, url string) string {
	content := strings.ToLower(title + url)
	var hash int32
	for _, r := range content {
		hash = (hash << 5) - hash + int32(r)
	}
	v := int64(hash)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
