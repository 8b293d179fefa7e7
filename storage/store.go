package storage

import (
	"context"
	"errors"

	"feed-beep/models"
)

// ErrNotFound is returned by FindByURL when no record matches.
var ErrNotFound = errors.New("article not found")

// ArticleStore is the persistent store consumed by the writer and the
// pipeline. Uniqueness per URL is enforced by the caller, not assumed here.
type ArticleStore interface {
	FindByURL(ctx context.Context, originalURL string) (*models.Article, error)
	Insert(ctx context.Context, article *models.Article) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
