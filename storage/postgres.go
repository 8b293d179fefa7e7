package storage

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"feed-beep/config"
	"feed-beep/models"
)

// GormStore is the PostgreSQL-backed article store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database connection and runs auto-migration.
func NewGormStore(cfg *config.Config) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.Article{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// DB exposes the underlying handle for the read-side HTTP routes.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// FindByURL looks up an article by exact original URL.
func (s *GormStore) FindByURL(ctx context.Context, originalURL string) (*models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).Where("original_url = ?", originalURL).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Insert creates a new article record in a single write.
func (s *GormStore) Insert(ctx context.Context, article *models.Article) error {
	return s.db.WithContext(ctx).Create(article).Error
}

// Count returns the number of persisted articles.
func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Article{}).Count(&count).Error
	return count, err
}

// Ping checks database connectivity.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
