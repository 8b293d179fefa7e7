package newsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"feed-beep/config"
	"feed-beep/models"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Fetcher implements the Provider interface for NewsData.io.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewFetcher creates a new NewsData.io fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{Config: cfg, Logger: logger}
}

// Name returns the provider name.
func (f *Fetcher) Name() string {
	return "newsdata"
}

// Fetch queries the NewsData.io latest-news endpoint. full_content=1 asks
// the API for article bodies instead of teasers.
func (f *Fetcher) Fetch(ctx context.Context, topics []string, language string) ([]models.RawItem, error) {
	log := f.Logger.With(zap.Strings("topics", topics), zap.String("language", language))
	log.Info("Fetching articles from NewsData.io")

	params := url.Values{}
	params.Set("apikey", f.Config.NewsDataAPIKey)
	params.Set("q", strings.Join(topics, " OR "))
	params.Set("language", language)
	params.Set("full_content", "1")
	params.Set("size", strconv.Itoa(f.Config.MaxArticlesPerFetch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		f.Config.NewsDataBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsdata request failed with status: %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("newsdata API error: %s", body.Message)
	}

	items := make([]models.RawItem, 0, len(body.Results))
	for _, r := range body.Results {
		items = append(items, mapResultToItem(r))
	}

	log.Info("NewsData.io fetch completed", zap.Int("items", len(items)))
	return items, nil
}

func mapResultToItem(r result) models.RawItem {
	item := models.RawItem{
		Title:       r.Title,
		Link:        r.Link,
		Content:     r.Content,
		Description: r.Desc,
		ImageURL:    r.ImageURL,
		Categories:  r.Category,
		Keywords:    r.Keywords,
	}
	if r.PubDate != "" {
		// NewsData delivers "2006-01-02 15:04:05" in UTC.
		if t, err := time.Parse("2006-01-02 15:04:05", r.PubDate); err == nil {
			item.PublishedAt = &t
		}
	}
	return item
}
