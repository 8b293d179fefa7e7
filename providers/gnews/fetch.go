package gnews

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

// response is the relevant part of a GNews API response.
type response struct {
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Content     string `json:"content"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Fetcher implements the Provider interface for GNews, used as fallback
// when the primary feed is unavailable.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewFetcher creates a new GNews fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{Config: cfg, Logger: logger}
}

// Name returns the provider name.
func (f *Fetcher) Name() string {
	return "gnews"
}

// Fetch queries the GNews search endpoint.
func (f *Fetcher) Fetch(ctx context.Context, topics []string, language string) ([]models.RawItem, error) {
	if f.Config.GNewsAPIKey == "" {
		return nil, fmt.Errorf("gnews API key is not configured")
	}

	query := strings.Join(topics, " OR ")
	if query == "" {
		query = "news"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", language)
	params.Set("max", strconv.Itoa(f.Config.MaxArticlesPerFetch))
	params.Set("token", f.Config.GNewsAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		f.Config.GNewsBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews request failed with status: %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Articles == nil {
		return nil, fmt.Errorf("invalid gnews API response")
	}

	items := make([]models.RawItem, 0, len(body.Articles))
	for _, a := range body.Articles {
		content := a.Content
		if content == "" {
			content = a.Description
		}
		item := models.RawItem{
			Title:       a.Title,
			Link:        a.URL,
			Content:     content,
			Description: a.Description,
			ImageURL:    a.Image,
		}
		if a.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
				item.PublishedAt = &t
			}
		}
		items = append(items, item)
	}

	f.Logger.Info("GNews fetch completed", zap.Int("items", len(items)))
	return items, nil
}
