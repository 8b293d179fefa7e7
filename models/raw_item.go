package models

import "time"

// RawItem is an article exactly as a feed provider delivered it. It only
// lives until normalization; nothing downstream touches it.
type RawItem struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Content     string     `json:"content"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Categories  []string   `json:"categories,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
}
