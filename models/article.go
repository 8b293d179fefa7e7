package models

import "time"

// NormalizedArticle is a RawItem that passed the minimum-viable-article
// checks: cleaned content, parsed URL, derived source domain and topics.
// CanonicalURL and SourceDomain are empty when the link did not parse as an
// absolute URL; such items still flow onward and fail at persistence time.
type NormalizedArticle struct {
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	CanonicalURL   string     `json:"canonical_url,omitempty"`
	SourceDomain   string     `json:"source_domain,omitempty"`
	Topics         []string   `json:"topics,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	HasFullContent bool       `json:"has_full_content"`
}

// RewrittenArticle is the normalized article after the AI rewrite pass.
// Title may have been replaced; Summary and Body are generated. AiGenerated
// is true once any rewrite step ran, even if every step fell back.
type RewrittenArticle struct {
	NormalizedArticle

	Summary       string `json:"summary"`
	Body          string `json:"body"`
	AiGenerated   bool   `json:"ai_generated"`
	ContentSource string `json:"content_source,omitempty"` // "feed" or "scraper"
}
