package services

import (
	"net/url"
	"regexp"
	"strings"

	"feed-beep/models"
)

// minRawContentLength is the minimum-viable-article gate: raw content at or
// below this length is rejected outright.
const minRawContentLength = 100

// fullContentThreshold separates real bodies from teasers. Thin items get a
// chance at the scrape fallback instead of being rewritten as-is.
const fullContentThreshold = 200

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalizer turns raw feed items into normalized articles. Pure
// transformation, no I/O.
type Normalizer struct{}

// NewNormalizer creates a new normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize validates and cleans a raw item. It returns nil when the item
// is missing title, link or content, or when the content is too short to be
// an article. An unparsable link does not reject here: the article can still
// feed the single-article debug path and will fail at persistence time.
func (n *Normalizer) Normalize(item models.RawItem) *models.NormalizedArticle {
	if item.Title == "" || item.Link == "" || item.Content == "" {
		return nil
	}
	if len(item.Content) <= minRawContentLength {
		return nil
	}

	content := CleanContent(item.Content)

	article := &models.NormalizedArticle{
		Title:          strings.TrimSpace(item.Title),
		Content:        content,
		CanonicalURL:   cleanURL(item.Link),
		SourceDomain:   extractDomain(item.Link),
		Topics:         extractTopics(item),
		ImageURL:       item.ImageURL,
		PublishedAt:    item.PublishedAt,
		HasFullContent: len(content) > fullContentThreshold,
	}
	return article
}

// CleanContent strips markup tags and collapses whitespace runs. Tag-pattern
// removal only; this is cleanup, not a sanitizer.
func CleanContent(content string) string {
	if content == "" {
		return ""
	}
	cleaned := htmlTagPattern.ReplaceAllString(content, "")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// cleanURL parses and re-serializes the link. Empty result means the link is
// not a usable absolute URL.
func cleanURL(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ""
	}
	return u.String()
}

// extractDomain returns the hostname without a leading "www." prefix.
func extractDomain(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// extractTopics merges category and keyword tags, lower-cased and de-duplicated.
func extractTopics(item models.RawItem) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, list := range [][]string{item.Categories, item.Keywords} {
		for _, tag := range list {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			topics = append(topics, tag)
		}
	}
	return topics
}
