package services

import (
	"strings"
	"testing"

	"feed-beep/models"
)

func longContent(n int) string {
	return strings.Repeat("word ", n/5+1)[:n]
}

func TestNormalizeRejectsInvalidItems(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		item models.RawItem
	}{
		{"missing title", models.RawItem{Link: "https://example.com/a", Content: longContent(300)}},
		{"missing link", models.RawItem{Title: "A Title", Content: longContent(300)}},
		{"missing content", models.RawItem{Title: "A Title", Link: "https://example.com/a"}},
		{"content too short", models.RawItem{Title: "A Title", Link: "https://example.com/a", Content: longContent(100)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.item); got != nil {
				t.Errorf("Normalize() = %+v, want nil", got)
			}
		})
	}
}

func TestNormalizeValidItem(t *testing.T) {
	n := NewNormalizer()

	item := models.RawItem{
		Title:      "  Breaking News  ",
		Link:       "https://www.example.com/story?id=1",
		Content:    "<p>" + longContent(300) + "</p>",
		Categories: []string{"Tech", "AI"},
		Keywords:   []string{"ai", "Robotics"},
	}

	got := n.Normalize(item)
	if got == nil {
		t.Fatal("Normalize() = nil, want article")
	}
	if got.Title != "Breaking News" {
		t.Errorf("Title = %q, want trimmed title", got.Title)
	}
	if strings.ContainsAny(got.Content, "<>") {
		t.Errorf("Content still contains markup: %q", got.Content)
	}
	if got.SourceDomain != "example.com" {
		t.Errorf("SourceDomain = %q, want example.com", got.SourceDomain)
	}
	if got.CanonicalURL != "https://www.example.com/story?id=1" {
		t.Errorf("CanonicalURL = %q", got.CanonicalURL)
	}
	if !got.HasFullContent {
		t.Error("HasFullContent = false, want true for long content")
	}

	wantTopics := []string{"tech", "ai", "robotics"}
	if len(got.Topics) != len(wantTopics) {
		t.Fatalf("Topics = %v, want %v", got.Topics, wantTopics)
	}
	for i, topic := range wantTopics {
		if got.Topics[i] != topic {
			t.Errorf("Topics[%d] = %q, want %q", i, got.Topics[i], topic)
		}
	}
}

func TestNormalizeThinContentFlagged(t *testing.T) {
	n := NewNormalizer()

	// Raw length clears the validity gate but the cleaned body stays below
	// the full-content threshold.
	item := models.RawItem{
		Title:   "Teaser Item",
		Link:    "https://example.com/teaser",
		Content: longContent(150),
	}

	got := n.Normalize(item)
	if got == nil {
		t.Fatal("Normalize() = nil, want article")
	}
	if got.HasFullContent {
		t.Error("HasFullContent = true, want false for teaser-length content")
	}
}

func TestNormalizeUnparsableLinkKept(t *testing.T) {
	n := NewNormalizer()

	item := models.RawItem{
		Title:   "Relative Link",
		Link:    "/just/a/path",
		Content: longContent(300),
	}

	got := n.Normalize(item)
	if got == nil {
		t.Fatal("Normalize() = nil, want article despite bad link")
	}
	if got.CanonicalURL != "" {
		t.Errorf("CanonicalURL = %q, want empty for relative link", got.CanonicalURL)
	}
	if got.SourceDomain != "" {
		t.Errorf("SourceDomain = %q, want empty", got.SourceDomain)
	}
}

func TestCleanContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tags stripped", "<p>Hello <b>world</b></p>", "Hello world"},
		{"whitespace collapsed", "a\n\n  b\t\tc", "a b c"},
		{"plain text untouched", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanContent(tt.in); got != tt.want {
				t.Errorf("CleanContent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
