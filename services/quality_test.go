package services

import (
	"strings"
	"testing"

	"feed-beep/models"
)

func sampleRewritten(title, summary, body string) models.RewrittenArticle {
	return models.RewrittenArticle{
		NormalizedArticle: models.NormalizedArticle{Title: title},
		Summary:           summary,
		Body:              body,
	}
}

func goodBody() string {
	sentence := "The quick brown fox jumps over the lazy dog near the river bank. "
	return strings.Repeat(sentence, 20) + `The study counted 42 samples and "a clear trend" emerged.`
}

func TestAnalyzeScoreBounds(t *testing.T) {
	q := NewQualityAnalyzer()

	articles := []models.RewrittenArticle{
		sampleRewritten("", "", ""),
		sampleRewritten("Short", "tiny", "word"),
		sampleRewritten("A Reasonable Headline About Science", "First sentence here. Second sentence follows with detail.", goodBody()),
	}

	for _, article := range articles {
		analysis := q.Analyze(article)
		if analysis.OverallScore < 0 || analysis.OverallScore > 100 {
			t.Errorf("OverallScore = %d, want within [0,100]", analysis.OverallScore)
		}
		if analysis.ReadabilityScore < 0 || analysis.ReadabilityScore > 100 {
			t.Errorf("ReadabilityScore = %f, want within [0,100]", analysis.ReadabilityScore)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	q := NewQualityAnalyzer()
	article := sampleRewritten("A Reasonable Headline About Science",
		"First sentence here. Second sentence follows with detail.", goodBody())

	first := q.Analyze(article)
	second := q.Analyze(article)

	if first.OverallScore != second.OverallScore {
		t.Errorf("scores differ across runs: %d vs %d", first.OverallScore, second.OverallScore)
	}
	if first.QualityLevel != second.QualityLevel {
		t.Errorf("levels differ across runs: %s vs %s", first.QualityLevel, second.QualityLevel)
	}
}

func TestAnalyzeEmptyBody(t *testing.T) {
	q := NewQualityAnalyzer()
	analysis := q.Analyze(sampleRewritten("Title Present Here", "A summary. Two sentences.", ""))

	if analysis.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", analysis.WordCount)
	}
	if analysis.ReadabilityScore != 0 {
		t.Errorf("ReadabilityScore = %f, want 0", analysis.ReadabilityScore)
	}
	if q.MeetsStandards(analysis) {
		t.Error("MeetsStandards = true for empty body")
	}
}

func TestQualityLevelThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, models.QualityExcellent},
		{80, models.QualityExcellent},
		{79, models.QualityGood},
		{60, models.QualityGood},
		{59, models.QualityFair},
		{40, models.QualityFair},
		{39, models.QualityPoor},
		{0, models.QualityPoor},
	}

	for _, tt := range tests {
		if got := qualityLevel(tt.score); got != tt.want {
			t.Errorf("qualityLevel(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAnalyzeTitlePenalties(t *testing.T) {
	q := NewQualityAnalyzer()

	tests := []struct {
		name      string
		title     string
		wantScore int
	}{
		{"empty", "", 0},
		{"too short", "Short", 70},
		{"clickbait marker", "This shocking result surprised Everyone in the lab today", 75},
		{"no capitalization", "a perfectly lowercase headline about nothing", 85},
		{"clean", "A Reasonable Headline About Science", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.analyzeTitle(tt.title)
			if got.Score != tt.wantScore {
				t.Errorf("analyzeTitle(%q).Score = %d, want %d (issues: %v)",
					tt.title, got.Score, tt.wantScore, got.Issues)
			}
		})
	}
}

func TestAnalyzeSummaryPenalties(t *testing.T) {
	q := NewQualityAnalyzer()

	tests := []struct {
		name      string
		summary   string
		wantScore int
	}{
		{"empty", "", 0},
		{"short single sentence", "Too short", 55},
		{"good", "The first sentence sets the scene nicely. The second adds the needed detail.", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.analyzeSummary(tt.summary)
			if got.Score != tt.wantScore {
				t.Errorf("analyzeSummary(%q).Score = %d, want %d (issues: %v)",
					tt.summary, got.Score, tt.wantScore, got.Issues)
			}
		})
	}
}

func TestIdentifyIssuesForPoorArticle(t *testing.T) {
	q := NewQualityAnalyzer()
	analysis := q.Analyze(sampleRewritten("bad", "x", "one two three"))

	if len(analysis.Issues) == 0 {
		t.Fatal("expected issues for a poor article, got none")
	}

	var sawWordCount bool
	for _, issue := range analysis.Issues {
		if strings.Contains(issue, "Content too short") {
			sawWordCount = true
		}
	}
	if !sawWordCount {
		t.Errorf("issues = %v, want a word-count issue", analysis.Issues)
	}
	if analysis.QualityLevel != models.QualityPoor && analysis.QualityLevel != models.QualityFair {
		t.Errorf("QualityLevel = %s for a poor article", analysis.QualityLevel)
	}
}

func TestMeetsStandards(t *testing.T) {
	q := NewQualityAnalyzer()

	good := q.Analyze(sampleRewritten("A Reasonable Headline About Science",
		"First sentence here. Second sentence follows with detail.", goodBody()))
	if !q.MeetsStandards(good) {
		t.Errorf("MeetsStandards = false for good article (score %d, words %d)",
			good.OverallScore, good.WordCount)
	}

	bad := q.Analyze(sampleRewritten("x", "", "tiny"))
	if q.MeetsStandards(bad) {
		t.Error("MeetsStandards = true for bad article")
	}
}
