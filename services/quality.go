package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"feed-beep/models"
)

// QualityAnalyzer scores article content. Analyze is pure and deterministic:
// same article in, same report out, no I/O.
type QualityAnalyzer struct {
	minWordCount        int
	maxWordCount        int
	minReadabilityScore float64
}

// NewQualityAnalyzer creates an analyzer with the default thresholds.
func NewQualityAnalyzer() *QualityAnalyzer {
	return &QualityAnalyzer{
		minWordCount:        100,
		maxWordCount:        5000,
		minReadabilityScore: 30, // Flesch Reading Ease
	}
}

var (
	quotePattern     = regexp.MustCompile(`["'].*["']`)
	numberPattern    = regexp.MustCompile(`\d+`)
	linkPattern      = regexp.MustCompile(`https?://\S+`)
	nonLetterPattern = regexp.MustCompile(`[^a-z]`)
	nonVowelPattern  = regexp.MustCompile(`[^aeiouy]+`)
	sentenceSplit    = regexp.MustCompile(`[.!?]+`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
)

var clickbaitMarkers = []string{"clickbait", "shocking", "amazing"}

// Analyze builds the full quality report for a rewritten article.
func (q *QualityAnalyzer) Analyze(article models.RewrittenArticle) models.QualityAnalysis {
	analysis := models.QualityAnalysis{
		WordCount:        wordCount(article.Body),
		ReadabilityScore: q.readability(article.Body),
		HasQuotes:        quotePattern.MatchString(article.Body),
		HasNumbers:       numberPattern.MatchString(article.Body),
		HasLinks:         linkPattern.MatchString(article.Body),
		TitleQuality:     q.analyzeTitle(article.Title),
		SummaryQuality:   q.analyzeSummary(article.Summary),
	}

	analysis.OverallScore = q.overallScore(analysis)
	analysis.QualityLevel = qualityLevel(analysis.OverallScore)
	analysis.Issues = q.identifyIssues(analysis)

	return analysis
}

// MeetsStandards reports whether the analysis clears the minimum bar.
func (q *QualityAnalyzer) MeetsStandards(analysis models.QualityAnalysis) bool {
	return analysis.OverallScore >= 50 && analysis.WordCount >= q.minWordCount
}

func wordCount(text string) int {
	fields := strings.Fields(text)
	return len(fields)
}

// readability computes Flesch Reading Ease, clamped to [0,100]. Zero
// sentences or zero words score 0.
func (q *QualityAnalyzer) readability(text string) float64 {
	if text == "" {
		return 0
	}

	var sentences int
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	words := wordCount(text)
	if sentences == 0 || words == 0 {
		return 0
	}

	syllables := countSyllables(text)
	avgSentenceLength := float64(words) / float64(sentences)
	avgSyllablesPerWord := float64(syllables) / float64(words)

	score := 206.835 - (1.015 * avgSentenceLength) - (84.6 * avgSyllablesPerWord)
	return math.Max(0, math.Min(100, score))
}

// countSyllables approximates: short words count one syllable, longer words
// count their vowel-group clusters.
func countSyllables(text string) int {
	count := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = nonLetterPattern.ReplaceAllString(word, "")
		if len(word) <= 3 {
			count++
			continue
		}
		count += len(nonVowelPattern.ReplaceAllString(word, ""))
	}
	return count
}

func (q *QualityAnalyzer) analyzeTitle(title string) models.SubScore {
	if title == "" {
		return models.SubScore{Score: 0, Issues: []string{"Missing title"}}
	}

	score := 100
	var issues []string

	if len(title) < 10 {
		issues = append(issues, "Title too short")
		score -= 30
	}
	if len(title) > 100 {
		issues = append(issues, "Title too long")
		score -= 20
	}
	if !uppercasePattern.MatchString(title) {
		issues = append(issues, "Title lacks proper capitalization")
		score -= 15
	}
	for _, marker := range clickbaitMarkers {
		if strings.Contains(title, marker) {
			issues = append(issues, "Title may be clickbait")
			score -= 25
			break
		}
	}

	if score < 0 {
		score = 0
	}
	return models.SubScore{Score: score, Issues: issues}
}

func (q *QualityAnalyzer) analyzeSummary(summary string) models.SubScore {
	if summary == "" {
		return models.SubScore{Score: 0, Issues: []string{"Missing summary"}}
	}

	score := 100
	var issues []string

	if len(summary) < 50 {
		issues = append(issues, "Summary too short")
		score -= 30
	}
	if len(summary) > 300 {
		issues = append(issues, "Summary too long")
		score -= 20
	}
	if len(strings.Split(summary, ".")) < 2 {
		issues = append(issues, "Summary should have multiple sentences")
		score -= 15
	}

	if score < 0 {
		score = 0
	}
	return models.SubScore{Score: score, Issues: issues}
}

// overallScore is the weighted composite: word count 20, readability 25,
// content features 15, title 20, summary 20.
func (q *QualityAnalyzer) overallScore(a models.QualityAnalysis) int {
	score := 0.0

	if a.WordCount >= q.minWordCount && a.WordCount <= q.maxWordCount {
		score += 20
	} else if a.WordCount > q.minWordCount {
		score += 10
	}

	if a.ReadabilityScore >= q.minReadabilityScore {
		score += 25
	} else if a.ReadabilityScore >= 20 {
		score += 15
	}

	if a.HasQuotes {
		score += 5
	}
	if a.HasNumbers {
		score += 5
	}
	if a.HasLinks {
		score += 5
	}

	score += float64(a.TitleQuality.Score) / 100 * 20
	score += float64(a.SummaryQuality.Score) / 100 * 20

	return int(math.Round(score))
}

func qualityLevel(score int) string {
	switch {
	case score >= 80:
		return models.QualityExcellent
	case score >= 60:
		return models.QualityGood
	case score >= 40:
		return models.QualityFair
	default:
		return models.QualityPoor
	}
}

func (q *QualityAnalyzer) identifyIssues(a models.QualityAnalysis) []string {
	var issues []string

	if a.WordCount < q.minWordCount {
		issues = append(issues, fmt.Sprintf("Content too short (%d words, minimum %d)", a.WordCount, q.minWordCount))
	}
	if a.WordCount > q.maxWordCount {
		issues = append(issues, fmt.Sprintf("Content too long (%d words, maximum %d)", a.WordCount, q.maxWordCount))
	}
	if a.ReadabilityScore < q.minReadabilityScore {
		issues = append(issues, fmt.Sprintf("Low readability score (%.1f, minimum %.0f)", a.ReadabilityScore, q.minReadabilityScore))
	}
	if !a.HasQuotes {
		issues = append(issues, "No quotes found in content")
	}
	if !a.HasNumbers {
		issues = append(issues, "No specific numbers or data found")
	}

	issues = append(issues, a.TitleQuality.Issues...)
	issues = append(issues, a.SummaryQuality.Issues...)

	return issues
}
