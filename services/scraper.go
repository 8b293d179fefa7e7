package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"feed-beep/config"
)

// minScrapedContentLength is the smallest extraction that counts as success.
const minScrapedContentLength = 100

const scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

var scraperClient = &http.Client{Timeout: 10 * time.Second}

// ExtractionStrategy pulls article text out of a parsed document. Strategies
// run in order; the first non-empty result wins, so a proper readability
// parser can slot in ahead of the selector heuristics later.
type ExtractionStrategy interface {
	Extract(doc *goquery.Document) string
	Name() string
}

// selectorStrategy extracts the text of the first element matching a CSS
// selector.
type selectorStrategy struct {
	name     string
	selector string
}

func (s selectorStrategy) Name() string { return s.name }

func (s selectorStrategy) Extract(doc *goquery.Document) string {
	sel := doc.Find(s.selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return sel.Text()
}

// defaultStrategies mirror the usual places news sites keep their article
// body, most specific first, full body as last resort.
func defaultStrategies() []ExtractionStrategy {
	return []ExtractionStrategy{
		selectorStrategy{name: "article", selector: "article"},
		selectorStrategy{name: "content-div", selector: `div[class*="content"]`},
		selectorStrategy{name: "post-div", selector: `div[class*="post"]`},
		selectorStrategy{name: "entry-div", selector: `div[class*="entry"]`},
		selectorStrategy{name: "main", selector: "main"},
		selectorStrategy{name: "body", selector: "body"},
	}
}

// Scraper fetches an article page and extracts its main text as a fallback
// for feed items that only carried a teaser.
type Scraper struct {
	Config     *config.Config
	Logger     *zap.Logger
	strategies []ExtractionStrategy
}

// NewScraper creates a scraper with the default extraction strategies.
func NewScraper(cfg *config.Config, logger *zap.Logger) *Scraper {
	return &Scraper{Config: cfg, Logger: logger, strategies: defaultStrategies()}
}

// Available reports whether scraping is enabled.
func (s *Scraper) Available() bool {
	return s.Config.ScraperEnabled
}

// Scrape downloads the page and returns the cleaned article text, or an
// error when nothing usable could be extracted.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("no URL provided for scraping")
	}

	log := s.Logger.With(zap.String("url", pageURL))
	log.Info("Attempting to scrape article content")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", scraperUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := scraperClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scrape request failed with status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	content := s.ExtractContent(doc)
	if len(content) < minScrapedContentLength {
		return "", fmt.Errorf("insufficient content extracted (%d chars)", len(content))
	}

	log.Info("Successfully scraped article content", zap.Int("length", len(content)))
	return content, nil
}

// ExtractContent strips boilerplate nodes, then runs the strategies in
// order and returns the first non-empty cleaned text.
func (s *Scraper) ExtractContent(doc *goquery.Document) string {
	removeBoilerplate(doc)

	for _, strategy := range s.strategies {
		text := CleanContent(strategy.Extract(doc))
		if text != "" {
			s.Logger.Debug("Extraction strategy matched", zap.String("strategy", strategy.Name()))
			return text
		}
	}
	return ""
}

// removeBoilerplate drops scripts, navigation chrome, and the usual ad and
// sidebar containers before extraction.
func removeBoilerplate(doc *goquery.Document) {
	doc.Find("script, style, nav, header, footer").Remove()

	doc.Find("div[class]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		class = strings.ToLower(class)
		for _, marker := range []string{"ad", "sidebar", "widget", "social", "share"} {
			if strings.Contains(class, marker) {
				sel.Remove()
				return
			}
		}
	})
}
