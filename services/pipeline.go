package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"feed-beep/models"
	"feed-beep/storage"
)

// ErrInvalidArticle marks single-article input rejected by the normalizer.
var ErrInvalidArticle = errors.New("article failed minimum-content validation")

// FeedSource is the upstream article feed (usually a provider chain).
type FeedSource interface {
	Fetch(ctx context.Context, topics []string, language string) ([]models.RawItem, error)
}

// ContentScraper is the optional full-content fallback for thin feed items.
type ContentScraper interface {
	Scrape(ctx context.Context, url string) (string, error)
	Available() bool
}

// ArticleRewriter is the rewrite step consumed by the pipeline.
type ArticleRewriter interface {
	RewriteArticle(ctx context.Context, article models.NormalizedArticle, contentSource string) (models.RewrittenArticle, error)
	Available() bool
}

// Pipeline sequences fetch, normalization, scrape fallback, rewrite,
// quality analysis and duplicate-safe persistence. Per-item failures are
// collected, never propagated: one bad article must not sink the batch.
type Pipeline struct {
	Source     FeedSource
	Normalizer *Normalizer
	Scraper    ContentScraper
	Rewriter   ArticleRewriter
	Analyzer   *QualityAnalyzer
	Writer     *ArticleWriter
	Limiter    *RateLimiter
	Monitor    *Monitor
	Store      storage.ArticleStore
	Logger     *zap.Logger
}

// PipelineDeps wires the collaborators into the orchestrator.
type PipelineDeps struct {
	Source   FeedSource
	Scraper  ContentScraper
	Rewriter ArticleRewriter
	Writer   *ArticleWriter
	Limiter  *RateLimiter
	Monitor  *Monitor
	Store    storage.ArticleStore
	Logger   *zap.Logger
}

// NewPipeline constructs the orchestrator.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		Source:     deps.Source,
		Normalizer: NewNormalizer(),
		Scraper:    deps.Scraper,
		Rewriter:   deps.Rewriter,
		Analyzer:   NewQualityAnalyzer(),
		Writer:     deps.Writer,
		Limiter:    deps.Limiter,
		Monitor:    deps.Monitor,
		Store:      deps.Store,
		Logger:     deps.Logger,
	}
}

// Run executes one batch. Only a failing fetch returns an error; an empty
// feed is "nothing to do" and everything after a successful fetch is
// absorbed into the result's error list.
func (p *Pipeline) Run(ctx context.Context, topics []string, language string) (*models.PipelineResult, error) {
	start := time.Now()
	p.Monitor.StartRun()
	defer p.Monitor.EndRun()

	p.Logger.Info("Starting article processing pipeline",
		zap.Strings("topics", topics), zap.String("language", language))

	items, err := p.fetch(ctx, topics, language)
	if err != nil {
		return nil, err
	}

	result := &models.PipelineResult{Errors: []models.ItemError{}}
	result.TotalFetched = len(items)

	if len(items) == 0 {
		p.Logger.Warn("No articles fetched, ending pipeline")
		result.Duration = time.Since(start)
		return result, nil
	}

	articles := p.normalizeAndBackfill(ctx, items)
	result.WithContent = len(articles)

	p.Logger.Info("Articles with sufficient content",
		zap.Int("total", result.TotalFetched),
		zap.Int("with_content", result.WithContent),
		zap.Int("skipped", result.TotalFetched-result.WithContent))

	for _, article := range articles {
		rewritten, err := p.Rewriter.RewriteArticle(ctx, article.NormalizedArticle, article.ContentSource)
		if err != nil {
			p.recordItemError(result, article.Title, "rewrite", err)
			continue
		}
		result.Processed++

		analysis := p.Analyzer.Analyze(rewritten)
		p.Monitor.RecordProcessed(analysis.OverallScore)
		if !p.Analyzer.MeetsStandards(analysis) {
			p.Logger.Warn("Article below quality standards, saving anyway",
				zap.String("title", truncateTitle(rewritten.Title)),
				zap.Int("score", analysis.OverallScore),
				zap.Strings("issues", analysis.Issues))
		}

		saved, err := p.Writer.SaveArticle(ctx, rewritten, analysis)
		if err != nil {
			p.recordItemError(result, rewritten.Title, "save", err)
			continue
		}
		if saved == nil {
			// Duplicate skip: expected, not a failure.
			continue
		}
		result.Saved++
		p.Monitor.RecordSaved()
	}

	result.Duration = time.Since(start)
	p.Logger.Info("Article processing pipeline completed",
		zap.Duration("duration", result.Duration),
		zap.Int("total_fetched", result.TotalFetched),
		zap.Int("processed", result.Processed),
		zap.Int("saved", result.Saved),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

// ProcessSingle pushes one raw item through the full pipeline, for testing
// and debugging. A duplicate returns (nil, nil).
func (p *Pipeline) ProcessSingle(ctx context.Context, item models.RawItem) (*models.Article, error) {
	p.Logger.Info("Processing single article", zap.String("title", truncateTitle(item.Title)))

	article := p.Normalizer.Normalize(item)
	if article == nil {
		return nil, ErrInvalidArticle
	}

	rewritten, err := p.Rewriter.RewriteArticle(ctx, *article, "feed")
	if err != nil {
		return nil, err
	}

	analysis := p.Analyzer.Analyze(rewritten)
	return p.Writer.SaveArticle(ctx, rewritten, analysis)
}

// Status reports collaborator health for the status endpoint.
func (p *Pipeline) Status(ctx context.Context) models.PipelineStatus {
	status := models.PipelineStatus{
		AiServiceAvailable: p.Rewriter.Available(),
		Timestamp:          time.Now().UTC(),
	}

	if err := p.Store.Ping(ctx); err != nil {
		p.Logger.Error("Store ping failed", zap.Error(err))
		return status
	}
	status.StoreConnected = true

	count, err := p.Store.Count(ctx)
	if err != nil {
		p.Logger.Error("Store count failed", zap.Error(err))
		return status
	}
	status.TotalArticles = count

	return status
}

// fetch runs the feed source behind the shared rate limiter.
func (p *Pipeline) fetch(ctx context.Context, topics []string, language string) ([]models.RawItem, error) {
	if p.Limiter != nil {
		if err := p.Limiter.AwaitSlot(ctx); err != nil {
			return nil, err
		}
		p.Limiter.Record()
	}
	return p.Source.Fetch(ctx, topics, language)
}

// normalizeAndBackfill validates raw items and routes thin ones through the
// scrape fallback. Scrape failures drop the item silently; it is neither
// processed nor reported as an error.
func (p *Pipeline) normalizeAndBackfill(ctx context.Context, items []models.RawItem) []scrapedArticle {
	var out []scrapedArticle
	for _, item := range items {
		article := p.Normalizer.Normalize(item)
		if article == nil {
			continue
		}

		if article.HasFullContent {
			out = append(out, scrapedArticle{NormalizedArticle: *article, ContentSource: "feed"})
			continue
		}

		upgraded := p.scrapeFallback(ctx, article)
		if upgraded == nil {
			p.Logger.Debug("Dropping thin article, scrape fallback failed",
				zap.String("title", truncateTitle(article.Title)))
			continue
		}
		out = append(out, scrapedArticle{NormalizedArticle: *upgraded, ContentSource: "scraper"})
	}
	return out
}

// scrapeFallback tries to replace a teaser body with scraped page content.
func (p *Pipeline) scrapeFallback(ctx context.Context, article *models.NormalizedArticle) *models.NormalizedArticle {
	if p.Scraper == nil || !p.Scraper.Available() || article.CanonicalURL == "" {
		return nil
	}

	if p.Limiter != nil {
		if err := p.Limiter.AwaitSlot(ctx); err != nil {
			return nil
		}
		p.Limiter.Record()
	}

	content, err := p.Scraper.Scrape(ctx, article.CanonicalURL)
	if err != nil {
		p.Logger.Warn("Failed to scrape article content",
			zap.String("url", article.CanonicalURL), zap.Error(err))
		return nil
	}
	if len(content) < minScrapedContentLength {
		return nil
	}

	upgraded := *article
	upgraded.Content = content
	upgraded.HasFullContent = true
	return &upgraded
}

func (p *Pipeline) recordItemError(result *models.PipelineResult, title, step string, err error) {
	itemErr := models.ItemError{
		Article: truncateTitle(title),
		Step:    step,
		Error:   err.Error(),
	}
	result.Errors = append(result.Errors, itemErr)
	p.Monitor.RecordError(itemErr)
}

// scrapedArticle tags a normalized article with where its body came from.
type scrapedArticle struct {
	models.NormalizedArticle
	ContentSource string
}
