package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"feed-beep/models"
)

// RewriteClient is the external generative-text collaborator: three
// independent, individually fallible calls.
type RewriteClient interface {
	RewriteTitle(ctx context.Context, title string) (string, error)
	Summarize(ctx context.Context, content string) (string, error)
	RewriteBody(ctx context.Context, content string) (string, error)
	Available() bool
}

// summaryFallbackLength caps the truncated-content summary fallback.
const summaryFallbackLength = 200

// RewriteService runs the three rewrite sub-steps for an article. The
// sub-steps are independent and read-only over the same input, so they are
// issued concurrently and joined before the article counts as rewritten.
// Each one falls back on its own: original title, truncated content, cleaned
// body.
type RewriteService struct {
	Client  RewriteClient
	Limiter *RateLimiter
	Logger  *zap.Logger
}

// NewRewriteService creates the rewrite step.
func NewRewriteService(client RewriteClient, limiter *RateLimiter, logger *zap.Logger) *RewriteService {
	return &RewriteService{Client: client, Limiter: limiter, Logger: logger}
}

// Available reports whether the underlying client is usable.
func (r *RewriteService) Available() bool {
	return r.Client != nil && r.Client.Available()
}

// RewriteArticle produces the rewritten article. It only errors when the
// client is unusable or the context is cancelled; individual sub-step
// failures degrade to their fallbacks.
func (r *RewriteService) RewriteArticle(ctx context.Context, article models.NormalizedArticle, contentSource string) (models.RewrittenArticle, error) {
	out := models.RewrittenArticle{
		NormalizedArticle: article,
		AiGenerated:       true,
		ContentSource:     contentSource,
	}

	if !r.Available() {
		return out, fmt.Errorf("rewrite service is not available")
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	r.Logger.Info("Starting AI rewrite", zap.String("title", truncateTitle(article.Title)),
		zap.Int("content_length", len(article.Content)))

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		out.Title = r.rewriteTitle(ctx, article.Title)
	}()
	go func() {
		defer wg.Done()
		out.Summary = r.summarize(ctx, article.Content)
	}()
	go func() {
		defer wg.Done()
		out.Body = r.rewriteBody(ctx, article.Content)
	}()

	wg.Wait()
	return out, nil
}

func (r *RewriteService) rewriteTitle(ctx context.Context, original string) string {
	title, err := r.call(ctx, r.Client.RewriteTitle, original)
	if err != nil || title == "" {
		if err != nil {
			r.Logger.Warn("Failed to rewrite title, using original", zap.Error(err))
		}
		return original
	}
	return title
}

func (r *RewriteService) summarize(ctx context.Context, content string) string {
	summary, err := r.call(ctx, r.Client.Summarize, content)
	if err != nil || summary == "" {
		if err != nil {
			r.Logger.Warn("Failed to generate summary, using truncated content", zap.Error(err))
		}
		if len(content) > summaryFallbackLength {
			return content[:summaryFallbackLength] + "..."
		}
		return content
	}
	return summary
}

func (r *RewriteService) rewriteBody(ctx context.Context, content string) string {
	body, err := r.call(ctx, r.Client.RewriteBody, content)
	if err != nil || body == "" {
		if err != nil {
			r.Logger.Warn("Failed to rewrite body, using cleaned original", zap.Error(err))
		}
		return CleanContent(content)
	}
	return CleanContent(body)
}

// call waits for a rate-limit slot, records the request and runs one
// sub-step.
func (r *RewriteService) call(ctx context.Context, fn func(context.Context, string) (string, error), input string) (string, error) {
	if r.Limiter != nil {
		if err := r.Limiter.AwaitSlot(ctx); err != nil {
			return "", err
		}
		r.Limiter.Record()
	}
	return fn(ctx, input)
}

func truncateTitle(title string) string {
	if len(title) > 50 {
		return title[:50]
	}
	return title
}
