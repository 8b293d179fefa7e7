package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"feed-beep/config"
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Client wraps the Generative Language REST API for the three independent
// rewrite calls. Fallback behavior on failure belongs to the caller.
type Client struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewClient creates a new rewrite client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{Config: cfg, Logger: logger}
}

// Available reports whether the rewrite service is usable.
func (c *Client) Available() bool {
	return c.Config.GeminiAPIKey != ""
}

// RewriteTitle asks for a clearer, more engaging headline.
func (c *Client) RewriteTitle(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", nil
	}
	prompt := fmt.Sprintf(`Rewrite this news headline to be more engaging and clear.
Keep it concise (under 100 characters) and maintain the core meaning.

Original title: "%s"

Rewritten title:`, title)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(text, `"`, ""), nil
}

// Summarize asks for a 2-3 sentence summary of the content.
func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	if content == "" {
		return "", nil
	}
	excerpt := content
	if len(excerpt) > 2000 {
		excerpt = excerpt[:2000]
	}
	prompt := fmt.Sprintf(`Create a concise summary (2-3 sentences) of this article content.
Focus on the key points and main takeaways.

Article content: "%s..."

Summary:`, excerpt)

	return c.generate(ctx, prompt)
}

// RewriteBody asks for a cleaned-up, more readable article body.
func (c *Client) RewriteBody(ctx context.Context, content string) (string, error) {
	if content == "" {
		return "", nil
	}
	prompt := fmt.Sprintf(`Rewrite this article content to improve readability and flow.
Remove any redundant information, fix grammar issues, and make it more engaging.
Keep the same length or slightly shorter.
Maintain all factual information and quotes.

Article content: "%s"

Rewritten content:`, content)

	return c.generate(ctx, prompt)
}

type part struct {
	Text string `json:"text"`
}

type promptContent struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []promptContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content promptContent `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("gemini API key is not configured")
	}

	reqBody := generateRequest{
		Contents: []promptContent{{Parts: []part{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.Config.GeminiBaseURL, c.Config.GeminiModel, c.Config.GeminiAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini request failed with status: %d", resp.StatusCode)
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contained no candidates")
	}

	return strings.TrimSpace(body.Candidates[0].Content.Parts[0].Text), nil
}
