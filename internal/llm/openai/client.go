package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Complete sends a single-turn prompt to chat/completions and returns
// the assistant message verbatim. Callers are responsible for scraping
// structured JSON out of the free-form response.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.complete.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"prompt_len", len(prompt),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.complete.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.complete.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.complete.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("no choices in openai response")
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	c.log.Info("llm.complete.ok",
		"req_id", rid,
		"response_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			c.log.Warn("openai response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, truncate(string(raw), 2<<10))
	}
	return raw, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
