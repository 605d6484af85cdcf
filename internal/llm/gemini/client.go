package gemini

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

	"github.com/appointly/scheduler-assistant/internal/common"
	"github.com/appointly/scheduler-assistant/internal/extract"
)

// Wire shapes for models/{model}:generateContent.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      float32 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete implements extract.Completer against the Gemini REST API: one
// request, one response, no retries, no streaming. The prompt instructions,
// the user's text, and the base64 image (when present) travel as parts of a
// single user turn; JSON output is requested via responseMimeType.
func (c *Client) Complete(ctx context.Context, payload extract.PromptPayload) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	parts := []part{{Text: payload.Instructions}}
	if payload.Text != "" {
		parts = append(parts, part{Text: payload.Text})
	}
	if payload.Image != nil {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: payload.Image.MediaType,
			Data:     payload.Image.Data,
		}})
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:      c.cfg.Temperature,
			ResponseMimeType: "application/json",
		},
	}

	c.log.Info("gemini.generate.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"parts", len(parts),
		"has_image", payload.Image != nil,
	)

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + c.cfg.Model + ":generateContent"
	raw, status, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("gemini.generate.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", common.NewAppError("BACKEND_DECODE",
			"decode gemini response", common.ErrBackendError)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", common.NewAppError("BACKEND_EMPTY",
			"no candidates in gemini response", common.ErrBackendError)
	}

	var out strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}

	c.log.Info("gemini.generate.ok",
		"req_id", rid,
		"bytes", out.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.String(), nil
}

func (c *Client) post(ctx context.Context, url string, body any) ([]byte, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network error, DNS failure, timeout — the backend never answered.
		return nil, 0, common.NewAppError("BACKEND_UNREACHABLE",
			err.Error(), common.ErrBackendUnavailable)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("gemini response body close error", "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, resp.StatusCode, common.NewAppError("BACKEND_STATUS",
			fmt.Sprintf("gemini status %d: %s", resp.StatusCode, truncate(string(raw), 512)),
			common.ErrBackendError)
	}
	return raw, resp.StatusCode, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…(truncated)"
}
