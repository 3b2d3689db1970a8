package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"suumosync/internal/config"
	"suumosync/internal/logger"
)

// Result is the outcome of one translation attempt. Text always holds
// usable text: the translation when Translated is true, the unchanged
// input otherwise.
type Result struct {
	Text       string `json:"text"`
	Translated bool   `json:"translated"`
}

// Client calls a gtx-compatible translation endpoint. Translation is a
// cosmetic enrichment: every failure mode degrades to the source text
// and a run never fails because of it.
type Client struct {
	http   *resty.Client
	source string
	target string
	log    *logger.Logger
}

// NewClient builds a Client for the configured language pair.
func NewClient(cfg config.TranslateConfig, log *logger.Logger) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(cfg.APIURL),
		source: cfg.Source,
		target: cfg.Target,
		log:    log,
	}
}

// Translate converts text between the configured languages. Empty input
// comes straight back without a network call.
func (c *Client) Translate(ctx context.Context, text string) Result {
	if text == "" {
		return Result{Text: text}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     c.source,
			"tl":     c.target,
			"dt":     "t",
			"q":      text,
		}).
		Get("/translate_a/single")
	if err != nil {
		c.log.Warn("Translation failed, keeping source text", map[string]any{"error": err.Error()})
		return Result{Text: text}
	}
	if resp.IsError() {
		c.log.Warn("Translation failed, keeping source text", map[string]any{"status": resp.StatusCode()})
		return Result{Text: text}
	}

	translated, err := decodeSegments(resp.Body())
	if err != nil {
		c.log.Warn("Translation response unreadable, keeping source text", map[string]any{"error": err.Error()})
		return Result{Text: text}
	}
	if translated == "" {
		return Result{Text: text}
	}
	return Result{Text: translated, Translated: true}
}

// decodeSegments joins the translated chunks from the endpoint's
// nested-array payload: [[["chunk","source",...],...],...].
func decodeSegments(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation payload")
	}
	segments, ok := payload[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected translation payload shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if chunk, ok := parts[0].(string); ok {
			b.WriteString(chunk)
		}
	}
	return b.String(), nil
}
