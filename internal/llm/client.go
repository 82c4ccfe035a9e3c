package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
)

// Generation failure taxonomy. Unreachable and Timeout mean the endpoint
// never produced text; BadStatus and MalformedEnvelope mean it answered but
// unusably, which is worth a retry.
var (
	ErrUnreachable       = errors.New("generation endpoint unreachable")
	ErrTimeout           = errors.New("generation request timed out")
	ErrMalformedEnvelope = errors.New("generation response missing response field")
)

// BadStatusError reports a non-2xx status from the generation endpoint.
type BadStatusError struct {
	Code int
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("generation endpoint returned status %d", e.Code)
}

// RetryPolicy bounds how Generate retries a failed call. Transport controls
// whether Unreachable/Timeout are retried too: the parse and categorize paths
// fail fast to their rule-based fallbacks, the recipe path waits the endpoint
// out.
type RetryPolicy struct {
	Attempts  uint
	Delay     time.Duration
	Transport bool
}

// ParseRetryPolicy is the short fail-fast policy for expense and grocery
// parsing.
func ParseRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 2, Delay: time.Second}
}

// RecipeRetryPolicy is the patient policy for long recipe generations.
func RecipeRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: 2 * time.Second, Transport: true}
}

// Config for the generation client.
type Config struct {
	Endpoint string        // e.g. http://localhost:11434
	Model    string        // e.g. gemma3n:e2b
	Timeout  time.Duration // per-request timeout
	Retry    RetryPolicy
}

// Client talks to an Ollama-style generation endpoint:
// POST {endpoint}/api/generate with {model, prompt, stream:false},
// success body {response: <string>}.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "gemma3n:e2b"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry = ParseRetryPolicy()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// WithRetry returns a copy of the client using a different retry policy.
// The underlying HTTP client is shared.
func (c *Client) WithRetry(p RetryPolicy) *Client {
	clone := *c
	clone.cfg.Retry = p
	return &clone
}

// Generate sends the prompt and returns the raw generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.generate.request",
		"req_id", rid,
		"model", c.cfg.Model,
		"prompt_len", len(prompt),
	)

	var text string
	err := retry.Do(
		func() error {
			var err error
			text, err = c.generateOnce(ctx, prompt)
			return err
		},
		retry.Attempts(c.cfg.Retry.Attempts),
		retry.Delay(c.cfg.Retry.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if c.cfg.Retry.Transport {
				return true
			}
			var bad *BadStatusError
			return errors.As(err, &bad) || errors.Is(err, ErrMalformedEnvelope)
		}),
	)
	if err != nil {
		c.logger.Error("llm.generate.failed",
			"req_id", rid,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	c.logger.Info("llm.generate.response",
		"req_id", rid,
		"bytes", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":  c.cfg.Model,
		"prompt": prompt,
		"stream": false,
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer func(b io.ReadCloser) {
		if cerr := b.Close(); cerr != nil {
			c.logger.Warn("llm.generate.body_close_error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", &BadStatusError{Code: resp.StatusCode}
	}

	var envelope struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Response == nil {
		return "", ErrMalformedEnvelope
	}
	return *envelope.Response, nil
}

func classifyTransportError(err error) error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
