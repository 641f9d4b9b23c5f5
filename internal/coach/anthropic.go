package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clutchly/internal/config"
	"clutchly/internal/constants"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	anthropicURL     = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
)

var ErrEmptyCompletion = errors.New("completion has no text content")

type AnthropicClient struct {
	apiKey    string
	model     string
	maxTokens int
	url       string
	client    *fasthttp.Client
	logger    zerolog.Logger
}

func NewAnthropicClient(cfg *config.Config, logger zerolog.Logger) *AnthropicClient {
	return &AnthropicClient{
		apiKey:    cfg.AnthropicAPIKey,
		model:     cfg.AnthropicModel,
		maxTokens: constants.CardMaxTokens,
		url:       anthropicURL,
		client: &fasthttp.Client{
			ReadTimeout:         constants.CardTimeout,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 30 * time.Second,
		},
		logger: logger,
	}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(messageRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.SetBody(payload)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, constants.CardTimeout)
	}
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		var apiErr errorResponse
		_ = json.Unmarshal(resp.Body(), &apiErr)
		c.logger.Warn().
			Int("status", resp.StatusCode()).
			Str("type", apiErr.Error.Type).
			Msg("anthropic returned an error")
		return "", fmt.Errorf("anthropic status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}

	var result messageResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to decode anthropic response: %w", err)
	}

	var text strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return text.String(), nil
}
