package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/screenloom/screenloom/internal/infrastructure/config"
	"github.com/screenloom/screenloom/internal/infrastructure/logging"
	"github.com/screenloom/screenloom/internal/infrastructure/resilience"
)

// OpenAI generates screens through an OpenAI-compatible chat completions
// endpoint.
type OpenAI struct {
	client  *resty.Client
	breaker *resilience.Breaker
	model   string
	log     *logging.Logger
}

// NewOpenAI builds a provider from configuration. Transient HTTP failures
// retry with backoff; sustained failures open the circuit so a dead
// endpoint fails fast instead of queueing timeouts.
func NewOpenAI(cfg config.ProviderConfig, log *logging.Logger) *OpenAI {
	if log == nil {
		log = logging.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = nil

	client := resty.New().
		SetTransport(retryClient.HTTPClient.Transport).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(15 * time.Second).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	breaker := resilience.New("openai", resilience.Settings{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("provider circuit state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &OpenAI{
		client:  client,
		breaker: breaker,
		model:   cfg.Model,
		log:     log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateScreen asks the model for one screen and returns its sanitized
// HTML.
func (p *OpenAI) GenerateScreen(ctx context.Context, name, description, systemPrompt string) (string, error) {
	req := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Create a screen named %q. Description: %s", name, description)},
		},
	}

	var out chatResponse
	err := p.breaker.Execute(func() error {
		resp, err := p.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&out).
			SetError(&out).
			Post("/chat/completions")
		if err != nil {
			return fmt.Errorf("chat completion request: %w", err)
		}
		if resp.IsError() {
			if out.Error != nil {
				return fmt.Errorf("chat completion: %s (status %d)", out.Error.Message, resp.StatusCode())
			}
			return fmt.Errorf("chat completion: status %d", resp.StatusCode())
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response for screen %q", name)
	}

	html := Sanitize(StripFences(out.Choices[0].Message.Content))
	p.log.Debug("screen generated",
		zap.String("screen", name),
		zap.Int("bytes", len(html)))
	return html, nil
}
