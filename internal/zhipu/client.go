// Package zhipu talks to the hosted GLM models through Zhipu's
// OpenAI-compatible chat completions endpoint.
package zhipu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://open.bigmodel.cn/api/paas/v4"
	DefaultModel   = "glm-4"
)

const (
	temperature = 0.95
	topP        = 0.7
	maxTokens   = 4096
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

type Client struct {
	model  string
	client *openai.Client
}

var _ ai.Provider = (*Client)(nil)

// New builds a client. The API key is required.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("missing zhipu api key. Set --zhipu-key, env ZHIPUAI_API_KEY or zhipu.api_key in the config file")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		model:  model,
		client: openai.NewClientWithConfig(oc),
	}, nil
}

// Complete returns the content of the first choice. The model is not put in
// JSON mode; the prompt alone asks for JSON.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	log.Debug().Str("model", c.model).Msg("zhipu chat completion")

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("zhipu API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("zhipu request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("zhipu: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
