package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultPort    = "11434"
	DefaultModel   = "llama3"
	DefaultTimeout = 120 * time.Second
)

// Sampling defaults for local models.
const (
	temperature = 2.5
	topP        = 0.99
	topK        = 100
)

// Config holds Ollama specific settings
type Config struct {
	BaseURL string // e.g. "http://localhost:11434"
	Model   string // e.g. "llama3"
	Timeout time.Duration
}

// Client implements ai.Provider for Ollama
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

func New(cfg Config) *Client {
	baseURL := normalizeBaseURL(cfg.BaseURL)
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// normalizeBaseURL accepts OLLAMA_HOST style values. A bare host gets the
// http scheme and, without a port, the default Ollama port.
func normalizeBaseURL(raw string) string {
	baseURL := strings.TrimRight(strings.TrimSpace(raw), "/")
	if baseURL == "" {
		return DefaultBaseURL
	}
	if strings.Contains(baseURL, "://") {
		return baseURL
	}

	u, err := url.Parse("http://" + baseURL)
	if err != nil {
		return "http://" + baseURL
	}
	if u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), DefaultPort)
	}
	return strings.TrimRight(u.String(), "/")
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Format   string    `json:"format"`
	Options  options   `json:"options"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type options struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
}

type chatResponse struct {
	Message message `json:"message"`
	Done    bool    `json:"done"`
}

var _ ai.Provider = (*Client)(nil)

// Complete asks for a JSON formatted chat reply. A reply without the done
// flag set yields ai.ErrIncomplete.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: prompt}},
		Stream:   false,
		Format:   "json",
		Options: options{
			Temperature: temperature,
			TopP:        topP,
			TopK:        topK,
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/chat", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().Str("url", endpoint).Str("model", c.model).Msg("ollama chat")
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if !chatResp.Done {
		return "", ai.ErrIncomplete
	}

	return chatResp.Message.Content, nil
}
