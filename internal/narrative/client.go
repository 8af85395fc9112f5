package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultAPIURL = "https://api.openai.com/v1/chat/completions"
	defaultModel  = "gpt-4o-mini"
)

// ErrDisabled is returned by Complete when no API key is configured.
var ErrDisabled = errors.New("narrative model not configured")

// Completer produces a model completion for a system and user prompt.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client posts chat-completions requests to an OpenAI-compatible endpoint.
type Client struct {
	APIKey     string
	APIURL     string
	Model      string
	MaxTokens  int
	HTTPClient *http.Client
}

// NewClientFromEnv reads OPENAI_API_KEY and, optionally, FINASSESS_LLM_URL
// and FINASSESS_LLM_MODEL.
func NewClientFromEnv() *Client {
	c := &Client{
		APIKey:     os.Getenv("OPENAI_API_KEY"),
		APIURL:     defaultAPIURL,
		Model:      defaultModel,
		MaxTokens:  400,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	if u := os.Getenv("FINASSESS_LLM_URL"); u != "" {
		c.APIURL = u
	}
	if m := os.Getenv("FINASSESS_LLM_MODEL"); m != "" {
		c.Model = m
	}
	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c != nil && c.APIKey != "" }

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	body, err := json.Marshal(chatRequest{
		Model:     c.Model,
		Messages:  []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}},
		MaxTokens: c.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, msg)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no response from model")
	}
	return out.Choices[0].Message.Content, nil
}
