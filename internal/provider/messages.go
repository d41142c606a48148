package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// anthropicVersion is the API version header the messages shape requires.
const anthropicVersion = "2023-06-01"

// messagesClient speaks the Anthropic-style messages shape: the system
// prompt travels in its own field, the credential in a distinct header,
// and the response body nests content blocks.
type messagesClient struct {
	cfg    Config
	client *http.Client
}

var _ Provider = (*messagesClient)(nil)

func newMessagesClient(cfg Config) *messagesClient {
	return &messagesClient{cfg: cfg, client: http.DefaultClient}
}

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *messagesClient) Name() string        { return c.cfg.Name }
func (c *messagesClient) HasCredential() bool { return c.cfg.APIKey != "" }

func (c *messagesClient) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	body := messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.maxTokens(),
		System:    systemPrompt,
		Messages:  []chatMessage{{Role: "user", Content: userMessage}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", callFailure(c.cfg, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(c.cfg, resp); err != nil {
		return "", err
	}

	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", decodeFailure(c.cfg, err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &MalformedResponseError{Provider: c.cfg.Name, Detail: "response has no text content block"}
}
