package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// completionsClient speaks the OpenAI-style chat completions shape:
// system and user messages share one array and the credential travels
// as a bearer token.
type completionsClient struct {
	cfg    Config
	client *http.Client
}

var _ Provider = (*completionsClient)(nil)

func newCompletionsClient(cfg Config) *completionsClient {
	return &completionsClient{cfg: cfg, client: http.DefaultClient}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionsRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type completionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *completionsClient) Name() string        { return c.cfg.Name }
func (c *completionsClient) HasCredential() bool { return c.cfg.APIKey != "" }

func (c *completionsClient) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	body := completionsRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.maxTokens(),
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
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
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", callFailure(c.cfg, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(c.cfg, resp); err != nil {
		return "", err
	}

	var parsed completionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", decodeFailure(c.cfg, err)
	}
	if len(parsed.Choices) == 0 {
		return "", &MalformedResponseError{Provider: c.cfg.Name, Detail: "response has no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

// callFailure classifies a transport error: an expired per-call deadline
// becomes a TimeoutError, everything else a NetworkError.
func callFailure(cfg Config, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: cfg.Name, Timeout: cfg.timeout()}
	}
	return &NetworkError{Provider: cfg.Name, Err: err}
}

// decodeFailure classifies a response body decode error. The per-call
// deadline can expire after headers arrive but before the body is
// fully read; that is still a timeout, not a malformed response.
func decodeFailure(cfg Config, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: cfg.Name, Timeout: cfg.timeout()}
	}
	return &MalformedResponseError{Provider: cfg.Name, Detail: err.Error()}
}

// checkStatus maps the HTTP status to the error taxonomy. The body is
// drained (bounded) so connections can be reused.
func checkStatus(cfg Config, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Provider: cfg.Name, Status: resp.StatusCode}
	default:
		return &NetworkError{
			Provider: cfg.Name,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(detail))),
		}
	}
}
