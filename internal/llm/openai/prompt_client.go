package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"outreach-backend/internal/llm"
)

// PromptClient sends single-message prompts to Chat Completions.
type PromptClient struct {
	apiKey     string
	model      string
	jsonOutput bool
	httpClient *http.Client
}

// PromptOption configures a PromptClient.
type PromptOption func(*PromptClient)

// WithJSONOutput requests a JSON object response format.
func WithJSONOutput() PromptOption {
	return func(c *PromptClient) { c.jsonOutput = true }
}

// NewPromptClient constructs a prompt client.
func NewPromptClient(apiKey, model string, opts ...PromptOption) (*PromptClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if err := requireKey(apiKey); err != nil {
		return nil, err
	}
	c := &PromptClient{
		apiKey:     apiKey,
		model:      model,
		httpClient: newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete returns the raw model response for the prompt.
func (c *PromptClient) Complete(ctx context.Context, prompt string) (string, error) {
	temp := float32(0)
	reqBody := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	if c.jsonOutput {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	if !isGPT5(c.model) {
		reqBody.Temperature = &temp
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", wrapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("openai http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return "", fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai http status %d: %s (%s)", resp.StatusCode, parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("openai http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	return content, nil
}

var _ llm.Completer = (*PromptClient)(nil)
