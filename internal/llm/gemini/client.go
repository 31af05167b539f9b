package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"outreach-backend/internal/llm"
)

const (
	defaultModel          = "gemini-2.5-flash"
	defaultEmbeddingModel = "text-embedding-004"
)

// models is the subset of genai.Models the client calls.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Client wraps the Google GenAI SDK for completions and embeddings.
type Client struct {
	models         models
	modelName      string
	embeddingModel string
	jsonOutput     bool
}

// Option configures a Client.
type Option func(*Client)

// WithJSONOutput asks the model for an application/json response.
func WithJSONOutput() Option {
	return func(c *Client) { c.jsonOutput = true }
}

// WithEmbeddingModel overrides the embedding model.
func WithEmbeddingModel(model string) Option {
	return func(c *Client) {
		if model = strings.TrimSpace(model); model != "" {
			c.embeddingModel = model
		}
	}
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newWithModels(client.Models, model, opts...), nil
}

func newWithModels(m models, model string, opts ...Option) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	c := &Client{models: m, modelName: model, embeddingModel: defaultEmbeddingModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends the prompt to Gemini and returns the concatenated text parts.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)}
	if c.jsonOutput {
		cfg.ResponseMIMEType = "application/json"
	}
	resp, err := c.models.GenerateContent(ctx, c.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("gemini api returned empty response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

// Embed returns one vector per text, in input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini client is not initialized")
	}
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}
	resp, err := c.models.EmbedContent(ctx, c.embeddingModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed content: expected %d embeddings", len(texts))
	}
	out := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, fmt.Errorf("embed content: missing embedding %d", i)
		}
		out[i] = emb.Values
	}
	return out, nil
}

// Model reports the completion model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

var _ llm.Completer = (*Client)(nil)
