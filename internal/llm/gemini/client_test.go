package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp      *genai.GenerateContentResponse
	err       error
	embedResp *genai.EmbedContentResponse
	lastCfg   *genai.GenerateContentConfig
	lastModel string
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	f.lastCfg = config
	return f.resp, f.err
}

func (f *fakeModels) EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.lastModel = model
	return f.embedResp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestCompleteJoinsTextParts(t *testing.T) {
	fake := &fakeModels{resp: textResponse("SUBJECT: Hello", "", "EMAIL:\nBody")}
	client := newWithModels(fake, "")

	out, err := client.Complete(context.Background(), "compose")
	require.NoError(t, err)
	assert.Equal(t, "SUBJECT: Hello\nEMAIL:\nBody", out)
	assert.Equal(t, defaultModel, fake.lastModel)
	assert.Empty(t, fake.lastCfg.ResponseMIMEType)
}

func TestCompleteJSONMode(t *testing.T) {
	fake := &fakeModels{resp: textResponse(`{"jobs":[]}`)}
	client := newWithModels(fake, "gemini-pro", WithJSONOutput())

	_, err := client.Complete(context.Background(), "extract")
	require.NoError(t, err)
	assert.Equal(t, "application/json", fake.lastCfg.ResponseMIMEType)
	assert.Equal(t, "gemini-pro", client.Model())
}

func TestCompleteErrors(t *testing.T) {
	client := newWithModels(&fakeModels{err: errors.New("quota")}, "")
	_, err := client.Complete(context.Background(), "x")
	assert.ErrorContains(t, err, "quota")

	client = newWithModels(&fakeModels{resp: textResponse("  ")}, "")
	_, err = client.Complete(context.Background(), "x")
	assert.Error(t, err)

	_, err = client.Complete(context.Background(), "   ")
	assert.Error(t, err)
}

func TestEmbed(t *testing.T) {
	fake := &fakeModels{embedResp: &genai.EmbedContentResponse{Embeddings: []*genai.ContentEmbedding{
		{Values: []float32{1, 0}},
		{Values: []float32{0, 1}},
	}}}
	client := newWithModels(fake, "", WithEmbeddingModel("custom-embed"))

	vecs, err := client.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vecs)
	assert.Equal(t, "custom-embed", fake.lastModel)

	fake.embedResp = &genai.EmbedContentResponse{}
	_, err = client.Embed(context.Background(), []string{"a"})
	assert.Error(t, err)
}
