package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator produces schema-constrained JSON for a prompt.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) ([]byte, error)
}

// ImageGenerator renders exactly one image for a prompt and returns its MIME
// type and raw bytes.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, []byte, error)
}

// GeminiClient implements TextGenerator and ImageGenerator using the Gemini API.
type GeminiClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGeminiClient creates a Gemini-backed generation client.
func NewGeminiClient(ctx context.Context, apiKey, textModel, imageModel string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("enrich: gemini api key is required")
	}
	if strings.TrimSpace(textModel) == "" {
		textModel = "gemini-2.5-flash"
	}
	if strings.TrimSpace(imageModel) == "" {
		imageModel = "gemini-2.0-flash-preview-image-generation"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("enrich: failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

// GenerateJSON asks the text model for JSON conforming to the analysis schema.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) ([]byte, error) {
	model := c.client.GenerativeModel(c.textModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = analysisSchema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("enrich: gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("enrich: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, errors.New("enrich: gemini returned empty content")
	}

	var out strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	payload := strings.TrimSpace(out.String())
	if payload == "" {
		return nil, errors.New("enrich: gemini returned no text parts")
	}
	return []byte(payload), nil
}

// GenerateImage asks the image model for a single rendering of the prompt.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string) (string, []byte, error) {
	model := c.client.GenerativeModel(c.imageModel)
	model.SetCandidateCount(1)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", nil, fmt.Errorf("enrich: gemini image generation failed: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return blob.MIMEType, blob.Data, nil
			}
		}
	}
	return "", nil, errors.New("enrich: gemini returned no image data")
}

// Close releases resources held by the Gemini client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

var _ TextGenerator = (*GeminiClient)(nil)
var _ ImageGenerator = (*GeminiClient)(nil)
