package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type fileUploader interface {
	UploadFromPath(ctx context.Context, path string, config *genai.UploadFileConfig) (*genai.File, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiProvider struct {
	files  fileUploader
	models contentGenerator
	model  string
}

// NewGemini creates a Provider backed by the Gemini API file store and models.
func NewGemini(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{files: client.Files, models: client.Models, model: model}, nil
}

// Upload sends transcripts and notes as plain text so the model reads markdown verbatim.
func (g *geminiProvider) Upload(ctx context.Context, path string) (FileRef, error) {
	f, err := g.files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: "text/plain"})
	if err != nil {
		return FileRef{}, err
	}
	return FileRef{Name: f.Name, URI: f.URI, MIMEType: f.MIMEType}, nil
}

// Generate returns the text of the first part of the first candidate.
func (g *geminiProvider) Generate(ctx context.Context, prompt string, file FileRef) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(file.URI, file.MIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
