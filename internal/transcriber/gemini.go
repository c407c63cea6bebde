package transcriber

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const transcribePrompt = `Transcribe this classroom audio verbatim. The speech is in %s.
Reply with the transcript only: no timestamps, no speaker labels, no commentary.
If no speech can be understood, reply with nothing.`

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiRecognizer struct {
	models contentGenerator
	model  string
}

// NewGemini creates a Recognizer that sends each fragment inline to a Gemini model.
func NewGemini(ctx context.Context, apiKey, model string) (Recognizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiRecognizer{models: client.Models, model: model}, nil
}

func (g *geminiRecognizer) Name() string { return "gemini" }

func (g *geminiRecognizer) Recognize(ctx context.Context, audio Audio, language string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf(transcribePrompt, language)),
		genai.NewPartFromBytes(audio.Data, "audio/wav"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &RequestError{Backend: g.Name(), Err: err}
	}

	var text string
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			text += part.Text
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}
