package transcriber

import (
	"context"
	"errors"
	"testing"

	"github.com/nguyentantai21042004/classnotes/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeExecutor struct {
	out  string
	err  error
	args []string
}

func (f *fakeExecutor) Execute(_ context.Context, _ string, args ...string) (string, error) {
	f.args = args
	return f.out, f.err
}

func TestWhisperRecognize(t *testing.T) {
	exec := &fakeExecutor{out: "\n  Olá pessoal,\n  tudo bem?\n"}
	rec := NewWhisper(exec, config.WhisperConfig{ModelPath: "m.bin", BinaryPath: "whisper", Threads: 4})

	text, err := rec.Recognize(context.Background(), Audio{Path: "output000.wav"}, "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "Olá pessoal, tudo bem?", text)
	assert.Contains(t, exec.args, "pt")
	assert.Contains(t, exec.args, "-nt")

	_, err = NewWhisper(&fakeExecutor{out: "  \n"}, config.WhisperConfig{}).Recognize(context.Background(), Audio{}, "en")
	assert.ErrorIs(t, err, ErrUnintelligible)

	_, err = NewWhisper(&fakeExecutor{err: errors.New("exit 1")}, config.WhisperConfig{}).Recognize(context.Background(), Audio{}, "en")
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestWhisperPrompt(t *testing.T) {
	exec := &fakeExecutor{out: "derivada"}
	rec := NewWhisper(exec, config.WhisperConfig{ModelPath: "m.bin", Prompt: "derivada, integral"})

	_, err := rec.Recognize(context.Background(), Audio{Path: "output000.wav"}, "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, []string{"-m", "m.bin", "-f", "output000.wav", "-l", "pt", "-nt", "-np", "--prompt", "derivada, integral"}, exec.args)
}

func TestWhisperLanguage(t *testing.T) {
	assert.Equal(t, "pt", whisperLanguage("pt-BR"))
	assert.Equal(t, "en", whisperLanguage("EN"))
}

type fakeModels struct {
	resp     *genai.GenerateContentResponse
	err      error
	model    string
	contents []*genai.Content
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	var ps []*genai.Part
	for _, p := range parts {
		ps = append(ps, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: ps}}},
	}
}

func TestGeminiRecognize(t *testing.T) {
	models := &fakeModels{resp: textResponse("bom dia ", "turma\n")}
	rec := &geminiRecognizer{models: models, model: "gemini-2.5-flash"}

	text, err := rec.Recognize(context.Background(), Audio{Data: []byte("RIFF")}, "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "bom dia turma", text)
	assert.Equal(t, "gemini-2.5-flash", models.model)
	require.Len(t, models.contents, 1)
	require.Len(t, models.contents[0].Parts, 2)
	assert.Contains(t, models.contents[0].Parts[0].Text, "pt-BR")
	require.NotNil(t, models.contents[0].Parts[1].InlineData)
	assert.Equal(t, "audio/wav", models.contents[0].Parts[1].InlineData.MIMEType)
}

func TestGeminiRecognizeErrors(t *testing.T) {
	rec := &geminiRecognizer{models: &fakeModels{resp: textResponse("  ")}}
	_, err := rec.Recognize(context.Background(), Audio{}, "pt-BR")
	assert.ErrorIs(t, err, ErrUnintelligible)

	rec = &geminiRecognizer{models: &fakeModels{resp: &genai.GenerateContentResponse{}}}
	_, err = rec.Recognize(context.Background(), Audio{}, "pt-BR")
	assert.ErrorIs(t, err, ErrUnintelligible)

	rec = &geminiRecognizer{models: &fakeModels{err: errors.New("quota")}}
	_, err = rec.Recognize(context.Background(), Audio{}, "pt-BR")
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
}
