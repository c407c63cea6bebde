package notifier

import (
	"context"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebhookURL(t *testing.T) {
	id, token, err := parseWebhookURL("https://discord.com/api/webhooks/123456/abc-DEF_ghi")
	require.NoError(t, err)
	assert.Equal(t, "123456", id)
	assert.Equal(t, "abc-DEF_ghi", token)

	_, _, err = parseWebhookURL("https://discord.com/api/channels/1")
	assert.Error(t, err)
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage("15/03/2024", "Cálculo II", "Integrais duplas")
	assert.Equal(t, "\nMatéria: Cálculo II\nData da aula: 15/03/2024\nTema da Aula: Integrais duplas\nResumo: Anexos\n", msg)
}

func TestSend(t *testing.T) {
	var gotPath string
	var gotFiles []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err == nil {
			mr := multipart.NewReader(r.Body, params["boundary"])
			for {
				part, err := mr.NextPart()
				if err != nil {
					break
				}
				if part.FileName() != "" {
					gotFiles = append(gotFiles, part.FileName())
				}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","channel_id":"2","content":"ok"}`))
	}))
	defer srv.Close()

	orig := discordgo.EndpointWebhookToken
	discordgo.EndpointWebhookToken = func(id, token string) string {
		return srv.URL + "/webhooks/" + id + "/" + token
	}
	defer func() { discordgo.EndpointWebhookToken = orig }()

	n, err := New("https://discord.com/api/webhooks/42/tok", logger.Nop())
	require.NoError(t, err)
	n.(*implNotifier).session.Client = srv.Client()

	dir := t.TempDir()
	var files []string
	for _, name := range []string{"summarize.md", "jargons.md"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("# "+name), 0644))
		files = append(files, p)
	}

	require.NoError(t, n.Send(context.Background(), FormatMessage("15/03/2024", "Math", "Limits"), files))
	assert.Equal(t, "/webhooks/42/tok", gotPath)
	assert.Equal(t, []string{"summarize.md", "jargons.md"}, gotFiles)
}

func TestSendMissingAttachment(t *testing.T) {
	n, err := New("https://discord.com/api/webhooks/42/tok", logger.Nop())
	require.NoError(t, err)

	err = n.Send(context.Background(), "msg", []string{filepath.Join(t.TempDir(), "missing.md")})
	assert.Error(t, err)
}
