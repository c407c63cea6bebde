package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSecrets(c Config) Config {
	c.Gemini.APIKey = "key"
	c.Drive.CredentialsFile = "creds.json"
	c.Drive.RootFolderID = "root"
	c.Discord.WebhookURL = "https://discord.com/api/webhooks/1/abc"
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "defaults with secrets",
			config:  withSecrets(Config{}),
			wantErr: false,
		},
		{
			name:    "missing gemini key",
			config:  Config{Drive: DriveConfig{CredentialsFile: "c", RootFolderID: "r"}, Discord: DiscordConfig{WebhookURL: "w"}},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			config:  withSecrets(Config{Transcriber: TranscriberConfig{Backend: "vosk"}}),
			wantErr: true,
		},
		{
			name:    "whisper without model",
			config:  withSecrets(Config{Transcriber: TranscriberConfig{Backend: "whisper"}}),
			wantErr: true,
		},
		{
			name: "whisper with model",
			config: withSecrets(Config{Transcriber: TranscriberConfig{
				Backend: "whisper",
				Whisper: WhisperConfig{ModelPath: "models/ggml.bin", BinaryPath: "./whisper"},
			}}),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := withSecrets(Config{})
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/audio/video.wav", cfg.Paths.Audio)
	assert.Equal(t, "data/fragments", cfg.Paths.Fragments)
	assert.Equal(t, "data/texts", cfg.Paths.Texts)
	assert.Equal(t, 150, cfg.Fragment.SegmentSeconds)
	assert.Equal(t, 3, cfg.Transcriber.MaxAttempts)
	assert.Equal(t, "pt-BR", cfg.Transcriber.Language)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.NoteInterval)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, cfg.Gemini.Model, cfg.Gemini.TranscribeModel)
}

func TestSetDefaultsWithoutSecrets(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()

	assert.Equal(t, "data/history", cfg.History.Dir)
	assert.Equal(t, 6*time.Hour, cfg.History.LockTTL)
	assert.Equal(t, "data/inbox", cfg.Watch.Inbox)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Error(t, cfg.Validate())
}

func TestValidatePortal(t *testing.T) {
	cfg := Config{}
	assert.Error(t, cfg.ValidatePortal())

	cfg.Portal = PortalConfig{
		SiteURL:         "https://portal.example",
		ClassURL:        "https://portal.example/classes",
		DownloadPattern: "videomanifest",
		Login:           "me",
		Password:        "secret",
	}
	assert.NoError(t, cfg.ValidatePortal())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  fragments: "tmp/fragments"
transcriber:
  backend: "whisper"
  language: "en-US"
  whisper:
    model_path: "models/test.bin"
    binary_path: "./whisper"
pipeline:
  note_interval: 5s
logging:
  level: "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tmp/fragments", cfg.Paths.Fragments)
	assert.Equal(t, "whisper", cfg.Transcriber.Backend)
	assert.Equal(t, "models/test.bin", cfg.Transcriber.Whisper.ModelPath)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.NoteInterval)
	assert.True(t, cfg.Portal.Headless)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"URL_SITE":               "https://portal.example",
		"LOGIN":                  "me",
		"PASSWORD":               "secret",
		"API_GEMINI_KEY":         "gem",
		"GOOGLE_DRIVE_FOLDER_ID": "root",
		"REDIS_URL":              "",
	}
	cfg := Config{History: HistoryConfig{RedisURL: "redis://keep"}}
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "https://portal.example", cfg.Portal.SiteURL)
	assert.Equal(t, "me", cfg.Portal.Login)
	assert.Equal(t, "secret", cfg.Portal.Password)
	assert.Equal(t, "gem", cfg.Gemini.APIKey)
	assert.Equal(t, "root", cfg.Drive.RootFolderID)
	assert.Equal(t, "redis://keep", cfg.History.RedisURL)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
