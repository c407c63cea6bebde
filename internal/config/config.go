package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Portal      PortalConfig      `yaml:"portal"`
	Paths       PathsConfig       `yaml:"paths"`
	Tools       ToolsConfig       `yaml:"tools"`
	Fragment    FragmentConfig    `yaml:"fragment"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Drive       DriveConfig       `yaml:"drive"`
	Discord     DiscordConfig     `yaml:"discord"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	History     HistoryConfig     `yaml:"history"`
	Watch       WatchConfig       `yaml:"watch"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PortalConfig holds the learning portal settings. Credentials only come from the environment.
type PortalConfig struct {
	SiteURL         string        `yaml:"site_url"`
	ClassURL        string        `yaml:"class_url"`
	DownloadPattern string        `yaml:"download_pattern"`
	Login           string        `yaml:"-"`
	Password        string        `yaml:"-"`
	UserAgent       string        `yaml:"user_agent"`
	Headless        bool          `yaml:"headless"`
	LoginSettle     time.Duration `yaml:"login_settle"`
}

type PathsConfig struct {
	Audio     string `yaml:"audio"`
	Fragments string `yaml:"fragments"`
	Texts     string `yaml:"texts"`
	Notes     string `yaml:"notes"`
	Temp      string `yaml:"temp"`
}

type ToolsConfig struct {
	FFmpeg string `yaml:"ffmpeg"`
	YtDlp  string `yaml:"yt_dlp"`
}

type FragmentConfig struct {
	SegmentSeconds int `yaml:"segment_seconds"`
}

type TranscriberConfig struct {
	Backend     string        `yaml:"backend"`
	Language    string        `yaml:"language"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	Whisper     WhisperConfig `yaml:"whisper"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Threads    int    `yaml:"threads"`
	// Prompt lists course vocabulary to steer recognition.
	Prompt string `yaml:"prompt"`
}

type GeminiConfig struct {
	APIKey          string `yaml:"-"`
	Model           string `yaml:"model"`
	TranscribeModel string `yaml:"transcribe_model"`
}

type DriveConfig struct {
	CredentialsFile string `yaml:"-"`
	RootFolderID    string `yaml:"-"`
	ExportDocx      bool   `yaml:"export_docx"`
}

type DiscordConfig struct {
	WebhookURL string `yaml:"-"`
}

type PipelineConfig struct {
	NoteInterval   time.Duration `yaml:"note_interval"`
	AbortOnNoClass bool          `yaml:"abort_on_no_class"`
}

type HistoryConfig struct {
	Dir      string        `yaml:"dir"`
	RedisURL string        `yaml:"-"`
	LockTTL  time.Duration `yaml:"lock_ttl"`
}

type WatchConfig struct {
	Inbox string `yaml:"inbox"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at path. Call Validate afterwards to fill defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with only the non-zero boolean defaults set.
// Everything else is filled by Validate.
func Default() *Config {
	return &Config{
		Portal: PortalConfig{Headless: true},
	}
}

// SetDefaults fills every unset field with its default.
func (c *Config) SetDefaults() {
	if c.Paths.Audio == "" {
		c.Paths.Audio = "data/audio/video.wav"
	}
	if c.Paths.Fragments == "" {
		c.Paths.Fragments = "data/fragments"
	}
	if c.Paths.Texts == "" {
		c.Paths.Texts = "data/texts"
	}
	if c.Paths.Notes == "" {
		c.Paths.Notes = "data/config_prompt.yaml"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if c.Tools.YtDlp == "" {
		c.Tools.YtDlp = "yt-dlp"
	}
	if c.Fragment.SegmentSeconds == 0 {
		c.Fragment.SegmentSeconds = 150
	}
	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = "gemini"
	}
	if c.Transcriber.Language == "" {
		c.Transcriber.Language = "pt-BR"
	}
	if c.Transcriber.MaxAttempts == 0 {
		c.Transcriber.MaxAttempts = 3
	}
	if c.Transcriber.Whisper.Threads == 0 {
		c.Transcriber.Whisper.Threads = 8
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.TranscribeModel == "" {
		c.Gemini.TranscribeModel = c.Gemini.Model
	}
	if c.Portal.UserAgent == "" {
		c.Portal.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/86.0.4240.198 Safari/537.36"
	}
	if c.Portal.LoginSettle == 0 {
		c.Portal.LoginSettle = 5 * time.Second
	}
	if c.Pipeline.NoteInterval == 0 {
		c.Pipeline.NoteInterval = 60 * time.Second
	}
	if c.History.Dir == "" {
		c.History.Dir = "data/history"
	}
	if c.History.LockTTL == 0 {
		c.History.LockTTL = 6 * time.Hour
	}
	if c.Watch.Inbox == "" {
		c.Watch.Inbox = "data/inbox"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate fills defaults and checks the settings every pipeline command needs.
func (c *Config) Validate() error {
	c.SetDefaults()

	if c.Fragment.SegmentSeconds < 0 {
		return fmt.Errorf("fragment.segment_seconds must be positive")
	}
	if c.Transcriber.MaxAttempts < 0 {
		return fmt.Errorf("transcriber.max_attempts must be positive")
	}
	switch c.Transcriber.Backend {
	case "gemini":
	case "whisper":
		if c.Transcriber.Whisper.ModelPath == "" {
			return fmt.Errorf("transcriber.whisper.model_path is required")
		}
		if c.Transcriber.Whisper.BinaryPath == "" {
			return fmt.Errorf("transcriber.whisper.binary_path is required")
		}
	default:
		return fmt.Errorf("transcriber.backend %q is not supported", c.Transcriber.Backend)
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("API_GEMINI_KEY is required")
	}
	if c.Drive.CredentialsFile == "" {
		return fmt.Errorf("PATH_CREDENTIAL_GOOGLE is required")
	}
	if c.Drive.RootFolderID == "" {
		return fmt.Errorf("GOOGLE_DRIVE_FOLDER_ID is required")
	}
	if c.Discord.WebhookURL == "" {
		return fmt.Errorf("WEBHOOK_URL_DISCORD is required")
	}

	return nil
}

// ValidatePortal checks the settings the scraper needs. Watch mode skips it.
func (c *Config) ValidatePortal() error {
	if c.Portal.SiteURL == "" {
		return fmt.Errorf("URL_SITE is required")
	}
	if c.Portal.ClassURL == "" {
		return fmt.Errorf("URL_CLASS is required")
	}
	if c.Portal.DownloadPattern == "" {
		return fmt.Errorf("URL_LINK_DOWNLOAD is required")
	}
	if c.Portal.Login == "" || c.Portal.Password == "" {
		return fmt.Errorf("LOGIN and PASSWORD are required")
	}
	return nil
}
