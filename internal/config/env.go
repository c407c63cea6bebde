package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads envFile into the process environment when it exists.
// Variables already set in the environment win.
func LoadDotEnv(envFile string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnv copies secrets and per-deployment settings from the environment into c.
func (c *Config) ApplyEnv() {
	c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set("URL_SITE", &c.Portal.SiteURL)
	set("URL_CLASS", &c.Portal.ClassURL)
	set("URL_LINK_DOWNLOAD", &c.Portal.DownloadPattern)
	set("LOGIN", &c.Portal.Login)
	set("PASSWORD", &c.Portal.Password)
	set("API_GEMINI_KEY", &c.Gemini.APIKey)
	set("PATH_CREDENTIAL_GOOGLE", &c.Drive.CredentialsFile)
	set("GOOGLE_DRIVE_FOLDER_ID", &c.Drive.RootFolderID)
	set("WEBHOOK_URL_DISCORD", &c.Discord.WebhookURL)
	set("REDIS_URL", &c.History.RedisURL)
	set("LOG_LEVEL", &c.Logging.Level)
}
