package notifier

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
)

type implNotifier struct {
	session   *discordgo.Session
	webhookID string
	token     string
	logger    logger.Logger
}

// New creates a Notifier for a Discord webhook URL
// (https://discord.com/api/webhooks/<id>/<token>).
func New(webhookURL string, log logger.Logger) (Notifier, error) {
	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	return &implNotifier{
		session:   session,
		webhookID: id,
		token:     token,
		logger:    log,
	}, nil
}

func parseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse webhook url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("webhook url %q has no /webhooks/<id>/<token> path", u.Redacted())
}
