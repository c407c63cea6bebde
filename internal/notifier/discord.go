package notifier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bwmarrin/discordgo"
)

// Send posts message with every file attached under its base name.
func (n *implNotifier) Send(ctx context.Context, message string, files []string) error {
	attachments := make([]*discordgo.File, 0, len(files))
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open attachment: %w", err)
		}
		defer f.Close()

		attachments = append(attachments, &discordgo.File{
			Name:        filepath.Base(path),
			ContentType: "text/markdown",
			Reader:      f,
		})
	}

	params := &discordgo.WebhookParams{
		Content: message,
		Files:   attachments,
	}

	if _, err := n.session.WebhookExecute(n.webhookID, n.token, true, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}

	n.logger.Info(ctx, "Digest sent to Discord with %d attachments", len(attachments))
	return nil
}

// FormatMessage builds the digest text posted alongside the notes.
func FormatMessage(date, className, theme string) string {
	return fmt.Sprintf("\nMatéria: %s\nData da aula: %s\nTema da Aula: %s\nResumo: Anexos\n", className, date, theme)
}
