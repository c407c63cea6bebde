package drive

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

type implDrive struct {
	files  *drive.FilesService
	logger logger.Logger
}

// New creates a Drive client authenticated with a service-account key file.
func New(ctx context.Context, credentialsFile string, log logger.Logger) (Drive, error) {
	return NewWithOptions(ctx, log,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveScope),
	)
}

// NewWithOptions creates a Drive client from raw client options.
func NewWithOptions(ctx context.Context, log logger.Logger, opts ...option.ClientOption) (Drive, error) {
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &implDrive{files: srv.Files, logger: log}, nil
}
