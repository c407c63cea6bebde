// Package drive stores run artifacts in ordinal Google Drive folders.
package drive

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Drive is the subset of Google Drive the pipeline uses.
//
// An empty result comes back with a nil error. A failed call returns an *Error,
// so callers never have to guess whether "nothing" meant "nothing there".
type Drive interface {
	ListFiles(ctx context.Context, folderID string) ([]File, error)
	CountFolders(ctx context.Context, parentID string) (int, error)
	CreateFormattedFolder(ctx context.Context, baseName string, count int, parentID string) (string, error)
	UploadFile(ctx context.Context, name, localPath, folderID string) (string, error)
}

// File is a Drive entry.
type File struct {
	ID   string
	Name string
}

// Error describes a failed Drive call.
type Error struct {
	Op   string
	Code int // HTTP status, 0 when the request never got an answer
	Err  error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("drive %s: http %d: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("drive %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	de := &Error{Op: op, Err: err}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		de.Code = gErr.Code
	}
	return de
}
