package drive

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/drive/v3"
)

func (d *implDrive) list(ctx context.Context, query string) ([]File, error) {
	res, err := d.files.List().
		Q(query).
		PageSize(100).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(res.Files))
	for _, f := range res.Files {
		files = append(files, File{ID: f.Id, Name: f.Name})
	}
	return files, nil
}

func (d *implDrive) ListFiles(ctx context.Context, folderID string) ([]File, error) {
	files, err := d.list(ctx, fmt.Sprintf("'%s' in parents", folderID))
	if err != nil {
		d.logger.Error(ctx, "Drive list files failed: %v", err)
		return nil, wrapErr("list files", err)
	}

	if len(files) == 0 {
		d.logger.Info(ctx, "No files found in folder %s", folderID)
	}
	for _, f := range files {
		d.logger.Debug(ctx, "%s (%s)", f.Name, f.ID)
	}
	return files, nil
}

// CountFolders counts direct subfolders of parentID. It always asks Drive:
// the count is the next folder's ordinal and must reflect the live state.
func (d *implDrive) CountFolders(ctx context.Context, parentID string) (int, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType = '%s'", parentID, folderMimeType)
	folders, err := d.list(ctx, q)
	if err != nil {
		d.logger.Error(ctx, "Drive list folders failed: %v", err)
		return 0, wrapErr("count folders", err)
	}

	d.logger.Info(ctx, "Found %d folders in %s", len(folders), parentID)
	return len(folders), nil
}

func (d *implDrive) CreateFormattedFolder(ctx context.Context, baseName string, count int, parentID string) (string, error) {
	name := FolderName(baseName, count)
	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}

	folder, err := d.files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		d.logger.Error(ctx, "Drive create folder %q failed: %v", name, err)
		return "", wrapErr("create folder", err)
	}

	d.logger.Info(ctx, "Folder %q created with ID: %s", name, folder.Id)
	return folder.Id, nil
}

func (d *implDrive) UploadFile(ctx context.Context, name, localPath, folderID string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", wrapErr("upload", err)
	}
	defer f.Close()

	meta := &drive.File{
		Name:    name,
		Parents: []string{folderID},
	}

	file, err := d.files.Create(meta).Media(f).Fields("id").Context(ctx).Do()
	if err != nil {
		d.logger.Error(ctx, "Drive upload %q failed: %v", name, err)
		return "", wrapErr("upload", err)
	}

	d.logger.Info(ctx, "File %q uploaded with ID: %s", name, file.Id)
	return file.Id, nil
}
