package drive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Linear Algebra", "linear-algebra"},
		{"Math", "math"},
		{"Cálculo I - Turma B", "cálculo-i---turma-b"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatName(tt.in), tt.in)
	}
}

func TestFolderName(t *testing.T) {
	assert.Equal(t, "03-math", FolderName(FormatName("Math"), 3))
	assert.Equal(t, "12-linear-algebra", FolderName("linear-algebra", 12))
	assert.Equal(t, "100-x", FolderName("x", 100))
}

// fakeDrive is a tiny in-memory Drive v3 endpoint.
type fakeDrive struct {
	mu      sync.Mutex
	status  int
	list    []map[string]string
	queries []string
	created []map[string]any
	uploads int
}

func (f *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files"):
		f.queries = append(f.queries, r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode(map[string]any{"files": f.list})
	case r.Method == http.MethodPost && r.URL.Query().Get("uploadType") != "":
		f.uploads++
		_, _ = w.Write([]byte(`{"id":"file-1"}`))
	case r.Method == http.MethodPost:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.created = append(f.created, body)
		_, _ = w.Write([]byte(`{"id":"folder-1"}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestDrive(t *testing.T, fake *fakeDrive) Drive {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	d, err := NewWithOptions(context.Background(), logger.Nop(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return d
}

func TestCountFolders(t *testing.T) {
	fake := &fakeDrive{list: []map[string]string{
		{"id": "a", "name": "00-intro"},
		{"id": "b", "name": "01-math"},
		{"id": "c", "name": "02-physics"},
	}}
	d := newTestDrive(t, fake)

	n, err := d.CountFolders(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// every call hits the API again
	_, err = d.CountFolders(context.Background(), "root")
	require.NoError(t, err)
	require.Len(t, fake.queries, 2)
	assert.Equal(t, "'root' in parents and mimeType = 'application/vnd.google-apps.folder'", fake.queries[0])
}

func TestListFilesEmptyIsNotAnError(t *testing.T) {
	d := newTestDrive(t, &fakeDrive{})

	files, err := d.ListFiles(context.Background(), "folder")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCreateFormattedFolder(t *testing.T) {
	fake := &fakeDrive{}
	d := newTestDrive(t, fake)

	id, err := d.CreateFormattedFolder(context.Background(), FormatName("Math"), 3, "root")
	require.NoError(t, err)
	assert.Equal(t, "folder-1", id)

	require.Len(t, fake.created, 1)
	assert.Equal(t, "03-math", fake.created[0]["name"])
	assert.Equal(t, "application/vnd.google-apps.folder", fake.created[0]["mimeType"])
	assert.Equal(t, []any{"root"}, fake.created[0]["parents"])
}

func TestUploadFile(t *testing.T) {
	fake := &fakeDrive{}
	d := newTestDrive(t, fake)

	path := filepath.Join(t.TempDir(), "transcription.txt")
	require.NoError(t, os.WriteFile(path, []byte("texto"), 0644))

	id, err := d.UploadFile(context.Background(), "transcription", path, "folder-1")
	require.NoError(t, err)
	assert.Equal(t, "file-1", id)
	assert.Equal(t, 1, fake.uploads)

	_, err = d.UploadFile(context.Background(), "missing", filepath.Join(t.TempDir(), "nope"), "folder-1")
	var dErr *Error
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, "upload", dErr.Op)
}

func TestFailuresAreDistinguishable(t *testing.T) {
	d := newTestDrive(t, &fakeDrive{status: http.StatusForbidden})
	ctx := context.Background()

	n, err := d.CountFolders(ctx, "root")
	assert.Zero(t, n)
	var dErr *Error
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, http.StatusForbidden, dErr.Code)

	files, err := d.ListFiles(ctx, "root")
	assert.Nil(t, files)
	assert.Error(t, err)

	id, err := d.CreateFormattedFolder(ctx, "math", 0, "root")
	assert.Empty(t, id)
	assert.Error(t, err)
}
