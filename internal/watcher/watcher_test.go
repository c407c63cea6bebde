package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"aula.mp4", true},
		{"AULA.MKV", true},
		{"gravacao.m4a", true},
		{"audio.wav", true},
		{"notes.txt", false},
		{"resumo.md", false},
		{"semextensao", false},
		{".mp4.part", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isMediaFile(tt.path))
		})
	}
}

func TestWatcherHandlesRecordingsOneAtATime(t *testing.T) {
	inbox := filepath.Join(t.TempDir(), "inbox")

	handled := make(chan string, 4)
	var running, maxRunning int32
	handler := func(ctx context.Context, path string) error {
		n := atomic.AddInt32(&running, 1)
		for {
			m := atomic.LoadInt32(&maxRunning)
			if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		handled <- filepath.Base(path)
		return nil
	}

	w, err := New(inbox, handler, logger.Nop(), 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(inbox, "readme.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "aula1.mp4"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "aula2.wav"), []byte("x"), 0644))

	var got []string
	timeout := time.After(5 * time.Second)
	for len(got) < 2 {
		select {
		case name := <-handled:
			got = append(got, name)
		case <-timeout:
			t.Fatalf("handled only %v", got)
		}
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.ElementsMatch(t, []string{"aula1.mp4", "aula2.wav"}, got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
	assert.Empty(t, handled)
}
