package main

// Notes:
// - The watch loop test drives real file system events; it waits with
//   require.Eventually and cancels the context to stop the loop.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-litdoc/internal/config"
)

// syncBuffer is a goroutine-safe writer for output produced by the loop.
type syncBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRoots(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a", "x.py"))
	touch(t, filepath.Join(dir, "b", "y.py"))

	roots, err := watchRoots([]string{
		"main.py",
		filepath.Join(dir, "*.py"),
		filepath.Join(dir, "*", "*.py"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"main.py",
		dir,
		filepath.Join(dir, "a", "x.py"),
		filepath.Join(dir, "b", "y.py"),
	}, roots)
}

func TestChangedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")
	touch(t, a)
	touch(t, b)

	s := watchSession{inputs: []string{dir}, cfg: config.DefaultConfig()}
	files, err := changedFiles(s, []string{b, filepath.Join(dir, "unrelated.txt")})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, b, files[0].InputPath)
	assert.Equal(t, filepath.Join(dir, "docs", "b.html"), files[0].OutputPath)
}

func TestRunConvert_Watch(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "live.py")
	require.NoError(t, os.WriteFile(src, []byte("\"\"\"\n# First\n\"\"\"\n"), 0o644))
	out := filepath.Join(dir, "docs", "live.html")

	var stdout, stderr syncBuffer
	env := &Environment{Now: time.Now, Stdout: &stdout, Stderr: &stderr}
	f, args := mustParse(t, "--no-style", "-w", "--debounce", "50ms", src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runConvert(ctx, args, f, env) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Watching")
	}, 5*time.Second, 20*time.Millisecond)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), `<h1 id="first">First</h1>`)

	require.NoError(t, os.WriteFile(src, []byte("\"\"\"\n# Second\n\"\"\"\n"), 0o644))

	require.Eventually(t, func() bool {
		html, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(html), `<h1 id="second">Second</h1>`)
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop after cancel")
	}
}
