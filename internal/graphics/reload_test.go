package graphics_test

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"glpipeline/internal/graphics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShaders(t *testing.T, dir, vert, frag string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.vert"), []byte(vert), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.frag"), []byte(frag), 0o644))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReloaderRebuildsOnChange(t *testing.T) {
	ctx, d := newContext(t)
	dir := t.TempDir()
	writeShaders(t, dir, vertexSrc, fragmentSrc)

	r, err := graphics.NewReloader(ctx, dir, []string{"triangle.vert", "triangle.frag"}, discardLogger())
	require.NoError(t, err)

	first := r.Program()
	first.Bind()
	firstID := first.ID()

	swapped, err := r.Poll()
	require.NoError(t, err)
	assert.False(t, swapped)

	const recolored = `#version 410 core
in vec3 vPos;
uniform vec4 tint;
out vec4 fragColor;
void main() {
	fragColor = tint;
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.frag"), []byte(recolored), 0o644))

	// a poll can observe the file truncated mid-write; the final write
	// flags another rebuild
	require.Eventually(t, func() bool {
		swapped, err := r.Poll()
		return err == nil && swapped
	}, 5*time.Second, 10*time.Millisecond)

	p := r.Program()
	assert.NotEqual(t, firstID, p.ID())
	assert.Zero(t, first.ID(), "old program deleted")
	assert.True(t, p.Bound(), "binding carried over")
	assert.True(t, p.Uniform("tint").Valid())
	assert.False(t, p.Uniform("triangleColor").Valid())

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, d.Allocs, d.Releases)
}

func TestReloaderKeepsProgramOnFailure(t *testing.T) {
	ctx, d := newContext(t)
	dir := t.TempDir()
	writeShaders(t, dir, vertexSrc, fragmentSrc)

	r, err := graphics.NewReloader(ctx, dir, []string{"triangle.vert", "triangle.frag"}, discardLogger())
	require.NoError(t, err)
	defer r.Close()
	before := r.Program().ID()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.frag"), []byte(brokenSrc), 0o644))

	var reloadErr error
	require.Eventually(t, func() bool {
		_, reloadErr = r.Poll()
		return reloadErr != nil
	}, 5*time.Second, 10*time.Millisecond)

	var ce *graphics.CompileError
	assert.ErrorAs(t, reloadErr, &ce)
	assert.Equal(t, before, r.Program().ID())
	assert.Equal(t, 1, d.LivePrograms())
	assert.Equal(t, 0, d.LiveShaders())
}

func TestNewReloaderStartupFailure(t *testing.T) {
	ctx, d := newContext(t)
	dir := t.TempDir()
	writeShaders(t, dir, vertexSrc, mismatchedFragmentSrc)

	_, err := graphics.NewReloader(ctx, dir, []string{"triangle.vert", "triangle.frag"}, discardLogger())
	var le *graphics.LinkError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, d.Allocs, d.Releases)
}

func TestReloaderRequest(t *testing.T) {
	ctx, d := newContext(t)
	dir := t.TempDir()
	writeShaders(t, dir, vertexSrc, fragmentSrc)

	r, err := graphics.NewReloader(ctx, dir, []string{"triangle.vert", "triangle.frag"}, discardLogger())
	require.NoError(t, err)
	before := r.Program().ID()

	r.Request()
	swapped, err := r.Poll()
	require.NoError(t, err)
	assert.True(t, swapped)
	assert.NotEqual(t, before, r.Program().ID())
	assert.False(t, r.Program().Bound(), "an unbound program stays unbound")

	swapped, err = r.Poll()
	require.NoError(t, err)
	assert.False(t, swapped)

	require.NoError(t, r.Close())
	assert.Equal(t, d.Allocs, d.Releases)
}

// editOnOpen rewrites a watched file the first time any file is opened,
// simulating a save that lands while the first build is reading.
type editOnOpen struct {
	fs.FS
	once sync.Once
	edit func()
}

func (e *editOnOpen) Open(name string) (fs.File, error) {
	e.once.Do(e.edit)
	return e.FS.Open(name)
}

func TestReloaderSeesEditDuringFirstBuild(t *testing.T) {
	ctx, d := newContext(t)
	dir := t.TempDir()
	writeShaders(t, dir, vertexSrc, fragmentSrc)

	fsys := &editOnOpen{FS: os.DirFS(dir), edit: func() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.frag"), []byte(fragmentSrc+"\n"), 0o644))
	}}
	r, err := graphics.NewReloaderFS(ctx, dir, fsys, []string{"triangle.vert", "triangle.frag"}, discardLogger())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		swapped, err := r.Poll()
		return err == nil && swapped
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, r.Close())
	assert.Equal(t, d.Allocs, d.Releases)
}
