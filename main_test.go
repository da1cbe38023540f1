package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"PaintBoard/internal/document"
	"PaintBoard/internal/state"
)

func writePainting(t *testing.T, dir string) string {
	t.Helper()
	scene := state.SceneData{Version: state.SceneFormatVersion, Background: "#1a1a2e", Width: 200, Height: 100}
	for _, k := range []state.Kind{state.KindCircle, state.KindTriangle, state.KindTriangle} {
		sh, err := state.NewShape(k, state.CenteredOrigin(100, 50), "hsl(200, 80%, 60%)")
		require.NoError(t, err)
		scene.Objects = append(scene.Objects, sh)
	}
	data, err := document.Marshal(document.New("Night Sky", scene, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	path := filepath.Join(dir, document.FileName("Night Sky"))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestInspect(t *testing.T) {
	t.Parallel()
	path := writePainting(t, t.TempDir())

	var out bytes.Buffer
	require.NoError(t, inspect(&out, path))
	text := out.String()
	require.Contains(t, text, "Night Sky")
	require.Contains(t, text, "2024-05-01T12:00:00Z")
	require.Contains(t, text, "triangles")
	require.Contains(t, text, "200x100")
}

func TestInspectMalformed(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": [1]}`), 0o644))

	err := inspect(&bytes.Buffer{}, path)
	require.ErrorIs(t, err, document.ErrMalformed)

	require.Error(t, inspect(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.json")))
}

func TestRenderFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writePainting(t, dir)

	png := filepath.Join(dir, "out.png")
	require.NoError(t, renderFile(in, png))
	data, err := os.ReadFile(png)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	pdf := filepath.Join(dir, "out.PDF")
	require.NoError(t, renderFile(in, pdf))
	data, err = os.ReadFile(pdf)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	require.Error(t, renderFile(in, filepath.Join(dir, "out.gif")))
}

func TestRenderFileNeedsCanvas(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := filepath.Join(dir, "title.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"title":"Only a title"}`), 0o644))
	require.Error(t, renderFile(in, filepath.Join(dir, "out.png")))
}
