package export

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"PaintBoard/internal/document"
	"PaintBoard/internal/state"
)

func painting(t *testing.T) document.Painting {
	t.Helper()
	s := state.NewScene(300, 200, "#1a1a2e")
	for i, k := range state.Kinds {
		sh, err := state.NewShape(k, state.CenteredOrigin(float64(60+90*i), 100), state.DefaultPalette[i])
		require.NoError(t, err)
		s.Add(sh)
	}
	return document.New("Export me", s.Encode(), time.Now())
}

func TestPDF(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, painting(t)))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPNG(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, painting(t)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 300, img.Bounds().Dx())
}

func TestExportWithoutCanvas(t *testing.T) {
	t.Parallel()
	p := document.Painting{Title: "empty"}
	require.Error(t, PDF(&bytes.Buffer{}, p))
	require.Error(t, PNG(&bytes.Buffer{}, p))
}
