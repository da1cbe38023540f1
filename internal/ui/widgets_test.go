package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"PaintBoard/internal/document"
	"PaintBoard/internal/state"
)

func TestHeaderRenameCommits(t *testing.T) {
	test.NewTempApp(t)
	h := NewHeader(nil, &recordingNotifier{}, false)
	var renamed []string
	h.OnTitleChange = func(s string) { renamed = append(renamed, s) }

	require.Equal(t, untitled, h.label.Text)

	h.StartEditing()
	require.True(t, h.Editing())
	require.True(t, h.entry.Visible())
	require.False(t, h.label.Visible())
	h.entry.SetText("Sunset")
	h.entry.OnSubmitted(h.entry.Text)
	require.False(t, h.Editing())
	require.Equal(t, "Sunset", h.Title())
	require.Equal(t, "Sunset", h.label.Text)

	h.StartEditing()
	h.entry.SetText("Dusk")
	h.entry.FocusLost()
	require.False(t, h.Editing())
	require.Equal(t, "Dusk", h.Title())

	// committing twice is a no-op
	h.entry.FocusLost()
	require.Equal(t, []string{"Sunset", "Dusk"}, renamed)
}

func TestHeaderReadOnlyCannotRename(t *testing.T) {
	test.NewTempApp(t)
	h := NewHeader(nil, &recordingNotifier{}, true)
	h.StartEditing()
	require.False(t, h.Editing())
	require.False(t, h.edit.Visible())
}

func TestHeaderImportFrom(t *testing.T) {
	test.NewTempApp(t)
	rec := &recordingNotifier{}
	h := NewHeader(nil, rec, false)
	var got []document.Painting
	h.OnImport = func(p document.Painting) { got = append(got, p) }

	require.Error(t, h.ImportFrom(strings.NewReader("[]")))
	require.Empty(t, got)
	require.Equal(t, []string{"Error reading file"}, rec.errors)

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, document.New("Shapes", state.SceneData{Width: 10, Height: 10}, time.Now())))
	require.NoError(t, h.ImportFrom(&buf))
	require.Len(t, got, 1)
	require.Equal(t, "Shapes", got[0].Title)
	require.Equal(t, []string{"Painting imported successfully!"}, rec.successes)
}

func TestPaletteTapSelects(t *testing.T) {
	test.NewTempApp(t)
	p := NewPalette()
	var picked []state.Kind
	p.OnSelect = func(k state.Kind) { picked = append(picked, k) }

	for _, k := range state.Kinds {
		e := p.Entry(k)
		require.NotNil(t, e)
		require.Equal(t, k, e.Kind())
		test.Tap(e)
	}
	require.Equal(t, state.Kinds, picked)
	require.Nil(t, p.Entry("hexagon"))
}

func TestPaletteDragCarriesKind(t *testing.T) {
	test.NewTempApp(t)
	p := NewPalette()
	var sessions []DragSession
	p.OnDragEnd = func(s DragSession) { sessions = append(sessions, s) }

	e := p.Entry(state.KindRectangle)
	e.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(10, 20)}})
	e.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(30, 40)}})
	e.DragEnd()

	require.Len(t, sessions, 1)
	sess := sessions[0]
	require.Equal(t, fyne.NewPos(30, 40), sess.Position)
	require.Equal(t, "rectangle", sess.Transfer.GetData(ShapeTypeKey))
	require.Equal(t, DropEffectCopy, sess.Transfer.EffectAllowed)

	// a release with no movement is not a drag
	e.DragEnd()
	require.Len(t, sessions, 1)
}

func TestTallyDisplay(t *testing.T) {
	test.NewTempApp(t)
	d := NewTallyDisplay()
	for _, k := range state.Kinds {
		require.Equal(t, "0", d.Text(k))
	}
	d.SetTally(state.Tally{Circle: 3, Triangle: 12})
	require.Equal(t, "3", d.Text(state.KindCircle))
	require.Equal(t, "0", d.Text(state.KindRectangle))
	require.Equal(t, "12", d.Text(state.KindTriangle))
	require.Equal(t, "", d.Text("hexagon"))
}

func TestStatusNotifier(t *testing.T) {
	test.NewTempApp(t)
	n := NewStatusNotifier()
	require.Equal(t, "Ready", n.Label().Text)
	n.Success("Circle added!")
	require.Equal(t, "Circle added!", n.Label().Text)
	n.Error("Canvas is not ready")
	require.Equal(t, "Error: Canvas is not ready", n.Label().Text)
	n.Info("Share link copied")
	require.Equal(t, "Share link copied", n.Label().Text)
}

func TestPageContentBuilds(t *testing.T) {
	page, _ := newTestPage(t)
	w := test.NewWindow(page.Content(NewStatusNotifier().Label()))
	defer w.Close()
	w.Resize(fyne.NewSize(1400, 1200))

	require.True(t, page.Surface().Size().Width > 0)
	require.True(t, page.Surface().ContainsAbsolute(page.Surface().AbsolutePosition().Add(fyne.NewPos(5, 5))))
}
