package ui

import (
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/document"
)

const untitled = "Digital Canvas"

// Image export formats offered next to the JSON export.
const (
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Header shows the painting title and the file actions.
type Header struct {
	window   fyne.Window
	notifier Notifier
	readOnly bool

	title   string
	editing bool
	label   *widget.Label
	edit    *widget.Button
	entry   *titleEntry

	OnTitleChange func(string)
	OnImport      func(document.Painting)
	OnExport      func()
	OnExportImage func(format string)
	OnSaveLibrary func()
	OnOpenLibrary func()
}

func NewHeader(window fyne.Window, n Notifier, readOnly bool) *Header {
	h := &Header{window: window, notifier: n, readOnly: readOnly}
	h.label = widget.NewLabelWithStyle(untitled, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	h.edit = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), h.StartEditing)
	h.edit.Importance = widget.LowImportance
	h.entry = newTitleEntry(h.commitTitle)
	h.entry.Hide()
	if readOnly {
		h.edit.Hide()
	}
	return h
}

func (h *Header) Title() string { return h.title }

// SetTitle updates the displayed title without raising OnTitleChange.
func (h *Header) SetTitle(title string) {
	h.title = title
	display := title
	if display == "" {
		display = untitled
	}
	h.label.SetText(display)
	h.entry.SetText(title)
}

func (h *Header) Editing() bool { return h.editing }

// StartEditing swaps the title label for an entry.
func (h *Header) StartEditing() {
	if h.readOnly || h.editing {
		return
	}
	h.editing = true
	h.entry.SetText(h.title)
	h.label.Hide()
	h.edit.Hide()
	h.entry.Show()
	if c := h.canvas(); c != nil {
		c.Focus(h.entry)
	}
}

func (h *Header) commitTitle() {
	if !h.editing {
		return
	}
	h.editing = false
	h.entry.Hide()
	h.label.Show()
	h.edit.Show()
	h.SetTitle(h.entry.Text)
	if h.OnTitleChange != nil {
		h.OnTitleChange(h.title)
	}
}

func (h *Header) canvas() fyne.Canvas {
	if h.window == nil {
		return nil
	}
	return h.window.Canvas()
}

// ImportFrom reads a painting document from r. A document that does not
// parse is reported and dropped; nothing is forwarded.
func (h *Header) ImportFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		slog.Warn("[HEADER] read failed", "err", err)
		h.notifier.Error("Error reading file")
		return err
	}
	p, err := document.Parse(data)
	if err != nil {
		slog.Warn("[HEADER] import rejected", "err", err)
		h.notifier.Error("Error reading file")
		return err
	}
	if h.OnImport != nil {
		h.OnImport(p)
	}
	h.notifier.Success("Painting imported successfully!")
	return nil
}

// WriteDocument serializes p to w.
func WriteDocument(w io.Writer, p document.Painting) error {
	data, err := document.Marshal(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveDocument asks where to save p, defaulting to a name derived from its title.
func (h *Header) SaveDocument(p document.Painting) {
	h.SaveAs(document.FileName(p.Title), ".json", func(w io.Writer) error {
		return WriteDocument(w, p)
	}, "Painting exported")
}

// SaveAs shows a save dialog and streams write into the chosen file.
func (h *Header) SaveAs(name, ext string, write func(io.Writer) error, success string) {
	if h.window == nil {
		return
	}
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, h.window)
			return
		}
		if wc == nil {
			return
		}
		defer func() {
			if err := wc.Close(); err != nil {
				slog.Warn("[HEADER] close failed", "uri", wc.URI().String(), "err", err)
			}
		}()
		if err := write(wc); err != nil {
			slog.Warn("[HEADER] save failed", "uri", wc.URI().String(), "err", err)
			h.notifier.Error(fmt.Sprintf("Could not save %s", wc.URI().Name()))
			return
		}
		h.notifier.Success(success)
	}, h.window)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func (h *Header) showOpen() {
	if h.window == nil {
		return
	}
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, h.window)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		_ = h.ImportFrom(rc)
	}, h.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (h *Header) Object() fyne.CanvasObject {
	call := func(fn *func()) func() {
		return func() {
			if *fn != nil {
				(*fn)()
			}
		}
	}
	exportImage := func(format string) func() {
		return func() {
			if h.OnExportImage != nil {
				h.OnExportImage(format)
			}
		}
	}

	actions := []fyne.CanvasObject{
		widget.NewButtonWithIcon("Export", theme.DownloadIcon(), call(&h.OnExport)),
		widget.NewButtonWithIcon("PNG", theme.FileImageIcon(), exportImage(FormatPNG)),
		widget.NewButtonWithIcon("PDF", theme.DocumentPrintIcon(), exportImage(FormatPDF)),
	}
	if !h.readOnly {
		actions = append(actions,
			widget.NewButtonWithIcon("Import", theme.UploadIcon(), h.showOpen),
			widget.NewSeparator(),
			widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), call(&h.OnSaveLibrary)),
			widget.NewButtonWithIcon("Library", theme.FolderOpenIcon(), call(&h.OnOpenLibrary)),
		)
	}

	titleArea := container.NewHBox(container.NewStack(h.label, h.entry), h.edit)
	items := append([]fyne.CanvasObject{titleArea, layout.NewSpacer()}, actions...)
	return container.NewHBox(items...)
}

// titleEntry commits on Enter and whenever it loses focus.
type titleEntry struct {
	widget.Entry
	onCommit func()
}

func newTitleEntry(onCommit func()) *titleEntry {
	e := &titleEntry{onCommit: onCommit}
	e.ExtendBaseWidget(e)
	e.OnSubmitted = func(string) { e.onCommit() }
	return e
}

func (e *titleEntry) FocusLost() {
	e.Entry.FocusLost()
	e.onCommit()
}
