package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/database"
	"PaintBoard/internal/document"
	"PaintBoard/internal/export"
	"PaintBoard/internal/state"
)

const appID = "io.paintboard.app"

// Library is where paintings are saved for later.
type Library interface {
	Save(ctx context.Context, p document.Painting) (database.Entry, error)
	List(ctx context.Context) ([]database.Entry, error)
	Get(ctx context.Context, id string) (document.Painting, error)
	Delete(ctx context.Context, id string) error
}

// PageConfig holds what a page needs before it is built.
type PageConfig struct {
	Canvas  SurfaceConfig
	Title   string
	Library Library
}

// Page ties the header, palette, surface and tally together. It owns the
// title, the tally and the pending import; the surface owns the scene.
type Page struct {
	window   fyne.Window
	cfg      PageConfig
	notifier Notifier

	title   string
	tally   state.Tally
	phase   state.Phase
	pending state.PendingImport

	adder     ShapeAdder
	surface   *Surface
	header    *Header
	palette   *Palette
	tallyView *TallyDisplay

	now func() time.Time

	// OnPaintingChange receives the painting after every scene or title change.
	OnPaintingChange func(document.Painting)
}

// NewPage builds a page and mounts its surface. window may be nil when the
// page is never shown.
func NewPage(window fyne.Window, cfg PageConfig, n Notifier) *Page {
	p := &Page{
		window:   window,
		cfg:      cfg,
		notifier: n,
		title:    cfg.Title,
		now:      time.Now,
	}

	p.surface = NewSurface(cfg.Canvas, n)
	p.surface.OnChange = p.onSceneChange

	p.header = NewHeader(window, n, cfg.Canvas.ReadOnly)
	p.header.SetTitle(cfg.Title)
	p.header.OnTitleChange = p.SetTitle
	p.header.OnImport = p.Import
	p.header.OnExport = p.exportToFile
	p.header.OnExportImage = p.exportImage
	p.header.OnSaveLibrary = func() { _ = p.SaveToLibrary(context.Background()) }
	p.header.OnOpenLibrary = p.showLibrary

	p.palette = NewPalette()
	p.palette.OnSelect = func(k state.Kind) { _ = p.SelectShape(k) }
	p.palette.OnDragEnd = func(sess DragSession) { _ = p.HandleDragEnd(sess) }

	p.tallyView = NewTallyDisplay()

	p.surface.Mount()
	p.adder = p.surface
	return p
}

// Content lays the page out for a window.
func (p *Page) Content(status fyne.CanvasObject) fyne.CanvasObject {
	hint := widget.NewLabelWithStyle("Drag shapes here or double-click shapes to remove them",
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	center := container.NewBorder(nil, hint, nil, nil, container.NewCenter(p.surface))

	bottom := []fyne.CanvasObject{p.tallyView.Object()}
	if status != nil {
		bottom = append(bottom, status)
	}

	var left fyne.CanvasObject
	if !p.cfg.Canvas.ReadOnly {
		left = container.NewPadded(p.palette.Object())
	}
	return container.NewBorder(
		container.NewVBox(container.NewPadded(p.header.Object()), widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), container.NewVBox(bottom...)),
		left, nil, center,
	)
}

func (p *Page) Surface() *Surface { return p.surface }
func (p *Page) Header() *Header { return p.header }
func (p *Page) Palette() *Palette { return p.palette }
func (p *Page) TallyView() *TallyDisplay { return p.tallyView }
func (p *Page) Title() string { return p.title }
func (p *Page) Tally() state.Tally { return p.tally }
func (p *Page) Phase() state.Phase { return p.phase }

// SelectShape adds a shape of kind at a random spot.
func (p *Page) SelectShape(kind state.Kind) error {
	if p.adder == nil {
		p.notifier.Error("Canvas is not ready")
		return ErrCanvasNotReady
	}
	return p.adder.AddShape(kind)
}

// HandleDragEnd resolves a palette drag released at sess.Position. Drags
// released off the surface are dropped silently.
func (p *Page) HandleDragEnd(sess DragSession) error {
	if sess.Transfer == nil || !p.surface.ContainsAbsolute(sess.Position) {
		return nil
	}
	if !p.surface.DragOver(sess.Transfer) {
		return nil
	}
	return p.surface.Drop(sess.Transfer, sess.Position)
}

// SetTitle renames the painting.
func (p *Page) SetTitle(title string) {
	if title == p.title {
		return
	}
	p.title = title
	p.header.SetTitle(title)
	slog.Debug("[PAGE] title changed", "title", title)
	p.publish()
}

func (p *Page) onSceneChange(ch state.Change) {
	p.tally = ch.Tally
	p.tallyView.SetTally(ch.Tally)
	switch ch.Op {
	case state.OpInsertShape:
		p.phase = p.phase.Next(state.EventShapeAdded, ch.Tally.Total())
	case state.OpDeleteShape:
		p.phase = p.phase.Next(state.EventShapeRemoved, ch.Tally.Total())
	}
	p.publish()
}

func (p *Page) publish() {
	if p.OnPaintingChange == nil {
		return
	}
	doc, err := p.painting()
	if err != nil {
		return
	}
	p.OnPaintingChange(doc)
}

func (p *Page) painting() (document.Painting, error) {
	snap, err := p.surface.Snapshot()
	if err != nil {
		return document.Painting{}, err
	}
	return document.New(p.title, snap, p.now()), nil
}

// Export builds the document for the current title and scene.
func (p *Page) Export() (document.Painting, error) {
	doc, err := p.painting()
	if err != nil {
		p.notifier.Error("Canvas is not ready")
		return document.Painting{}, err
	}
	p.phase = p.phase.Next(state.EventExported, doc.Tally().Total())
	return doc, nil
}

// Import applies a parsed document. The title is taken when present; the
// canvas goes through the pending slot and is loaded by the surface.
func (p *Page) Import(doc document.Painting) {
	if doc.HasTitle() {
		p.SetTitle(doc.Title)
	}
	if !doc.HasCanvas() {
		return
	}
	p.pending.Store(*doc.Canvas)
	if err := p.surface.ConsumePending(&p.pending); err != nil {
		return
	}
	p.phase = p.phase.Next(state.EventImported, p.tally.Total())
}

// ImportFrom parses r as a document and imports it. Malformed input changes
// nothing.
func (p *Page) ImportFrom(r io.Reader) error {
	return p.header.ImportFrom(r)
}

// ApplyRemote shows a painting received from a host.
func (p *Page) ApplyRemote(doc document.Painting) {
	p.title = doc.Title
	p.header.SetTitle(doc.Title)
	if doc.HasCanvas() {
		p.pending.Store(*doc.Canvas)
		_ = p.surface.ConsumePending(&p.pending)
	}
}

func (p *Page) exportToFile() {
	doc, err := p.Export()
	if err != nil {
		return
	}
	p.header.SaveDocument(doc)
}

// WriteImage renders the current painting to w as format.
func (p *Page) WriteImage(w io.Writer, format string) error {
	doc, err := p.painting()
	if err != nil {
		return err
	}
	switch format {
	case FormatPNG:
		return export.PNG(w, doc)
	case FormatPDF:
		return export.PDF(w, doc)
	}
	return fmt.Errorf("unsupported image format %q", format)
}

func (p *Page) exportImage(format string) {
	if !p.surface.Ready() {
		p.notifier.Error("Canvas is not ready")
		return
	}
	name := strings.TrimSuffix(document.FileName(p.title), ".json") + "." + format
	p.header.SaveAs(name, "."+format, func(w io.Writer) error {
		return p.WriteImage(w, format)
	}, "Painting saved as "+strings.ToUpper(format))
}

// SaveToLibrary stores the current painting in the library.
func (p *Page) SaveToLibrary(ctx context.Context) error {
	if p.cfg.Library == nil {
		p.notifier.Error("Library is not available")
		return fmt.Errorf("no library configured")
	}
	doc, err := p.painting()
	if err != nil {
		p.notifier.Error("Canvas is not ready")
		return err
	}
	entry, err := p.cfg.Library.Save(ctx, doc)
	if err != nil {
		slog.Error("[PAGE] library save failed", "err", err)
		p.notifier.Error("Could not save to library")
		return err
	}
	slog.Info("[PAGE] saved to library", "id", entry.ID, "title", entry.Title)
	p.notifier.Success("Saved to library")
	return nil
}

// OpenFromLibrary imports the library entry id.
func (p *Page) OpenFromLibrary(ctx context.Context, id string) error {
	if p.cfg.Library == nil {
		p.notifier.Error("Library is not available")
		return fmt.Errorf("no library configured")
	}
	doc, err := p.cfg.Library.Get(ctx, id)
	if err != nil {
		slog.Error("[PAGE] library open failed", "id", id, "err", err)
		p.notifier.Error("Could not open painting")
		return err
	}
	p.Import(doc)
	return nil
}

// DeleteFromLibrary removes the library entry id.
func (p *Page) DeleteFromLibrary(ctx context.Context, id string) error {
	if p.cfg.Library == nil {
		p.notifier.Error("Library is not available")
		return fmt.Errorf("no library configured")
	}
	if err := p.cfg.Library.Delete(ctx, id); err != nil {
		slog.Error("[PAGE] library delete failed", "id", id, "err", err)
		p.notifier.Error("Could not delete painting")
		return err
	}
	p.notifier.Success("Painting deleted")
	return nil
}

func (p *Page) showLibrary() {
	if p.window == nil || p.cfg.Library == nil {
		p.notifier.Error("Library is not available")
		return
	}
	entries, err := p.cfg.Library.List(context.Background())
	if err != nil {
		slog.Error("[PAGE] library list failed", "err", err)
		p.notifier.Error("Could not read library")
		return
	}
	if len(entries) == 0 {
		p.notifier.Info("Library is empty")
		return
	}

	var d dialog.Dialog
	var list *widget.List
	list = widget.NewList(
		func() int { return len(entries) },
		func() fyne.CanvasObject {
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			del.Importance = widget.LowImportance
			return container.NewBorder(nil, nil, nil, del, widget.NewLabel(""))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			e := entries[id]
			title := e.Title
			if title == "" {
				title = untitled
			}
			row := o.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(fmt.Sprintf("%s  (%d shapes, %s)",
				title, e.Tally.Total(), e.SavedAt.Local().Format("2006-01-02 15:04")))
			row.Objects[1].(*widget.Button).OnTapped = func() {
				if p.DeleteFromLibrary(context.Background(), e.ID) != nil {
					return
				}
				entries = append(entries[:id:id], entries[id+1:]...)
				list.UnselectAll()
				list.Refresh()
				if len(entries) == 0 {
					d.Hide()
				}
			}
		},
	)
	d = dialog.NewCustom("Library", "Close", list, p.window)
	list.OnSelected = func(id widget.ListItemID) {
		d.Hide()
		_ = p.OpenFromLibrary(context.Background(), entries[id].ID)
	}
	d.Resize(fyne.NewSize(520, 360))
	d.Show()
}

// Close unmounts the surface.
func (p *Page) Close() {
	p.surface.Unmount()
	p.adder = nil
}

// HostOptions configures the editable window.
type HostOptions struct {
	Page      PageConfig
	ShareLink string
	// OnPaintingChange is forwarded to the page.
	OnPaintingChange func(document.Painting)
}

// RunApp opens the editor window and blocks until it closes.
func RunApp(opts HostOptions) {
	a := app.NewWithID(appID)
	w := a.NewWindow("PaintBoard")
	w.Resize(fyne.NewSize(1100, 780))

	status := NewStatusNotifier()
	page := NewPage(w, opts.Page, status)
	page.OnPaintingChange = opts.OnPaintingChange
	page.publish()

	var footer fyne.CanvasObject = status.Label()
	if opts.ShareLink != "" {
		link := widget.NewEntry()
		link.SetText(opts.ShareLink)
		copyLink := widget.NewButton("Copy link", func() {
			w.Clipboard().SetContent(opts.ShareLink)
			status.Info("Share link copied")
		})
		footer = container.NewBorder(nil, nil, widget.NewLabel("Share:"), copyLink,
			container.NewVBox(link, status.Label()))
	}

	w.SetContent(page.Content(footer))
	w.SetCloseIntercept(func() {
		page.Close()
		w.Close()
	})
	w.ShowAndRun()
}

// FollowFunc streams paintings from a host until ctx is done.
type FollowFunc func(ctx context.Context, onPainting func(document.Painting)) error

// RunViewer opens a read-only window that mirrors a host's painting.
func RunViewer(addr string, canvas SurfaceConfig, follow FollowFunc) {
	a := app.NewWithID(appID)
	w := a.NewWindow("PaintBoard viewer: " + addr)
	w.Resize(fyne.NewSize(1000, 760))

	canvas.ReadOnly = true
	status := NewStatusNotifier()
	page := NewPage(w, PageConfig{Canvas: canvas}, status)
	status.Info("Connecting to " + addr)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		err := follow(ctx, func(doc document.Painting) {
			fyne.Do(func() { page.ApplyRemote(doc) })
		})
		fyne.Do(func() {
			if err != nil {
				status.Error("Disconnected: " + err.Error())
				return
			}
			status.Info("Host closed the session")
		})
	}()

	w.SetContent(page.Content(status.Label()))
	w.SetCloseIntercept(func() {
		cancel()
		page.Close()
		w.Close()
	})
	w.ShowAndRun()
}
