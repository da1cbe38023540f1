package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"PaintBoard/internal/document"
	"PaintBoard/internal/export"
	"PaintBoard/internal/net"
	"PaintBoard/internal/state"
)

const browseTimeout = 3 * time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#585b70")).
			Padding(0, 1)
)

func readPainting(path string) (document.Painting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Painting{}, err
	}
	p, err := document.Parse(data)
	if err != nil {
		return document.Painting{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// inspect prints a summary of the painting stored at path.
func inspect(w io.Writer, path string) error {
	p, err := readPainting(path)
	if err != nil {
		return err
	}

	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	lines := []string{titleStyle.Render(title)}
	if p.Timestamp != "" {
		lines = append(lines, row("saved", p.Timestamp))
	}
	if p.HasCanvas() {
		tally := p.Tally()
		lines = append(lines, row("canvas", fmt.Sprintf("%gx%g", p.Canvas.Width, p.Canvas.Height)))
		for _, k := range state.Kinds {
			lines = append(lines, row(string(k)+"s", fmt.Sprint(tally.Get(k))))
		}
		lines = append(lines, row("total", fmt.Sprint(tally.Total())))
	} else {
		lines = append(lines, row("canvas", "none"))
	}

	_, err = fmt.Fprintln(w, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return err
}

// renderFile writes the painting at in to out, picking the format from out's
// extension.
func renderFile(in, out string) error {
	p, err := readPainting(in)
	if err != nil {
		return err
	}
	if !p.HasCanvas() {
		return fmt.Errorf("%s: painting has no canvas", in)
	}

	var write func(io.Writer, document.Painting) error
	switch strings.ToLower(filepath.Ext(out)) {
	case ".png":
		write = export.PNG
	case ".pdf":
		write = export.PDF
	default:
		return fmt.Errorf("unsupported output %q: want .png or .pdf", out)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := write(f, p); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", out, err)
	}
	return f.Close()
}

func browse(w io.Writer, timeout time.Duration) error {
	n := 0
	err := net.Browse(timeout, func(link string) {
		n++
		fmt.Fprintln(w, link)
	})
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(w, "no shared paintings found")
	}
	return nil
}
