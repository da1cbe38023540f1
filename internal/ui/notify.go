package ui

import (
	"log/slog"

	"fyne.io/fyne/v2/widget"
)

// Notifier surfaces short advisory messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// StatusNotifier writes messages to a status bar label, mirroring them to
// the log. It must be used from the fyne main goroutine.
type StatusNotifier struct {
	label *widget.Label
}

func NewStatusNotifier() *StatusNotifier {
	return &StatusNotifier{label: widget.NewLabel("Ready")}
}

func (n *StatusNotifier) Label() *widget.Label { return n.label }

func (n *StatusNotifier) Success(msg string) {
	slog.Info("[UI] " + msg)
	n.label.SetText(msg)
}

func (n *StatusNotifier) Error(msg string) {
	slog.Warn("[UI] " + msg)
	n.label.SetText("Error: " + msg)
}

func (n *StatusNotifier) Info(msg string) {
	slog.Debug("[UI] " + msg)
	n.label.SetText(msg)
}
