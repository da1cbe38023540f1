package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/state"
)

// TallyDisplay shows how many shapes of each kind are on the canvas.
type TallyDisplay struct {
	counts map[state.Kind]*widget.Label
	box    *fyne.Container
}

func NewTallyDisplay() *TallyDisplay {
	t := &TallyDisplay{counts: make(map[state.Kind]*widget.Label)}
	cells := make([]fyne.CanvasObject, 0, len(state.Kinds))
	for _, k := range state.Kinds {
		count := widget.NewLabelWithStyle("0", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		caption := widget.NewLabelWithStyle(strings.ToUpper(k.Title())+"S", fyne.TextAlignCenter, fyne.TextStyle{})
		t.counts[k] = count
		cells = append(cells, container.NewVBox(container.NewCenter(kindIconObject(k)), count, caption))
	}
	t.box = container.NewGridWithColumns(len(cells), cells...)
	return t
}

func (t *TallyDisplay) SetTally(tally state.Tally) {
	for k, l := range t.counts {
		l.SetText(strconv.Itoa(tally.Get(k)))
	}
}

// Text returns the rendered count for kind.
func (t *TallyDisplay) Text(k state.Kind) string {
	if l, ok := t.counts[k]; ok {
		return l.Text
	}
	return ""
}

func (t *TallyDisplay) Object() fyne.CanvasObject { return t.box }
