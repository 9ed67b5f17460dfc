package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// WriterHost renders toasts as a bordered box on a writer, for the CLI.
type WriterHost struct {
	w     io.Writer
	box   lipgloss.Style
	title lipgloss.Style
}

func NewWriterHost(w io.Writer, accent, border lipgloss.Color) *WriterHost {
	return &WriterHost{
		w: w,
		box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(60),
		title: lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}

func (h *WriterHost) Toast(t Toast) error {
	_, err := fmt.Fprintln(h.w, h.box.Render(h.title.Render(t.Title)+"\n"+t.Body))
	return err
}
