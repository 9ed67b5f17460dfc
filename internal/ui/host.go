package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"votd-tui/internal/notify"
)

// ProgramHost shows toasts inside a running program.
type ProgramHost struct {
	send func(tea.Msg)
}

func NewProgramHost(p *tea.Program) *ProgramHost {
	return &ProgramHost{send: p.Send}
}

func (h *ProgramHost) Toast(t notify.Toast) error {
	if h == nil || h.send == nil {
		return notify.ErrNoHost
	}
	h.send(toastMsg{t})
	return nil
}
