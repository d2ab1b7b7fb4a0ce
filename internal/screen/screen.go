// Package screen declares what the router needs from a page of the TUI.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bs2tutor/internal/ui/layout"
)

// Screen is one page on the router stack. View gets the area between
// header and footer; Update may return a different Screen to swap itself
// out in place.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right third of the header, e.g. quiz progress.
type StatusProvider interface {
	Status() string
}

// BusyReporter screens get Esc delivered while Busy instead of being
// closed by it, so they can stop their background work first.
type BusyReporter interface {
	Busy() bool
}
