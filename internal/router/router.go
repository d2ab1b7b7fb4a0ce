// Package router keeps the stack of open screens. Screens navigate by
// returning one of the messages below from a tea.Cmd; the router never
// lets the stack drop below the root screen.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bs2tutor/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the top screen.
type PopScreenMsg struct{}

// PopToRootMsg closes everything above the home screen.
type PopToRootMsg struct{}

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Active is the screen on top of the stack.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages itself and hands everything else to
// the active screen, storing the screen it returns.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case PopScreenMsg:
		if len(r.stack) > 1 {
			r.stack[len(r.stack)-1] = nil
			r.stack = r.stack[:len(r.stack)-1]
		}
		return nil
	case PopToRootMsg:
		clear(r.stack[1:])
		r.stack = r.stack[:1]
		return nil
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
