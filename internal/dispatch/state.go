package dispatch

import (
	"sqlconsole/cli/internal/presenter"
)

// Phase is the dispatcher's position in the Idle → Loading → Rendered loop.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseRendered
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// ViewState is what the render target currently shows. It is replaced as a
// whole on every transition, never patched.
type ViewState struct {
	Phase Phase
	View  presenter.View
	// Cycle is the cycle that produced this state; empty while Idle.
	Cycle CycleID
}
