package dispatch

import "sync"

// Control is a trigger source that is disabled while its operation is in
// flight. A disabled control ignores triggers; nothing is queued.
type Control struct {
	name      string
	idleLabel string
	busyLabel string

	mu       sync.Mutex
	disabled bool
}

func newControl(name, idleLabel, busyLabel string) *Control {
	return &Control{name: name, idleLabel: idleLabel, busyLabel: busyLabel}
}

func (c *Control) Name() string {
	return c.name
}

// Enabled reports whether the control accepts a trigger.
func (c *Control) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disabled
}

// Label returns the text the control shows in its current state.
func (c *Control) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return c.busyLabel
	}
	return c.idleLabel
}

// disable flips the control to busy. It returns false if it already was.
func (c *Control) disable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return false
	}
	c.disabled = true
	return true
}

func (c *Control) enable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = false
}
