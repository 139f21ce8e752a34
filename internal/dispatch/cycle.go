package dispatch

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"sqlconsole/cli/internal/outcome"
	"sqlconsole/cli/internal/presenter"
	"sqlconsole/cli/internal/validate"
)

// Trigger is the user action that started a cycle.
type Trigger int

const (
	TriggerSubmit Trigger = iota
	TriggerSample
)

func (t Trigger) String() string {
	if t == TriggerSample {
		return "sample"
	}
	return "submit"
}

type CycleID string

// Cycle is one dispatch cycle, from trigger to rendered view.
type Cycle struct {
	id             CycleID
	trigger        Trigger
	query          string
	classification validate.Classification
	timestamp      time.Time

	mu        sync.Mutex
	rejection presenter.Rejection
	outcome   *outcome.Outcome
	view      presenter.View
	timeTaken time.Duration

	done chan struct{}
}

func newCycle(trigger Trigger, query string) *Cycle {
	return &Cycle{
		id:        CycleID(uuid.New().String()),
		trigger:   trigger,
		query:     query,
		timestamp: time.Now(),
		done:      make(chan struct{}),
	}
}

func (c *Cycle) GetID() CycleID {
	return c.id
}

func (c *Cycle) GetTrigger() Trigger {
	return c.trigger
}

func (c *Cycle) GetQuery() string {
	return c.query
}

func (c *Cycle) GetClassification() validate.Classification {
	return c.classification
}

// GetTimeTaken returns the time from trigger to rendered view.
func (c *Cycle) GetTimeTaken() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeTaken
}

// Rejection returns why the input was refused, or RejectNone.
func (c *Cycle) Rejection() presenter.Rejection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rejection
}

// Outcome returns the transport outcome, or nil for rejected or unfinished
// cycles.
func (c *Cycle) Outcome() *outcome.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// View returns the view the cycle rendered last.
func (c *Cycle) View() presenter.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Failed reports whether the cycle ended in a rejection or a failure.
func (c *Cycle) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rejection != presenter.RejectNone {
		return true
	}
	return c.outcome != nil && !c.outcome.OK()
}

// Done returns a channel that is closed when the cycle has rendered its final
// view and its control is enabled again.
func (c *Cycle) Done() <-chan struct{} {
	return c.done
}

func (c *Cycle) setView(v presenter.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

func (c *Cycle) finish(rejection presenter.Rejection, out *outcome.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejection = rejection
	c.outcome = out
	c.timeTaken = time.Since(c.timestamp)
}
