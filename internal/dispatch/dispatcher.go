// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dispatch runs the query dispatch cycle: validate the input, send it
// with the method its statement type calls for, and render the outcome.
//
// Each accepted trigger runs on its own goroutine; callers never block and can
// wait on Cycle.Done. A control is disabled while its operation is in flight
// and re-enabled on every exit path. The submit and sample controls are
// independent, so two operations may be in flight at once. They share the
// render target, and whichever finishes last is what stays on screen: an
// earlier request that completes late overwrites a newer result.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	apperrors "sqlconsole/cli/internal/errors"
	"sqlconsole/cli/internal/logging"
	"sqlconsole/cli/internal/messages"
	"sqlconsole/cli/internal/outcome"
	"sqlconsole/cli/internal/presenter"
	"sqlconsole/cli/internal/validate"
)

// DefaultSampleQuery is the statement sent by the insert-sample trigger.
const DefaultSampleQuery = "INSERT INTO patient (firstName,lastName,healthNum,age,notes) VALUES " +
	"('Sara','Brown','H10001','30','abc'), " +
	"('John','Smith','H10001','30','abc'), " +
	"('Jack','Ma','H10001','30','abc'), " +
	"('Elon','Musk','H10001','30','abc')"

// ErrControlDisabled is returned for a trigger on a control whose operation
// is still in flight. The trigger is dropped.
var ErrControlDisabled = errors.New("control is disabled")

type (
	// Validator accepts or rejects raw query text.
	Validator interface {
		IsNonEmpty(text string) bool
		Classify(text string) validate.Classification
		IsAllowed(text string) bool
	}

	// Transport performs the remote operations. It must not return errors;
	// every fault is an outcome.Failure.
	Transport interface {
		ExecuteRead(ctx context.Context, query string) outcome.Outcome
		ExecuteWrite(ctx context.Context, query string) outcome.Outcome
	}

	// Presenter maps outcomes to views.
	Presenter interface {
		Loading() presenter.View
		Outcome(o outcome.Outcome) presenter.View
		Rejection(r presenter.Rejection) presenter.View
	}

	// Sink is the render target. Render calls are serialized; a Sink must not
	// call back into the Dispatcher.
	Sink interface {
		Render(v presenter.View)
	}
)

type Dispatcher struct {
	validator Validator
	transport Transport
	presenter Presenter
	sink      Sink

	log         zerolog.Logger
	catalog     *messages.Catalog
	sampleQuery string

	submit *Control
	sample *Control

	// mu serializes state transitions with painting, so the sink always
	// shows the stored state.
	mu    sync.Mutex
	state ViewState

	inflight sync.WaitGroup
}

// New creates a dispatcher in the Idle state.
func New(v Validator, t Transport, p Presenter, sink Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		validator:   v,
		transport:   t,
		presenter:   p,
		sink:        sink,
		log:         zerolog.Nop(),
		catalog:     messages.Default(),
		sampleQuery: DefaultSampleQuery,
		state:       ViewState{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(d)
	}

	d.submit = newControl("submit", d.catalog.Get(messages.BtnSubmit), d.catalog.Get(messages.BtnExecuting))
	d.sample = newControl("sample", d.catalog.Get(messages.BtnInsert), d.catalog.Get(messages.BtnInserting))

	return d
}

// SubmitQuery runs one cycle for user-entered text. Empty and disallowed input
// is rendered as a rejection right away, without a request and without
// touching the control; the returned cycle is already done.
func (d *Dispatcher) SubmitQuery(raw string) (*Cycle, error) {
	if !d.submit.Enabled() {
		d.log.Debug().Str("control", d.submit.Name()).Msg("trigger ignored")
		return nil, ErrControlDisabled
	}

	c := newCycle(TriggerSubmit, raw)

	if !d.validator.IsNonEmpty(raw) {
		d.reject(c, presenter.RejectEmpty)
		return c, nil
	}
	if !d.validator.IsAllowed(raw) {
		d.reject(c, presenter.RejectDisallowed)
		return c, nil
	}

	if !d.submit.disable() {
		d.log.Debug().Str("control", d.submit.Name()).Msg("trigger ignored")
		return nil, ErrControlDisabled
	}

	c.classification = d.validator.Classify(raw)
	query := strings.TrimSpace(raw)

	op := outcome.Read
	exec := d.transport.ExecuteRead
	if c.classification == validate.Insert {
		op = outcome.Write
		exec = d.transport.ExecuteWrite
	}

	d.start(c, d.submit, op, func(ctx context.Context) outcome.Outcome {
		return exec(ctx, query)
	})

	return c, nil
}

// InsertSample runs one cycle writing the fixed sample statement. The text
// input plays no part in it.
func (d *Dispatcher) InsertSample() (*Cycle, error) {
	if !d.sample.disable() {
		d.log.Debug().Str("control", d.sample.Name()).Msg("trigger ignored")
		return nil, ErrControlDisabled
	}

	c := newCycle(TriggerSample, d.sampleQuery)
	c.classification = validate.Classify(d.sampleQuery)

	query := d.sampleQuery
	d.start(c, d.sample, outcome.Write, func(ctx context.Context) outcome.Outcome {
		return d.transport.ExecuteWrite(ctx, query)
	})

	return c, nil
}

// State returns the current view state.
func (d *Dispatcher) State() ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SubmitControl returns the control guarding SubmitQuery.
func (d *Dispatcher) SubmitControl() *Control {
	return d.submit
}

// SampleControl returns the control guarding InsertSample.
func (d *Dispatcher) SampleControl() *Control {
	return d.sample
}

// SampleQuery returns the statement InsertSample sends.
func (d *Dispatcher) SampleQuery() string {
	return d.sampleQuery
}

// Wait blocks until every in-flight cycle has rendered.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

func (d *Dispatcher) reject(c *Cycle, r presenter.Rejection) {
	view := d.presenter.Rejection(r)
	d.log.Debug().
		Str("cycle", string(c.id)).
		Err(apperrors.New(apperrors.Validation, view.Message)).
		Stringer("rejection", r).
		Msg("input rejected")

	c.finish(r, nil)
	d.transition(c, PhaseRendered, view)
	close(c.done)
}

// start enters Loading and runs exec on a goroutine. The control was disabled
// by the caller and is enabled again before Done is closed, whatever exec
// does, including panicking.
func (d *Dispatcher) start(c *Cycle, control *Control, op outcome.Operation, exec func(context.Context) outcome.Outcome) {
	d.log.Debug().
		Str("cycle", string(c.id)).
		Stringer("trigger", c.trigger).
		Stringer("classification", c.classification).
		Str("query", logging.Mask(c.GetQuery())).
		Msg("dispatch")

	d.transition(c, PhaseLoading, d.presenter.Loading())

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		defer close(c.done)
		defer control.enable()

		out := d.execute(c, op, exec)
		c.finish(presenter.RejectNone, &out)

		event := d.log.Debug()
		if !out.OK() {
			event = d.log.Info().Str("message", out.Message)
		}
		event.
			Str("cycle", string(c.id)).
			Bool("ok", out.OK()).
			Dur("took", c.GetTimeTaken()).
			Msg("cycle finished")

		d.transition(c, PhaseRendered, d.present(out))
	}()
}

// execute runs exec, turning a panic into a failure outcome.
func (d *Dispatcher) execute(c *Cycle, op outcome.Operation, exec func(context.Context) outcome.Outcome) (out outcome.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("cycle", string(c.id)).
				Interface("panic", r).
				Msg("transport panicked")
			out = outcome.Failure(op, d.label(op), fmt.Sprintf("internal error: %v", r))
		}
	}()

	return exec(context.Background())
}

// present builds the view for out. A presenter panic still yields an error
// view so the cycle always ends Rendered.
func (d *Dispatcher) present(out outcome.Outcome) (v presenter.View) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Msg("presenter panicked")
			v = presenter.View{
				Kind:    presenter.KindError,
				Title:   d.catalog.Get(messages.ErrorTitle),
				Banner:  d.catalog.Get(messages.ErrorPrefix),
				Message: presenter.Escape(fmt.Sprintf("internal error: %v", r), false),
			}
		}
	}()

	return d.presenter.Outcome(out)
}

func (d *Dispatcher) transition(c *Cycle, phase Phase, v presenter.View) {
	c.setView(v)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = ViewState{Phase: phase, View: v, Cycle: c.id}
	d.sink.Render(v)
}

func (d *Dispatcher) label(op outcome.Operation) string {
	if op == outcome.Write {
		return d.catalog.Get(messages.LabelInsert)
	}
	return d.catalog.Get(messages.LabelQuery)
}
