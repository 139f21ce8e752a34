// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render paints presenter views. Terminal draws styled sections and
// tables for people; JSON writes one object per view for scripts.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pterm/pterm"

	"sqlconsole/cli/internal/presenter"
)

var (
	titleStyle   = pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	successStyle = pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	errorStyle   = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	mutedStyle   = pterm.NewStyle(pterm.FgGray)
)

// Terminal paints views as text sections. Each view replaces the previous
// one logically; on a plain writer it is appended below it.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	animate  bool
	width    int
	stopSpin func()
}

type TerminalOption func(*Terminal)

// WithSpinner animates loading views in place instead of printing them.
// Only enable it when out is an interactive terminal.
func WithSpinner(enabled bool) TerminalOption {
	return func(t *Terminal) {
		t.animate = enabled
	}
}

// WithWidth caps table rows at width columns. Zero leaves rows unbounded.
func WithWidth(width int) TerminalOption {
	return func(t *Terminal) {
		t.width = width
	}
}

func NewTerminal(out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{out: out}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Render paints v. It is safe for concurrent use.
func (t *Terminal) Render(v presenter.View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopSpinner()

	switch v.Kind {
	case presenter.KindLoading:
		if t.animate {
			t.stopSpin = startSpinner(t.out, v.Title, spinnerFrames, spinnerInterval)
			return
		}
		fmt.Fprintln(t.out, titleStyle.Sprint(v.Title))
		fmt.Fprintln(t.out, mutedStyle.Sprint(v.Message))
	case presenter.KindTable:
		fmt.Fprintln(t.out, titleStyle.Sprint(v.Title))
		fmt.Fprintln(t.out, successStyle.Sprint(v.Banner))
		fmt.Fprintln(t.out, t.table(v.Header, v.Rows))
	case presenter.KindDump:
		fmt.Fprintln(t.out, titleStyle.Sprint(v.Title))
		fmt.Fprintln(t.out, successStyle.Sprint(v.Banner))
		fmt.Fprintln(t.out, pterm.DefaultBox.WithLeftPadding(1).WithRightPadding(1).Sprint(v.Dump))
	case presenter.KindError:
		fmt.Fprintln(t.out, errorStyle.Sprint(v.Title))
		fmt.Fprintln(t.out, errorStyle.Sprint(v.Banner)+" "+v.Message)
	}
	fmt.Fprintln(t.out)
}

// Close stops a running spinner.
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopSpinner()
}

func (t *Terminal) stopSpinner() {
	if t.stopSpin != nil {
		t.stopSpin()
		t.stopSpin = nil
	}
}

func (t *Terminal) table(header []string, rows [][]string) string {
	headerRow := make(table.Row, 0, len(header))
	for _, h := range header {
		headerRow = append(headerRow, h)
	}

	tw := table.NewWriter()
	tw.AppendHeader(headerRow)
	for _, row := range rows {
		r := make(table.Row, 0, len(row))
		for _, cell := range row {
			r = append(r, cell)
		}
		tw.AppendRow(r)
	}
	tw.SetStyle(table.StyleLight)
	tw.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	tw.Style().Options.DrawBorder = false
	if t.width > 0 {
		tw.SetAllowedRowLength(t.width)
	}
	return strings.TrimRight(tw.Render(), "\n")
}
