// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for sqlconsole. Each command
// wires the validator, HTTP transport, presenter and a render sink into a
// dispatcher and feeds it triggers: a single query, the sample insert, or the
// lines of an interactive shell.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sqlconsole/cli/internal/config"
	"sqlconsole/cli/internal/dispatch"
	"sqlconsole/cli/internal/logging"
	"sqlconsole/cli/internal/messages"
	"sqlconsole/cli/internal/presenter"
	"sqlconsole/cli/internal/render"
	"sqlconsole/cli/internal/terminal"
	"sqlconsole/cli/internal/transport"
	"sqlconsole/cli/internal/validate"
)

// errCycleFailed marks a run whose last cycle was rejected or failed. The
// view already told the user why, so nothing more is printed.
var errCycleFailed = errors.New("cycle failed")

var (
	configPath string
	noColor    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sqlconsole",
	Short: "Send SELECT and INSERT statements to a remote SQL endpoint",
	Long: `sqlconsole sends SELECT and INSERT statements to a remote SQL-over-HTTP
endpoint and shows the results as a table. Other statement types are refused
before anything is sent.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			pterm.DisableColor()
		}
	},
}

// Execute runs the CLI application and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCycleFailed) {
			fmt.Fprintln(os.Stderr, logging.PresentError("", err))
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sqlconsole/config.json)")
	flags.String("endpoint", "", "SQL endpoint base URL")
	flags.StringP("output", "o", "", "output format: table or json")
	flags.String("lang", "", "language of interface strings")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// app is everything a command needs to dispatch, built from configuration.
type app struct {
	cfg       config.Config
	log       zerolog.Logger
	catalog   *messages.Catalog
	client    *transport.Client
	presenter *presenter.Presenter
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, !noColor)

	catalog, err := messages.Load(cfg.Language, cfg.LangDir)
	if err != nil {
		return nil, err
	}
	if missing := catalog.Missing(); len(missing) > 0 {
		log.Warn().Str("language", catalog.Language()).Int("missing", len(missing)).Msg("language pack incomplete")
	}

	client := transport.New(cfg.Endpoint,
		transport.WithTimeout(cfg.Timeout),
		transport.WithMaxBody(cfg.MaxBody),
		transport.WithMessages(catalog),
		transport.WithLogger(log),
		transport.WithUserAgent("sqlconsole/"+Version),
	)

	return &app{
		cfg:       cfg,
		log:       log,
		catalog:   catalog,
		client:    client,
		presenter: presenter.New(catalog, log),
	}, nil
}

// sink returns the render target for out. Loading views animate only when
// animate is set and out is a terminal.
func (a *app) sink(out io.Writer, animate bool) dispatch.Sink {
	if a.cfg.Output == config.OutputJSON {
		return render.NewJSON(out, a.log)
	}

	opts := []render.TerminalOption{render.WithSpinner(animate && terminal.IsInteractive(out))}
	if terminal.IsInteractive(out) {
		opts = append(opts, render.WithWidth(terminal.Width(out)))
	}
	return render.NewTerminal(out, opts...)
}

func (a *app) dispatcher(sink dispatch.Sink) *dispatch.Dispatcher {
	return dispatch.New(validate.Validator{}, a.client, a.presenter, sink,
		dispatch.WithLogger(a.log),
		dispatch.WithMessages(a.catalog),
		dispatch.WithSampleQuery(a.cfg.SampleQuery),
	)
}

// closeSink stops any animation the sink still runs.
func closeSink(s dispatch.Sink) {
	if c, ok := s.(interface{ Close() }); ok {
		c.Close()
	}
}

// await waits for c and reports errCycleFailed when it did not succeed.
func await(c *dispatch.Cycle, sink dispatch.Sink) error {
	<-c.Done()
	closeSink(sink)
	if c.Failed() {
		return errCycleFailed
	}
	return nil
}
