package presenter

import (
	"errors"

	"github.com/rs/zerolog"

	apperrors "sqlconsole/cli/internal/errors"
	"sqlconsole/cli/internal/messages"
	"sqlconsole/cli/internal/outcome"
	"sqlconsole/cli/internal/payload"
)

// Presenter builds views. It holds only its catalog and logger.
type Presenter struct {
	catalog *messages.Catalog
	log     zerolog.Logger
}

// New returns a presenter using catalog for titles and fixed messages.
func New(catalog *messages.Catalog, log zerolog.Logger) *Presenter {
	if catalog == nil {
		catalog = messages.Default()
	}
	return &Presenter{catalog: catalog, log: log}
}

// Loading returns the neutral in-progress view.
func (p *Presenter) Loading() View {
	return View{
		Kind:    KindLoading,
		Title:   p.catalog.Get(messages.LoadingTitle),
		Message: p.catalog.Get(messages.LoadingMessage),
	}
}

// Rejection returns the error view for input refused before any request.
func (p *Presenter) Rejection(r Rejection) View {
	key := messages.MsgDisallowedType
	if r == RejectEmpty {
		key = messages.MsgEmptyQuery
	}
	return p.errorView(p.catalog.Get(key))
}

// Outcome returns a table view for tabular payloads, a dump view for any
// other success, and an error view for failures. Payloads that cannot be
// shaped as a table fall back to the dump.
func (p *Presenter) Outcome(o outcome.Outcome) View {
	if !o.OK() {
		return p.errorView(o.Message)
	}

	label := Escape(o.Label, false)
	view := View{
		Title:  p.resultsTitle(o.Operation),
		Banner: p.catalog.Get(messages.LabelSuccess) + " " + label + " " + p.catalog.Get(messages.SuccessMessage),
		Label:  label,
	}

	table, err := payload.Tabulate(o.Result.Body)
	if err == nil {
		view.Kind = KindTable
		view.Header = escapeAll(table.Header)
		view.Rows = make([][]string, len(table.Rows))
		for i, row := range table.Rows {
			view.Rows[i] = escapeAll(row)
		}
		return view
	}
	if errors.Is(err, payload.ErrNotUniform) {
		p.log.Debug().
			Err(apperrors.Wrap(apperrors.Presentation, "rows rendered as dump", err)).
			Msg("payload is not tabular")
	}

	dump, err := payload.Indent(o.Result.Body)
	if err != nil {
		p.log.Warn().
			Err(apperrors.Wrap(apperrors.Presentation, "undecodable payload", err)).
			Msg("cannot render result")
		return p.errorView(err.Error())
	}

	view.Kind = KindDump
	view.Dump = Escape(dump, true)
	return view
}

func (p *Presenter) resultsTitle(op outcome.Operation) string {
	if op == outcome.Write {
		return p.catalog.Get(messages.InsertResultsTitle)
	}
	return p.catalog.Get(messages.ResultsTitle)
}

func (p *Presenter) errorView(msg string) View {
	return View{
		Kind:    KindError,
		Title:   p.catalog.Get(messages.ErrorTitle),
		Banner:  p.catalog.Get(messages.ErrorPrefix),
		Message: Escape(msg, false),
	}
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Escape(s, false)
	}
	return out
}
