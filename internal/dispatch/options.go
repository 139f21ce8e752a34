package dispatch

import (
	"github.com/rs/zerolog"

	"sqlconsole/cli/internal/messages"
)

type Option func(*Dispatcher)

// WithSampleQuery replaces the statement sent by InsertSample.
func WithSampleQuery(q string) Option {
	return func(d *Dispatcher) {
		if q != "" {
			d.sampleQuery = q
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithMessages sets the catalog used for control labels and fallback views.
func WithMessages(catalog *messages.Catalog) Option {
	return func(d *Dispatcher) {
		if catalog != nil {
			d.catalog = catalog
		}
	}
}
