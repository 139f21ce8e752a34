package render

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"sqlconsole/cli/internal/presenter"
)

// record is the JSON form of a view.
type record struct {
	Kind    string     `json:"kind"`
	Title   string     `json:"title"`
	Banner  string     `json:"banner,omitempty"`
	Label   string     `json:"label,omitempty"`
	Header  []string   `json:"header,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Dump    string     `json:"dump,omitempty"`
	Message string     `json:"message,omitempty"`
}

// JSON writes every final view as one JSON object per line. Loading views
// are skipped.
type JSON struct {
	mu  sync.Mutex
	enc *json.Encoder
	log zerolog.Logger
}

func NewJSON(out io.Writer, log zerolog.Logger) *JSON {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &JSON{enc: enc, log: log}
}

func (j *JSON) Render(v presenter.View) {
	if v.Kind == presenter.KindLoading {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.enc.Encode(record{
		Kind:    v.Kind.String(),
		Title:   v.Title,
		Banner:  v.Banner,
		Label:   v.Label,
		Header:  v.Header,
		Rows:    v.Rows,
		Dump:    v.Dump,
		Message: v.Message,
	})
	if err != nil {
		j.log.Error().Err(err).Msg("write view")
	}
}
