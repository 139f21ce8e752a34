package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestE(t *testing.T) {
	r := require.New(t)

	cause := stderrors.New("connection refused")
	err := Wrap(Transport, "Cannot reach the query endpoint", cause)

	r.Equal("transport: Cannot reach the query endpoint: connection refused", err.Error())
	r.ErrorIs(err, cause)
	r.Equal("validation: empty", New(Validation, "empty").Error())
}

func TestKindAndMessageOf(t *testing.T) {
	r := require.New(t)

	wrapped := fmt.Errorf("execute: %w", New(Presentation, "rows are not uniform"))
	r.Equal(Presentation, KindOf(wrapped))
	r.Equal("rows are not uniform", MessageOf(wrapped))

	plain := stderrors.New("boom")
	r.Equal(Kind(""), KindOf(plain))
	r.Equal("boom", MessageOf(plain))
	r.Equal("", MessageOf(nil))
}
