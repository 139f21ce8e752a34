// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package transport executes statements against the remote query endpoint.
// Reads are sent as GET <base>/<encoded-query>, writes as POST <base> with a
// {"query": ...} JSON body. Every fault is folded into an outcome.Failure;
// nothing is returned as an error.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "sqlconsole/cli/internal/errors"
	"sqlconsole/cli/internal/httperrors"
	"sqlconsole/cli/internal/logging"
	"sqlconsole/cli/internal/messages"
	"sqlconsole/cli/internal/outcome"
	"sqlconsole/cli/internal/payload"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBody caps how much of a response body is read.
	DefaultMaxBody int64 = 16 << 20
)

// Client implements the two remote operations over REST.
// It keeps no state between calls beyond its configuration.
type Client struct {
	// base is the endpoint every request is built from (e.g., "https://host/api/v1/sql/")
	base      string
	host      string
	client    *http.Client
	timeout   time.Duration
	catalog   *messages.Catalog
	log       zerolog.Logger
	userAgent string
	maxBody   int64
}

// New creates a client for the given base endpoint.
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:      strings.TrimSpace(base),
		timeout:   DefaultTimeout,
		catalog:   messages.Default(),
		log:       zerolog.Nop(),
		userAgent: "sqlconsole",
		maxBody:   DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	c.host = httperrors.ExtractHostFromURL(c.base)
	return c
}

// Base returns the configured endpoint.
func (c *Client) Base() string {
	return c.base
}

// ExecuteRead sends a SELECT statement as GET <base>/<encoded query>.
func (c *Client) ExecuteRead(ctx context.Context, query string) outcome.Outcome {
	label := c.catalog.Get(messages.LabelQuery)
	fallback := c.catalog.Get(messages.MsgGenericQueryFailure)

	target := strings.TrimRight(c.base, "/") + "/" + EncodeComponent(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return c.fail(outcome.Read, label, apperrors.Wrap(apperrors.Transport, fallback, err))
	}

	return c.do(req, outcome.Read, label, fallback)
}

// ExecuteWrite sends an INSERT statement as POST <base> with {"query": query}.
func (c *Client) ExecuteWrite(ctx context.Context, query string) outcome.Outcome {
	label := c.catalog.Get(messages.LabelInsert)
	fallback := c.catalog.Get(messages.MsgGenericInsertFailure)

	b, err := json.Marshal(struct {
		Query string `json:"query"`
	}{Query: query})
	if err != nil {
		return c.fail(outcome.Write, label, apperrors.Wrap(apperrors.Transport, fallback, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(b))
	if err != nil {
		return c.fail(outcome.Write, label, apperrors.Wrap(apperrors.Transport, fallback, err))
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, outcome.Write, label, fallback)
}

// do sends req and normalizes the response. Non-2xx statuses take the message
// from the body's error field, else fallback.
func (c *Client) do(req *http.Request, op outcome.Operation, label, fallback string) outcome.Outcome {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	log := c.log.With().
		Str("op", op.String()).
		Str("method", req.Method).
		Str("url", logging.Mask(req.URL.Redacted())).
		Logger()

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Dur("took", time.Since(start)).Msg("request failed")
		return c.fail(op, label, apperrors.Wrap(apperrors.Transport, httperrors.Describe(err, c.host), err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return c.fail(op, label, apperrors.Wrap(apperrors.Transport, httperrors.Describe(err, c.host), err))
	}
	if int64(len(body)) > c.maxBody {
		msg := fmt.Sprintf("Response from %s exceeds %d bytes", c.host, c.maxBody)
		return c.fail(op, label, apperrors.New(apperrors.Transport, msg))
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("response")

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	valid := json.Valid(body)

	if !ok {
		msg := fallback
		if valid {
			if serverMsg := payload.ErrorField(body); serverMsg != "" {
				msg = serverMsg
			}
		}
		return c.fail(op, label, apperrors.Wrap(apperrors.Transport, msg, fmt.Errorf("status %d", resp.StatusCode)))
	}

	if !valid {
		msg := fmt.Sprintf("Invalid response from %s: body is not JSON", c.host)
		return c.fail(op, label, apperrors.New(apperrors.Transport, msg))
	}

	return outcome.Success(op, label, &outcome.Result{Status: resp.StatusCode, Body: body})
}

func (c *Client) fail(op outcome.Operation, label string, err *apperrors.E) outcome.Outcome {
	c.log.Debug().Str("op", op.String()).Err(err).Msg("operation failed")
	return outcome.Failure(op, label, err.Message)
}
