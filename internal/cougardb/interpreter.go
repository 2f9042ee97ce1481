// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cougardb

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "cougardb/cli/internal/errors"
	"cougardb/cli/internal/host"
	"cougardb/cli/internal/jsonrpc"
	"cougardb/cli/internal/logging"
	"cougardb/cli/internal/render"
)

const (
	Group = "cougardb"
	Name  = "sql"

	PropURL     = "cougardb.url"
	PropTimeout = "cougardb.timeout"

	DefaultURL     = "http://iproxy_dev.idata.oa.com/cql/api"
	DefaultTimeout = 600 * time.Second
)

// Logger receives the query audit lines.
type Logger interface {
	Info(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// Options carries the dependencies the host injects into every interpreter it builds.
type Options struct {
	Logger     Logger
	IDs        jsonrpc.IDSource
	HTTPClient *http.Client
}

// Interpreter runs paragraphs against one Cougardb endpoint.
type Interpreter struct {
	client *jsonrpc.Client
	log    Logger
}

var _ host.Interpreter = (*Interpreter)(nil)

// Register adds the cougardb.sql interpreter to r.
func Register(r *host.Registry, opts Options) error {
	return r.Register(host.Registration{
		Group:       Group,
		Name:        Name,
		Description: "Cougardb SQL over HTTP JSON-RPC",
		Properties: []host.Property{
			{Key: PropURL, Default: DefaultURL, Description: "The API URL for Cougardb"},
			{Key: PropTimeout, Default: DefaultTimeout.String(), Description: "Transport timeout for one query (duration, or milliseconds)"},
		},
		Factory: func(props host.Properties) (host.Interpreter, error) {
			return New(props, opts)
		},
	})
}

// New builds an Interpreter from resolved properties.
func New(props host.Properties, opts Options) (*Interpreter, error) {
	timeout, err := ParseTimeout(props.Get(PropTimeout, DefaultTimeout.String()))
	if err != nil {
		return nil, err
	}
	client, err := jsonrpc.New(jsonrpc.Config{
		URL:        props.Get(PropURL, DefaultURL),
		IDs:        opts.IDs,
		Timeout:    timeout,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Interpreter{client: client, log: log}, nil
}

// ParseTimeout accepts a Go duration ("90s") or a bare number of milliseconds.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms <= 0 {
			return 0, apperrors.New(apperrors.Config, fmt.Sprintf("%s must be positive, got %q", PropTimeout, s))
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.Config, "invalid "+PropTimeout, err)
	}
	if d <= 0 {
		return 0, apperrors.New(apperrors.Config, fmt.Sprintf("%s must be positive, got %q", PropTimeout, s))
	}
	return d, nil
}

// Interpret runs query and renders the answer.
func (i *Interpreter) Interpret(ctx context.Context, query string) (res host.Result) {
	i.log.Info("run query", "query", query)
	defer func() {
		if p := recover(); p != nil {
			i.log.Error("query panicked", "query", query, "panic", fmt.Sprint(p))
			res = host.Result{Code: host.Error, Message: fmt.Sprintf("internal error: %v", p)}
		}
	}()

	out, err := i.client.Call(ctx, query)
	if err != nil {
		i.log.Error("can not run query", "query", query, "url", i.client.URL(), "error", err)
		return host.Result{Code: host.Error, Message: err.Error()}
	}
	return host.Result{Code: host.Success, Message: render.Render(query, out)}
}

// URL returns the endpoint this interpreter posts to.
func (i *Interpreter) URL() string { return i.client.URL() }

func (i *Interpreter) Open() error  { return nil }
func (i *Interpreter) Close() error { return nil }

// Cancel is accepted but does not abort a call already in flight.
func (i *Interpreter) Cancel() {}

func (i *Interpreter) FormType() host.FormType { return host.FormSimple }

func (i *Interpreter) Progress() int { return 0 }

func (i *Interpreter) Completion(buf string, cursor int) []string { return nil }
