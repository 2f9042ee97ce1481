// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package jsonrpc implements the unary JSON-RPC 2.0 exchange used to run queries
// against a Cougardb service over HTTP.
//
// A call is one POST of a Request envelope whose params are the raw query text,
// answered by a Response envelope carrying either an Error or a tabular Result.
// Shape problems in the answer are reported as typed errors, never as panics.
package jsonrpc

import "encoding/json"

// Version is the protocol version literal sent with every request.
const Version = "2.0"

// DefaultMethod is the remote "do query" operation.
const DefaultMethod = "CougarService.Do"

// Request is the outbound envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  string `json:"params"`
}

// Response is the inbound envelope. Exactly one of Error and Result is expected.
type Response struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Error   *Error          `json:"error"`
	Result  *Result         `json:"result"`
}

// Error is a logical failure reported by the service.
type Error struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error returns the service message verbatim.
func (e *Error) Error() string { return e.Message }

// Result is a tabular query answer. Series holds one slice per row; scalar
// numbers are kept as json.Number so they render exactly as sent.
type Result struct {
	Columns []string `json:"columns"`
	Series  [][]any  `json:"series"`
}
