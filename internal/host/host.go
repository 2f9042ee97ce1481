// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package host is the notebook side of the interpreter boundary.
// It defines the contract an interpreter implements, an explicit registry that
// the startup sequence fills, property resolution with declared defaults, and
// the FIFO scheduler that serialises paragraphs for each opened interpreter.
//
// There is no process-wide registry: whoever starts the host creates a
// Registry and passes it to each interpreter's Register function.
package host

import "context"

// Code is the status of an interpreted paragraph.
type Code int

const (
	Success Code = iota
	Error
)

func (c Code) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome shown in a notebook cell.
type Result struct {
	Code    Code
	Message string
}

// FormType declares how the notebook renders dynamic forms for an interpreter.
type FormType int

const (
	FormNone FormType = iota
	FormNative
	FormSimple
)

func (f FormType) String() string {
	switch f {
	case FormNative:
		return "native"
	case FormSimple:
		return "simple"
	default:
		return "none"
	}
}

// Interpreter runs paragraph text for the notebook.
// Interpret must never panic or return a raw error; failures become an Error result.
type Interpreter interface {
	Open() error
	Close() error
	Interpret(ctx context.Context, text string) Result
	Cancel()
	FormType() FormType
	Progress() int
	Completion(buf string, cursor int) []string
}
