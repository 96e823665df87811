// Copyright (c) 2026 Tango Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package schema defines the validation contract Tango endpoints may bind
// to. Which library backs a Schema is a wiring choice; the core only needs
// Parse.
package schema

import (
	"fmt"
	"strings"
)

// Schema validates and optionally transforms an argument record.
type Schema interface {
	// Parse returns the (possibly transformed) value, or an *Error carrying
	// the validation issues.
	Parse(value any) (any, error)
}

// Func adapts a function into a Schema.
type Func func(value any) (any, error)

// Parse for Func.
func (f Func) Parse(value any) (any, error) { return f(value) }

// Issue describes one validation failure.
type Issue struct {
	Path    []string `json:"path" msgpack:"path"`
	Message string   `json:"message" msgpack:"message"`
	Code    string   `json:"code,omitempty" msgpack:"code,omitempty"`
}

// Error is the failure a Schema raises. The server serializes Issues as the
// 422 response body.
type Error struct {
	Issues []Issue
}

// NewError builds an Error from the given issues.
func NewError(issues ...Issue) *Error {
	return &Error{Issues: issues}
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if len(issue.Path) > 0 {
			msgs[i] = fmt.Sprintf("%s: %s", strings.Join(issue.Path, "."), issue.Message)
		} else {
			msgs[i] = issue.Message
		}
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
