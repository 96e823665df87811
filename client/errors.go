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

package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tangorpc/tango-go/api/schema"
)

// ErrEmptyResponse is returned when a 2xx non-204 response arrives with an
// empty body. Successful Tango responses always carry a serialized result.
var ErrEmptyResponse = errors.New("Unexpected empty response")

// AbortError indicates the call's context was cancelled before or during
// flight. The call's Result is never assigned when a call aborts.
type AbortError struct {
	cause error
}

func (e *AbortError) Error() string { return "aborted" }

// Unwrap exposes the context error that triggered the abort.
func (e *AbortError) Unwrap() error { return e.cause }

// IsAborted reports whether the error is an AbortError, including wrapped
// errors.
func IsAborted(err error) bool {
	var abort *AbortError
	return errors.As(err, &abort)
}

// Error is a non-OK response whose body decoded. It carries the raw response
// and the decoded payload so callers can branch on status, notably 422
// validation failures.
type Error struct {
	Response *http.Response
	Data     any
}

func (e *Error) Error() string {
	code := e.StatusCode()
	return fmt.Sprintf("Server error: %d %s", code, http.StatusText(code))
}

// StatusCode returns the response status, or 0 when unknown.
func (e *Error) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// IsValidation reports whether this is a 422 schema failure.
func (e *Error) IsValidation() bool {
	return e.StatusCode() == http.StatusUnprocessableEntity
}

// Issues converts the decoded payload of a validation failure into issue
// records. It returns nil when the payload has another shape.
func (e *Error) Issues() []schema.Issue {
	list, ok := e.Data.([]any)
	if !ok {
		return nil
	}
	issues := make([]schema.Issue, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil
		}
		var issue schema.Issue
		if path, ok := m["path"].([]any); ok {
			for _, p := range path {
				issue.Path = append(issue.Path, fmt.Sprint(p))
			}
		}
		if msg, ok := m["message"].(string); ok {
			issue.Message = msg
		}
		if code, ok := m["code"].(string); ok {
			issue.Code = code
		}
		issues = append(issues, issue)
	}
	return issues
}
