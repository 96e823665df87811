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

// Package jsonschema backs the Tango validation contract with JSON Schema.
// Validation passes the value through unchanged; failures surface as issue
// lists the server serializes on 422 responses.
package jsonschema

import (
	js "github.com/google/jsonschema-go/jsonschema"

	"github.com/tangorpc/tango-go/api/schema"
)

// Schema wraps a resolved JSON Schema as a tango schema.
type Schema struct {
	resolved *js.Resolved
}

var _ schema.Schema = (*Schema)(nil)

// New resolves the given JSON Schema.
func New(s *js.Schema) (*Schema, error) {
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, err
	}
	return &Schema{resolved: resolved}, nil
}

// MustNew is New, panicking on resolution failure. For package-level schema
// variables.
func MustNew(s *js.Schema) *Schema {
	resolved, err := New(s)
	if err != nil {
		panic(err)
	}
	return resolved
}

// Parse validates the value and returns it unchanged, or a *schema.Error
// holding a single issue whose message is the validator's error text; the
// issue has no path, and separate failures are not split into separate
// issues.
func (s *Schema) Parse(value any) (any, error) {
	if err := s.resolved.Validate(value); err != nil {
		return nil, schema.NewError(schema.Issue{
			Message: err.Error(),
			Code:    "schema",
		})
	}
	return value, nil
}
