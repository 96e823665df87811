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

package jsonschema

import (
	"errors"
	"testing"

	js "github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangorpc/tango-go/api/schema"
)

func titleSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := New(&js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			"title": {Type: "string"},
		},
		Required: []string{"title"},
	})
	require.NoError(t, err)
	return s
}

func TestParsePassesValidValues(t *testing.T) {
	s := titleSchema(t)
	value := map[string]any{"title": "Hello"}

	got, err := s.Parse(value)
	require.NoError(t, err)
	assert.Equal(t, value, got, "validation passes values through unchanged")
}

func TestParseRejectsInvalidValues(t *testing.T) {
	s := titleSchema(t)

	tests := []struct {
		name  string
		value any
	}{
		{"missing required field", map[string]any{}},
		{"wrong field type", map[string]any{"title": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Parse(tt.value)
			require.Error(t, err)

			var verr *schema.Error
			require.True(t, errors.As(err, &verr))
			require.NotEmpty(t, verr.Issues)
			assert.Equal(t, "schema", verr.Issues[0].Code)
		})
	}
}
