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

// Package pipeline runs an ordered chain of middleware over a shared state
// value. It is used on the server for request handling and on the client for
// call handling; the two sides differ only in the state type.
package pipeline

import "errors"

// ErrExhausted is returned when every stage called next and none supplied a
// result. The terminal stage appended by the framework always returns, so
// observing this error means a chain was run without a terminal.
var ErrExhausted = errors.New("pipeline exhausted: make the last stage return without calling next")

// Next resumes the remainder of the chain and returns its result.
type Next func() (any, error)

// Func is a single pipeline stage over state S.
//
// A stage MUST return the value produced by next(), or a value of its own
// when short-circuiting. A stage that calls next() and discards its result
// makes the caller observe nil. This is a documented contract, not enforced.
type Func[S any] func(state S, next Next) (any, error)

// Run invokes the stages in order. Each stage receives a next function that
// resumes the tail of the chain; calling next past the final stage fails
// with ErrExhausted.
func Run[S any](state S, stages []Func[S]) (any, error) {
	var exec func(i int) (any, error)
	exec = func(i int) (any, error) {
		if i >= len(stages) {
			return nil, ErrExhausted
		}
		return stages[i](state, func() (any, error) {
			return exec(i + 1)
		})
	}
	return exec(0)
}
