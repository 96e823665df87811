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

package tango

import (
	"net/http"
	"time"
)

// Context is the per-request state bag threaded through a server pipeline.
// One Context serves exactly one request; the dispatcher builds it after
// argument parsing and discards it after serialization.
type Context struct {
	args Args

	// Request is the host request handle. Middleware may read cookies,
	// remote address, and anything else the implementation needs from it.
	Request *http.Request

	// ResponseHeaders collects headers for the outgoing response.
	ResponseHeaders http.Header

	// Status carries the response code, default 200, with shortcut setters
	// for every canonical code.
	Status *Status

	// Cache is the response cache directive, in whole seconds.
	Cache *Cache

	// Env is scratch space for middleware to hand values down the chain.
	Env map[string]any

	start time.Time
}

// NewContext builds a Context for one request. This is the default context
// factory; hosts may wrap it to pre-populate Env.
func NewContext(args Args, req *http.Request) *Context {
	if args == nil {
		args = Args{}
	}
	return &Context{
		args:            args,
		Request:         req,
		ResponseHeaders: make(http.Header),
		Status:          &Status{code: http.StatusOK},
		Cache:           &Cache{},
		Env:             make(map[string]any),
		start:           time.Now(),
	}
}

// Args materializes the parsed arguments as a fresh record. Mutating the
// returned map does not affect later reads.
func (c *Context) Args() Args {
	out := make(Args, len(c.args))
	for k, v := range c.args {
		out[k] = v
	}
	return out
}

// RequestHeaders returns the incoming headers. The returned view is shared
// with the host request and MUST NOT be modified.
func (c *Context) RequestHeaders() http.Header {
	if c.Request == nil {
		return http.Header{}
	}
	return c.Request.Header
}

// ElapsedTime returns milliseconds since the context was created, computed
// at read time.
func (c *Context) ElapsedTime() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}
