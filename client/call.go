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
	"context"
	"net/http"
	"time"

	tango "github.com/tangorpc/tango-go"
)

// Phase distinguishes the two directions of progress reporting.
type Phase string

const (
	// PhaseUpload covers request body transmission.
	PhaseUpload Phase = "upload"
	// PhaseDownload covers response body reception.
	PhaseDownload Phase = "download"
)

// ProgressEvent is one progress report. Events are emitted only when the
// transfer total is known.
type ProgressEvent struct {
	Phase   Phase
	Loaded  int64
	Total   int64
	Percent int
}

// Call is the per-call state bag threaded through a client pipeline. The
// terminal transport stage populates Response and Result.
type Call struct {
	// Path holds the original identifiers, pre-normalization.
	Path []string

	// Args is the argument record as authored by the caller.
	Args tango.Args

	// Type is the call's rpc type.
	Type tango.RPCType

	// RequestHeaders start with Accept: application/msgpack unless the
	// caller overrides.
	RequestHeaders http.Header

	// OnProgress, when set, switches the transport to the
	// progress-instrumented path.
	OnProgress func(ProgressEvent)

	// Debug enables debug logging of this call.
	Debug bool

	// Response is the raw HTTP response, set by the transport even on
	// non-OK statuses.
	Response *http.Response

	// Result is the decoded response body, assigned only on success.
	Result any

	ctx   context.Context
	start time.Time
}

func newCall(ctx context.Context, path []string, args tango.Args, t tango.RPCType, defaults http.Header) *Call {
	if ctx == nil {
		ctx = context.Background()
	}
	if args == nil {
		args = tango.Args{}
	}
	headers := make(http.Header, len(defaults)+1)
	for key, values := range defaults {
		headers[key] = append([]string(nil), values...)
	}
	if headers.Get("Accept") == "" {
		headers.Set("Accept", "application/msgpack")
	}
	return &Call{
		Path:           path,
		Args:           args,
		Type:           t,
		RequestHeaders: headers,
		ctx:            ctx,
		start:          time.Now(),
	}
}

// Context returns the call's context; cancelling it aborts the call.
func (c *Call) Context() context.Context { return c.ctx }

// ElapsedTime returns milliseconds since the call was created, computed at
// read time.
func (c *Call) ElapsedTime() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// CallOption configures one call.
type CallOption func(*Call)

// WithHeaders merges the given headers into the call's request headers.
func WithHeaders(h http.Header) CallOption {
	return func(c *Call) {
		for key, values := range h {
			c.RequestHeaders[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
		}
	}
}

// WithHeader sets one request header.
func WithHeader(key, value string) CallOption {
	return func(c *Call) {
		c.RequestHeaders.Set(key, value)
	}
}

// WithProgress installs a progress callback, switching the transport to the
// instrumented path.
func WithProgress(fn func(ProgressEvent)) CallOption {
	return func(c *Call) {
		c.OnProgress = fn
	}
}

// WithDebug enables debug logging for this call.
func WithDebug() CallOption {
	return func(c *Call) {
		c.Debug = true
	}
}
