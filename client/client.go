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
	"strings"
	"sync"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/api/pipeline"
	"github.com/tangorpc/tango-go/internal/kebabcase"
)

// Middleware is one stage of a client pipeline.
//
// Middleware MUST return the value produced by next(), or a value of its own
// when short-circuiting.
type Middleware func(call *Call, next pipeline.Next) (any, error)

// Client invokes a Tango API over HTTP. Middleware registration is a setup
// concern: registrations after the first call are last-writer-wins with no
// ordering guarantee relative to in-flight calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	logger     *zap.Logger
	tracer     opentracing.Tracer

	mu         sync.RWMutex
	middleware map[string][]Middleware
	started    atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for calls with the Debug option. Defaults
// to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTracer sets the tracer for call spans. Defaults to the global tracer.
func WithTracer(tracer opentracing.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

// WithDefaultHeaders merges headers into every call's request headers.
func WithDefaultHeaders(h http.Header) Option {
	return func(c *Client) {
		for key, values := range h {
			c.headers[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
		}
	}
}

// New builds a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		headers:    make(http.Header),
		logger:     zap.NewNop(),
		middleware: make(map[string][]Middleware),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = opentracing.GlobalTracer()
	}
	return c
}

// Use registers global middleware, run before any route-level middleware on
// every call.
func (c *Client) Use(mw ...Middleware) {
	c.use("", mw)
}

// Route returns a call builder for the given path segments. Segments are
// original identifiers; normalization happens on the wire.
func (c *Client) Route(segments ...string) *Route {
	return &Route{client: c, path: segments}
}

func (c *Client) use(key string, mw []Middleware) {
	if len(mw) == 0 {
		return
	}
	if c.started.Load() {
		c.logger.Warn("middleware registered after first call; in-flight calls may not observe it",
			zap.String("route", key))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware[key] = append(c.middleware[key], mw...)
}

// chainFor assembles the effective middleware chain for a call path: the
// global list, then each prefix's list in ascending depth order.
func (c *Client) chainFor(path []string) []pipeline.Func[*Call] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var stages []pipeline.Func[*Call]
	appendKey := func(key string) {
		for _, mw := range c.middleware[key] {
			stages = append(stages, pipeline.Func[*Call](mw))
		}
	}
	appendKey("")
	for i := range path {
		appendKey(kebabcase.Join(path[:i+1]))
	}
	return stages
}

// Route is an immutable call builder: each segment access extends the path,
// the rpc-type methods materialize the call.
type Route struct {
	client *Client
	path   []string
}

// Route extends the path and returns a new builder.
func (r *Route) Route(segments ...string) *Route {
	path := make([]string, 0, len(r.path)+len(segments))
	path = append(path, r.path...)
	path = append(path, segments...)
	return &Route{client: r.client, path: path}
}

// Use registers middleware for this route prefix and everything below it.
// It returns the builder for chaining.
func (r *Route) Use(mw ...Middleware) *Route {
	r.client.use(kebabcase.Join(r.path), mw)
	return r
}

// Query invokes the route as a query and returns the decoded result.
func (r *Route) Query(ctx context.Context, args tango.Args, opts ...CallOption) (any, error) {
	call, err := r.call(ctx, tango.Query, args, opts)
	if err != nil {
		return nil, err
	}
	return call.Result, nil
}

// Command invokes the route as a command and returns the decoded result.
func (r *Route) Command(ctx context.Context, args tango.Args, opts ...CallOption) (any, error) {
	call, err := r.call(ctx, tango.Command, args, opts)
	if err != nil {
		return nil, err
	}
	return call.Result, nil
}

// Get invokes the route as a get and returns the decoded result.
func (r *Route) Get(ctx context.Context, args tango.Args, opts ...CallOption) (any, error) {
	call, err := r.call(ctx, tango.Get, args, opts)
	if err != nil {
		return nil, err
	}
	return call.Result, nil
}

// QueryCall is Query returning the populated call context.
func (r *Route) QueryCall(ctx context.Context, args tango.Args, opts ...CallOption) (*Call, error) {
	return r.call(ctx, tango.Query, args, opts)
}

// CommandCall is Command returning the populated call context.
func (r *Route) CommandCall(ctx context.Context, args tango.Args, opts ...CallOption) (*Call, error) {
	return r.call(ctx, tango.Command, args, opts)
}

// GetCall is Get returning the populated call context.
func (r *Route) GetCall(ctx context.Context, args tango.Args, opts ...CallOption) (*Call, error) {
	return r.call(ctx, tango.Get, args, opts)
}

func (r *Route) call(ctx context.Context, t tango.RPCType, args tango.Args, opts []CallOption) (*Call, error) {
	r.client.started.Store(true)

	call := newCall(ctx, r.path, args, t, r.client.headers)
	for _, opt := range opts {
		opt(call)
	}

	stages := r.client.chainFor(r.path)
	stages = append(stages, func(call *Call, _ pipeline.Next) (any, error) {
		return r.client.transport(call)
	})

	if _, err := pipeline.Run(call, stages); err != nil {
		return nil, err
	}
	return call, nil
}
