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

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/api/schema"
	"github.com/tangorpc/tango-go/tangoerrors"
)

const (
	// ExecutionTimeHeader reports handler wall time in decimal milliseconds
	// on every response of a dispatched procedure, handler failures
	// included. Routing and argument-parsing errors do not carry it.
	ExecutionTimeHeader = "X-Tango-Execution-Time"

	// ValidationErrorHeader marks 422 responses produced by schema failure.
	ValidationErrorHeader = "X-Tango-Validation-Error"

	// EnvRequestID is the Env key under which the dispatcher stamps the
	// request id.
	EnvRequestID = "request-id"
)

// ContextFactory builds the per-request context from the parsed args and the
// host request handle.
type ContextFactory func(args tango.Args, req *http.Request) *tango.Context

// Handler serves a flattened Tango API over HTTP. It implements
// http.Handler; hosts with their own routing use Dispatch instead.
type Handler struct {
	table      map[string]procedure
	newContext ContextFactory
	logger     *zap.Logger
	tracer     opentracing.Tracer
}

type options struct {
	newContext ContextFactory
	logger     *zap.Logger
	tracer     opentracing.Tracer
	middleware []tango.Middleware
}

// Option configures a Handler.
type Option func(*options)

// WithLogger sets the logger for handler and response-encoding failures.
// Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTracer sets the tracer for dispatch spans. Defaults to the global
// tracer.
func WithTracer(tracer opentracing.Tracer) Option {
	return func(o *options) { o.tracer = tracer }
}

// WithContextFactory replaces the default context constructor, letting hosts
// pre-populate Env or wrap the request.
func WithContextFactory(f ContextFactory) Option {
	return func(o *options) { o.newContext = f }
}

// WithMiddleware prepends global middleware, run before any middleware
// attached to API nodes.
func WithMiddleware(mw ...tango.Middleware) Option {
	return func(o *options) { o.middleware = append(o.middleware, mw...) }
}

// NewHandler flattens the API definition into the routing table and returns
// the HTTP handler. Middleware attached to nodes is captured by value here;
// later attachments have no effect.
func NewHandler(api tango.Group, opts ...Option) (*Handler, error) {
	o := options{
		newContext: tango.NewContext,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = opentracing.GlobalTracer()
	}

	table, err := buildTable(api, o.middleware)
	if err != nil {
		return nil, err
	}
	return &Handler{
		table:      table,
		newContext: o.newContext,
		logger:     o.logger,
		tracer:     o.tracer,
	}, nil
}

// Routes returns the route keys of the flattened table, for introspection.
func (h *Handler) Routes() []string {
	routes := make([]string, 0, len(h.table))
	for key := range h.table {
		routes = append(routes, key)
	}
	return routes
}

// ServeHTTP derives the route from the last URL path segment and dispatches.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Path
	if i := strings.LastIndexByte(route, '/'); i >= 0 {
		route = route[i+1:]
	}
	h.Dispatch(w, r, route)
}

// Dispatch serves one request for the given route key. Host frameworks that
// extract the route themselves call this directly.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request, route string) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		h.writeError(w, tangoerrors.MethodNotAllowedErrorf("Method not allowed"))
		return
	}

	proc, ok := h.table[route]
	if !ok {
		h.writeError(w, tangoerrors.NotFoundErrorf("RPC method not found"))
		return
	}

	if st := checkMethod(r.Method, proc.rpcType); st != nil {
		h.writeError(w, st)
		return
	}

	args, st := parseArgs(r, proc.rpcType)
	if st != nil {
		h.writeError(w, st)
		return
	}

	ctx := h.newContext(args, r)
	requestID := uuid.NewString()
	ctx.Env[EnvRequestID] = requestID

	span := h.startSpan(r, route, proc.rpcType)
	defer span.Finish()

	result, err := proc.handler(ctx)
	if err != nil {
		span.SetTag("error", true)
		span.LogKV("message", err.Error())

		var verr *schema.Error
		if errors.As(err, &verr) {
			ctx.ResponseHeaders.Set(ValidationErrorHeader, "true")
			ctx.Cache.Set(0)
			ctx.Status.BadContent()
			h.respond(w, r, ctx, verr.Issues)
			return
		}

		h.logger.Error("handler failed",
			zap.String("route", route),
			zap.String("requestID", requestID),
			zap.Error(err),
		)
		w.Header().Set(ExecutionTimeHeader, formatElapsed(ctx))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.respond(w, r, ctx, result)
}

// checkMethod gates (method, rpcType) pairs: GET serves query and get, POST
// serves command.
func checkMethod(method string, t tango.RPCType) *tangoerrors.Status {
	switch t {
	case tango.Query, tango.Get:
		if method != http.MethodGet {
			return tangoerrors.MethodNotAllowedErrorf("Method %s not allowed for rpc type %s", method, t)
		}
	case tango.Command:
		if method != http.MethodPost {
			return tangoerrors.MethodNotAllowedErrorf("Method %s not allowed for rpc type %s", method, t)
		}
	}
	return nil
}

func (h *Handler) startSpan(r *http.Request, route string, t tango.RPCType) opentracing.Span {
	carrier := opentracing.HTTPHeadersCarrier(r.Header)
	// a failed Extract leaves a nil parent, which RPCServerOption accepts
	parentSpanCtx, _ := h.tracer.Extract(opentracing.HTTPHeaders, carrier)
	return h.tracer.StartSpan(
		route,
		opentracing.Tags{
			"rpc.route":     route,
			"rpc.type":      t.String(),
			"rpc.transport": "http",
		},
		ext.RPCServerOption(parentSpanCtx),
	)
}

func (h *Handler) writeError(w http.ResponseWriter, st *tangoerrors.Status) {
	http.Error(w, st.Message(), st.Code())
}
