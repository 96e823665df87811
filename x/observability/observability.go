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

// Package observability provides ready-made logging and metrics middleware
// for both sides of a Tango deployment.
package observability

import (
	"time"

	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/api/pipeline"
	"github.com/tangorpc/tango-go/client"
	"github.com/tangorpc/tango-go/internal/kebabcase"
)

// ServerLogging logs every request after the chain unwinds, with elapsed
// time and outcome.
func ServerLogging(logger *zap.Logger) tango.Middleware {
	return func(ctx *tango.Context, next pipeline.Next) (any, error) {
		result, err := next()
		fields := []zap.Field{
			zap.Float64("elapsedMs", ctx.ElapsedTime()),
			zap.Int("status", ctx.Status.Get()),
		}
		if err != nil {
			logger.Warn("request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("request handled", fields...)
		}
		return result, err
	}
}

// ServerMetrics counts requests and records handler latency.
func ServerMetrics(scope tally.Scope) tango.Middleware {
	calls := scope.Counter("calls")
	failures := scope.Counter("failures")
	latency := scope.Timer("latency")
	return func(ctx *tango.Context, next pipeline.Next) (any, error) {
		start := time.Now()
		result, err := next()
		latency.Record(time.Since(start))
		calls.Inc(1)
		if err != nil {
			failures.Inc(1)
		}
		return result, err
	}
}

// ClientLogging logs every call after the chain unwinds.
func ClientLogging(logger *zap.Logger) client.Middleware {
	return func(call *client.Call, next pipeline.Next) (any, error) {
		result, err := next()
		fields := []zap.Field{
			zap.String("route", kebabcase.Join(call.Path)),
			zap.String("rpcType", call.Type.String()),
			zap.Float64("elapsedMs", call.ElapsedTime()),
		}
		if err != nil {
			logger.Warn("call failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("call completed", fields...)
		}
		return result, err
	}
}

// ClientMetrics counts calls per route and records round-trip latency.
func ClientMetrics(scope tally.Scope) client.Middleware {
	return func(call *client.Call, next pipeline.Next) (any, error) {
		routeScope := scope.Tagged(map[string]string{
			"route": kebabcase.Join(call.Path),
		})
		start := time.Now()
		result, err := next()
		routeScope.Timer("latency").Record(time.Since(start))
		routeScope.Counter("calls").Inc(1)
		if err != nil {
			routeScope.Counter("failures").Inc(1)
		}
		return result, err
	}
}
