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

// Package tangofx wires Tango into an Fx application.
package tangofx

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/client"
	"github.com/tangorpc/tango-go/server"
)

// Module provides a server.Handler from a tango.Group and a client.Client
// from a BaseURL present in the application graph.
var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Provide(NewClient),
)

// BaseURL is the client target, supplied by the host application.
type BaseURL string

// HandlerParams collects the server handler's dependencies.
type HandlerParams struct {
	fx.In

	API    tango.Group
	Logger *zap.Logger `optional:"true"`
}

// NewHandler builds the HTTP handler for the application's API definition.
func NewHandler(p HandlerParams) (*server.Handler, error) {
	var opts []server.Option
	if p.Logger != nil {
		opts = append(opts, server.WithLogger(p.Logger))
	}
	return server.NewHandler(p.API, opts...)
}

// ClientParams collects the client's dependencies.
type ClientParams struct {
	fx.In

	BaseURL    BaseURL
	HTTPClient *http.Client `optional:"true"`
	Logger     *zap.Logger  `optional:"true"`
}

// NewClient builds a client for the configured base URL.
func NewClient(p ClientParams) *client.Client {
	var opts []client.Option
	if p.HTTPClient != nil {
		opts = append(opts, client.WithHTTPClient(p.HTTPClient))
	}
	if p.Logger != nil {
		opts = append(opts, client.WithLogger(p.Logger))
	}
	return client.New(string(p.BaseURL), opts...)
}
