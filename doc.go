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

// Package tango is a full-stack RPC framework. An API is authored as a
// nested Group of procedures, served over HTTP by package server, and
// invoked from Go clients through package client; both sides share one wire
// protocol (MessagePack framing, base64url query embedding, multipart
// uploads) and one middleware pipeline model.
//
// A minimal API:
//
//	api := tango.Group{
//		"users": tango.Group{
//			"getProfile": tango.NewQuery(func(ctx *tango.Context, args tango.Args) (any, error) {
//				return map[string]any{"id": 1}, nil
//			}),
//		},
//	}
//
//	handler, err := server.NewHandler(api)
//
// Procedure paths are normalized to kebab-case and joined with dots, so the
// procedure above is served at <baseURL>/users.get-profile.
package tango
