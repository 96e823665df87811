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
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/codec"
)

// respond serializes the handler result. The output format follows the
// request's Accept header: JSON when it names application/json, MessagePack
// otherwise. Every response carries the execution time header; GET responses
// with a positive cache directive carry Cache-Control.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, c *tango.Context, result any) {
	headers := w.Header()
	for key, values := range c.ResponseHeaders {
		for _, v := range values {
			headers.Add(key, v)
		}
	}
	headers.Set(ExecutionTimeHeader, formatElapsed(c))

	var body []byte
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		encoded, err := codec.JSONEncode(result)
		if err != nil {
			h.encodeFailure(w, r, err)
			return
		}
		headers.Set("Content-Type", "application/json")
		body = []byte(encoded)
	} else {
		encoded, err := codec.Pack(result)
		if err != nil {
			h.encodeFailure(w, r, err)
			return
		}
		headers.Set("Content-Type", "application/msgpack")
		body = encoded
	}

	if r.Method == http.MethodGet && c.Cache.Seconds() > 0 {
		headers.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", c.Cache.Seconds()))
	}

	headers.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(c.Status.Get())
	w.Write(body)
}

func (h *Handler) encodeFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("response encoding failed",
		zap.String("route", r.URL.Path),
		zap.Error(err),
	)
	w.WriteHeader(http.StatusInternalServerError)
}

func formatElapsed(c *tango.Context) string {
	return strconv.FormatFloat(c.ElapsedTime(), 'f', -1, 64)
}
