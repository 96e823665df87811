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
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/codec"
	"github.com/tangorpc/tango-go/tangoerrors"
)

// multipartMemory bounds how much of a form body stays in memory before
// spilling to disk, matching net/http's conventional limit.
const multipartMemory = 32 << 20

// parseArgs extracts the argument record per rpc type:
//
//   - get: plain URL search parameters, no type coercion, last value wins
//   - query: base64url+MessagePack in the "args" search parameter
//   - command: body, dispatched on Content-Type
func parseArgs(r *http.Request, t tango.RPCType) (tango.Args, *tangoerrors.Status) {
	switch t {
	case tango.Get:
		args := tango.Args{}
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				args[key] = values[len(values)-1]
			}
		}
		return args, nil

	case tango.Query:
		raw := r.URL.Query().Get("args")
		if raw == "" {
			return tango.Args{}, nil
		}
		data, err := codec.UnBase64URL(raw)
		if err != nil {
			return nil, tangoerrors.BadRequestErrorf("Invalid msgpackr body")
		}
		args, err := codec.UnpackArgs(data)
		if err != nil {
			return nil, tangoerrors.BadRequestErrorf("Invalid msgpackr body")
		}
		return args, nil

	case tango.Command:
		return parseCommandArgs(r)

	default:
		return nil, tangoerrors.InternalErrorf("unknown rpc type %d", t)
	}
}

func parseCommandArgs(r *http.Request) (tango.Args, *tangoerrors.Status) {
	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "multipart/form-data"):
		return parseMultipartArgs(r)

	case strings.Contains(contentType, "application/json"):
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, tangoerrors.InternalErrorf("failed to read request body: %v", err)
		}
		if len(body) == 0 {
			return tango.Args{}, nil
		}
		value, err := codec.JSONParse(string(body))
		if err != nil {
			return nil, tangoerrors.BadRequestErrorf("Invalid JSON body")
		}
		args, ok := value.(map[string]any)
		if !ok {
			return nil, tangoerrors.BadRequestErrorf("Invalid JSON body")
		}
		return args, nil

	case strings.Contains(contentType, "application/msgpack"):
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, tangoerrors.InternalErrorf("failed to read request body: %v", err)
		}
		if len(body) == 0 {
			return tango.Args{}, nil
		}
		args, err := codec.UnpackArgs(body)
		if err != nil {
			return nil, tangoerrors.BadRequestErrorf("Invalid msgpackr body")
		}
		return args, nil

	default:
		return nil, tangoerrors.UnsupportedMediaTypeErrorf("Unsupported Media Type")
	}
}

// parseMultipartArgs splits form entries into the special "args" field and
// the rest. The args part carries the packed base record; remaining entries
// augment it. A "foo[]" key collects every value for that key under "foo" as
// an ordered sequence; any other key takes the first occurrence. File values
// stay *multipart.FileHeader handles.
func parseMultipartArgs(r *http.Request) (tango.Args, *tangoerrors.Status) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, tangoerrors.BadRequestErrorf("Invalid multipart body")
	}
	form := r.MultipartForm
	if form == nil {
		return tango.Args{}, nil
	}

	args := tango.Args{}
	if headers := form.File["args"]; len(headers) > 0 {
		base, st := unpackArgsBlob(headers[0])
		if st != nil {
			return nil, st
		}
		args = base
	} else if len(form.Value["args"]) > 0 {
		return nil, tangoerrors.BadRequestErrorf("Unsupported args type: text")
	}

	collected := map[string][]any{}
	for key, headers := range form.File {
		if key == "args" {
			continue
		}
		if base, ok := strings.CutSuffix(key, "[]"); ok {
			for _, fh := range headers {
				collected[base] = append(collected[base], fh)
			}
			continue
		}
		if _, exists := args[key]; !exists && len(headers) > 0 {
			args[key] = headers[0]
		}
	}
	for key, values := range form.Value {
		if key == "args" {
			continue
		}
		if base, ok := strings.CutSuffix(key, "[]"); ok {
			for _, v := range values {
				collected[base] = append(collected[base], v)
			}
			continue
		}
		if _, exists := args[key]; !exists && len(values) > 0 {
			args[key] = values[0]
		}
	}
	for key, values := range collected {
		args[key] = values
	}
	return args, nil
}

func unpackArgsBlob(fh *multipart.FileHeader) (tango.Args, *tangoerrors.Status) {
	contentType := fh.Header.Get("Content-Type")

	f, err := fh.Open()
	if err != nil {
		return nil, tangoerrors.InternalErrorf("failed to open args blob: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, tangoerrors.InternalErrorf("failed to read args blob: %v", err)
	}

	switch {
	case strings.Contains(contentType, "application/msgpack"):
		args, err := codec.UnpackArgs(data)
		if err != nil {
			return nil, tangoerrors.BadRequestErrorf("Invalid msgpackr in args blob")
		}
		return args, nil
	case strings.Contains(contentType, "application/json"):
		value, err := codec.JSONParse(string(data))
		if err != nil {
			return nil, tangoerrors.BadRequestErrorf("Invalid JSON in args blob")
		}
		args, ok := value.(map[string]any)
		if !ok {
			return nil, tangoerrors.BadRequestErrorf("Invalid JSON in args blob")
		}
		return args, nil
	default:
		return nil, tangoerrors.BadRequestErrorf("Unsupported args type: %s", contentType)
	}
}
