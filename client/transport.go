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
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/codec"
	"github.com/tangorpc/tango-go/internal/kebabcase"
)

// transport is the terminal pipeline stage: it performs the HTTP call,
// stores the raw response on the call, decodes the body, assigns the result,
// and returns it.
func (c *Client) transport(call *Call) (any, error) {
	ctx := call.Context()
	if err := ctx.Err(); err != nil {
		return nil, &AbortError{cause: err}
	}

	route := kebabcase.Join(call.Path)
	req, err := c.buildRequest(call, route)
	if err != nil {
		return nil, err
	}

	span := c.tracer.StartSpan(
		route,
		opentracing.Tags{
			"rpc.route":     route,
			"rpc.type":      call.Type.String(),
			"rpc.transport": "http",
		},
	)
	ext.SpanKindRPCClient.Set(span)
	defer span.Finish()
	carrier := opentracing.HTTPHeadersCarrier(req.Header)
	_ = c.tracer.Inject(span.Context(), opentracing.HTTPHeaders, carrier)

	if call.Debug {
		c.logger.Debug("tango call",
			zap.String("route", route),
			zap.String("rpcType", call.Type.String()),
			zap.String("url", req.URL.String()),
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetTag("error", true)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &AbortError{cause: ctxErr}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	call.Response = resp
	defer resp.Body.Close()

	body := io.Reader(resp.Body)
	if call.OnProgress != nil {
		body = newProgressReader(resp.Body, resp.ContentLength, PhaseDownload, call.OnProgress)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		span.SetTag("error", true)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &AbortError{cause: ctxErr}
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if len(data) == 0 {
		switch {
		case resp.StatusCode == http.StatusNoContent:
			call.Result = nil
			return nil, nil
		case !ok:
			span.SetTag("error", true)
			return nil, &Error{Response: resp}
		default:
			return nil, ErrEmptyResponse
		}
	}

	decoded, err := decodeBody(resp, data)
	if err != nil {
		span.SetTag("error", true)
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if !ok {
		span.SetTag("error", true)
		return nil, &Error{Response: resp, Data: decoded}
	}

	call.Result = decoded
	return decoded, nil
}

// buildRequest shapes the HTTP request per rpc type: get rides plain query
// parameters, query rides a packed args parameter, command rides the body
// (multipart when uploads are present).
func (c *Client) buildRequest(call *Call, route string) (*http.Request, error) {
	target := c.baseURL + "/" + route

	switch call.Type {
	case tango.Get:
		query := url.Values{}
		for _, key := range sortedKeys(call.Args) {
			value := call.Args[key]
			if value == nil {
				continue
			}
			query.Set(key, fmt.Sprint(value))
		}
		if encoded := query.Encode(); encoded != "" {
			target += "?" + encoded
		}
		return c.newRequest(call, http.MethodGet, target, nil, "")

	case tango.Query:
		if len(call.Args) > 0 {
			packed, err := codec.Pack(call.Args)
			if err != nil {
				return nil, fmt.Errorf("failed to encode args: %w", err)
			}
			query := url.Values{}
			query.Set("args", codec.Base64URL(packed))
			target += "?" + query.Encode()
		}
		return c.newRequest(call, http.MethodGet, target, nil, "")

	case tango.Command:
		body, contentType, err := encodeCommandBody(call.Args)
		if err != nil {
			return nil, err
		}
		return c.newRequest(call, http.MethodPost, target, body, contentType)

	default:
		return nil, fmt.Errorf("unknown rpc type %d", call.Type)
	}
}

func (c *Client) newRequest(call *Call, method, target string, body []byte, contentType string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
		if call.OnProgress != nil {
			reader = newProgressReader(reader, int64(len(body)), PhaseUpload, call.OnProgress)
		}
	}

	req, err := http.NewRequestWithContext(call.Context(), method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.ContentLength = int64(len(body))
	}
	for key, values := range call.RequestHeaders {
		req.Header[key] = append([]string(nil), values...)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// encodeCommandBody packs command args, extracting uploads into multipart
// parts. A list-typed upload emits one part per file under a "[]"-suffixed
// key, preserving filenames.
func encodeCommandBody(args tango.Args) ([]byte, string, error) {
	rest, uploads := tango.ExtractFiles(args)
	if len(uploads) == 0 {
		packed, err := codec.Pack(args)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode args: %w", err)
		}
		return packed, "application/msgpack", nil
	}

	packed, err := codec.Pack(rest)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode args: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="args"; filename="args"`)
	header.Set("Content-Type", "application/msgpack")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build args part: %w", err)
	}
	if _, err := part.Write(packed); err != nil {
		return nil, "", fmt.Errorf("failed to write args part: %w", err)
	}

	names := make([]string, 0, len(uploads))
	for name := range uploads {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		upload := uploads[name]
		partName := name
		if upload.List && !strings.HasSuffix(partName, "[]") {
			partName += "[]"
		}
		for _, file := range upload.Files {
			contentType := file.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
				escapeQuotes(partName), escapeQuotes(file.Name)))
			header.Set("Content-Type", contentType)
			part, err := w.CreatePart(header)
			if err != nil {
				return nil, "", fmt.Errorf("failed to build part %q: %w", partName, err)
			}
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", fmt.Errorf("failed to write part %q: %w", partName, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// decodeBody follows the response's declared format: JSON when Content-Type
// names application/json, MessagePack otherwise.
func decodeBody(resp *http.Response, data []byte) (any, error) {
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return codec.JSONParse(string(data))
	}
	return codec.Unpack(data)
}

func sortedKeys(args tango.Args) []string {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
