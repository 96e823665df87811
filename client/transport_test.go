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
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/api/pipeline"
	"github.com/tangorpc/tango-go/codec"
)

// captured records the raw request a call produced.
type captured struct {
	method      string
	path        string
	query       url.Values
	contentType string
	header      http.Header
	body        []byte
}

// newCaptureServer answers every request with the packed value and records
// what arrived.
func newCaptureServer(t *testing.T, result any) (*httptest.Server, *captured) {
	t.Helper()
	cap := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		*cap = captured{
			method:      r.Method,
			path:        r.URL.Path,
			query:       r.URL.Query(),
			contentType: r.Header.Get("Content-Type"),
			header:      r.Header.Clone(),
			body:        body,
		}
		packed, err := codec.Pack(result)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/msgpack")
		w.Write(packed)
	}))
	t.Cleanup(srv.Close)
	return srv, cap
}

func TestGetRequestShape(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL + "/api")

	_, err := c.Route("posts", "getByID").Get(context.Background(), tango.Args{
		"id":      "42",
		"flag":    true,
		"skipped": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "GET", cap.method)
	assert.Equal(t, "/api/posts.get-by-id", cap.path)
	assert.Equal(t, "42", cap.query.Get("id"))
	assert.Equal(t, "true", cap.query.Get("flag"), "non-string args are string-coerced")
	assert.False(t, cap.query.Has("skipped"), "nil args are omitted")
	assert.Empty(t, cap.body)
}

func TestQueryRequestShape(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL + "/api")

	_, err := c.Route("users", "getProfile").Query(context.Background(), tango.Args{"page": "2"})
	require.NoError(t, err)

	assert.Equal(t, "GET", cap.method)
	assert.Equal(t, "/api/users.get-profile", cap.path)

	raw := cap.query.Get("args")
	require.NotEmpty(t, raw)
	packed, err := codec.UnBase64URL(raw)
	require.NoError(t, err)
	args, err := codec.UnpackArgs(packed)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"page": "2"}, args)
}

func TestQueryWithoutArgsOmitsParameter(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL)

	_, err := c.Route("ping").Query(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, cap.query.Has("args"))
}

func TestCommandRequestShape(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL + "/api")

	_, err := c.Route("posts", "create").Command(context.Background(), tango.Args{"title": "Hi"})
	require.NoError(t, err)

	assert.Equal(t, "POST", cap.method)
	assert.Equal(t, "/api/posts.create", cap.path)
	assert.Equal(t, "application/msgpack", cap.contentType)

	args, err := codec.UnpackArgs(cap.body)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Hi"}, args)
}

func TestCommandMultipartShape(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL + "/api")

	f1 := tango.FileFromBytes("f1.bin", "application/octet-stream", []byte("one"))
	f2 := tango.FileFromBytes("f2.bin", "application/octet-stream", []byte("two"))
	avatar := tango.FileFromBytes("me.png", "image/png", []byte("img"))

	_, err := c.Route("media", "upload").Command(context.Background(), tango.Args{
		"files[]": []*tango.File{f1, f2},
		"avatar":  avatar,
		"note":    "x",
	})
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(cap.contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	type part struct {
		filename    string
		contentType string
		content     []byte
	}
	parts := map[string][]part{}
	reader := multipart.NewReader(bytes.NewReader(cap.body), params["boundary"])
	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(p)
		require.NoError(t, err)
		parts[p.FormName()] = append(parts[p.FormName()], part{
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			content:     content,
		})
	}

	require.Len(t, parts["args"], 1)
	assert.Equal(t, "application/msgpack", parts["args"][0].contentType)
	args, err := codec.UnpackArgs(parts["args"][0].content)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"note": "x"}, args, "uploads are moved out of the packed args")

	require.Len(t, parts["files[]"], 2, "list uploads emit one part per element")
	assert.Equal(t, "f1.bin", parts["files[]"][0].filename)
	assert.Equal(t, "f2.bin", parts["files[]"][1].filename)
	assert.Equal(t, []byte("one"), parts["files[]"][0].content)

	require.Len(t, parts["avatar"], 1, "single uploads keep the original key")
	assert.Equal(t, "me.png", parts["avatar"][0].filename)
	assert.Equal(t, "image/png", parts["avatar"][0].contentType)
}

func TestMixedListStaysInArgs(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL)

	f := tango.FileFromBytes("a.txt", "text/plain", []byte("1"))
	_, err := c.Route("media", "upload").Command(context.Background(), tango.Args{
		"mixed": []any{f, "not a file"},
	})
	require.NoError(t, err)

	// mixed lists are not uploads: the body stays plain msgpack
	assert.Equal(t, "application/msgpack", cap.contentType)
	args, err := codec.UnpackArgs(cap.body)
	require.NoError(t, err)
	mixed, ok := args["mixed"].([]any)
	require.True(t, ok)
	require.Len(t, mixed, 2)
	assert.Equal(t, "not a file", mixed[1])
}

func TestDefaultAcceptHeader(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL)

	_, err := c.Route("ping").Query(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "application/msgpack", cap.header.Get("Accept"))
}

func TestHeaderOverrides(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL, WithDefaultHeaders(http.Header{"X-Api-Key": []string{"k1"}}))

	_, err := c.Route("ping").Query(context.Background(), nil,
		WithHeader("Accept", "application/json"),
		WithHeader("X-Trace", "on"),
	)
	require.NoError(t, err)

	assert.Equal(t, "k1", cap.header.Get("X-Api-Key"))
	assert.Equal(t, "application/json", cap.header.Get("Accept"))
	assert.Equal(t, "on", cap.header.Get("X-Trace"))
}

func TestDecodeAnomalies(t *testing.T) {
	newServer := func(status int, body []byte) *httptest.Server {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			if len(body) > 0 {
				w.Write(body)
			}
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	t.Run("204 decodes to nil", func(t *testing.T) {
		srv := newServer(http.StatusNoContent, nil)
		call, err := New(srv.URL).Route("ping").QueryCall(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, call.Result)
	})

	t.Run("empty non-OK is a server error", func(t *testing.T) {
		srv := newServer(http.StatusBadGateway, nil)
		_, err := New(srv.URL).Route("ping").Query(context.Background(), nil)
		require.Error(t, err)
		var serr *Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, http.StatusBadGateway, serr.StatusCode())
		assert.Equal(t, "Server error: 502 Bad Gateway", serr.Error())
	})

	t.Run("empty OK is anomalous", func(t *testing.T) {
		srv := newServer(http.StatusOK, nil)
		_, err := New(srv.URL).Route("ping").Query(context.Background(), nil)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("non-OK body is decoded onto the error", func(t *testing.T) {
		packed, perr := codec.Pack(map[string]any{"reason": "nope"})
		require.NoError(t, perr)
		srv := newServer(http.StatusForbidden, packed)

		_, err := New(srv.URL).Route("ping").Query(context.Background(), nil)
		var serr *Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, map[string]any{"reason": "nope"}, serr.Data)
	})
}

func TestAbortBeforeFlight(t *testing.T) {
	srv, cap := newCaptureServer(t, "ok")
	c := New(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Route("ping").Query(ctx, nil)
	require.Error(t, err)
	assert.True(t, IsAborted(err))
	assert.EqualError(t, err, "aborted")
	assert.Empty(t, cap.method, "an already-aborted call never reaches the wire")
}

func TestAbortMidFlight(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())

	var observed *Call
	c.Use(func(call *Call, next pipeline.Next) (any, error) {
		observed = call
		return next()
	})

	done := make(chan error, 1)
	go func() {
		_, err := c.Route("slow").Query(ctx, nil)
		done <- err
	}()
	cancel()

	err := <-done
	require.Error(t, err)
	assert.True(t, IsAborted(err))
	require.NotNil(t, observed)
	assert.Nil(t, observed.Result, "aborted calls never assign a result")
}

func TestProgressReporting(t *testing.T) {
	payload := make([]byte, 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		packed, _ := codec.Pack(string(payload))
		w.Header().Set("Content-Type", "application/msgpack")
		w.Header().Set("Content-Length", strconv.Itoa(len(packed)))
		w.Write(packed)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	var events []ProgressEvent
	_, err := c.Route("media", "upload").Command(context.Background(),
		tango.Args{"blob": string(make([]byte, 8192))},
		WithProgress(func(e ProgressEvent) { events = append(events, e) }),
	)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	var sawUpload, sawDownload bool
	for _, e := range events {
		require.Positive(t, e.Total, "events are only reported with a known total")
		assert.LessOrEqual(t, e.Loaded, e.Total)
		assert.GreaterOrEqual(t, e.Percent, 0)
		assert.LessOrEqual(t, e.Percent, 100)
		switch e.Phase {
		case PhaseUpload:
			sawUpload = true
		case PhaseDownload:
			sawDownload = true
		}
	}
	assert.True(t, sawUpload)
	assert.True(t, sawDownload)

	last := events[len(events)-1]
	assert.Equal(t, 100, last.Percent)
}
