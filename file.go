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

package tango

import (
	"bytes"
	"io"
)

// File is an upload handle. A command argument holding a *File, or a list
// whose every element is a *File, is carried as a multipart part instead of
// riding inside the packed args.
type File struct {
	// Name becomes the part's filename.
	Name string

	// ContentType defaults to application/octet-stream when empty.
	ContentType string

	// Size in bytes when known, -1 otherwise.
	Size int64

	// Content is read exactly once when the request body is built.
	Content io.Reader
}

// NewFile builds a File over a reader of unknown size.
func NewFile(name, contentType string, content io.Reader) *File {
	return &File{
		Name:        name,
		ContentType: contentType,
		Size:        -1,
		Content:     content,
	}
}

// FileFromBytes builds a File over an in-memory payload.
func FileFromBytes(name, contentType string, data []byte) *File {
	return &File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Content:     bytes.NewReader(data),
	}
}

// asFile reports whether the value is a single upload handle.
func asFile(v any) (*File, bool) {
	f, ok := v.(*File)
	return f, ok
}

// asFileList reports whether the value is a non-empty list whose every
// element is an upload handle. Mixed lists are not uploads.
func asFileList(v any) ([]*File, bool) {
	switch list := v.(type) {
	case []*File:
		if len(list) == 0 {
			return nil, false
		}
		return list, true
	case []any:
		if len(list) == 0 {
			return nil, false
		}
		files := make([]*File, len(list))
		for i, item := range list {
			f, ok := item.(*File)
			if !ok {
				return nil, false
			}
			files[i] = f
		}
		return files, true
	default:
		return nil, false
	}
}

// Upload is one extracted upload argument. List-typed uploads emit one part
// per file under a "[]"-suffixed key; single uploads emit one part under the
// original key.
type Upload struct {
	Files []*File
	List  bool
}

// ExtractFiles scans command args and moves upload values out into a
// separate map, returning the remaining args and the uploads keyed by the
// original argument name. The input map is not modified.
func ExtractFiles(args Args) (Args, map[string]Upload) {
	var uploads map[string]Upload
	rest := make(Args, len(args))
	for k, v := range args {
		if f, ok := asFile(v); ok {
			if uploads == nil {
				uploads = make(map[string]Upload)
			}
			uploads[k] = Upload{Files: []*File{f}}
			continue
		}
		if files, ok := asFileList(v); ok {
			if uploads == nil {
				uploads = make(map[string]Upload)
			}
			uploads[k] = Upload{Files: files, List: true}
			continue
		}
		rest[k] = v
	}
	return rest, uploads
}
