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

// Package kebabcase converts Go-style identifiers into the kebab-case form
// used for route keys and URL tails.
package kebabcase

import (
	"regexp"
	"strings"
)

var (
	// lower or digit followed by an upper: getUser -> get-User
	lowerUpper = regexp.MustCompile(`([a-z\d])([A-Z])`)
	// run of uppers followed by upper+lower: getUSERId -> get-USER-Id
	acronymTail = regexp.MustCompile(`([A-Z]+)([A-Z][a-z\d])`)
)

// Convert normalizes an identifier to kebab-case with acronym handling.
//
//	Convert("getUserID") == "get-user-id"
//	Convert("HTTPServer") == "http-server"
//	Convert("v2Parser") == "v2-parser"
func Convert(name string) string {
	s := lowerUpper.ReplaceAllString(name, "$1-$2")
	s = acronymTail.ReplaceAllString(s, "$1-$2")
	return strings.ToLower(s)
}

// Join converts each segment and joins the results with dots, producing a
// route key such as "users.auth.get-token".
func Join(segments []string) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = Convert(seg)
	}
	return strings.Join(parts, ".")
}
