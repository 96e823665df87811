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

// Package tangoerrors is the error taxonomy shared by the Tango server and
// client. Tango is HTTP-native, so a Status carries the HTTP status code it
// maps to on the wire directly.
package tangoerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Status represents a Tango error with its wire status code.
type Status struct {
	code int
	err  error
}

// Newf returns a new Status with the given HTTP status code.
//
// Codes below 400 do not represent failures; Newf returns nil for them.
func Newf(code int, format string, args ...interface{}) *Status {
	if code < http.StatusBadRequest {
		return nil
	}

	var err error
	if len(args) == 0 {
		err = errors.New(format)
	} else {
		err = fmt.Errorf(format, args...)
	}

	return &Status{
		code: code,
		err:  err,
	}
}

// FromError returns the Status for the provided error.
//
// If the error:
//   - is nil, return nil
//   - is a *Status (including wrapped), return it
//
// Otherwise, return a Status with code 500 wrapping the error.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}

	var st *Status
	if errors.As(err, &st) {
		return st
	}

	return &Status{
		code: http.StatusInternalServerError,
		err:  err,
	}
}

// IsStatus returns whether the provided error is a Tango Status, including
// wrapped errors. This is false if the error is nil.
func IsStatus(err error) bool {
	var st *Status
	return errors.As(err, &st)
}

// Code returns the HTTP status code for this Status, or 500 when nil.
func (s *Status) Code() int {
	if s == nil {
		return http.StatusInternalServerError
	}
	return s.code
}

// Message returns the error message without the code prefix.
func (s *Status) Message() string {
	if s == nil || s.err == nil {
		return ""
	}
	return s.err.Error()
}

func (s *Status) Error() string {
	return fmt.Sprintf("code:%d message:%s", s.Code(), s.Message())
}

// Unwrap supports errors.Unwrap.
func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return errors.Unwrap(s.err)
}

// BadRequestErrorf returns a 400 Status.
func BadRequestErrorf(format string, args ...interface{}) *Status {
	return Newf(http.StatusBadRequest, format, args...)
}

// NotFoundErrorf returns a 404 Status.
func NotFoundErrorf(format string, args ...interface{}) *Status {
	return Newf(http.StatusNotFound, format, args...)
}

// MethodNotAllowedErrorf returns a 405 Status.
func MethodNotAllowedErrorf(format string, args ...interface{}) *Status {
	return Newf(http.StatusMethodNotAllowed, format, args...)
}

// UnsupportedMediaTypeErrorf returns a 415 Status.
func UnsupportedMediaTypeErrorf(format string, args ...interface{}) *Status {
	return Newf(http.StatusUnsupportedMediaType, format, args...)
}

// InternalErrorf returns a 500 Status.
func InternalErrorf(format string, args ...interface{}) *Status {
	return Newf(http.StatusInternalServerError, format, args...)
}

// IsBadRequest returns true if the error has code 400.
func IsBadRequest(err error) bool { return hasCode(err, http.StatusBadRequest) }

// IsNotFound returns true if the error has code 404.
func IsNotFound(err error) bool { return hasCode(err, http.StatusNotFound) }

// IsMethodNotAllowed returns true if the error has code 405.
func IsMethodNotAllowed(err error) bool { return hasCode(err, http.StatusMethodNotAllowed) }

// IsUnsupportedMediaType returns true if the error has code 415.
func IsUnsupportedMediaType(err error) bool { return hasCode(err, http.StatusUnsupportedMediaType) }

// IsInternal returns true if the error has code 500.
func IsInternal(err error) bool { return hasCode(err, http.StatusInternalServerError) }

func hasCode(err error, code int) bool {
	var st *Status
	if !errors.As(err, &st) {
		return false
	}
	return st.Code() == code
}
