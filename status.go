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

import "net/http"

// Status holds the response status code of one request, default 200.
type Status struct {
	code int
}

// Set writes the response code.
func (s *Status) Set(code int) { s.code = code }

// Get reads the response code.
func (s *Status) Get() int {
	if s.code == 0 {
		return http.StatusOK
	}
	return s.code
}

// Shortcut setters, one per canonical code.

// Continue sets 100.
func (s *Status) Continue() { s.Set(http.StatusContinue) }

// SwitchingProtocols sets 101.
func (s *Status) SwitchingProtocols() { s.Set(http.StatusSwitchingProtocols) }

// Processing sets 102.
func (s *Status) Processing() { s.Set(http.StatusProcessing) }

// OK sets 200.
func (s *Status) OK() { s.Set(http.StatusOK) }

// Created sets 201.
func (s *Status) Created() { s.Set(http.StatusCreated) }

// Accepted sets 202.
func (s *Status) Accepted() { s.Set(http.StatusAccepted) }

// NoContent sets 204.
func (s *Status) NoContent() { s.Set(http.StatusNoContent) }

// ResetContent sets 205.
func (s *Status) ResetContent() { s.Set(http.StatusResetContent) }

// PartialContent sets 206.
func (s *Status) PartialContent() { s.Set(http.StatusPartialContent) }

// MultipleChoices sets 300.
func (s *Status) MultipleChoices() { s.Set(http.StatusMultipleChoices) }

// MovedPermanently sets 301.
func (s *Status) MovedPermanently() { s.Set(http.StatusMovedPermanently) }

// Found sets 302.
func (s *Status) Found() { s.Set(http.StatusFound) }

// SeeOther sets 303.
func (s *Status) SeeOther() { s.Set(http.StatusSeeOther) }

// NotModified sets 304.
func (s *Status) NotModified() { s.Set(http.StatusNotModified) }

// TemporaryRedirect sets 307.
func (s *Status) TemporaryRedirect() { s.Set(http.StatusTemporaryRedirect) }

// PermanentRedirect sets 308.
func (s *Status) PermanentRedirect() { s.Set(http.StatusPermanentRedirect) }

// BadRequest sets 400.
func (s *Status) BadRequest() { s.Set(http.StatusBadRequest) }

// Unauthorized sets 401.
func (s *Status) Unauthorized() { s.Set(http.StatusUnauthorized) }

// PaymentRequired sets 402.
func (s *Status) PaymentRequired() { s.Set(http.StatusPaymentRequired) }

// Forbidden sets 403.
func (s *Status) Forbidden() { s.Set(http.StatusForbidden) }

// NotFound sets 404.
func (s *Status) NotFound() { s.Set(http.StatusNotFound) }

// MethodNotAllowed sets 405.
func (s *Status) MethodNotAllowed() { s.Set(http.StatusMethodNotAllowed) }

// NotAcceptable sets 406.
func (s *Status) NotAcceptable() { s.Set(http.StatusNotAcceptable) }

// Conflict sets 409.
func (s *Status) Conflict() { s.Set(http.StatusConflict) }

// Gone sets 410.
func (s *Status) Gone() { s.Set(http.StatusGone) }

// LengthRequired sets 411.
func (s *Status) LengthRequired() { s.Set(http.StatusLengthRequired) }

// PreconditionFailed sets 412.
func (s *Status) PreconditionFailed() { s.Set(http.StatusPreconditionFailed) }

// PayloadTooLarge sets 413.
func (s *Status) PayloadTooLarge() { s.Set(http.StatusRequestEntityTooLarge) }

// URITooLong sets 414.
func (s *Status) URITooLong() { s.Set(http.StatusRequestURITooLong) }

// BadContent sets 422.
func (s *Status) BadContent() { s.Set(http.StatusUnprocessableEntity) }

// RangeNotSatisfiable sets 416.
func (s *Status) RangeNotSatisfiable() { s.Set(http.StatusRequestedRangeNotSatisfiable) }

// ExpectationFailed sets 417.
func (s *Status) ExpectationFailed() { s.Set(http.StatusExpectationFailed) }

// TooManyRequests sets 429.
func (s *Status) TooManyRequests() { s.Set(http.StatusTooManyRequests) }

// ServerError sets 500.
func (s *Status) ServerError() { s.Set(http.StatusInternalServerError) }

// NotImplemented sets 501.
func (s *Status) NotImplemented() { s.Set(http.StatusNotImplemented) }

// BadGateway sets 502.
func (s *Status) BadGateway() { s.Set(http.StatusBadGateway) }

// ServiceUnavailable sets 503.
func (s *Status) ServiceUnavailable() { s.Set(http.StatusServiceUnavailable) }

// GatewayTimeout sets 504.
func (s *Status) GatewayTimeout() { s.Set(http.StatusGatewayTimeout) }

// HTTPVersionNotSupported sets 505.
func (s *Status) HTTPVersionNotSupported() { s.Set(http.StatusHTTPVersionNotSupported) }

// Cache is the response cache directive. A positive value makes GET
// responses carry "Cache-Control: public, max-age=<n>".
type Cache struct {
	seconds int
}

// Set writes the directive, clamping negative values to zero.
func (c *Cache) Set(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.seconds = seconds
}

// Seconds reads the directive.
func (c *Cache) Seconds() int { return c.seconds }
