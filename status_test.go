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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusDefaultsToOK(t *testing.T) {
	var s Status
	assert.Equal(t, 200, s.Get())
}

func TestStatusSetGet(t *testing.T) {
	var s Status
	s.Set(418)
	assert.Equal(t, 418, s.Get())
}

func TestStatusShortcuts(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Status)
		want int
	}{
		{"Continue", (*Status).Continue, 100},
		{"SwitchingProtocols", (*Status).SwitchingProtocols, 101},
		{"Processing", (*Status).Processing, 102},
		{"OK", (*Status).OK, 200},
		{"Created", (*Status).Created, 201},
		{"Accepted", (*Status).Accepted, 202},
		{"NoContent", (*Status).NoContent, 204},
		{"ResetContent", (*Status).ResetContent, 205},
		{"PartialContent", (*Status).PartialContent, 206},
		{"MultipleChoices", (*Status).MultipleChoices, 300},
		{"MovedPermanently", (*Status).MovedPermanently, 301},
		{"Found", (*Status).Found, 302},
		{"SeeOther", (*Status).SeeOther, 303},
		{"NotModified", (*Status).NotModified, 304},
		{"TemporaryRedirect", (*Status).TemporaryRedirect, 307},
		{"PermanentRedirect", (*Status).PermanentRedirect, 308},
		{"BadRequest", (*Status).BadRequest, 400},
		{"Unauthorized", (*Status).Unauthorized, 401},
		{"PaymentRequired", (*Status).PaymentRequired, 402},
		{"Forbidden", (*Status).Forbidden, 403},
		{"NotFound", (*Status).NotFound, 404},
		{"MethodNotAllowed", (*Status).MethodNotAllowed, 405},
		{"NotAcceptable", (*Status).NotAcceptable, 406},
		{"Conflict", (*Status).Conflict, 409},
		{"Gone", (*Status).Gone, 410},
		{"LengthRequired", (*Status).LengthRequired, 411},
		{"PreconditionFailed", (*Status).PreconditionFailed, 412},
		{"PayloadTooLarge", (*Status).PayloadTooLarge, 413},
		{"URITooLong", (*Status).URITooLong, 414},
		{"RangeNotSatisfiable", (*Status).RangeNotSatisfiable, 416},
		{"ExpectationFailed", (*Status).ExpectationFailed, 417},
		{"BadContent", (*Status).BadContent, 422},
		{"TooManyRequests", (*Status).TooManyRequests, 429},
		{"ServerError", (*Status).ServerError, 500},
		{"NotImplemented", (*Status).NotImplemented, 501},
		{"BadGateway", (*Status).BadGateway, 502},
		{"ServiceUnavailable", (*Status).ServiceUnavailable, 503},
		{"GatewayTimeout", (*Status).GatewayTimeout, 504},
		{"HTTPVersionNotSupported", (*Status).HTTPVersionNotSupported, 505},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Status
			tt.set(&s)
			assert.Equal(t, tt.want, s.Get())
		})
	}
}

func TestCacheClampsNegatives(t *testing.T) {
	var c Cache
	assert.Equal(t, 0, c.Seconds())

	c.Set(300)
	assert.Equal(t, 300, c.Seconds())

	c.Set(-5)
	assert.Equal(t, 0, c.Seconds())
}
