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

// Package codec implements the symmetric wire encodings shared by the Tango
// server and client: MessagePack framing, base64url for query embedding, and
// the JSON fallback.
package codec

import (
	"encoding/base64"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Pack encodes the value as MessagePack. Arbitrary nested values are
// preserved structurally; maps round-trip as map[string]any.
func Pack(value any) ([]byte, error) {
	return msgpack.Marshal(value)
}

// Unpack decodes MessagePack bytes into their generic Go representation.
func Unpack(data []byte) (any, error) {
	var value any
	if err := msgpack.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// UnpackArgs decodes MessagePack bytes into an argument record. A nil or
// non-map payload decodes to an empty record.
func UnpackArgs(data []byte) (map[string]any, error) {
	value, err := Unpack(data)
	if err != nil {
		return nil, err
	}
	args, ok := value.(map[string]any)
	if !ok || args == nil {
		return map[string]any{}, nil
	}
	return args, nil
}

// Base64URL encodes bytes with the URL-safe alphabet, unpadded.
func Base64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// UnBase64URL decodes an unpadded URL-safe base64 string.
func UnBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// JSONEncode is the JSON fallback encoder.
func JSONEncode(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// JSONParse is the JSON fallback decoder.
func JSONParse(s string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(s), &value); err != nil {
		return nil, err
	}
	return value, nil
}
