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
	"go.uber.org/zap/zapcore"

	"github.com/tangorpc/tango-go/api/schema"
)

// Args is the argument record of a call: parsed on the server, authored on
// the client. Key ordering is not observable through Go maps; encodings that
// need determinism sort keys.
type Args = map[string]any

// RPCType determines the HTTP method and argument encoding of a procedure.
type RPCType int

const (
	// Query procedures ride on GET with MessagePack args embedded in the
	// URL as base64url.
	Query RPCType = iota + 1
	// Command procedures ride on POST with args in the request body.
	Command
	// Get procedures ride on GET with plain-string query parameters.
	Get
)

func (t RPCType) String() string {
	switch t {
	case Query:
		return "query"
	case Command:
		return "command"
	case Get:
		return "get"
	default:
		return "unknown"
	}
}

// Implementation is the user function bound to a procedure. It receives the
// per-request context and the parsed (and, when a schema is bound,
// validated) arguments.
type Implementation func(ctx *Context, args Args) (any, error)

// Group is a node of the API tree: a mapping from segment name to either a
// nested Group or a *Procedure. Middleware attaches to nodes out-of-band
// (see Use), so the tree itself stays a plain shape.
type Group map[string]any

// Procedure is a leaf of the API tree binding an RPC type to an
// implementation and an optional schema. Immutable once built, except for
// middleware attached via Use.
type Procedure struct {
	rpcType RPCType
	impl    Implementation
	schema  schema.Schema
}

// ProcedureOption configures a Procedure at construction.
type ProcedureOption func(*Procedure)

// WithSchema binds a validation schema to the procedure. The schema's Parse
// runs after middleware and before the implementation; its failure becomes a
// 422 response.
func WithSchema(s schema.Schema) ProcedureOption {
	return func(p *Procedure) {
		p.schema = s
	}
}

// NewQuery builds a query procedure.
func NewQuery(impl Implementation, opts ...ProcedureOption) *Procedure {
	return newProcedure(Query, impl, opts)
}

// NewCommand builds a command procedure.
func NewCommand(impl Implementation, opts ...ProcedureOption) *Procedure {
	return newProcedure(Command, impl, opts)
}

// NewGet builds a get procedure.
func NewGet(impl Implementation, opts ...ProcedureOption) *Procedure {
	return newProcedure(Get, impl, opts)
}

func newProcedure(t RPCType, impl Implementation, opts []ProcedureOption) *Procedure {
	if impl == nil {
		panic("tango: procedure requires an implementation")
	}
	p := &Procedure{rpcType: t, impl: impl}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (p *Procedure) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("rpcType", p.rpcType.String())
	return nil
}

// Type returns the procedure's RPC type.
func (p *Procedure) Type() RPCType { return p.rpcType }

// Schema returns the bound schema, or nil.
func (p *Procedure) Schema() schema.Schema { return p.schema }

// Implementation returns the user function.
func (p *Procedure) Implementation() Implementation { return p.impl }
