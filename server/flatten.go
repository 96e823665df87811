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
	"fmt"
	"sort"

	"go.uber.org/multierr"

	tango "github.com/tangorpc/tango-go"
	"github.com/tangorpc/tango-go/api/pipeline"
	"github.com/tangorpc/tango-go/internal/kebabcase"
)

// procedure is one entry of the flattened handler table. The handler closure
// embeds the composed middleware chain, the validation step, and the user
// implementation; the table is immutable after construction.
type procedure struct {
	rpcType tango.RPCType
	handler func(*tango.Context) (any, error)
}

// buildTable walks the nested API definition depth-first, accumulating the
// middleware prefix per branch, and emits a flat map from kebab route key to
// a pre-built handler. Duplicate route keys are a definition error.
func buildTable(root tango.Group, global []tango.Middleware) (map[string]procedure, error) {
	table := make(map[string]procedure)
	var errs error

	var walk func(node any, segments []string, inherited []tango.Middleware)
	walk = func(node any, segments []string, inherited []tango.Middleware) {
		switch n := node.(type) {
		case *tango.Procedure:
			key := kebabcase.Join(segments)
			if _, ok := table[key]; ok {
				errs = multierr.Append(errs, fmt.Errorf("duplicate route key %q", key))
				return
			}
			chain := appendChain(inherited, tango.MiddlewareOf(n))
			table[key] = procedure{rpcType: n.Type(), handler: buildHandler(n, chain)}
		case tango.Group:
			chain := appendChain(inherited, tango.MiddlewareOf(n))
			names := make([]string, 0, len(n))
			for name := range n {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				child := make([]string, 0, len(segments)+1)
				child = append(child, segments...)
				child = append(child, name)
				walk(n[name], child, chain)
			}
		default:
			errs = multierr.Append(errs, fmt.Errorf("invalid API node at %q: %T", kebabcase.Join(segments), node))
		}
	}

	walk(root, nil, global)
	if errs != nil {
		return nil, errs
	}
	return table, nil
}

func appendChain(inherited, own []tango.Middleware) []tango.Middleware {
	chain := make([]tango.Middleware, 0, len(inherited)+len(own))
	chain = append(chain, inherited...)
	chain = append(chain, own...)
	return chain
}

// buildHandler composes the captured middleware with the terminal stage:
// schema validation (its failure propagates untouched) followed by the user
// implementation.
func buildHandler(p *tango.Procedure, chain []tango.Middleware) func(*tango.Context) (any, error) {
	stages := make([]pipeline.Func[*tango.Context], 0, len(chain)+1)
	for _, mw := range chain {
		stages = append(stages, pipeline.Func[*tango.Context](mw))
	}

	sch := p.Schema()
	impl := p.Implementation()
	stages = append(stages, func(c *tango.Context, _ pipeline.Next) (any, error) {
		args := c.Args()
		if sch != nil {
			parsed, err := sch.Parse(args)
			if err != nil {
				return nil, err
			}
			if m, ok := parsed.(map[string]any); ok {
				args = m
			}
		}
		return impl(c, args)
	})

	return func(c *tango.Context) (any, error) {
		return pipeline.Run(c, stages)
	}
}
