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
	"fmt"
	"reflect"
	"sync"

	"github.com/tangorpc/tango-go/api/pipeline"
)

// Middleware is one stage of a server pipeline.
//
// Middleware MUST return the value produced by next(), or a value of its own
// when short-circuiting.
type Middleware func(ctx *Context, next pipeline.Next) (any, error)

// Middleware lists live in an out-of-band registry keyed by node identity
// rather than on the nodes themselves, so the tree's shape carries nothing
// but segments and procedures. Lists are mutable only during setup, before
// handler construction; flattening captures them by value.
var registry = struct {
	sync.Mutex
	lists map[uintptr][]Middleware
}{lists: make(map[uintptr][]Middleware)}

// Use appends middleware to the given API node. The target is a Group, a
// *Procedure, or a slice of either; slice targets broadcast the attachment
// to every element.
func Use(target any, mw ...Middleware) {
	if len(mw) == 0 {
		return
	}
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			attach(v.Index(i).Interface(), mw)
		}
		return
	}
	attach(target, mw)
}

// MiddlewareOf returns a copy of the middleware list attached to the node,
// or nil.
func MiddlewareOf(node any) []Middleware {
	registry.Lock()
	defer registry.Unlock()
	list := registry.lists[nodeKey(node)]
	if len(list) == 0 {
		return nil
	}
	out := make([]Middleware, len(list))
	copy(out, list)
	return out
}

func attach(node any, mw []Middleware) {
	key := nodeKey(node)
	registry.Lock()
	defer registry.Unlock()
	registry.lists[key] = append(registry.lists[key], mw...)
}

func nodeKey(node any) uintptr {
	switch n := node.(type) {
	case Group:
		return reflect.ValueOf(n).Pointer()
	case *Procedure:
		return reflect.ValueOf(n).Pointer()
	default:
		panic(fmt.Sprintf("tango: middleware target must be a Group or *Procedure, got %T", node))
	}
}
