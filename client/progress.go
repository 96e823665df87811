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
	"io"
	"math"

	"go.uber.org/atomic"
)

// progressReader counts bytes through a reader and reports progress events.
// Events are emitted only when the transfer total is known; the response
// side may report -1 for chunked bodies.
type progressReader struct {
	r      io.Reader
	total  int64
	loaded atomic.Int64
	phase  Phase
	report func(ProgressEvent)
}

func newProgressReader(r io.Reader, total int64, phase Phase, report func(ProgressEvent)) *progressReader {
	return &progressReader{r: r, total: total, phase: phase, report: report}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 {
		loaded := p.loaded.Add(int64(n))
		p.report(ProgressEvent{
			Phase:   p.phase,
			Loaded:  loaded,
			Total:   p.total,
			Percent: int(math.Round(float64(loaded) / float64(p.total) * 100)),
		})
	}
	return n, err
}
