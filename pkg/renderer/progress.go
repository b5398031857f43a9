package renderer

import (
	"fmt"
	"io"
	"sync"
)

// ProgressReporter prints the number of scanlines still to render, overwriting
// the line in place. Rows from every pass count towards the same total.
type ProgressReporter struct {
	mu        sync.Mutex
	out       io.Writer
	remaining int
}

// NewProgressReporter creates a reporter for totalRows scanlines. A nil writer disables output.
func NewProgressReporter(out io.Writer, totalRows int) *ProgressReporter {
	if out == nil {
		out = io.Discard
	}
	p := &ProgressReporter{out: out, remaining: totalRows}
	p.print()
	return p
}

// RowDone records one finished scanline. Safe for concurrent use.
func (p *ProgressReporter) RowDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.remaining > 0 {
		p.remaining--
	}
	p.print()
}

// Remaining returns the number of scanlines not yet rendered
func (p *ProgressReporter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remaining
}

// Done prints the final message
func (p *ProgressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, "\rDone.                   \n")
}

func (p *ProgressReporter) print() {
	fmt.Fprintf(p.out, "\rScanlines remaining: %d ", p.remaining)
}
