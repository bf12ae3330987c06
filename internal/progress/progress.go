// Package progress shows indexing progress on stderr. Nothing is drawn
// unless stderr is a terminal, so piped and scripted runs stay clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the smallest total worth a progress line.
const minItems = 5

// every is how many steps pass between redraws. Indexing writes tens of
// thousands of rows and redrawing each one costs more than the insert.
const every = 64

// Bar reports progress towards a known total, such as the rows written
// for a snapshot.
type Bar struct {
	w       io.Writer
	label   string
	total   int
	current int
	width   int // widest line drawn, for clearing
	enabled bool
}

// New returns a Bar drawing to stderr when it is a terminal.
func New(label string, total int) *Bar {
	return NewWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), label, total)
}

// NewWriter returns a Bar drawing to w. Totals below minItems never draw.
func NewWriter(w io.Writer, enabled bool, label string, total int) *Bar {
	return &Bar{w: w, label: label, total: total, enabled: enabled && total >= minItems}
}

// Increment advances the bar by one and redraws it periodically.
func (b *Bar) Increment() {
	b.current++
	if b.current%every == 0 || b.current == b.total {
		b.draw()
	}
}

func (b *Bar) draw() {
	if !b.enabled {
		return
	}
	pct := b.current * 100 / b.total
	line := fmt.Sprintf("%s %d/%d (%d%%)", b.label, b.current, b.total, pct)
	b.width = max(b.width, len(line))
	fmt.Fprint(b.w, "\r"+line)
}

// Done clears the bar so final output starts on a clean line.
func (b *Bar) Done() {
	if b.enabled && b.width > 0 {
		fmt.Fprint(b.w, "\r"+strings.Repeat(" ", b.width)+"\r")
	}
}

// Counter reports progress when the total is unknown, such as the entries
// found while walking a tree.
type Counter struct {
	w       io.Writer
	label   string
	frames  []string
	frame   int
	count   int
	width   int
	enabled bool
}

// NewCounter returns a Counter drawing to stderr when it is a terminal.
func NewCounter(label string) *Counter {
	return NewCounterWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), label)
}

// NewCounterWriter returns a Counter drawing to w.
func NewCounterWriter(w io.Writer, enabled bool, label string) *Counter {
	return &Counter{
		w:       w,
		label:   label,
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		enabled: enabled,
	}
}

// Add records n more items, redrawing once per every items.
func (c *Counter) Add(n int) {
	before := c.count / every
	c.count += n
	if c.count/every != before {
		c.draw()
	}
}

// Count returns the items recorded so far.
func (c *Counter) Count() int { return c.count }

func (c *Counter) draw() {
	if !c.enabled {
		return
	}
	c.frame = (c.frame + 1) % len(c.frames)
	line := fmt.Sprintf("%s %s %d entries", c.frames[c.frame], c.label, c.count)
	c.width = max(c.width, len([]rune(line)))
	fmt.Fprint(c.w, "\r"+line)
}

// Stop clears the counter line.
func (c *Counter) Stop() {
	if c.enabled && c.width > 0 {
		fmt.Fprint(c.w, "\r"+strings.Repeat(" ", c.width)+"\r")
	}
}
