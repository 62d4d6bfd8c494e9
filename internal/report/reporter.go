// Package report turns exercise results into text lines. It never filters
// or reorders what it is given.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Reporter emits lines in the order it receives them. The first write error
// is kept and later calls become no-ops.
type Reporter struct {
	Format Formatter

	emit  func(string) error
	err   error
	count int
}

// New writes each line, newline terminated, to w.
func New(w io.Writer, f Formatter) *Reporter {
	return &Reporter{Format: f, emit: func(s string) error {
		_, err := io.WriteString(w, s+"\n")
		return err
	}}
}

// Buffer is a Reporter that keeps its lines in memory.
type Buffer struct {
	*Reporter
	lines []string
}

func NewBuffer(f Formatter) *Buffer {
	b := &Buffer{}
	b.Reporter = &Reporter{Format: f, emit: func(s string) error {
		b.lines = append(b.lines, s)
		return nil
	}}
	return b
}

// Lines returns a copy of everything written so far.
func (b *Buffer) Lines() []string {
	return append([]string{}, b.lines...)
}

// Line formats with fmt.Sprintf. Embedded newlines split the text into
// several lines.
func (r *Reporter) Line(format string, args ...any) {
	r.write(fmt.Sprintf(format, args...))
}

// Label writes a heading line as is.
func (r *Reporter) Label(text string) {
	r.write(text)
}

// Dump writes a whole value: fmt.Stringer values through String, anything
// else as a deterministic structural dump.
func (r *Reporter) Dump(v any) {
	if s, ok := v.(fmt.Stringer); ok {
		r.write(s.String())
		return
	}
	r.write(strings.TrimRight(dumper.Sdump(v), "\n"))
}

func (r *Reporter) write(text string) {
	for _, line := range strings.Split(text, "\n") {
		if r.err != nil {
			return
		}
		r.err = r.emit(line)
		if r.err == nil {
			r.count++
		}
	}
}

func (r *Reporter) Err() error { return r.err }

// Count is the number of lines emitted successfully.
func (r *Reporter) Count() int { return r.count }
