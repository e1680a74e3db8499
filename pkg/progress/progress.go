// Package progress reports the progress of reading input to a single terminal line.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Reader counts the bytes read from an underlying reader and reports them to a Rewritable.
type Reader struct {
	io.Reader
	Bytes int64 // bytes read so far
	Total int64 // expected number of bytes, 0 when unknown

	Rewritable *Rewritable // may be nil
}

func (cr *Reader) Read(bytes []byte) (int, error) {
	count, err := cr.Reader.Read(bytes)
	cr.Bytes += int64(count)
	if cr.Rewritable != nil {
		cr.Rewritable.Write(cr.String())
	}
	return count, err
}

// String formats the number of bytes read, and the percentage of Total if known.
func (cr *Reader) String() string {
	read := humanize.Bytes(uint64(cr.Bytes))
	if cr.Total <= 0 {
		return "Read " + read
	}
	percent := float64(cr.Bytes) / float64(cr.Total) * 100
	return fmt.Sprintf("Read %s of %s (%.0f%%)", read, humanize.Bytes(uint64(cr.Total)), percent)
}

// DefaultFlushInterval is used by the status of the rdfadmin command.
const DefaultFlushInterval = time.Second / 30

// Rewritable is a terminal line that is overwritten by every write.
// It is safe for concurrent use.
type Rewritable struct {
	Writer        io.Writer
	FlushInterval time.Duration // writes within this interval of the last flush are only buffered

	m       sync.Mutex
	flushed time.Time
	width   int    // widest line on the terminal, in runes
	line    string // pending line
}

// Write sets the line to value.
func (rw *Rewritable) Write(value string) {
	rw.m.Lock()
	defer rw.m.Unlock()

	rw.line = value
	if time.Since(rw.flushed) > rw.FlushInterval {
		rw.flush()
	}
}

// Flush writes the pending line.
// Unless force is set, it does nothing within FlushInterval of the previous flush.
func (rw *Rewritable) Flush(force bool) {
	rw.m.Lock()
	defer rw.m.Unlock()

	if force || time.Since(rw.flushed) > rw.FlushInterval {
		rw.flush()
	}
}

// flush overwrites the terminal line with the pending line.
// rw.m must be held.
func (rw *Rewritable) flush() {
	width := utf8.RuneCountInString(rw.line)

	var padding string
	if width < rw.width {
		padding = strings.Repeat(" ", rw.width-width)
	} else {
		rw.width = width
	}

	_, _ = io.WriteString(rw.Writer, "\r"+rw.line+padding)
	rw.flushed = time.Now()
}

// Close blanks the line and returns the cursor to its start.
// Nothing is written when no line was ever flushed.
func (rw *Rewritable) Close() {
	rw.m.Lock()
	defer rw.m.Unlock()

	if rw.width == 0 {
		return
	}

	rw.line = ""
	rw.flush()
	_, _ = io.WriteString(rw.Writer, "\r")
	rw.width = 0
}
