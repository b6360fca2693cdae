package backend

import (
	"bufio"
	"io"
)

// lineReader is a specialized reader that ensures only entire newline-delimited lines are
// read. This is useful when parsing a file that is being actively written to as a CSV,
// as a partially written last line is held back instead of being parsed.
type lineReader struct {
	r *bufio.Reader
	// partial holds the start of a line that had no newline yet.
	partial []byte
	// pending holds the unread rest of the current complete line.
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		data, err := l.r.ReadBytes('\n')
		if err != nil {
			l.partial = append(l.partial, data...)
			return 0, io.EOF
		}
		l.pending = append(l.partial, data...)
		l.partial = nil
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
