package bufstream

import (
	"github.com/keks/streamio"
)

// WriteByte buffers c, flushing first if the buffer is full.
func (s *Stream) WriteByte(c byte) error {
	if !s.closed && s.mode == streamio.WriteOnly && !s.passthrough() && !s.win.atEnd() {
		s.buf[s.win.offset()] = c
		s.win.advance(1)
		return nil
	}

	_, err := s.Write([]byte{c})
	return err
}

// Write buffers p, flushing each time the buffer fills up. If a flush
// fails, Write returns the number of bytes of p that were buffered before
// the failure together with the error.
func (s *Stream) Write(p []byte) (int, error) {
	if err := s.usable(streamio.WriteOnly); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.passthrough() {
		return s.writeThrough(p)
	}

	pos := 0
	for pos < len(p) {
		if s.win.atEnd() {
			if err := s.flushFull(); err != nil {
				return pos, err
			}
		}

		n := copy(s.buf[s.win.offset():s.win.end-s.win.tag], p[pos:])
		pos += n
		s.win.advance(n)
	}
	return pos, nil
}
