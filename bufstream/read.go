package bufstream

import (
	"io"

	"github.com/keks/streamio"
)

// ReadByte returns the next byte, or io.EOF once the stream is
// exhausted.
func (s *Stream) ReadByte() (byte, error) {
	if !s.closed && s.mode == streamio.ReadOnly && !s.win.atEnd() {
		c := s.src.unread(&s.win)[0]
		s.win.advance(1)
		return c, nil
	}

	var c [1]byte
	if _, err := s.Read(c[:]); err != nil {
		return 0, err
	}
	return c[0], nil
}

// Read copies up to len(p) bytes into p, refilling the buffer as often as
// needed. A short count with a nil error means end of file or a failed
// read was hit after some bytes were copied. io.EOF and read errors are
// only returned when no byte was copied at all.
func (s *Stream) Read(p []byte) (int, error) {
	if err := s.usable(streamio.ReadOnly); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.passthrough() {
		if s.win.atEnd() {
			return s.readThrough(p)
		}
		n := copy(p, s.src.unread(&s.win))
		s.win.advance(n)
		return n, nil
	}

	pos := 0
	for pos < len(p) {
		if s.win.atEnd() {
			n, err := s.fill()
			if err != nil {
				if pos == 0 {
					return 0, err
				}
				break
			}
			if n == 0 {
				break
			}
		}

		n, err := s.src.copyOut(p[pos:], &s.win)
		if err != nil {
			if pos == 0 {
				return 0, ioError("read", s.d.Fd(), s.win.pos, err)
			}
			break
		}
		pos += n
		s.win.advance(n)
	}

	if pos == 0 {
		return 0, io.EOF
	}
	return pos, nil
}
