package bufstream

import "io"

// Once a stream is known to be char-like its buffer is bypassed: every
// transfer is handed to the descriptor as is, and the window collapses to
// the logical position. Read-ahead buffered before the switch is served
// first.

func (s *Stream) readThrough(p []byte) (int, error) {
	n, err := s.read(p)
	if err != nil {
		return 0, ioError("read", s.d.Fd(), s.win.pos, err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	s.win.reset(s.win.pos+int64(n), 0)
	return n, nil
}

func (s *Stream) writeThrough(p []byte) (int, error) {
	n, err := s.writeFull(p)
	s.win.reset(s.win.pos+int64(n), s.room())
	if err != nil {
		return n, ioError("write", s.d.Fd(), s.win.pos, err)
	}
	return n, nil
}
