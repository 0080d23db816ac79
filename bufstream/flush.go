package bufstream

import (
	"io"

	"github.com/keks/streamio"
)

// Flush writes out buffered data of a write stream. On a read stream it
// drops the read-ahead instead, leaving the descriptor at the current
// position so the next read starts from there.
func (s *Stream) Flush() error {
	if s.closed {
		return closedError()
	}

	if s.mode == streamio.ReadOnly {
		return s.dropReadAhead()
	}

	if err := s.drain(); err != nil {
		return err
	}
	if s.win.pos != s.win.hi {
		// The cursor was moved back into the written data; the
		// descriptor sits after all of it.
		charLike, err := s.seekDescriptor(s.win.pos)
		if err != nil {
			return err
		}
		if charLike && !s.passthrough() {
			off := s.win.pos
			s.win.reset(s.win.hi, s.room())
			return notSeekable(s.d.Fd(), off)
		}
	}
	s.win.reset(s.win.pos, s.room())
	return nil
}

// drain writes the buffered bytes [tag, hi) to the descriptor, repeating
// short and interrupted writes. On success the window is left alone for
// the caller to restart. On failure the bytes that did make it out are
// dropped from the front of the buffer so that a later flush resumes after
// them; a cursor that was moved back into them ends up right after them.
func (s *Stream) drain() error {
	pending := s.win.dirty()
	if pending == 0 || s.passthrough() {
		return nil
	}
	s.stats.Flushes++

	written, err := s.writeFull(s.buf[:pending])
	if err != nil {
		if written > 0 {
			copy(s.buf, s.buf[written:pending])
			s.win.trim(written)
		}
		return ioError("write", s.d.Fd(), s.win.tag, err)
	}

	s.cfg.logger.Debug("flushed buffer", "fd", s.d.Fd(), "offset", s.win.tag, "bytes", pending)
	return nil
}

// flushFull drains a full buffer and opens a fresh window right after it.
func (s *Stream) flushFull() error {
	if err := s.drain(); err != nil {
		return err
	}
	s.win.reset(s.win.hi, s.room())
	return nil
}

// dropReadAhead forgets the unread part of the buffer after moving the
// descriptor back to the cursor. Read-ahead from a char-like descriptor
// cannot be given back, so it stays buffered.
func (s *Stream) dropReadAhead() error {
	if s.Mapped() || s.passthrough() {
		return nil
	}
	if s.win.atEnd() {
		s.win.reset(s.win.pos, 0)
		return nil
	}

	charLike, err := s.seekDescriptor(s.win.pos)
	if err != nil {
		return err
	}
	if charLike {
		if !s.passthrough() {
			return notSeekable(s.d.Fd(), s.win.pos)
		}
		return nil
	}
	s.win.reset(s.win.pos, 0)
	return nil
}

// writeFull writes all of p, one system call at a time.
func (s *Stream) writeFull(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := retryInterrupted(s.countRetry, func() (int, error) {
			s.stats.WriteCalls++
			return s.d.Write(p[written:])
		})
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}
