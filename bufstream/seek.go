package bufstream

import (
	"io"

	"github.com/jmgilman/go/errors"

	"github.com/keks/streamio"
)

// Seek implements io.Seeker on top of SeekTo. io.SeekEnd is relative to
// the file size, counting bytes still sitting in a write buffer.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = s.win.pos + offset
	case io.SeekEnd:
		size, ok := s.FileSize()
		if !ok {
			return 0, errors.New(errors.CodeInvalidInput, "seek relative to end of a stream without a size")
		}
		if s.mode == streamio.WriteOnly {
			size = max(size, s.win.hi)
		}
		target = size + offset
	default:
		return 0, errors.Newf(errors.CodeInvalidInput, "invalid whence %d", whence)
	}

	if err := s.SeekTo(target); err != nil {
		return 0, err
	}
	return target, nil
}

// SeekTo moves the stream to the absolute offset off. Targets inside the
// buffered window cost nothing. Anything else flushes a write stream or
// refills a read stream around off. Read positions past the end of the
// file are clamped to the end. A char-like read stream keeps its cursor:
// bytes already pulled from a pipe are still delivered, in order.
func (s *Stream) SeekTo(off int64) error {
	if s.closed {
		return closedError()
	}
	if off < 0 {
		return errors.Newf(errors.CodeInvalidInput, "negative offset %d", off)
	}

	switch {
	case s.Mapped():
		s.win.moveTo(min(off, s.win.end))
		return nil
	case s.passthrough() && s.mode == streamio.WriteOnly:
		s.win.reset(off, s.room())
		return nil
	case s.mode == streamio.WriteOnly:
		return s.seekWrite(off)
	default:
		return s.seekRead(off)
	}
}

func (s *Stream) seekWrite(off int64) error {
	if s.win.holdsWritten(off) {
		s.win.moveTo(off)
		return nil
	}

	if err := s.drain(); err != nil {
		return err
	}
	s.win.reset(s.win.hi, s.room())

	charLike, err := s.seekDescriptor(off)
	if err != nil {
		return err
	}
	if charLike && !s.passthrough() {
		return notSeekable(s.d.Fd(), off)
	}
	s.win.reset(off, s.room())
	return nil
}

func (s *Stream) seekRead(off int64) error {
	if s.win.holds(off) {
		s.win.moveTo(off)
		return nil
	}
	if s.passthrough() {
		return nil
	}

	size := int64(len(s.buf))
	aligned := off - off%size
	charLike, err := s.seekDescriptor(aligned)
	if err != nil {
		return err
	}
	if charLike {
		if !s.passthrough() {
			return notSeekable(s.d.Fd(), off)
		}
		return nil
	}

	_, err = s.fillAt(aligned, off)
	return err
}

// seekDescriptor moves the descriptor to off and reports whether it turned
// out to be char-like: either the seek failed with ESPIPE or it landed on
// 0 when something else was asked for.
func (s *Stream) seekDescriptor(off int64) (bool, error) {
	landed, err := retryInterrupted(s.countRetry, func() (int64, error) {
		s.stats.SeekCalls++
		return s.d.SeekTo(off)
	})
	switch {
	case err != nil && !isSeekPipe(err):
		return false, ioError("seek", s.d.Fd(), off, err)
	case err == nil && landed == off:
		return false, nil
	case err == nil && landed != 0:
		return false, errors.Newf(streamio.CodeIO, "seek to %d landed at %d", off, landed)
	}

	if !s.charLike {
		s.charLike = true
		s.cfg.logger.Debug("descriptor is char-like", "fd", s.d.Fd(), "offset", off, "policy", s.cfg.charLike)
	}
	return true, nil
}
