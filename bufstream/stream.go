// Package bufstream implements a single-buffer cache over one file
// descriptor. A Stream serves byte and block reads from its buffer, or
// from a read-only mapping of the file, and batches writes into buffer
// sized system calls, while keeping the exact read, write and seek
// semantics of the descriptor underneath.
//
// A Stream is not safe for concurrent use.
package bufstream

import (
	"github.com/jmgilman/go/errors"

	"github.com/keks/streamio"
)

// Stream is a buffered cursor over a descriptor opened either read-only or
// write-only.
type Stream struct {
	d    streamio.Descriptor
	mode streamio.Mode
	cfg  config

	buf []byte
	src source
	win window

	// size is the file size seen at open time.
	size     int64
	charLike bool
	closed   bool

	stats Stats
}

var _ streamio.Stream = (*Stream)(nil)

// Open wraps d in a stream. Read-only streams on non-empty regular files
// are served from a read-only mapping when one can be made; any failure to
// map falls back to the buffered path.
func Open(d streamio.Descriptor, mode streamio.Mode, opts ...Option) (*Stream, error) {
	if !mode.Valid() {
		return nil, errors.Newf(errors.CodeInvalidInput, "unsupported stream mode %d", mode)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	info, err := d.Stat()
	if err != nil {
		return nil, ioError("stat", d.Fd(), 0, err)
	}

	s := &Stream{
		d:    d,
		mode: mode,
		cfg:  cfg,
		size: info.Size,
	}

	if mode == streamio.ReadOnly && cfg.mmap && info.Regular && info.Size > 0 && int64(int(info.Size)) == info.Size {
		data, err := d.Map(int(info.Size))
		if err == nil {
			s.src = mappedSource{data: data}
			s.win = newWindow(info.Size, 0)
			cfg.logger.Debug("mapped file", "fd", d.Fd(), "size", info.Size)
			return s, nil
		}
		cfg.logger.Debug("mapping failed, using buffer", "fd", d.Fd(), "error", err)
	}

	s.buf = make([]byte, cfg.bufferSize)
	s.src = bufferedSource{buf: s.buf}
	s.win = newWindow(s.room(), int64(cfg.bufferSize))

	return s, nil
}

// Close flushes pending writes and releases the mapping and the
// descriptor. The descriptor is closed even if the flush fails; the first
// error is returned.
func (s *Stream) Close() error {
	if s.closed {
		return closedError()
	}
	s.closed = true

	var firstErr error
	if s.mode == streamio.WriteOnly {
		if err := s.drain(); err != nil {
			s.cfg.logger.Warn("flush on close failed", "fd", s.d.Fd(), "pending", s.win.dirty(), "error", err)
			firstErr = err
		}
	}

	if err := s.src.release(s.d); err != nil && firstErr == nil {
		firstErr = ioError("munmap", s.d.Fd(), 0, err)
	}
	if err := s.d.Close(); err != nil && firstErr == nil {
		firstErr = ioError("close", s.d.Fd(), 0, err)
	}

	s.buf = nil
	s.src = bufferedSource{}
	return firstErr
}

// FileSize asks the descriptor for the file's current size. It reports
// false for pipes, terminals and anything else that is not a regular
// file.
func (s *Stream) FileSize() (int64, bool) {
	info, err := s.d.Stat()
	if err != nil || !info.Regular {
		return 0, false
	}
	return info.Size, true
}

func (s *Stream) Fd() int {
	return s.d.Fd()
}

func (s *Stream) Mode() streamio.Mode {
	return s.mode
}

// Mapped reports whether reads are served from a memory mapping.
func (s *Stream) Mapped() bool {
	_, ok := s.src.(mappedSource)
	return ok
}

// CharLike reports whether a seek has shown the descriptor to be a pipe or
// terminal.
func (s *Stream) CharLike() bool {
	return s.charLike
}

// Offset returns the logical position of the next byte to be read or
// written.
func (s *Stream) Offset() int64 {
	return s.win.pos
}

// room is the write space a fresh window gets.
func (s *Stream) room() int64 {
	if s.mode == streamio.WriteOnly {
		return int64(s.cfg.bufferSize)
	}
	return 0
}

func (s *Stream) usable(mode streamio.Mode) error {
	if s.closed {
		return closedError()
	}
	if s.mode != mode {
		return errors.Newf(errors.CodeInvalidInput, "stream is %s", s.mode)
	}
	return nil
}

// passthrough reports whether transfers bypass the buffer.
func (s *Stream) passthrough() bool {
	return s.charLike && s.cfg.charLike == CharLikePassthrough
}
