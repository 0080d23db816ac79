package streamio // import "github.com/keks/streamio"

import (
	"io"

	"github.com/jmgilman/go/errors"
)

// Basic Types

// Mode selects the direction of a stream. A stream is either read-only or
// write-only, never both.
type Mode uint8

const (
	// ReadOnly streams fill their buffer from the descriptor.
	ReadOnly Mode = iota

	// WriteOnly streams drain their buffer into the descriptor.
	WriteOnly
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	default:
		return "invalid"
	}
}

// Valid reports whether m is one of the two supported modes.
func (m Mode) Valid() bool {
	return m == ReadOnly || m == WriteOnly
}

// Descriptor Layer

// FileInfo is the part of a descriptor's metadata the stream cares about.
type FileInfo struct {
	Size    int64
	Regular bool
}

// Descriptor is the raw handle a stream sits on. Every method maps to a
// single system call: Read and Write may transfer fewer bytes than asked
// for and may fail with an interruption error that the caller retries.
type Descriptor interface {
	Fd() int

	Read(p []byte) (int, error)
	Write(p []byte) (int, error)

	// SeekTo moves the descriptor to the absolute offset off and returns
	// the offset it landed on.
	SeekTo(off int64) (int64, error)

	Stat() (FileInfo, error)

	// Map returns a read-only mapping of the first size bytes.
	Map(size int) ([]byte, error)
	Unmap(data []byte) error

	Close() error
}

// Stream Layer

// Stream is a buffered byte cursor over one descriptor.
type Stream interface {
	io.Reader
	io.ByteReader
	io.Writer
	io.ByteWriter
	io.Seeker
	io.Closer

	// SeekTo moves the position to the absolute offset off.
	SeekTo(off int64) error
	Flush() error

	// FileSize returns the size of the underlying file, or false if the
	// descriptor is not a regular file.
	FileSize() (int64, bool)
	Fd() int
}

// Errors

const (
	// CodeIO marks an unrecoverable system call failure. The errno is
	// kept as the cause.
	CodeIO errors.ErrorCode = "IO_ERROR"

	// CodeNotSeekable marks a seek on a stream that turned out to be a
	// pipe or terminal.
	CodeNotSeekable errors.ErrorCode = "NOT_SEEKABLE"
)

// IsIOError reports whether err is a failed system call.
func IsIOError(err error) bool {
	return errors.GetCode(err) == CodeIO
}

// IsNotSeekable reports whether err was returned by a seek on a
// char-like stream.
func IsNotSeekable(err error) bool {
	return errors.GetCode(err) == CodeNotSeekable
}
