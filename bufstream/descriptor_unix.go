//go:build darwin || linux

package bufstream

import (
	"io"

	"github.com/jmgilman/go/errors"
	"golang.org/x/sys/unix"

	"github.com/keks/streamio"
)

// fdDescriptor issues raw system calls on a file descriptor. Unlike
// os.File it does not hide EINTR, so the stream sees every interruption.
type fdDescriptor struct {
	fd int
}

// NewDescriptor wraps a raw file descriptor. The returned Descriptor owns
// fd and closes it on Close.
func NewDescriptor(fd int) streamio.Descriptor {
	return fdDescriptor{fd: fd}
}

func (d fdDescriptor) Fd() int {
	return d.fd
}

func (d fdDescriptor) Read(p []byte) (int, error) {
	n, err := unix.Read(d.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (d fdDescriptor) Write(p []byte) (int, error) {
	n, err := unix.Write(d.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (d fdDescriptor) SeekTo(off int64) (int64, error) {
	return unix.Seek(d.fd, off, io.SeekStart)
}

func (d fdDescriptor) Stat() (streamio.FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Fstat(d.fd, &st); err != nil {
		return streamio.FileInfo{}, err
	}
	return streamio.FileInfo{
		Size:    st.Size,
		Regular: uint32(st.Mode)&unix.S_IFMT == unix.S_IFREG,
	}, nil
}

func (d fdDescriptor) Map(size int) ([]byte, error) {
	return unix.Mmap(d.fd, 0, size, unix.PROT_READ, mapFlags)
}

func (d fdDescriptor) Unmap(data []byte) error {
	return unix.Munmap(data)
}

func (d fdDescriptor) Close() error {
	return unix.Close(d.fd)
}

// OpenFD opens a stream on a raw file descriptor.
func OpenFD(fd int, mode streamio.Mode, opts ...Option) (*Stream, error) {
	return Open(NewDescriptor(fd), mode, opts...)
}

// OpenFile opens path for reading or writing and wraps it in a stream.
// Write-only files are created if missing and truncated. An empty path
// means standard input for ReadOnly and standard output for WriteOnly.
func OpenFile(path string, mode streamio.Mode, opts ...Option) (*Stream, error) {
	var fd int
	switch {
	case path == "" && mode == streamio.ReadOnly:
		fd = unix.Stdin
	case path == "":
		fd = unix.Stdout
	default:
		flags := unix.O_RDONLY
		if mode == streamio.WriteOnly {
			flags = unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC
		}
		var err error
		fd, err = unix.Open(path, flags|unix.O_CLOEXEC, 0o666)
		if err != nil {
			return nil, errors.WrapWithContext(err, streamio.CodeIO, "open failed", map[string]interface{}{
				"op":   "open",
				"path": path,
			})
		}
	}

	s, err := OpenFD(fd, mode, opts...)
	if err != nil && path != "" {
		unix.Close(fd)
	}
	return s, err
}
