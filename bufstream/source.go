package bufstream

import (
	"fmt"
	"runtime/debug"

	"github.com/keks/streamio"
)

// source is where buffered bytes live: the stream's own buffer or a
// read-only mapping of the whole file. A stream picks one at open time
// and keeps it until close.
type source interface {
	// unread returns the bytes between the cursor and the window end.
	unread(w *window) []byte

	// copyOut copies unread bytes into dst.
	copyOut(dst []byte, w *window) (int, error)

	release(d streamio.Descriptor) error
}

type bufferedSource struct {
	buf []byte
}

func (s bufferedSource) unread(w *window) []byte {
	return s.buf[w.pos-w.tag : w.end-w.tag]
}

func (s bufferedSource) copyOut(dst []byte, w *window) (int, error) {
	return copy(dst, s.unread(w)), nil
}

func (bufferedSource) release(streamio.Descriptor) error {
	return nil
}

// mappedSource is indexed by absolute file offset.
type mappedSource struct {
	data []byte
}

func (s mappedSource) unread(w *window) []byte {
	return s.data[w.pos:w.end]
}

// copyOut turns a fault on the mapping, e.g. after the file was truncated
// underneath us, into an error instead of a crash.
func (s mappedSource) copyOut(dst []byte, w *window) (n int, err error) {
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			n = 0
			err = fmt.Errorf("page fault reading mapping at offset %d: %v", w.pos, r)
		}
	}()

	return copy(dst, s.unread(w)), nil
}

func (s mappedSource) release(d streamio.Descriptor) error {
	return d.Unmap(s.data)
}
