package bufstream

import (
	"golang.org/x/sys/unix"

	"github.com/keks/streamio"
)

// memDescriptor is an in-memory file with knobs for the failure modes of
// a real descriptor.
type memDescriptor struct {
	buf []byte
	off int64

	pipe     bool // seeks fail with ESPIPE, stat reports a non-regular file
	zeroSeek bool // seeks land on 0
	noMap    bool

	chunk      int   // per-call transfer cap, 0 means none
	interrupts int   // pending EINTRs for reads and writes
	space      int64 // file size cap, writes beyond fail with ENOSPC; 0 means none
	readErrAt  int64 // reads at or past this offset fail with EIO; 0 means never
	readErr    error
	statErr    error

	calls    []string
	unmapped int
	closed   int
}

func newMem(data string) *memDescriptor {
	return &memDescriptor{buf: []byte(data)}
}

func (d *memDescriptor) Fd() int {
	return 42
}

func (d *memDescriptor) limit(n int) int {
	if d.chunk > 0 && n > d.chunk {
		return d.chunk
	}
	return n
}

func (d *memDescriptor) Read(p []byte) (int, error) {
	d.calls = append(d.calls, "read")
	if d.interrupts > 0 {
		d.interrupts--
		return 0, unix.EINTR
	}
	if d.readErr != nil {
		return 0, d.readErr
	}
	if d.readErrAt > 0 && d.off >= d.readErrAt {
		return 0, unix.EIO
	}
	if d.off >= int64(len(d.buf)) {
		return 0, nil
	}

	n := copy(p[:d.limit(len(p))], d.buf[d.off:])
	d.off += int64(n)
	return n, nil
}

func (d *memDescriptor) Write(data []byte) (int, error) {
	d.calls = append(d.calls, "write")
	if d.interrupts > 0 {
		d.interrupts--
		return 0, unix.EINTR
	}

	data = data[:d.limit(len(data))]
	if d.space > 0 {
		free := d.space - d.off
		if free <= 0 {
			return 0, unix.ENOSPC
		}
		if int64(len(data)) > free {
			data = data[:free]
		}
	}

	if end := int(d.off) + len(data); end > len(d.buf) {
		d.buf = append(d.buf, make([]byte, end-len(d.buf))...)
	}
	copy(d.buf[d.off:], data)
	d.off += int64(len(data))

	return len(data), nil
}

func (d *memDescriptor) SeekTo(off int64) (int64, error) {
	d.calls = append(d.calls, "seek")
	if d.pipe {
		return 0, unix.ESPIPE
	}
	if d.zeroSeek {
		return 0, nil
	}
	d.off = off
	return off, nil
}

func (d *memDescriptor) Stat() (streamio.FileInfo, error) {
	if d.statErr != nil {
		return streamio.FileInfo{}, d.statErr
	}
	return streamio.FileInfo{Size: int64(len(d.buf)), Regular: !d.pipe}, nil
}

func (d *memDescriptor) Map(size int) ([]byte, error) {
	if d.noMap {
		return nil, unix.ENODEV
	}
	return append([]byte(nil), d.buf[:size]...), nil
}

func (d *memDescriptor) Unmap([]byte) error {
	d.unmapped++
	return nil
}

func (d *memDescriptor) Close() error {
	d.closed++
	return nil
}
