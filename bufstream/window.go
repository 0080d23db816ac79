package bufstream

import "fmt"

// window tracks which part of the logical file the buffer holds.
//
// tag is the offset of the first buffered byte, pos is the cursor and end
// is one past the last usable byte: the last valid byte for read streams,
// the last byte of free room for write streams. hi is the write
// high-water mark, one past the last byte written into the buffer; a
// write stream may seek back below it without losing the data after pos.
//
// limit caps end-tag. It is zero for mapped streams.
type window struct {
	tag   int64
	pos   int64
	end   int64
	hi    int64
	limit int64
}

func newWindow(end, limit int64) window {
	w := window{end: end, limit: limit}
	w.check()
	return w
}

func (w *window) check() {
	if w.tag < 0 || w.tag > w.pos || w.pos > w.end || w.hi < w.tag || w.hi > w.end {
		panic(fmt.Sprintf("bufstream: broken window tag=%d pos=%d hi=%d end=%d", w.tag, w.pos, w.hi, w.end))
	}
	if w.limit > 0 && w.end-w.tag > w.limit {
		panic(fmt.Sprintf("bufstream: window [%d,%d) wider than %d", w.tag, w.end, w.limit))
	}
}

// reset starts an empty window at off with room bytes of write space.
func (w *window) reset(off, room int64) {
	w.tag, w.pos, w.hi, w.end = off, off, off, off+room
	w.check()
}

// moveTo places the cursor at off, which must lie inside the window.
func (w *window) moveTo(off int64) {
	w.pos = off
	w.check()
}

// advance moves the cursor forward by n bytes that were just read or
// written.
func (w *window) advance(n int) {
	w.pos += int64(n)
	if w.pos > w.hi {
		w.hi = w.pos
	}
	w.check()
}

// grow extends the valid part of a read window by n freshly filled bytes.
func (w *window) grow(n int) {
	w.end += int64(n)
	w.hi = w.end
	w.check()
}

// trim drops the first n bytes of the window, which have left the buffer.
// A cursor that sat inside the dropped bytes moves up to the new tag: those
// bytes are on the descriptor now and can no longer be rewritten in place.
func (w *window) trim(n int) {
	w.tag += int64(n)
	if w.pos < w.tag {
		w.pos = w.tag
	}
	w.check()
}

func (w *window) atEnd() bool {
	return w.pos == w.end
}

// offset is the cursor's index into the buffer.
func (w *window) offset() int {
	return int(w.pos - w.tag)
}

// dirty is the number of buffered bytes not yet written out.
func (w *window) dirty() int {
	return int(w.hi - w.tag)
}

func (w *window) holds(off int64) bool {
	return w.tag <= off && off <= w.end
}

// holdsWritten reports whether off lies in the written part of the
// window, where a write stream may move without flushing.
func (w *window) holdsWritten(off int64) bool {
	return w.tag <= off && off <= w.hi
}
