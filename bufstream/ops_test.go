package bufstream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type op interface {
	Do(*testing.T, *Stream)
}

func checkErr(t *testing.T, expErr, err error) {
	if expErr == nil {
		require.NoError(t, err)
	} else {
		require.ErrorIs(t, err, expErr)
	}
}

type writeOp struct {
	data []byte

	expN   int
	expErr error
}

func (op writeOp) Do(t *testing.T, s *Stream) {
	n, err := s.Write(op.data)
	t.Logf("writeOp, n: %d, err: %v", n, err)

	require.Equal(t, op.expN, n)
	checkErr(t, op.expErr, err)
}

type writeByteOp struct {
	c byte

	expErr error
}

func (op writeByteOp) Do(t *testing.T, s *Stream) {
	checkErr(t, op.expErr, s.WriteByte(op.c))
}

type readOp struct {
	readlen int

	exp    []byte
	expN   int
	expErr error
}

func (op readOp) Do(t *testing.T, s *Stream) {
	r := require.New(t)
	if op.readlen == 0 {
		op.readlen = len(op.exp)
	}

	buf := make([]byte, op.readlen)
	n, err := s.Read(buf)
	t.Logf("readOp, n: %d, err: %v", n, err)

	checkErr(t, op.expErr, err)
	r.Equal(op.expN, n)
	t.Logf("buffer contents %q | 0x%x", buf[:op.expN], buf[:op.expN])
	r.True(bytes.Equal(buf[:op.expN], op.exp))
}

type readByteOp struct {
	exp    byte
	expErr error
}

func (op readByteOp) Do(t *testing.T, s *Stream) {
	c, err := s.ReadByte()
	checkErr(t, op.expErr, err)
	if op.expErr == nil {
		require.Equal(t, op.exp, c, "byte at offset %d", s.Offset()-1)
	}
}

type seekOp struct {
	off int64

	expErr error
}

func (op seekOp) Do(t *testing.T, s *Stream) {
	checkErr(t, op.expErr, s.SeekTo(op.off))
}

type flushOp struct {
	expErr error
}

func (op flushOp) Do(t *testing.T, s *Stream) {
	checkErr(t, op.expErr, s.Flush())
}

type offsetOp struct {
	exp int64
}

func (op offsetOp) Do(t *testing.T, s *Stream) {
	require.Equal(t, op.exp, s.Offset())
}

type dumpOp struct {
	name string
}

func (op dumpOp) Do(t *testing.T, s *Stream) {
	t.Logf("%s: %+v mapped=%v charLike=%v stats=%+v", op.name, s.win, s.Mapped(), s.CharLike(), s.Stats())
}
