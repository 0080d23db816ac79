package bufstream

import (
	"io/fs"

	"github.com/jmgilman/go/errors"

	"github.com/keks/streamio"
)

func ioError(op string, fd int, off int64, err error) error {
	return errors.WrapWithContext(err, streamio.CodeIO, op+" failed", map[string]interface{}{
		"op":     op,
		"fd":     fd,
		"offset": off,
	})
}

func notSeekable(fd int, off int64) error {
	return errors.WrapWithContext(errNotSeekable, streamio.CodeNotSeekable, "seek on char-like stream", map[string]interface{}{
		"fd":     fd,
		"offset": off,
	})
}

var errNotSeekable = errors.New(streamio.CodeNotSeekable, "descriptor does not support positional seeking")

func closedError() error {
	return errors.Wrap(fs.ErrClosed, errors.CodeInvalidInput, "stream is closed")
}
