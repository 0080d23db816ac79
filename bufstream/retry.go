package bufstream

import (
	"errors"

	"golang.org/x/sys/unix"
)

// retryInterrupted runs op until it fails with something other than
// EINTR. onRetry is called once per swallowed interruption.
func retryInterrupted[T any](onRetry func(), op func() (T, error)) (T, error) {
	for {
		v, err := op()
		if err != nil && errors.Is(err, unix.EINTR) {
			if onRetry != nil {
				onRetry()
			}
			continue
		}
		return v, err
	}
}

// isSeekPipe reports whether err says the descriptor is a pipe or socket.
func isSeekPipe(err error) bool {
	return errors.Is(err, unix.ESPIPE)
}
