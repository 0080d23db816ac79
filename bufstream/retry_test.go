package bufstream

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestRetryInterrupted(t *testing.T) {
	calls, retries := 0, 0
	n, err := retryInterrupted(func() { retries++ }, func() (int, error) {
		calls++
		if calls < 4 {
			return 0, unix.EINTR
		}
		return 5, nil
	})
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, 4, calls)
	require.Equal(t, 3, retries)

	calls = 0
	_, err = retryInterrupted(nil, func() (int64, error) {
		calls++
		return 0, unix.EBADF
	})
	require.ErrorIs(t, err, unix.EBADF)
	require.Equal(t, 1, calls)
}
