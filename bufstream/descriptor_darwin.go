package bufstream

import "golang.org/x/sys/unix"

const mapFlags = unix.MAP_PRIVATE
