package bufstream

import "golang.org/x/sys/unix"

// Prefault the whole mapping; it is read front to back anyway.
const mapFlags = unix.MAP_PRIVATE | unix.MAP_POPULATE | unix.MAP_NORESERVE
