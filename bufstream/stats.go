package bufstream

// Stats counts the descriptor-level work a stream has done.
type Stats struct {
	Fills   int
	Flushes int

	ReadCalls  int
	WriteCalls int
	SeekCalls  int

	// Retries counts system calls repeated after EINTR.
	Retries int
}

// Stats returns a snapshot of the stream's counters.
func (s *Stream) Stats() Stats {
	return s.stats
}
