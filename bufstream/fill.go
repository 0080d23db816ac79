package bufstream

// fill refills an exhausted read buffer with the bytes that follow it.
func (s *Stream) fill() (int, error) {
	return s.fillAt(s.win.end, -1)
}

// fillAt restarts the window at restart and reads until the buffer is
// full, the descriptor reports end of file, or a read fails. If target is
// not negative the cursor lands on it, or on the window end if the file
// is shorter. It returns the number of bytes read; an error is only
// returned when it struck before any byte arrived.
func (s *Stream) fillAt(restart, target int64) (int, error) {
	if _, ok := s.src.(mappedSource); ok {
		return 0, nil
	}

	s.stats.Fills++
	s.win.reset(restart, 0)

	nread := 0
	for nread < len(s.buf) {
		n, err := s.read(s.buf[nread:])
		if err != nil {
			if nread == 0 {
				return 0, ioError("read", s.d.Fd(), s.win.end, err)
			}
			s.cfg.logger.Debug("read failed after partial fill", "fd", s.d.Fd(), "filled", nread, "error", err)
			break
		}
		if n == 0 {
			break
		}
		nread += n
		s.win.grow(n)
	}

	if target >= 0 {
		s.win.moveTo(min(s.win.end, target))
	}
	return nread, nil
}

// read issues one read, repeating it if it is interrupted.
func (s *Stream) read(p []byte) (int, error) {
	return retryInterrupted(s.countRetry, func() (int, error) {
		s.stats.ReadCalls++
		return s.d.Read(p)
	})
}

func (s *Stream) countRetry() {
	s.stats.Retries++
}
