package codec

import "fmt"

// bufferedSession adapts a whole-buffer transform (the shape every
// ecosystem compression library actually exposes: NewReader/NewWriter over
// a complete io.Reader/io.Writer) to the incremental Process contract.
//
// It accumulates every byte handed to it until flush is FlushFinish, runs
// transform exactly once, then drains the result across as many Process
// calls as the caller needs. This is sufficient for every codec in this
// repository except DEFLATE, whose decoder implements genuine incremental,
// resumable Process semantics because the container engine's round-trip
// invariant depends on it (its encoder buffers the whole input the same
// way this adapter does).
type bufferedSession struct {
	transform func([]byte) ([]byte, error)
	pending   []byte
	out       []byte
	ran       bool
	done      bool
}

func newBufferedSession(transform func([]byte) ([]byte, error)) *bufferedSession {
	return &bufferedSession{transform: transform}
}

func (s *bufferedSession) Process(in, out []byte, flush Flush) (consumed, produced int, status Status, err error) {
	if s.done {
		return 0, 0, StatusStreamEnd, nil
	}

	if len(in) > 0 {
		s.pending = append(s.pending, in...)
		consumed = len(in)
	}

	if !s.ran {
		if flush != FlushFinish {
			return consumed, 0, StatusOK, nil
		}

		if s.out, err = s.transform(s.pending); err != nil {
			return consumed, 0, StatusOK, fmt.Errorf("transform error: %w", err)
		}
		s.ran = true
		s.pending = nil
	}

	produced = copy(out, s.out)
	s.out = s.out[produced:]
	if len(s.out) == 0 {
		s.done = true
		return consumed, produced, StatusStreamEnd, nil
	}

	return consumed, produced, StatusOK, nil
}

func (s *bufferedSession) End() error {
	s.pending, s.out = nil, nil
	s.done = true
	return nil
}
