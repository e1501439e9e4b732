package codec

// storeCodec implements the identity method (0): encoder copies bytes,
// decoder copies bytes.
type storeCodec struct{}

func init() {
	Register(Store, storeCodec{})
}

func (storeCodec) NewEncoder(int) (Encoder, error) {
	return &storeSession{}, nil
}

func (storeCodec) NewDecoder(int) (Decoder, error) {
	return &storeSession{}, nil
}

// storeSession is its own Encoder and Decoder: both directions are a
// straight copy, resumable the same way DEFLATE's raw blocks are (copy as
// much as fits, report StatusOK, and let the caller come back for more).
type storeSession struct {
	done bool
}

func (s *storeSession) Process(in, out []byte, flush Flush) (consumed, produced int, status Status, err error) {
	if s.done {
		return 0, 0, StatusStreamEnd, nil
	}

	n := copy(out, in)
	if flush == FlushFinish && n == len(in) {
		s.done = true
		return n, n, StatusStreamEnd, nil
	}

	return n, n, StatusOK, nil
}

func (s *storeSession) End() error {
	s.done = true
	return nil
}
