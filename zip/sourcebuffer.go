package zip

// SourceBuffer is a caller-provided byte view handed to AddEntry.
// FreeOnConsume marks that ownership
// of Data passes to the engine once AddEntry has consumed it: the engine
// is then free to release (here: nil out) the caller's reference instead
// of copying. When FreeOnConsume is false the buffer is only
// borrowed and AddEntry must leave it untouched for the caller to reuse.
type SourceBuffer struct {
	Data          []byte
	FreeOnConsume bool
}

// NewSourceBuffer wraps data as a borrowed source buffer: AddEntry reads
// it but the caller retains ownership.
func NewSourceBuffer(data []byte) *SourceBuffer {
	return &SourceBuffer{Data: data}
}

// NewOwnedSourceBuffer wraps data as a source buffer whose backing array
// AddEntry may free after consuming it.
func NewOwnedSourceBuffer(data []byte) *SourceBuffer {
	return &SourceBuffer{Data: data, FreeOnConsume: true}
}

// consume returns the buffer's bytes and, if FreeOnConsume is set,
// releases the caller-visible reference to them.
func (s *SourceBuffer) consume() []byte {
	data := s.Data
	if s.FreeOnConsume {
		s.Data = nil
	}
	return data
}
