package deflate

import (
	"fmt"

	"github.com/nguyengg/otezip/codec"
)

type phase int

const (
	phaseWrapper phase = iota
	phaseBlockStart
	phaseRawLen
	phaseRawCopy
	phaseDynCounts
	phaseDynCL
	phaseDynLengths
	phaseDynRepeatExtra
	phaseLitLen
	phaseLenExtra
	phaseDistSym
	phaseDistExtra
	phaseCopy
	phaseDone
)

var (
	fixedLitLenTable *huffTable
	fixedDistTable   *huffTable
)

func init() {
	fixedLitLenTable = buildHuffTable(fixedLitLenLengths())
	fixedDistTable = buildHuffTable(fixedDistLengths())
}

// Decoder is a resumable DEFLATE decoder state machine. It satisfies
// codec.Decoder.
type Decoder struct {
	r    bitReader
	win  *window
	mode wrapperMode

	phase phase
	final bool

	litTable, distTable *huffTable
	sym                 symbolDecoder

	// dynamic block header sub-state
	hlit, hdist, hclen int
	clLengths          [19]int
	clIdx              int
	clTable            *huffTable
	lengths            []int
	lenIdx             int
	lastLen            int
	repeatSym          int

	// raw block sub-state
	rawRemaining int

	// length/distance sub-state
	lenBase, lenExtra   int
	matchLen, matchDist int

	pendingOut []byte
	sticky     error
}

// NewDecoder creates a Decoder for the given windowBits encoding (raw <0,
// zlib 8-15, gzip 24-31, auto 40-47).
func NewDecoder(windowBits int) (*Decoder, error) {
	mode, bits, err := decodeWindowBits(windowBits)
	if err != nil {
		return nil, fmt.Errorf("decode windowBits error: %w", err)
	}

	d := &Decoder{
		win:   newWindow(bits),
		mode:  mode,
		phase: phaseWrapper,
	}
	return d, nil
}

func (d *Decoder) Process(in, out []byte, flush codec.Flush) (consumed, produced int, status codec.Status, err error) {
	if d.sticky != nil {
		return 0, 0, codec.StatusOK, d.sticky
	}

	if len(in) > 0 {
		d.r.feed(in)
		consumed = len(in)
	}

	// Stop stepping once a full out's worth of bytes is pending: the
	// suspended literal/copy state lives in the phase machine and the
	// residual bytes in pendingOut, and both resume on the next call.
	for d.phase != phaseDone && len(d.pendingOut) < len(out) {
		blocked, stepErr := d.step()
		if stepErr != nil {
			d.sticky = stepErr
			return consumed, d.drain(out), codec.StatusOK, stepErr
		}
		if blocked {
			break
		}
	}

	produced = d.drain(out)

	if d.phase == phaseDone && len(d.pendingOut) == 0 {
		return consumed, produced, codec.StatusStreamEnd, nil
	}
	return consumed, produced, codec.StatusOK, nil
}

func (d *Decoder) drain(out []byte) int {
	n := copy(out, d.pendingOut)
	d.pendingOut = d.pendingOut[n:]
	return n
}

func (d *Decoder) End() error {
	d.sticky = errClosed
	return nil
}

func (d *Decoder) emit(b byte) {
	d.win.writeByte(b)
	d.pendingOut = append(d.pendingOut, b)
}

// step performs one unit of decoding work. blocked means the reader did not
// have enough bits buffered and the caller should wait for more input; the
// phase/sub-state is left exactly as it was so the next call resumes
// cleanly.
func (d *Decoder) step() (blocked bool, err error) {
	switch d.phase {
	case phaseWrapper:
		mode, ok, err := peelHeader(&d.r, d.mode)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		d.mode = mode
		d.phase = phaseBlockStart
		return false, nil

	case phaseBlockStart:
		if !d.r.fill(3) {
			return true, nil
		}
		d.final = d.r.take(1) == 1
		switch d.r.take(2) {
		case 0:
			d.phase = phaseRawLen
		case 1:
			d.litTable, d.distTable = fixedLitLenTable, fixedDistTable
			d.phase = phaseLitLen
		case 2:
			d.phase = phaseDynCounts
		default:
			return false, fmt.Errorf("%w: %w", errBlockType3, codec.ErrDataError)
		}
		return false, nil

	case phaseRawLen:
		d.r.alignToByte()
		hdr, ok := d.r.takeAlignedBytes(4)
		if !ok {
			return true, nil
		}
		length := int(hdr[0]) | int(hdr[1])<<8
		nlength := int(hdr[2]) | int(hdr[3])<<8
		if length^nlength != 0xffff {
			return false, fmt.Errorf("raw block LEN/NLEN mismatch: %w", codec.ErrDataError)
		}
		d.rawRemaining = length
		d.phase = phaseRawCopy
		return false, nil

	case phaseRawCopy:
		if d.rawRemaining == 0 {
			d.phase = d.nextBlockPhase()
			return false, nil
		}
		b, ok := d.r.takeAlignedBytes(1)
		if !ok {
			return true, nil
		}
		d.emit(b[0])
		d.rawRemaining--
		return false, nil

	case phaseDynCounts:
		if !d.r.fill(14) {
			return true, nil
		}
		d.hlit = int(d.r.take(5)) + 257
		d.hdist = int(d.r.take(5)) + 1
		d.hclen = int(d.r.take(4)) + 4
		d.clIdx = 0
		d.clLengths = [19]int{}
		d.phase = phaseDynCL
		return false, nil

	case phaseDynCL:
		if d.clIdx >= d.hclen {
			d.clTable = buildHuffTable(d.clLengths[:])
			d.lengths = make([]int, d.hlit+d.hdist)
			d.lenIdx = 0
			d.lastLen = 0
			d.phase = phaseDynLengths
			return false, nil
		}
		if !d.r.fill(3) {
			return true, nil
		}
		d.clLengths[codeLengthOrder[d.clIdx]] = int(d.r.take(3))
		d.clIdx++
		return false, nil

	case phaseDynLengths:
		if d.lenIdx >= len(d.lengths) {
			litlenLens := d.lengths[:d.hlit]
			distLens := d.lengths[d.hlit:]
			d.litTable = buildHuffTable(litlenLens)
			d.distTable = buildHuffTable(distLens)
			d.phase = phaseLitLen
			return false, nil
		}
		sym, ok, err := d.sym.step(&d.r, d.clTable)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		switch {
		case sym < 16:
			d.lengths[d.lenIdx] = sym
			d.lastLen = sym
			d.lenIdx++
		case sym == 16, sym == 17, sym == 18:
			d.repeatSym = sym
			d.phase = phaseDynRepeatExtra
		default:
			return false, fmt.Errorf("invalid code-length symbol %d: %w", sym, codec.ErrDataError)
		}
		return false, nil

	case phaseDynRepeatExtra:
		var extraBits uint
		switch d.repeatSym {
		case 16:
			extraBits = 2
		case 17:
			extraBits = 3
		case 18:
			extraBits = 7
		}
		if !d.r.fill(extraBits) {
			return true, nil
		}
		n := int(d.r.take(extraBits))

		var repeat, value int
		switch d.repeatSym {
		case 16:
			repeat, value = n+3, d.lastLen
		case 17:
			repeat, value = n+3, 0
		case 18:
			repeat, value = n+11, 0
		}
		for i := 0; i < repeat && d.lenIdx < len(d.lengths); i++ {
			d.lengths[d.lenIdx] = value
			d.lenIdx++
		}
		d.lastLen = value
		d.phase = phaseDynLengths
		return false, nil

	case phaseLitLen:
		sym, ok, err := d.sym.step(&d.r, d.litTable)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		switch {
		case sym < 256:
			d.emit(byte(sym))
		case sym == endOfBlock:
			d.phase = d.nextBlockPhase()
		case sym <= 285:
			idx := sym - 257
			d.lenBase = int(lengthBase[idx])
			d.lenExtra = int(lengthExtraBits[idx])
			d.phase = phaseLenExtra
		default:
			return false, fmt.Errorf("invalid literal/length symbol %d: %w", sym, codec.ErrDataError)
		}
		return false, nil

	case phaseLenExtra:
		if !d.r.fill(uint(d.lenExtra)) {
			return true, nil
		}
		d.matchLen = d.lenBase + int(d.r.take(uint(d.lenExtra)))
		d.phase = phaseDistSym
		return false, nil

	case phaseDistSym:
		sym, ok, err := d.sym.step(&d.r, d.distTable)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		if sym > 29 {
			return false, fmt.Errorf("invalid distance symbol %d: %w", sym, codec.ErrDataError)
		}
		d.lenBase = int(distBase[sym])
		d.lenExtra = int(distExtraBits[sym])
		d.phase = phaseDistExtra
		return false, nil

	case phaseDistExtra:
		if !d.r.fill(uint(d.lenExtra)) {
			return true, nil
		}
		d.matchDist = d.lenBase + int(d.r.take(uint(d.lenExtra)))
		d.phase = phaseCopy
		return false, nil

	case phaseCopy:
		if d.matchLen == 0 {
			d.phase = phaseLitLen
			return false, nil
		}
		b, err := d.win.byteAt(d.matchDist)
		if err != nil {
			return false, err
		}
		d.emit(b)
		d.matchLen--
		return false, nil

	default:
		return true, nil
	}
}

// nextBlockPhase decides whether the stream ends here (this block was the
// final one) or another block header follows.
func (d *Decoder) nextBlockPhase() phase {
	if d.final {
		return phaseDone
	}
	return phaseBlockStart
}
