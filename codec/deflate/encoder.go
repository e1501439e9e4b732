package deflate

import (
	"github.com/nguyengg/otezip/codec"
)

const hashBits = 15 // 2^15 slots, more than the 2^(w-3) = 4096 a w=15 window needs, for a flatter table

var (
	fixedLitLenCodes []uint16
	fixedDistCodes   []uint16
	fixedLitLenLens  []int
	fixedDistLens    []int
)

func init() {
	fixedLitLenLens = fixedLitLenLengths()
	fixedDistLens = fixedDistLengths()
	fixedLitLenCodes = buildCanonicalCodes(fixedLitLenLens)
	fixedDistCodes = buildCanonicalCodes(fixedDistLens)
}

// Encoder is a hash-chain LZ77 matcher feeding a fixed-Huffman block
// emitter. It satisfies codec.Encoder.
//
// Input is buffered until flush == FlushFinish: the output is a single
// fixed-Huffman block covering the whole input with the final-block bit
// set, so no symbol can be emitted before all the input is known.
type Encoder struct {
	level      int
	windowBits int
	pending    []byte
	out        []byte
	ran        bool
	done       bool
}

// NewEncoder creates an Encoder at the given compression level (0-9;
// negative means the default, 6).
func NewEncoder(level int) (*Encoder, error) {
	if level < 0 {
		level = 6
	}
	if level > 9 {
		level = 9
	}
	return &Encoder{level: level, windowBits: 15}, nil
}

func (e *Encoder) Process(in, out []byte, flush codec.Flush) (consumed, produced int, status codec.Status, err error) {
	if e.done {
		return 0, 0, codec.StatusStreamEnd, nil
	}

	if len(in) > 0 {
		e.pending = append(e.pending, in...)
		consumed = len(in)
	}

	if !e.ran {
		if flush != codec.FlushFinish {
			return consumed, 0, codec.StatusOK, nil
		}
		e.out = encode(e.pending, e.level, 1<<uint(e.windowBits))
		e.ran = true
		e.pending = nil
	}

	produced = copy(out, e.out)
	e.out = e.out[produced:]
	if len(e.out) == 0 {
		e.done = true
		return consumed, produced, codec.StatusStreamEnd, nil
	}
	return consumed, produced, codec.StatusOK, nil
}

func (e *Encoder) End() error {
	e.pending, e.out = nil, nil
	e.done = true
	return nil
}

// chainLimit returns how many hash-chain entries to walk before settling
// for the best match found so far.
func chainLimit(level int) int {
	switch {
	case level >= 8:
		return 4096
	case level >= 5:
		return 512
	case level >= 3:
		return 128
	default:
		return 32
	}
}

// encode runs the matcher and emits a single well-formed DEFLATE stream:
// one stored block per 65535-byte chunk at level 0, or one final
// fixed-Huffman block covering the whole input otherwise.
func encode(input []byte, level int, windowSize int) []byte {
	if level == 0 {
		return encodeStored(input)
	}
	return encodeFixedHuffman(input, level, windowSize)
}

func encodeStored(input []byte) []byte {
	w := &bitWriter{}
	if len(input) == 0 {
		writeStoredBlock(w, nil, true)
		w.alignToByte()
		return w.bytes()
	}

	for off := 0; off < len(input); off += 65535 {
		end := off + 65535
		if end > len(input) {
			end = len(input)
		}
		writeStoredBlock(w, input[off:end], end == len(input))
	}
	w.alignToByte()
	return w.bytes()
}

func writeStoredBlock(w *bitWriter, chunk []byte, final bool) {
	if final {
		w.writeBits(1, 1)
	} else {
		w.writeBits(0, 1)
	}
	w.writeBits(0, 2) // type 0: stored
	w.alignToByte()

	n := len(chunk)
	w.out = append(w.out, byte(n), byte(n>>8), byte(^n), byte(^n>>8))
	w.out = append(w.out, chunk...)
}

func encodeFixedHuffman(input []byte, level int, windowSize int) []byte {
	w := &bitWriter{}
	w.writeBits(1, 1) // final block
	w.writeBits(1, 2) // type 1: fixed huffman

	limit := chainLimit(level)
	head := make([]int, 1<<hashBits)
	prev := make([]int, len(input))

	p := 0
	for p < len(input) {
		if p+minMatchLen > len(input) {
			writeLiteral(w, input[p])
			p++
			continue
		}

		h := hash3(input[p], input[p+1], input[p+2])
		candidate := head[h] - 1

		bestLen, bestDist := 0, 0
		for count := 0; candidate >= 0 && p-candidate <= windowSize && count < limit; count++ {
			if matchLen := matchAt(input, candidate, p); matchLen > bestLen {
				bestLen, bestDist = matchLen, p-candidate
			}
			candidate = prev[candidate] - 1
		}

		prev[p] = head[h]
		head[h] = p + 1

		if bestLen >= minMatchLen {
			writeMatch(w, bestLen, bestDist)
			p += bestLen
			continue
		}

		writeLiteral(w, input[p])
		p++
	}

	writeCode(w, fixedLitLenCodes, fixedLitLenLens, endOfBlock)
	w.alignToByte()
	return w.bytes()
}

func hash3(b0, b1, b2 byte) uint32 {
	v := uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
	return (v * 2654435761) >> (32 - hashBits)
}

func matchAt(input []byte, candidate, p int) int {
	if input[candidate] != input[p] || input[candidate+1] != input[p+1] || input[candidate+2] != input[p+2] {
		return 0
	}
	maxLen := maxMatchLen
	if remaining := len(input) - p; remaining < maxLen {
		maxLen = remaining
	}
	l := minMatchLen
	for l < maxLen && input[candidate+l] == input[p+l] {
		l++
	}
	return l
}

func writeLiteral(w *bitWriter, b byte) {
	writeCode(w, fixedLitLenCodes, fixedLitLenLens, int(b))
}

func writeMatch(w *bitWriter, length, dist int) {
	lidx := lengthCodeIndex(length)
	writeCode(w, fixedLitLenCodes, fixedLitLenLens, 257+lidx)
	if extra := lengthExtraBits[lidx]; extra > 0 {
		w.writeBits(uint32(length-int(lengthBase[lidx])), uint(extra))
	}

	didx := distCodeIndex(dist)
	w.writeCode(fixedDistCodes[didx], uint8(fixedDistLens[didx]))
	if extra := distExtraBits[didx]; extra > 0 {
		w.writeBits(uint32(dist-int(distBase[didx])), uint(extra))
	}
}

func writeCode(w *bitWriter, codes []uint16, lengths []int, symbol int) {
	w.writeCode(codes[symbol], uint8(lengths[symbol]))
}
