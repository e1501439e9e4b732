package deflate

import (
	"fmt"

	"github.com/nguyengg/otezip/codec"
)

// huffTable is a canonical Huffman code table represented the way RFC 1951
// Appendix's reference decoder builds one: counts[n] is how many symbols
// have an n-bit code, and symbols lists every symbol that has a code,
// ordered first by code length then by symbol value (which is exactly the
// canonical assignment order).
type huffTable struct {
	counts  [maxCodeLen + 1]int
	symbols []int
}

// buildHuffTable constructs a canonical table from a slice of code lengths
// indexed by symbol (0 meaning "this symbol is unused").
func buildHuffTable(lengths []int) *huffTable {
	var counts [maxCodeLen + 1]int
	for _, l := range lengths {
		counts[l]++
	}
	counts[0] = 0

	var offsets [maxCodeLen + 1]int
	total := 0
	for l := 1; l <= maxCodeLen; l++ {
		offsets[l] = total
		total += counts[l]
	}

	symbols := make([]int, total)
	for sym, l := range lengths {
		if l != 0 {
			symbols[offsets[l]] = sym
			offsets[l]++
		}
	}

	return &huffTable{counts: counts, symbols: symbols}
}

// symbolDecoder walks a single Huffman code bit by bit, matching the
// (length, code) pairs of an active table at the current bit length. Its
// state is kept apart
// from bitReader so that a partially-read code can be suspended and
// resumed across Process calls the same way a pending literal or copy is.
type symbolDecoder struct {
	len   uint
	code  int
	first int
	index int
}

func (s *symbolDecoder) reset() {
	s.len, s.code, s.first, s.index = 0, 0, 0, 0
}

// step consumes one more bit from r against table, advancing s's internal
// code-so-far. It returns (symbol, true, nil) once a full code has matched,
// (0, false, nil) if r ran dry and the caller must retry after more input
// arrives (s's state is preserved), or an error if no code of any length
// up to 15 bits matches (an invalid bitstream).
func (s *symbolDecoder) step(r *bitReader, table *huffTable) (int, bool, error) {
	for s.len < maxCodeLen {
		if !r.fill(1) {
			return 0, false, nil
		}
		bit := int(r.take(1))

		s.len++
		s.code |= bit
		count := table.counts[s.len]
		if s.code-s.first < count {
			sym := table.symbols[s.index+(s.code-s.first)]
			s.reset()
			return sym, true, nil
		}
		s.index += count
		s.first += count
		s.first <<= 1
		s.code <<= 1
	}
	return 0, false, fmt.Errorf("no huffman code matched within 15 bits: %w", codec.ErrDataError)
}
