package deflate

// buildCanonicalCodes assigns canonical Huffman codes to a code-length
// table, following the standard algorithm of RFC 1951 §3.2.2: codes are
// assigned in order of increasing length, and in symbol order within a
// length, matching how buildHuffTable orders the symbols array that
// symbolDecoder.step indexes.
func buildCanonicalCodes(lengths []int) []uint16 {
	var blCount [maxCodeLen + 1]int
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	code := 0
	var nextCode [maxCodeLen + 1]int
	for bits := 1; bits <= maxCodeLen; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}

	codes := make([]uint16, len(lengths))
	for n, l := range lengths {
		if l > 0 {
			codes[n] = uint16(nextCode[l])
			nextCode[l]++
		}
	}
	return codes
}

// lengthCodeIndex returns the length-code table index (0-based, so the
// on-wire code is 257+idx) whose base value is the largest one not
// exceeding length.
func lengthCodeIndex(length int) int {
	idx := 0
	for i, base := range lengthBase {
		if int(base) <= length {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// distCodeIndex returns the distance-code table index whose base value is
// the largest one not exceeding dist.
func distCodeIndex(dist int) int {
	idx := 0
	for i, base := range distBase {
		if int(base) <= dist {
			idx = i
		} else {
			break
		}
	}
	return idx
}
