// Package deflate implements RFC 1951 DEFLATE: a resumable decoder (raw,
// fixed-Huffman, and dynamic-Huffman blocks) and a fixed-Huffman hash-chain
// encoder, plus zlib (RFC 1950) and gzip (RFC 1952) header peeling for the
// standalone codec entry points. This is the only codec in the repository
// implementing a real, standards-conforming algorithm; every other method
// id is an opaque plug-in (see the codec package).
package deflate

// lengthBase and lengthExtraBits are the canonical RFC 1951 §3.2.5 tables
// for length codes 257..285 (index 0 corresponds to code 257).
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtraBits = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtraBits are the canonical RFC 1951 §3.2.5 tables for
// distance codes 0..29.
var distBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13,
	17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073,
	4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtraBits = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2,
	3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10,
	11, 11, 12, 12, 13, 13,
}

// codeLengthOrder is the fixed permutation in which HCLEN code-length-
// alphabet lengths are transmitted in a dynamic block header.
var codeLengthOrder = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// fixedLitLenLengths builds the canonical fixed literal/length code-length
// table: 0-143 -> 8, 144-255 -> 9, 256-279 -> 7, 280-287 -> 8.
func fixedLitLenLengths() []int {
	lens := make([]int, 288)
	for i := 0; i <= 143; i++ {
		lens[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lens[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lens[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lens[i] = 8
	}
	return lens
}

// fixedDistLengths builds the canonical fixed distance code-length table:
// all 30 codes have length 5.
func fixedDistLengths() []int {
	lens := make([]int, 30)
	for i := range lens {
		lens[i] = 5
	}
	return lens
}

const (
	maxCodeLen  = 15
	endOfBlock  = 256
	minMatchLen = 3
	maxMatchLen = 258
)
