// Package zip implements the container engine of a self-contained ZIP
// archive library: central-directory and local-file-header parsing, safe
// validation, archive construction, and entry extraction. Compression is
// delegated to the sibling codec package's dispatch table.
package zip

// Blank-imported so DEFLATE (the default codec method, and the only one
// the format's own on-disk method id table treats as non-opaque) is
// always registered without every caller needing its own import.
import _ "github.com/nguyengg/otezip/codec/deflate"

// Signatures for the three fixed-layout records this engine reads and
// writes.
const (
	sigLocalFileHeader      = 0x04034b50
	sigCentralDirectoryFile = 0x02014b50
	sigEndOfCentralDir      = 0x06054b50
)

const (
	// lfhFixedSize is the Local File Header's fixed-length portion,
	// before the variable-length name and extra fields.
	lfhFixedSize = 30
	// cdhFixedSize is the Central Directory Header's fixed-length
	// portion, before the variable-length name, extra, and comment
	// fields.
	cdhFixedSize = 46
	// eocdFixedSize is the End Of Central Directory record's
	// fixed-length portion, before the variable-length comment.
	eocdFixedSize = 22

	// maxEOCDSearch bounds the EOCD backward scan to the maximum
	// possible record size: 22 fixed bytes plus a 65535-byte comment,
	// plus one more byte of slack matching the widely used 65558
	// constant.
	maxEOCDSearch = eocdFixedSize + 0xffff + 1

	// maxEntrySize caps any entry's compressed or uncompressed size at
	// 2 GiB.
	maxEntrySize = 1 << 31

	versionNeeded = 20 // 2.0: the features this engine actually uses
	versionMadeBy = 0x0314
)
