// Package types implements data structures for HFS Plus (Mac OS Extended)
// volumes. The on-disk layouts follow Apple Technical Note TN1150.
package types

import "time"

// CNID is a catalog node identifier, the stable unique key for a file or
// folder within a volume. Analogous to an inode number.
// Reference: TN1150, "Catalog File"
type CNID uint32

// Reserved catalog node IDs.
// Reference: TN1150, "Special Files"
const (
	CNIDRootParent     CNID = 1
	CNIDRootFolder     CNID = 2
	CNIDExtentsFile    CNID = 3
	CNIDCatalogFile    CNID = 4
	CNIDBadBlocksFile  CNID = 5
	CNIDAllocationFile CNID = 6
	CNIDStartupFile    CNID = 7
	CNIDAttributesFile CNID = 8
	CNIDFirstUser      CNID = 16
)

// NameMax is the maximum length of an HFS+ name in UTF-16 code units.
const NameMax = 255

// Unistr255 is a length-prefixed UTF-16 name as stored in catalog keys and
// records. Code units beyond Length are undefined.
// Reference: TN1150, "Unicode Subtleties"
type Unistr255 struct {
	Length  uint16
	Unicode [NameMax]uint16
}

// Units returns the valid code units of the name.
func (u *Unistr255) Units() []uint16 {
	n := u.Length
	if n > NameMax {
		n = NameMax
	}
	return u.Unicode[:n]
}

// ForkType selects one of a file's two byte streams.
// Reference: TN1150, "Fork Data Structure"
type ForkType uint8

const (
	DataFork     ForkType = 0x00
	ResourceFork ForkType = 0xFF
)

// ExtentDescriptor describes a contiguous run of allocation blocks.
type ExtentDescriptor struct {
	StartBlock uint32
	BlockCount uint32
}

// ForkData holds the size and initial extent list of a single fork.
type ForkData struct {
	LogicalSize uint64
	ClumpSize   uint32
	TotalBlocks uint32
	Extents     [8]ExtentDescriptor
}

// hfsEpochDelta is the number of seconds between the HFS+ epoch
// (1904-01-01T00:00:00Z) and the Unix epoch.
const hfsEpochDelta = 2082844800

// TimeFromHFS converts an HFS+ timestamp to a Unix-epoch time.
// HFS+ dates are unsigned seconds since 1904, so volumes can carry
// timestamps that predate the Unix epoch.
func TimeFromHFS(t uint32) time.Time {
	return time.Unix(int64(t)-hfsEpochDelta, 0).UTC()
}
