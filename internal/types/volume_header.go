package types

// Volume attribute bit positions within VolumeHeader.Attributes.
// Reference: TN1150, "Volume Attributes"
const (
	VolHardwareLockBit  = 7
	VolUnmountedBit     = 8
	VolBadBlocksBit     = 9
	VolNoCacheBit       = 10
	VolDirtyBit         = 11
	VolCNIDsRecycledBit = 12
	VolJournaledBit     = 13
	VolSoftwareLockBit  = 15
)

// VolumeHeader is the parsed HFS+ volume header as surfaced by the
// structural engine. Field parsing and validation belong to the engine;
// this package only carries the decoded values.
// Reference: TN1150, "Volume Header"
type VolumeHeader struct {
	Signature          uint16
	Version            uint16
	Attributes         uint32
	LastMountedVersion uint32
	JournalInfoBlock   uint32

	DateCreated  uint32
	DateModified uint32
	DateBackedUp uint32
	DateChecked  uint32

	FileCount   uint32
	FolderCount uint32

	BlockSize      uint32
	TotalBlocks    uint32
	FreeBlocks     uint32
	NextAllocation uint32
	RsrcClumpSize  uint32
	DataClumpSize  uint32
	NextCNID       CNID
	WriteCount     uint32

	EncodingsBitmap uint64

	// FinderInfo holds the eight well-known Finder fields: boot directory,
	// startup parent directory, display directory, OS 9 and OS X system
	// directories, and the 64-bit volume unique ID in the last two slots.
	FinderInfo [8]uint32
}

// AttributeSet reports whether the given attribute bit is set.
func (vh *VolumeHeader) AttributeSet(bit uint) bool {
	return vh.Attributes&(1<<bit) != 0
}

// Journaled reports whether the volume carries a journal.
func (vh *VolumeHeader) Journaled() bool { return vh.AttributeSet(VolJournaledBit) }

// Locked reports whether the volume is software or hardware write locked.
func (vh *VolumeHeader) Locked() bool {
	return vh.AttributeSet(VolSoftwareLockBit) || vh.AttributeSet(VolHardwareLockBit)
}

// UniqueID returns the 64-bit volume unique ID from the Finder info slots.
func (vh *VolumeHeader) UniqueID() uint64 {
	return uint64(vh.FinderInfo[6])<<32 | uint64(vh.FinderInfo[7])
}
