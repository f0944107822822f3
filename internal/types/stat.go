package types

import "time"

// File type bits within BSDInfo.FileMode, matching the POSIX S_IFMT
// encoding used on disk.
const (
	ModeFormatMask uint16 = 0o170000
	ModeFormatBlk  uint16 = 0o060000
	ModeFormatChr  uint16 = 0o020000
)

// Stat is a platform-independent rendering of the POSIX stat fields for a
// catalog record. Callers serving a specific OS map it onto the native
// structure.
type Stat struct {
	Mode  uint16
	Ino   CNID
	Nlink uint32
	UID   uint32
	GID   uint32
	Rdev  uint32

	// Flags combines the BSD admin flags (high 16 bits) and owner flags,
	// the st_flags convention on BSD-derived systems.
	Flags uint32

	Size      uint64
	Blocks    uint32
	BlockSize uint32

	AccessTime time.Time
	ModTime    time.Time
	ChangeTime time.Time
	BirthTime  time.Time
}

// IsDevice reports whether the mode describes a block or character special
// file.
func (s *Stat) IsDevice() bool {
	fmtBits := s.Mode & ModeFormatMask
	return fmtBits == ModeFormatBlk || fmtBits == ModeFormatChr
}
