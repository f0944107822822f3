package types

// RecordType discriminates the catalog record variants. The variant fields
// of CatalogRecord are only meaningful after checking this tag.
// Reference: TN1150, "Catalog File Data Structures"
type RecordType uint16

const (
	RecordFolder       RecordType = 0x0001
	RecordFile         RecordType = 0x0002
	RecordFolderThread RecordType = 0x0003
	RecordFileThread   RecordType = 0x0004
)

// Finder creator/type signatures that mark hard-link stand-in files.
// Reference: TN1150, "Hard Links"
const (
	// HFSPlusCreator ('hfs+') with HardLinkType ('hlnk') marks a file
	// hard link referencing the metadata directory.
	HFSPlusCreator = 0x6866732B
	HardLinkType   = 0x686C6E6B

	// MacsCreator ('Macs') with DirHardLinkType ('fdrp') marks a
	// directory hard link (folder alias stand-in).
	MacsCreator     = 0x4D616373
	DirHardLinkType = 0x66647270
)

// Point is a Finder coordinate pair, vertical before horizontal.
type Point struct {
	V int16
	H int16
}

// Rect is a Finder window rectangle.
type Rect struct {
	Top    int16
	Left   int16
	Bottom int16
	Right  int16
}

// FileInfo is the Finder's user-visible metadata for a file.
// Reference: TN1150, "Finder Info"
type FileInfo struct {
	FileType    uint32
	FileCreator uint32
	FinderFlags uint16
	Location    Point
	Reserved    uint16
}

// ExtendedFileInfo is the Finder's reserved metadata for a file.
type ExtendedFileInfo struct {
	Reserved            [4]int16
	ExtendedFinderFlags uint16
	Reserved2           int16
	PutAwayFolderCNID   CNID
}

// FolderInfo is the Finder's user-visible metadata for a folder.
type FolderInfo struct {
	WindowBounds Rect
	FinderFlags  uint16
	Location     Point
	Reserved     uint16
}

// ExtendedFolderInfo is the Finder's reserved metadata for a folder.
type ExtendedFolderInfo struct {
	ScrollPosition      Point
	Reserved            int32
	ExtendedFinderFlags uint16
	Reserved2           int16
	PutAwayFolderCNID   CNID
}

// BSDInfo carries the POSIX permission fields of a catalog record.
// Special is context dependent: the raw device number for block and
// character special files, the indirect-node number for hard-link stand-in
// files, and the link count otherwise.
// Reference: TN1150, "HFSPlusBSDInfo"
type BSDInfo struct {
	OwnerID    uint32
	GroupID    uint32
	AdminFlags uint8
	OwnerFlags uint8
	FileMode   uint16
	Special    uint32
}

// FileRecord is the catalog payload for a file.
type FileRecord struct {
	Flags          uint16
	CNID           CNID
	DateCreated    uint32
	DateContentMod uint32
	DateAttribMod  uint32
	DateAccessed   uint32
	DateBackedUp   uint32
	BSD            BSDInfo
	UserInfo       FileInfo
	FinderInfo     ExtendedFileInfo
	TextEncoding   uint32
	DataFork       ForkData
	ResourceFork   ForkData
}

// FolderRecord is the catalog payload for a folder.
type FolderRecord struct {
	Flags          uint16
	Valence        uint32
	CNID           CNID
	DateCreated    uint32
	DateContentMod uint32
	DateAttribMod  uint32
	DateAccessed   uint32
	DateBackedUp   uint32
	BSD            BSDInfo
	UserInfo       FolderInfo
	FinderInfo     ExtendedFolderInfo
	TextEncoding   uint32
}

// CatalogRecord is a keyed catalog record as returned by the structural
// engine. It is a closed variant: exactly one of File or Folder is valid,
// selected by Type. Treat values as immutable once returned from a lookup.
type CatalogRecord struct {
	Type   RecordType
	File   FileRecord
	Folder FolderRecord
}

// CNID returns the catalog node ID of whichever variant is selected, or
// zero for thread records.
func (r *CatalogRecord) CNID() CNID {
	switch r.Type {
	case RecordFile:
		return r.File.CNID
	case RecordFolder:
		return r.Folder.CNID
	}
	return 0
}

// IsFolder reports whether the record describes a folder.
func (r *CatalogRecord) IsFolder() bool { return r.Type == RecordFolder }

// IsFile reports whether the record describes a file.
func (r *CatalogRecord) IsFile() bool { return r.Type == RecordFile }

// CatalogKey identifies a catalog record by parent folder and name.
// Keys compare by parent CNID, then by the decomposed UTF-16 name, which is
// why name conversion must reproduce the volume's normalization exactly.
type CatalogKey struct {
	ParentCNID CNID
	Name       Unistr255
}

// ThreadRecord maps a CNID back to its parent folder and its name within
// that folder. Used for reverse path reconstruction.
type ThreadRecord struct {
	ParentCNID CNID
	Name       Unistr255
}

// FolderEntry pairs a child name with its record during directory
// enumeration.
type FolderEntry struct {
	Name   Unistr255
	Record CatalogRecord
}
