// File: internal/interfaces/catalog.go
package interfaces

import (
	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// CatalogEngine is the contract of the external structural engine: the
// component that owns volume-header parsing, catalog B-tree traversal, and
// extent resolution. Everything in this repository builds on these
// operations without knowing how the B-tree is walked.
//
// Lookup failures wrap types.ErrNotFound; all other errors are engine
// specific and callers propagate them verbatim.
type CatalogEngine interface {
	// VolumeHeader returns the decoded volume header.
	VolumeHeader() types.VolumeHeader

	// VolumeName returns the volume's name in its native UTF-16 form.
	VolumeName() types.Unistr255

	// FindRecordByKey looks up the catalog record stored under key.
	FindRecordByKey(key types.CatalogKey) (types.CatalogRecord, error)

	// FindRecordByCNID looks up a record and its key by catalog node ID.
	FindRecordByCNID(cnid types.CNID) (types.CatalogRecord, types.CatalogKey, error)

	// FindParentThread returns the thread record mapping cnid back to its
	// parent folder and name.
	FindParentThread(cnid types.CNID) (types.ThreadRecord, error)

	// ListFolder enumerates the immediate children of a folder.
	ListFolder(cnid types.CNID) ([]types.FolderEntry, error)

	// FileExtents returns the full extent list of one fork of a file.
	FileExtents(cnid types.CNID, fork types.ForkType) ([]types.ExtentDescriptor, error)

	// ReadWithExtents reads fork bytes at offset through a known extent
	// list, returning the number of bytes placed in p.
	ReadWithExtents(p []byte, offset uint64, extents []types.ExtentDescriptor) (int, error)

	// ResolveFileHardLink chases a file hard-link stand-in to the record
	// of the shared indirect node.
	ResolveFileHardLink(inode uint32) (types.CatalogRecord, error)

	// ResolveDirectoryHardLink chases a directory hard-link stand-in to
	// the record of the real folder. Distinct mechanism from file links.
	ResolveDirectoryHardLink(inode uint32) (types.CatalogRecord, error)

	// MakeCatalogKey builds the catalog key for name under parent.
	MakeCatalogKey(parent types.CNID, name types.Unistr255) (types.CatalogKey, error)

	// Close releases engine resources. The block device is closed by its
	// owner, not by the engine.
	Close() error
}
