// Package enginetest provides an in-memory CatalogEngine for exercising
// the glue layer without a real catalog B-tree. Catalogs are built
// programmatically; names are normalized exactly the way the resolver
// normalizes path segments so key lookups behave like on-disk comparisons.
package enginetest

import (
	"fmt"

	"github.com/deploymenttheory/go-hfsplus/internal/names"
	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

type childEntry struct {
	name types.Unistr255
	cnid types.CNID
}

// Engine is a fake structural engine backed by maps. Not safe for
// concurrent mutation; build the catalog first, then resolve.
type Engine struct {
	Header types.VolumeHeader
	Name   types.Unistr255

	Records  map[types.CNID]types.CatalogRecord
	Keys     map[types.CNID]types.CatalogKey
	Threads  map[types.CNID]types.ThreadRecord
	children map[types.CNID][]childEntry

	// FileLinks and DirLinks map indirect-node numbers to their targets
	// for the two hard-link schemes.
	FileLinks map[uint32]types.CNID
	DirLinks  map[uint32]types.CNID

	// Contents holds fork bytes keyed by the fork's first extent start
	// block, which is how ReadWithExtents finds them.
	Contents map[uint32][]byte
	extents  map[types.CNID]map[types.ForkType][]types.ExtentDescriptor

	// Calls counts engine invocations by method name.
	Calls map[string]int

	// MakeKeyErr, when set, fails every MakeCatalogKey call.
	MakeKeyErr error

	Closed   bool
	nextCNID types.CNID
	nextBlk  uint32
}

// New creates an engine holding an empty volume with the given name and a
// root folder at CNID 2.
func New(volumeName string) *Engine {
	e := &Engine{
		Records:   make(map[types.CNID]types.CatalogRecord),
		Keys:      make(map[types.CNID]types.CatalogKey),
		Threads:   make(map[types.CNID]types.ThreadRecord),
		children:  make(map[types.CNID][]childEntry),
		FileLinks: make(map[uint32]types.CNID),
		DirLinks:  make(map[uint32]types.CNID),
		Contents:  make(map[uint32][]byte),
		extents:   make(map[types.CNID]map[types.ForkType][]types.ExtentDescriptor),
		Calls:     make(map[string]int),
		nextCNID:  types.CNIDFirstUser,
		nextBlk:   1,
	}

	e.Name, _ = names.FromPosix(volumeName)
	e.Header = types.VolumeHeader{
		Signature:   0x482B, // 'H+'
		Version:     4,
		BlockSize:   4096,
		TotalBlocks: 1024,
		NextCNID:    e.nextCNID,
	}

	rootName, _ := names.FromPosix(volumeName)
	rootKey := types.CatalogKey{ParentCNID: types.CNIDRootParent, Name: rootName}
	root := types.CatalogRecord{Type: types.RecordFolder}
	root.Folder.CNID = types.CNIDRootFolder
	root.Folder.BSD.FileMode = 0o040755
	e.Records[types.CNIDRootFolder] = root
	e.Keys[types.CNIDRootFolder] = rootKey

	return e
}

func (e *Engine) allocCNID() types.CNID {
	cnid := e.nextCNID
	e.nextCNID++
	e.Header.NextCNID = e.nextCNID
	return cnid
}

func (e *Engine) link(parent types.CNID, name string, cnid types.CNID, record types.CatalogRecord) types.CNID {
	uname, err := names.FromPosix(name)
	if err != nil {
		panic(fmt.Sprintf("enginetest: bad fixture name %q: %v", name, err))
	}
	key := types.CatalogKey{ParentCNID: parent, Name: uname}
	e.Records[cnid] = record
	e.Keys[cnid] = key
	e.Threads[cnid] = types.ThreadRecord{ParentCNID: parent, Name: uname}
	e.children[parent] = append(e.children[parent], childEntry{name: uname, cnid: cnid})
	if parent != types.CNIDRootParent {
		if p, ok := e.Records[parent]; ok && p.Type == types.RecordFolder {
			p.Folder.Valence++
			e.Records[parent] = p
		}
	}
	return cnid
}

// AddFolder creates a folder under parent and returns its CNID.
func (e *Engine) AddFolder(parent types.CNID, name string) types.CNID {
	record := types.CatalogRecord{Type: types.RecordFolder}
	record.Folder.CNID = e.allocCNID()
	record.Folder.BSD.FileMode = 0o040755
	return e.link(parent, name, record.Folder.CNID, record)
}

// AddFile creates a file under parent with the given data-fork contents
// and returns its CNID.
func (e *Engine) AddFile(parent types.CNID, name string, data []byte) types.CNID {
	record := types.CatalogRecord{Type: types.RecordFile}
	record.File.CNID = e.allocCNID()
	record.File.BSD.FileMode = 0o100644
	record.File.BSD.Special = 1 // link count
	e.setFork(&record, types.DataFork, data)
	return e.link(parent, name, record.File.CNID, record)
}

// SetResourceFork attaches resource-fork contents to an existing file.
func (e *Engine) SetResourceFork(cnid types.CNID, data []byte) {
	record := e.Records[cnid]
	e.setFork(&record, types.ResourceFork, data)
	e.Records[cnid] = record
}

func (e *Engine) setFork(record *types.CatalogRecord, fork types.ForkType, data []byte) {
	blk := e.nextBlk
	e.nextBlk++
	e.Contents[blk] = data

	fd := types.ForkData{
		LogicalSize: uint64(len(data)),
		ClumpSize:   e.Header.BlockSize,
		TotalBlocks: uint32((len(data) + int(e.Header.BlockSize) - 1) / int(e.Header.BlockSize)),
	}
	fd.Extents[0] = types.ExtentDescriptor{StartBlock: blk, BlockCount: fd.TotalBlocks}

	if fork == types.ResourceFork {
		record.File.ResourceFork = fd
	} else {
		record.File.DataFork = fd
	}
	if e.extents[record.File.CNID] == nil {
		e.extents[record.File.CNID] = make(map[types.ForkType][]types.ExtentDescriptor)
	}
	e.extents[record.File.CNID][fork] = []types.ExtentDescriptor{fd.Extents[0]}
}

// AddFileHardLink creates a hard-link stand-in file pointing at target
// through the file-link indirection table.
func (e *Engine) AddFileHardLink(parent types.CNID, name string, inode uint32, target types.CNID) types.CNID {
	record := types.CatalogRecord{Type: types.RecordFile}
	record.File.CNID = e.allocCNID()
	record.File.BSD.FileMode = 0o100644
	record.File.BSD.Special = inode
	record.File.UserInfo.FileCreator = types.HFSPlusCreator
	record.File.UserInfo.FileType = types.HardLinkType
	e.FileLinks[inode] = target
	return e.link(parent, name, record.File.CNID, record)
}

// AddDirHardLink creates a directory hard-link stand-in file pointing at
// target through the directory-link indirection table.
func (e *Engine) AddDirHardLink(parent types.CNID, name string, inode uint32, target types.CNID) types.CNID {
	record := types.CatalogRecord{Type: types.RecordFile}
	record.File.CNID = e.allocCNID()
	record.File.BSD.FileMode = 0o100644
	record.File.BSD.Special = inode
	record.File.UserInfo.FileCreator = types.MacsCreator
	record.File.UserInfo.FileType = types.DirHardLinkType
	e.DirLinks[inode] = target
	return e.link(parent, name, record.File.CNID, record)
}

func unitsEqual(a, b types.Unistr255) bool {
	if a.Length != b.Length {
		return false
	}
	au, bu := a.Units(), b.Units()
	for i := range au {
		if au[i] != bu[i] {
			return false
		}
	}
	return true
}

// VolumeHeader implements interfaces.CatalogEngine.
func (e *Engine) VolumeHeader() types.VolumeHeader { return e.Header }

// VolumeName implements interfaces.CatalogEngine.
func (e *Engine) VolumeName() types.Unistr255 { return e.Name }

// FindRecordByKey implements interfaces.CatalogEngine.
func (e *Engine) FindRecordByKey(key types.CatalogKey) (types.CatalogRecord, error) {
	e.Calls["FindRecordByKey"]++
	for _, child := range e.children[key.ParentCNID] {
		if unitsEqual(child.name, key.Name) {
			return e.Records[child.cnid], nil
		}
	}
	return types.CatalogRecord{}, fmt.Errorf("key under CNID %d: %w", key.ParentCNID, types.ErrNotFound)
}

// FindRecordByCNID implements interfaces.CatalogEngine.
func (e *Engine) FindRecordByCNID(cnid types.CNID) (types.CatalogRecord, types.CatalogKey, error) {
	e.Calls["FindRecordByCNID"]++
	record, ok := e.Records[cnid]
	if !ok {
		return types.CatalogRecord{}, types.CatalogKey{}, fmt.Errorf("CNID %d: %w", cnid, types.ErrNotFound)
	}
	return record, e.Keys[cnid], nil
}

// FindParentThread implements interfaces.CatalogEngine.
func (e *Engine) FindParentThread(cnid types.CNID) (types.ThreadRecord, error) {
	e.Calls["FindParentThread"]++
	thread, ok := e.Threads[cnid]
	if !ok {
		return types.ThreadRecord{}, fmt.Errorf("thread for CNID %d: %w", cnid, types.ErrNotFound)
	}
	return thread, nil
}

// ListFolder implements interfaces.CatalogEngine.
func (e *Engine) ListFolder(cnid types.CNID) ([]types.FolderEntry, error) {
	e.Calls["ListFolder"]++
	record, ok := e.Records[cnid]
	if !ok {
		return nil, fmt.Errorf("CNID %d: %w", cnid, types.ErrNotFound)
	}
	if record.Type != types.RecordFolder {
		return nil, fmt.Errorf("CNID %d is not a folder", cnid)
	}
	entries := make([]types.FolderEntry, 0, len(e.children[cnid]))
	for _, child := range e.children[cnid] {
		entries = append(entries, types.FolderEntry{Name: child.name, Record: e.Records[child.cnid]})
	}
	return entries, nil
}

// FileExtents implements interfaces.CatalogEngine.
func (e *Engine) FileExtents(cnid types.CNID, fork types.ForkType) ([]types.ExtentDescriptor, error) {
	e.Calls["FileExtents"]++
	forks, ok := e.extents[cnid]
	if !ok {
		return nil, nil
	}
	return forks[fork], nil
}

// ReadWithExtents implements interfaces.CatalogEngine.
func (e *Engine) ReadWithExtents(p []byte, offset uint64, extents []types.ExtentDescriptor) (int, error) {
	e.Calls["ReadWithExtents"]++
	if len(extents) == 0 {
		return 0, nil
	}
	data := e.Contents[extents[0].StartBlock]
	if offset >= uint64(len(data)) {
		return 0, nil
	}
	return copy(p, data[offset:]), nil
}

// ResolveFileHardLink implements interfaces.CatalogEngine.
func (e *Engine) ResolveFileHardLink(inode uint32) (types.CatalogRecord, error) {
	e.Calls["ResolveFileHardLink"]++
	target, ok := e.FileLinks[inode]
	if !ok {
		return types.CatalogRecord{}, fmt.Errorf("file link inode %d: %w", inode, types.ErrNotFound)
	}
	return e.Records[target], nil
}

// ResolveDirectoryHardLink implements interfaces.CatalogEngine.
func (e *Engine) ResolveDirectoryHardLink(inode uint32) (types.CatalogRecord, error) {
	e.Calls["ResolveDirectoryHardLink"]++
	target, ok := e.DirLinks[inode]
	if !ok {
		return types.CatalogRecord{}, fmt.Errorf("directory link inode %d: %w", inode, types.ErrNotFound)
	}
	return e.Records[target], nil
}

// MakeCatalogKey implements interfaces.CatalogEngine.
func (e *Engine) MakeCatalogKey(parent types.CNID, name types.Unistr255) (types.CatalogKey, error) {
	e.Calls["MakeCatalogKey"]++
	if e.MakeKeyErr != nil {
		return types.CatalogKey{}, e.MakeKeyErr
	}
	return types.CatalogKey{ParentCNID: parent, Name: name}, nil
}

// Close implements interfaces.CatalogEngine.
func (e *Engine) Close() error {
	e.Closed = true
	return nil
}
