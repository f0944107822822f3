package services

import (
	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// StatRecord translates a catalog record into POSIX stat fields. fork
// selects which byte stream a file's size fields describe; folders ignore
// it and report sizes synthesized from the volume allocation block size.
func StatRecord(vh types.VolumeHeader, record types.CatalogRecord, fork types.ForkType) types.Stat {
	var st types.Stat

	switch record.Type {
	case types.RecordFile:
		f := &record.File
		st.Mode = f.BSD.FileMode
		st.Ino = f.CNID
		st.UID = f.BSD.OwnerID
		st.GID = f.BSD.GroupID
		st.Flags = uint32(f.BSD.AdminFlags)<<16 | uint32(f.BSD.OwnerFlags)
		if st.IsDevice() {
			st.Rdev = f.BSD.Special
		} else {
			st.Nlink = f.BSD.Special
		}

		st.AccessTime = types.TimeFromHFS(f.DateAccessed)
		st.ModTime = types.TimeFromHFS(f.DateContentMod)
		st.ChangeTime = types.TimeFromHFS(f.DateAttribMod)
		st.BirthTime = types.TimeFromHFS(f.DateCreated)

		data := &f.DataFork
		if fork == types.ResourceFork {
			data = &f.ResourceFork
		}
		st.Size = data.LogicalSize
		st.Blocks = data.TotalBlocks
		st.BlockSize = data.ClumpSize

	case types.RecordFolder:
		d := &record.Folder
		st.Mode = d.BSD.FileMode
		st.Ino = d.CNID
		st.UID = d.BSD.OwnerID
		st.GID = d.BSD.GroupID
		st.Flags = uint32(d.BSD.AdminFlags)<<16 | uint32(d.BSD.OwnerFlags)

		st.AccessTime = types.TimeFromHFS(d.DateAccessed)
		st.ModTime = types.TimeFromHFS(d.DateContentMod)
		st.ChangeTime = types.TimeFromHFS(d.DateAttribMod)
		st.BirthTime = types.TimeFromHFS(d.DateCreated)

		// Self and parent entries plus the folder's valence, the usual
		// directory link-count convention.
		st.Nlink = d.Valence + 2
		st.Size = uint64(vh.BlockSize)
		st.BlockSize = vh.BlockSize
	}

	return st
}
