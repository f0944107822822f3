package services

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// FinderInfoSize is the size of the serialized Finder metadata blob, the
// layout expected by consumers of the com.apple.FinderInfo extended
// attribute.
const FinderInfoSize = 32

// SerializeFinderInfo renders a record's Finder metadata as the historical
// fixed 32-byte big-endian blob, independent of host byte order. Thread
// records serialize to all zeroes. Variant fields are only read after the
// record type tag selects them.
func SerializeFinderInfo(record types.CatalogRecord) [FinderInfoSize]byte {
	var buf [FinderInfoSize]byte
	b := buf[:]

	switch record.Type {
	case types.RecordFile:
		u := &record.File.UserInfo
		x := &record.File.FinderInfo

		binary.BigEndian.PutUint32(b[0:], u.FileType)
		binary.BigEndian.PutUint32(b[4:], u.FileCreator)
		binary.BigEndian.PutUint16(b[8:], u.FinderFlags)
		binary.BigEndian.PutUint16(b[10:], uint16(u.Location.V))
		binary.BigEndian.PutUint16(b[12:], uint16(u.Location.H))
		binary.BigEndian.PutUint16(b[14:], u.Reserved)

		for i, r := range x.Reserved {
			binary.BigEndian.PutUint16(b[16+2*i:], uint16(r))
		}
		binary.BigEndian.PutUint16(b[24:], x.ExtendedFinderFlags)
		binary.BigEndian.PutUint16(b[26:], uint16(x.Reserved2))
		binary.BigEndian.PutUint32(b[28:], uint32(x.PutAwayFolderCNID))

	case types.RecordFolder:
		u := &record.Folder.UserInfo
		x := &record.Folder.FinderInfo

		binary.BigEndian.PutUint16(b[0:], uint16(u.WindowBounds.Top))
		binary.BigEndian.PutUint16(b[2:], uint16(u.WindowBounds.Left))
		binary.BigEndian.PutUint16(b[4:], uint16(u.WindowBounds.Bottom))
		binary.BigEndian.PutUint16(b[6:], uint16(u.WindowBounds.Right))
		binary.BigEndian.PutUint16(b[8:], u.FinderFlags)
		binary.BigEndian.PutUint16(b[10:], uint16(u.Location.V))
		binary.BigEndian.PutUint16(b[12:], uint16(u.Location.H))
		binary.BigEndian.PutUint16(b[14:], u.Reserved)

		binary.BigEndian.PutUint16(b[16:], uint16(x.ScrollPosition.V))
		binary.BigEndian.PutUint16(b[18:], uint16(x.ScrollPosition.H))
		binary.BigEndian.PutUint32(b[20:], uint32(x.Reserved))
		binary.BigEndian.PutUint16(b[24:], x.ExtendedFinderFlags)
		binary.BigEndian.PutUint16(b[26:], uint16(x.Reserved2))
		binary.BigEndian.PutUint32(b[28:], uint32(x.PutAwayFolderCNID))
	}

	return buf
}
