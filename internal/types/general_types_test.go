package types

import (
	"testing"
	"time"
)

func TestTimeFromHFS(t *testing.T) {
	cases := []struct {
		name     string
		hfs      uint32
		expected time.Time
	}{
		{"unix epoch", 2082844800, time.Unix(0, 0).UTC()},
		{"hfs epoch", 0, time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"pre unix epoch", 2082844799, time.Unix(-1, 0).UTC()},
	}
	for _, tc := range cases {
		if got := TimeFromHFS(tc.hfs); !got.Equal(tc.expected) {
			t.Errorf("%s: TimeFromHFS(%d) = %v, want %v", tc.name, tc.hfs, got, tc.expected)
		}
	}
}

func TestVolumeHeaderFlags(t *testing.T) {
	vh := VolumeHeader{Attributes: 1<<VolJournaledBit | 1<<VolUnmountedBit}
	if !vh.Journaled() {
		t.Error("expected Journaled() = true")
	}
	if vh.Locked() {
		t.Error("expected Locked() = false")
	}

	vh.Attributes |= 1 << VolSoftwareLockBit
	if !vh.Locked() {
		t.Error("expected Locked() = true with software lock set")
	}

	vh.Attributes = 1 << VolHardwareLockBit
	if !vh.Locked() {
		t.Error("expected Locked() = true with hardware lock set")
	}
}

func TestVolumeHeaderUniqueID(t *testing.T) {
	vh := VolumeHeader{}
	vh.FinderInfo[6] = 0x01020304
	vh.FinderInfo[7] = 0x05060708
	if got := vh.UniqueID(); got != 0x0102030405060708 {
		t.Errorf("UniqueID() = %x, want 0102030405060708", got)
	}
}

func TestStatIsDevice(t *testing.T) {
	cases := []struct {
		mode   uint16
		device bool
	}{
		{0o100644, false},
		{0o040755, false},
		{0o020600, true},
		{0o060600, true},
		{0o120777, false},
	}
	for _, tc := range cases {
		st := Stat{Mode: tc.mode}
		if got := st.IsDevice(); got != tc.device {
			t.Errorf("IsDevice() with mode %o = %v, want %v", tc.mode, got, tc.device)
		}
	}
}

func TestCatalogRecordVariant(t *testing.T) {
	file := CatalogRecord{Type: RecordFile}
	file.File.CNID = 40
	folder := CatalogRecord{Type: RecordFolder}
	folder.Folder.CNID = 41

	if got := file.CNID(); got != 40 {
		t.Errorf("file CNID() = %d, want 40", got)
	}
	if got := folder.CNID(); got != 41 {
		t.Errorf("folder CNID() = %d, want 41", got)
	}
	if got := (&CatalogRecord{Type: RecordFileThread}).CNID(); got != 0 {
		t.Errorf("thread CNID() = %d, want 0", got)
	}
	if !file.IsFile() || file.IsFolder() {
		t.Error("file variant misreported")
	}
}

func TestUnistr255Units(t *testing.T) {
	var u Unistr255
	u.Length = 3
	copy(u.Unicode[:], []uint16{'a', 'b', 'c'})
	if got := u.Units(); len(got) != 3 || got[2] != 'c' {
		t.Errorf("Units() = %v, want [a b c]", got)
	}

	// A corrupt length field must not index past the array.
	u.Length = NameMax + 10
	if got := u.Units(); len(got) != NameMax {
		t.Errorf("Units() with oversized length = %d units, want %d", len(got), NameMax)
	}
}
