//go:build linux

package device

import "golang.org/x/sys/unix"

// discoverDeviceBlockSize asks the device for its ideal transfer size
// (optimal I/O, typically the stripe width), then its logical block size.
// Returns 0 when neither query answers, leaving the fallback to the
// caller.
func discoverDeviceBlockSize(fd int) uint32 {
	if v, err := unix.IoctlGetUint32(fd, unix.BLKIOOPT); err == nil && v != 0 {
		return v
	}
	if v, err := unix.IoctlGetUint32(fd, unix.BLKBSZGET); err == nil && v != 0 {
		return v
	}
	return 0
}
