//go:build !linux

package device

// Device block-size ioctls are only wired up on Linux; other platforms
// report 0 and take the configured fallback.
func discoverDeviceBlockSize(fd int) uint32 {
	return 0
}
