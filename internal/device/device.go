// Package device adapts block devices and image files to the positioned,
// alignment-safe reads the structural engine requires. Reads never cross
// below the device's addressable granularity: requests are split into a
// block-aligned prefix and a sub-block remainder served from a scratch
// block.
package device

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// FallbackBlockSize is used when a device answers none of the size
// queries.
const FallbackBlockSize = 512

// DefaultBufferItems is the buffered-indirection chunk count matching the
// historical userspace buffering defaults.
const DefaultBufferItems = 64

// Config controls how a device is opened.
type Config struct {
	// Buffered routes reads through the userspace chunk buffer.
	Buffered bool `mapstructure:"buffered"`

	// BufferItems is the chunk count of the buffer; zero selects
	// DefaultBufferItems.
	BufferItems int `mapstructure:"buffer_items"`

	// FallbackBlockSize overrides the 512-byte last-resort block size.
	FallbackBlockSize uint32 `mapstructure:"fallback_block_size"`
}

// Device is an open block device or image file positioned at a volume's
// byte offset within its container.
type Device struct {
	f         *os.File
	offset    int64
	blockSize uint32

	// buffer, when non-nil, is the ublio-style indirection; it is not
	// reentrant, so bufferMu serializes every read through it.
	buffer   *chunkBuffer
	bufferMu sync.Mutex
}

// Open opens name read-only and discovers its transfer block size: block
// and character devices answer an ideal-transfer-size query, then a
// block-size query, then fall back to 512; regular files use the
// filesystem's reported block size. offset shifts all reads, for volumes
// embedded in a larger container.
func Open(name string, offset int64, cfg Config) (*Device, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %w", name, types.ErrIO, err)
	}

	d := &Device{f: f, offset: offset}
	fallback := cfg.FallbackBlockSize
	if fallback == 0 {
		fallback = FallbackBlockSize
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w: %w", name, types.ErrIO, err)
	}

	switch {
	case fi.Mode()&os.ModeDevice != 0:
		d.blockSize = discoverDeviceBlockSize(int(f.Fd()))
		if d.blockSize == 0 {
			d.blockSize = fallback
		}
	case fi.Mode().IsRegular():
		var st unix.Stat_t
		if err := unix.Fstat(int(f.Fd()), &st); err != nil {
			f.Close()
			return nil, fmt.Errorf("fstat %s: %w: %w", name, types.ErrIO, err)
		}
		d.blockSize = uint32(st.Blksize)
		if d.blockSize == 0 {
			d.blockSize = fallback
		}
	default:
		f.Close()
		return nil, fmt.Errorf("%s: unsupported file type: %w: %w", name, types.ErrIO, unix.EINVAL)
	}

	if cfg.Buffered {
		items := cfg.BufferItems
		if items <= 0 {
			items = DefaultBufferItems
		}
		d.buffer = newChunkBuffer(d, items)
	}

	return d, nil
}

// BlockSize returns the discovered transfer granularity in bytes.
func (d *Device) BlockSize() uint32 { return d.blockSize }

// Offset returns the container byte offset applied to every read.
func (d *Device) Offset() int64 { return d.offset }

// ReadAt reads len(p) bytes at off relative to the volume offset. With
// buffering enabled all reads serialize through the chunk buffer;
// otherwise the read goes straight to the alignment-splitting path.
func (d *Device) ReadAt(p []byte, off int64) (int, error) {
	if d.buffer != nil {
		d.bufferMu.Lock()
		defer d.bufferMu.Unlock()
		return d.buffer.readAt(p, off)
	}
	return d.readAligned(p, off)
}

// Close releases the underlying descriptor. The chunk buffer is left in
// place; reads issued after Close fail at the closed descriptor.
func (d *Device) Close() error {
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("closing device: %w: %w", types.ErrIO, err)
	}
	return nil
}

// readAligned performs the split read: the block-aligned prefix with
// repeated positioned reads that resume after short reads, then one full
// scratch block for the sub-block remainder.
func (d *Device) readAligned(p []byte, off int64) (int, error) {
	fd := int(d.f.Fd())
	off += d.offset

	blockSize := int64(d.blockSize)
	length := int64(len(p))
	remainder := length % blockSize
	aligned := length - remainder

	var done int64
	for done < aligned {
		n, err := unix.Pread(fd, p[done:aligned], off+done)
		if err != nil {
			return int(done), fmt.Errorf("read %d bytes at %d: %w: %w", aligned-done, off+done, types.ErrIO, err)
		}
		if n <= 0 {
			return int(done), io.ErrUnexpectedEOF
		}
		done += int64(n)
	}

	if remainder > 0 {
		scratch := make([]byte, blockSize)
		n, err := unix.Pread(fd, scratch, off+aligned)
		if err != nil {
			return int(done), fmt.Errorf("read block at %d: %w: %w", off+aligned, types.ErrIO, err)
		}
		if int64(n) > remainder {
			n = int(remainder)
		}
		copied := copy(p[aligned:], scratch[:n])
		done += int64(copied)
		if int64(copied) < remainder {
			return int(done), io.ErrUnexpectedEOF
		}
	}

	return int(done), nil
}
