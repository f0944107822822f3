package device

import (
	"container/list"
	"errors"
	"io"
)

// chunkBuffer is the userspace buffered-I/O indirection: a fixed number
// of block-sized chunks reused least-recently-used first. It fills the
// role ublio plays for the C implementations of this layer. Callers hold
// the device's buffer mutex for the duration of every read.
type chunkBuffer struct {
	dev       *Device
	chunkSize int64
	maxItems  int

	chunks map[int64]*list.Element
	order  *list.List // front is most recently used
}

type bufferChunk struct {
	base int64
	data []byte
}

func newChunkBuffer(dev *Device, items int) *chunkBuffer {
	return &chunkBuffer{
		dev:       dev,
		chunkSize: int64(dev.blockSize),
		maxItems:  items,
		chunks:    make(map[int64]*list.Element, items),
		order:     list.New(),
	}
}

// readAt serves the request chunk by chunk, loading missing chunks with
// aligned device reads.
func (b *chunkBuffer) readAt(p []byte, off int64) (int, error) {
	total := 0
	for total < len(p) {
		pos := off + int64(total)
		base := pos - pos%b.chunkSize

		chunk, err := b.chunk(base)
		if err != nil {
			return total, err
		}

		if pos-base >= int64(len(chunk.data)) {
			return total, io.ErrUnexpectedEOF
		}
		n := copy(p[total:], chunk.data[pos-base:])
		if n == 0 {
			return total, io.ErrUnexpectedEOF
		}
		total += n
	}
	return total, nil
}

func (b *chunkBuffer) chunk(base int64) (*bufferChunk, error) {
	if el, ok := b.chunks[base]; ok {
		b.order.MoveToFront(el)
		return el.Value.(*bufferChunk), nil
	}

	data := make([]byte, b.chunkSize)
	n, err := b.dev.readAligned(data, base)
	if err != nil {
		// The last chunk of a device whose size is not a chunk multiple
		// comes back short. Keep what was read; readAt fails only when
		// a request reaches past the shortfall.
		if !errors.Is(err, io.ErrUnexpectedEOF) || n <= 0 {
			return nil, err
		}
		data = data[:n]
	}

	chunk := &bufferChunk{base: base, data: data}
	b.chunks[base] = b.order.PushFront(chunk)

	for b.order.Len() > b.maxItems {
		oldest := b.order.Back()
		b.order.Remove(oldest)
		delete(b.chunks, oldest.Value.(*bufferChunk).base)
	}

	return chunk, nil
}
