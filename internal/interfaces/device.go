// File: internal/interfaces/device.go
package interfaces

import (
	"io"

	"github.com/sirupsen/logrus"
)

// BlockDevice is the I/O capability handed to the structural engine. Reads
// are positioned and safe for use below the device's addressable
// granularity; the implementation performs the necessary alignment.
type BlockDevice interface {
	io.ReaderAt
	io.Closer

	// BlockSize returns the discovered transfer granularity in bytes.
	BlockSize() uint32
}

// EngineCallbacks is the capability set passed to an engine factory at
// volume open time. The engine performs all device access and logging
// through it rather than through any process-global state.
type EngineCallbacks struct {
	Device BlockDevice
	Log    logrus.FieldLogger
}

// EngineFactory constructs a CatalogEngine over an open device. Registered
// by engine implementations via the volume package.
type EngineFactory func(cb EngineCallbacks) (CatalogEngine, error)
