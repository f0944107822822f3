// Package volume ties the device adapter, the registered structural
// engine, and the per-volume path cache together into a single handle
// with an open/close lifecycle. Nothing here is process-global except the
// engine registry; two open volumes share no cache or device state.
package volume

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deploymenttheory/go-hfsplus/internal/device"
	"github.com/deploymenttheory/go-hfsplus/internal/interfaces"
	"github.com/deploymenttheory/go-hfsplus/internal/names"
	"github.com/deploymenttheory/go-hfsplus/internal/services"
	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// Volume is an open HFS+ volume: the device it lives on, the structural
// engine parsing it, and the resolver state scoped to it.
type Volume struct {
	id       uuid.UUID
	path     string
	offset   int64
	dev      *device.Device
	engine   interfaces.CatalogEngine
	cache    *services.PathCache
	resolver *services.PathResolver
	log      logrus.FieldLogger
}

// Open opens the named device or image file at the given container byte
// offset and constructs the structural engine through the registered
// factory. cfg may be nil for defaults; log may be nil for the standard
// logger.
func Open(name string, offset int64, cfg *Config, log logrus.FieldLogger) (*Volume, error) {
	factory, ok := registeredEngine()
	if !ok {
		return nil, fmt.Errorf("no catalog engine registered")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	dev, err := device.Open(name, offset, device.Config{
		Buffered:          cfg.BufferedIO,
		BufferItems:       cfg.BufferItems,
		FallbackBlockSize: cfg.FallbackBlockSize,
	})
	if err != nil {
		return nil, fmt.Errorf("opening device for %s: %w", name, err)
	}

	id := uuid.New()
	vlog := log.WithFields(logrus.Fields{
		"volume_id": id,
		"device":    name,
	})

	engine, err := factory(interfaces.EngineCallbacks{Device: dev, Log: vlog})
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("constructing catalog engine for %s: %w", name, err)
	}

	cache := services.NewPathCache(cfg.PathCacheCapacity)
	resolver, err := services.NewPathResolver(engine, cache, vlog)
	if err != nil {
		engine.Close()
		dev.Close()
		return nil, err
	}

	v := &Volume{
		id:       id,
		path:     name,
		offset:   offset,
		dev:      dev,
		engine:   engine,
		cache:    cache,
		resolver: resolver,
		log:      vlog,
	}

	vh := engine.VolumeHeader()
	vlog.WithFields(logrus.Fields{
		"block_size": vh.BlockSize,
		"journaled":  vh.Journaled(),
		"locked":     vh.Locked(),
	}).Info("volume opened")

	return v, nil
}

// ID returns the handle's correlation identifier.
func (v *Volume) ID() uuid.UUID { return v.id }

// DevicePath returns the path the volume was opened from.
func (v *Volume) DevicePath() string { return v.path }

// Offset returns the container byte offset of the volume.
func (v *Volume) Offset() int64 { return v.offset }

// Engine exposes the structural engine for direct catalog operations.
func (v *Volume) Engine() interfaces.CatalogEngine { return v.engine }

// Header returns the decoded volume header.
func (v *Volume) Header() types.VolumeHeader { return v.engine.VolumeHeader() }

// Name returns the volume's name in POSIX form.
func (v *Volume) Name() (string, error) {
	return names.ToPosix(v.engine.VolumeName())
}

// Journaled reports whether the volume carries a journal.
func (v *Volume) Journaled() bool {
	header := v.engine.VolumeHeader()
	return header.Journaled()
}

// ReadOnly reports whether the handle is read-only. This layer only ever
// opens devices for reading, so it is always true.
func (v *Volume) ReadOnly() bool { return true }

// Resolve maps a POSIX path to its catalog record, key, and fork.
func (v *Volume) Resolve(path string) (types.CatalogRecord, types.CatalogKey, types.ForkType, error) {
	return v.resolver.Resolve(path)
}

// Stat translates a catalog record into POSIX stat fields against this
// volume's allocation block size.
func (v *Volume) Stat(record types.CatalogRecord, fork types.ForkType) types.Stat {
	return services.StatRecord(v.engine.VolumeHeader(), record, fork)
}

// RecordPath reconstructs the absolute path of a catalog node.
func (v *Volume) RecordPath(cnid types.CNID) (string, error) {
	return services.RecordPath(v.engine, cnid)
}

// CacheStats returns the path-cache counters for this volume.
func (v *Volume) CacheStats() services.PathCacheStats { return v.cache.Stats() }

// Close tears down the engine, then the device. Safe to call once.
func (v *Volume) Close() error {
	var errs []error
	if err := v.engine.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing engine: %w", err))
	}
	if err := v.dev.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	v.log.Debug("volume closed")
	return nil
}
