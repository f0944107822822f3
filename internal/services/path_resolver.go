package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/deploymenttheory/go-hfsplus/internal/interfaces"
	"github.com/deploymenttheory/go-hfsplus/internal/names"
	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// resourceForkSuffix is the pseudo path segment selecting a file's
// resource fork, e.g. "/a/file/rsrc".
const resourceForkSuffix = "rsrc"

// PathResolver walks POSIX paths down the catalog one component at a
// time, consulting the path cache first and handling both hard-link
// indirection schemes along the way.
type PathResolver struct {
	engine interfaces.CatalogEngine
	cache  *PathCache
	log    logrus.FieldLogger
}

// NewPathResolver creates a resolver over the given engine. cache may be
// nil to disable caching; log may be nil for silence.
func NewPathResolver(engine interfaces.CatalogEngine, cache *PathCache, log logrus.FieldLogger) (*PathResolver, error) {
	if engine == nil {
		return nil, fmt.Errorf("catalog engine cannot be nil")
	}
	if log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		log = logger
	}
	return &PathResolver{engine: engine, cache: cache, log: log}, nil
}

// Resolve maps a POSIX path to its catalog record, the key it was found
// under, and the selected fork.
//
// Engine lookup failures propagate verbatim; only name conversion, key
// construction, fork-suffix, and hard-link failures are classified here.
// Resource-fork resolutions are never cached, so a later lookup of the
// same file's data fork cannot be satisfied with the wrong fork selector.
func (r *PathResolver) Resolve(path string) (types.CatalogRecord, types.CatalogKey, types.ForkType, error) {
	// The root resolves without touching the cache or converting any
	// segment.
	if path == "" || path == "/" {
		record, key, err := r.engine.FindRecordByCNID(types.CNIDRootFolder)
		if err != nil {
			return types.CatalogRecord{}, types.CatalogKey{}, types.DataFork, err
		}
		return record, key, types.DataFork, nil
	}

	segments := splitPath(path)

	if r.cache != nil {
		if key, record, ok := r.cache.Lookup(path); ok {
			// The cache is fork-agnostic; a hit always selects the
			// data fork.
			return record, key, types.DataFork, nil
		}
		r.log.WithField("path", path).Debug("path cache miss, walking catalog")
	}

	record, key, err := r.engine.FindRecordByCNID(types.CNIDRootFolder)
	if err != nil {
		return types.CatalogRecord{}, types.CatalogKey{}, types.DataFork, err
	}

	// The walk stops at the first empty segment as well as at the first
	// file; whatever trails the stopping point then has to pass the
	// fork-suffix check. A single trailing slash after a folder consumes
	// its empty segment and leaves nothing over.
	consumed := 0
	for consumed < len(segments) && record.Type == types.RecordFolder && segments[consumed] != "" {
		segment := segments[consumed]

		uname, err := names.FromPosix(segment)
		if err != nil {
			return types.CatalogRecord{}, types.CatalogKey{}, types.DataFork,
				fmt.Errorf("segment %q of %q: %w", segment, path, types.ErrInvalidName)
		}

		key, err = r.engine.MakeCatalogKey(record.Folder.CNID, uname)
		if err != nil {
			return types.CatalogRecord{}, types.CatalogKey{}, types.DataFork,
				fmt.Errorf("building key for segment %q: %w", segment, types.ErrInternal)
		}

		record, err = r.engine.FindRecordByKey(key)
		if err != nil {
			// Verbatim: per-segment lookup failures are the engine's to
			// describe, including not-found.
			return types.CatalogRecord{}, types.CatalogKey{}, types.DataFork, err
		}

		if record.Type == types.RecordFile &&
			record.File.UserInfo.FileCreator == types.MacsCreator &&
			record.File.UserInfo.FileType == types.DirHardLinkType {
			record, err = r.engine.ResolveDirectoryHardLink(record.File.BSD.Special)
			if err != nil {
				return types.CatalogRecord{}, types.CatalogKey{}, types.DataFork,
					fmt.Errorf("directory hard link at %q: %w: %w", segment, types.ErrHardLink, err)
			}
		}

		consumed++
	}

	fork := types.DataFork
	if leftover, ok := leftoverSuffix(segments, consumed, record.IsFolder()); ok {
		// Anything left over after the walk stops: only the literal
		// resource-fork suffix is accepted, and only on a file.
		if record.Type != types.RecordFile || leftover != resourceForkSuffix {
			return types.CatalogRecord{}, types.CatalogKey{}, types.DataFork,
				fmt.Errorf("path %q: %w", path, types.ErrInvalidForkSuffix)
		}
		fork = types.ResourceFork
	}

	if record.Type == types.RecordFile &&
		record.File.UserInfo.FileCreator == types.HFSPlusCreator &&
		record.File.UserInfo.FileType == types.HardLinkType {
		record, err = r.engine.ResolveFileHardLink(record.File.BSD.Special)
		if err != nil {
			return types.CatalogRecord{}, types.CatalogKey{}, types.DataFork,
				fmt.Errorf("file hard link at %q: %w: %w", path, types.ErrHardLink, err)
		}
	}

	if fork == types.DataFork && r.cache != nil {
		// Best effort; caching is an optimization, never a correctness
		// requirement.
		r.cache.Add(path, key, record)
	} else if fork == types.ResourceFork {
		r.log.WithField("path", path).Debug("resource fork resolution not cached")
	}

	return record, key, fork, nil
}

// splitPath breaks a POSIX path into walk segments. Exactly one leading
// separator is dropped; every other segment is kept verbatim, empty ones
// included, so the walk sees the path's separator structure unchanged.
func splitPath(path string) []string {
	rest, _ := strings.CutPrefix(path, "/")
	return strings.Split(rest, "/")
}

// leftoverSuffix returns the unconsumed tail of the segment list after the
// walk stopped at index consumed, joined back with separators. A stop at
// an empty segment under a folder swallows that segment; the tail starts
// after it. ok is false when nothing trails the stopping point.
func leftoverSuffix(segments []string, consumed int, atFolder bool) (string, bool) {
	if consumed >= len(segments) {
		return "", false
	}
	if atFolder && segments[consumed] == "" {
		if consumed+1 >= len(segments) {
			return "", false
		}
		return strings.Join(segments[consumed+1:], "/"), true
	}
	return strings.Join(segments[consumed:], "/"), true
}
