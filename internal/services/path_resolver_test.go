package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-hfsplus/internal/enginetest"
	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

func newTestResolver(t *testing.T) (*PathResolver, *enginetest.Engine, *PathCache) {
	t.Helper()
	engine := enginetest.New("TestVol")
	cache := NewPathCache(8)
	resolver, err := NewPathResolver(engine, cache, nil)
	require.NoError(t, err)
	return resolver, engine, cache
}

func TestNewPathResolverRequiresEngine(t *testing.T) {
	_, err := NewPathResolver(nil, NewPathCache(8), nil)
	assert.Error(t, err)
}

func TestResolveRoot(t *testing.T) {
	resolver, engine, cache := newTestResolver(t)

	for _, path := range []string{"/", ""} {
		record, key, fork, err := resolver.Resolve(path)
		require.NoError(t, err, "path %q", path)
		assert.Equal(t, types.CNIDRootFolder, record.Folder.CNID)
		assert.Equal(t, types.CNIDRootParent, key.ParentCNID)
		assert.Equal(t, types.DataFork, fork)
	}

	// Root resolution goes straight to the engine, bypassing the cache.
	stats := cache.Stats()
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
	assert.Zero(t, cache.Len())
	assert.Zero(t, engine.Calls["FindRecordByKey"])
}

func TestResolveNestedPath(t *testing.T) {
	resolver, engine, _ := newTestResolver(t)
	docs := engine.AddFolder(types.CNIDRootFolder, "docs")
	notes := engine.AddFile(docs, "notes.txt", []byte("hello"))

	record, key, fork, err := resolver.Resolve("/docs/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, notes, record.File.CNID)
	assert.Equal(t, docs, key.ParentCNID)
	assert.Equal(t, types.DataFork, fork)
}

func TestResolveUsesCacheOnRepeat(t *testing.T) {
	resolver, engine, cache := newTestResolver(t)
	docs := engine.AddFolder(types.CNIDRootFolder, "docs")
	notes := engine.AddFile(docs, "notes.txt", nil)

	_, _, _, err := resolver.Resolve("/docs/notes.txt")
	require.NoError(t, err)
	walked := engine.Calls["FindRecordByKey"]
	require.Equal(t, 2, walked)

	record, _, fork, err := resolver.Resolve("/docs/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, notes, record.File.CNID)
	assert.Equal(t, types.DataFork, fork)
	assert.Equal(t, walked, engine.Calls["FindRecordByKey"], "cache hit should not re-walk the catalog")
	assert.Equal(t, uint64(1), cache.Stats().Hits)
}

func TestResolveResourceFork(t *testing.T) {
	resolver, engine, cache := newTestResolver(t)
	file := engine.AddFile(types.CNIDRootFolder, "app", []byte("data"))
	engine.SetResourceFork(file, []byte("resource"))

	record, _, fork, err := resolver.Resolve("/app/rsrc")
	require.NoError(t, err)
	assert.Equal(t, file, record.File.CNID)
	assert.Equal(t, types.ResourceFork, fork)

	// Resource fork resolutions are never cached.
	assert.Zero(t, cache.Len())
	_, _, ok := cache.Lookup("/app/rsrc")
	assert.False(t, ok)
}

func TestResolveForkSuffixErrors(t *testing.T) {
	resolver, engine, _ := newTestResolver(t)
	docs := engine.AddFolder(types.CNIDRootFolder, "docs")
	engine.AddFile(docs, "notes.txt", nil)
	engine.AddFolder(docs, "rsrc")

	cases := []struct {
		name string
		path string
	}{
		{"extra segment after file", "/docs/notes.txt/child"},
		{"two segments after file", "/docs/notes.txt/a/b"},
		{"rsrc plus trailing segment", "/docs/notes.txt/rsrc/x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := resolver.Resolve(tc.path)
			assert.ErrorIs(t, err, types.ErrInvalidForkSuffix)
		})
	}

	// "rsrc" as a real folder name still resolves as a folder.
	record, _, fork, err := resolver.Resolve("/docs/rsrc")
	require.NoError(t, err)
	assert.True(t, record.IsFolder())
	assert.Equal(t, types.DataFork, fork)
}

func TestResolveEmptySegments(t *testing.T) {
	resolver, engine, cache := newTestResolver(t)
	docs := engine.AddFolder(types.CNIDRootFolder, "docs")
	engine.AddFile(docs, "notes.txt", nil)

	// A single trailing slash after a folder is consumed without a
	// lookup and leaves nothing over.
	record, _, fork, err := resolver.Resolve("/docs/")
	require.NoError(t, err)
	assert.True(t, record.IsFolder())
	assert.Equal(t, types.DataFork, fork)

	// Any other empty segment stops the walk and fails the suffix check.
	cases := []struct {
		name string
		path string
	}{
		{"trailing slash after file", "/docs/notes.txt/"},
		{"double leading slash", "//docs"},
		{"double trailing slash", "/docs//"},
		{"empty segment mid path", "/docs//notes.txt"},
		{"slashes only", "//"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := resolver.Resolve(tc.path)
			assert.ErrorIs(t, err, types.ErrInvalidForkSuffix)
		})
	}

	// None of the failed resolutions landed in the cache.
	assert.Equal(t, 1, cache.Len())
}

func TestResolveNotFoundPassthrough(t *testing.T) {
	resolver, engine, _ := newTestResolver(t)
	engine.AddFolder(types.CNIDRootFolder, "docs")

	_, _, _, err := resolver.Resolve("/docs/missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NotErrorIs(t, err, types.ErrInternal)
}

func TestResolveInvalidSegmentName(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	_, _, _, err := resolver.Resolve("/bad\xffname")
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestResolveKeyConstructionFailure(t *testing.T) {
	resolver, engine, _ := newTestResolver(t)
	engine.MakeKeyErr = errors.New("btree corrupt")

	_, _, _, err := resolver.Resolve("/anything")
	assert.ErrorIs(t, err, types.ErrInternal)
}

func TestResolveDirectoryHardLink(t *testing.T) {
	resolver, engine, _ := newTestResolver(t)
	target := engine.AddFolder(types.CNIDRootFolder, "real")
	inside := engine.AddFile(target, "inside.txt", nil)
	engine.AddDirHardLink(types.CNIDRootFolder, "alias", 77, target)

	// The stand-in file is replaced mid-walk so the next segment resolves
	// under the link target.
	record, _, _, err := resolver.Resolve("/alias/inside.txt")
	require.NoError(t, err)
	assert.Equal(t, inside, record.File.CNID)

	record, _, _, err = resolver.Resolve("/alias")
	require.NoError(t, err)
	require.True(t, record.IsFolder())
	assert.Equal(t, target, record.Folder.CNID)
}

func TestResolveFileHardLink(t *testing.T) {
	resolver, engine, cache := newTestResolver(t)
	target := engine.AddFile(types.CNIDRootFolder, "real.txt", []byte("payload"))
	engine.AddFileHardLink(types.CNIDRootFolder, "link.txt", 88, target)

	record, _, _, err := resolver.Resolve("/link.txt")
	require.NoError(t, err)
	assert.Equal(t, target, record.File.CNID)

	// The cached record is the resolved target, not the stand-in.
	_, cached, ok := cache.Lookup("/link.txt")
	require.True(t, ok)
	assert.Equal(t, target, cached.File.CNID)
}

func TestResolveBrokenHardLink(t *testing.T) {
	resolver, engine, _ := newTestResolver(t)
	target := engine.AddFile(types.CNIDRootFolder, "real.txt", nil)
	engine.AddFileHardLink(types.CNIDRootFolder, "link.txt", 88, target)
	delete(engine.FileLinks, 88)

	_, _, _, err := resolver.Resolve("/link.txt")
	assert.ErrorIs(t, err, types.ErrHardLink)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestResolveNilCache(t *testing.T) {
	engine := enginetest.New("TestVol")
	engine.AddFile(types.CNIDRootFolder, "f", nil)
	resolver, err := NewPathResolver(engine, nil, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		record, _, _, err := resolver.Resolve("/f")
		require.NoError(t, err)
		assert.True(t, record.IsFile())
	}
}
