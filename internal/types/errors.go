package types

import "errors"

// Error taxonomy shared by the resolver, bridges, and device adapter.
// Engine lookup failures are propagated verbatim and are expected to wrap
// ErrNotFound when a key or CNID has no catalog record.
var (
	// ErrEncoding marks a malformed or non-representable name: invalid
	// UTF-8 or UTF-16 input, or a converted name exceeding NameMax units.
	ErrEncoding = errors.New("name encoding invalid")

	// ErrNotFound marks a catalog key or CNID with no record.
	ErrNotFound = errors.New("catalog record not found")

	// ErrInvalidName marks a path segment that could not be converted to
	// a volume name.
	ErrInvalidName = errors.New("invalid name in path")

	// ErrInvalidForkSuffix marks a trailing pseudo-segment that is not the
	// literal resource-fork suffix on a file.
	ErrInvalidForkSuffix = errors.New("invalid fork suffix")

	// ErrHardLink marks a failed hard-link indirection.
	ErrHardLink = errors.New("hard link resolution failed")

	// ErrIO marks a device or file level failure; the wrapped error
	// carries the platform code.
	ErrIO = errors.New("device i/o failure")

	// ErrInternal marks a catalog key construction failure, not expected
	// under normal operation.
	ErrInternal = errors.New("internal catalog error")
)
