package fuse

import (
	"errors"
	"fmt"
)

// OldVersionError is returned by the serving loop when the kernel
// speaks a FUSE protocol older than the library can handle. The
// session is unusable; the mount should be torn down.
type OldVersionError struct {
	Kernel     Protocol
	LibraryMin Protocol
}

func (e *OldVersionError) Error() string {
	return fmt.Sprintf("kernel FUSE version is too old: %v < %v", e.Kernel, e.LibraryMin)
}

// ErrClosedWithoutInit is returned when the kernel closes the
// connection before the handshake completed. Seen when the mount is
// aborted before the first request, and in tests that close the fake
// kernel early.
var (
	ErrClosedWithoutInit = errors.New("fuse connection closed without init")
)

// bugKernelWriteError is passed to Debug when a write to the kernel
// fails in a context that has no way to surface the error, such as a
// reply raced against unmount.
type bugKernelWriteError struct {
	Error string
	Stack string
}

func (b bugKernelWriteError) String() string {
	return fmt.Sprintf("kernel write error: error=%q stack=\n%s", b.Error, b.Stack)
}

// safe to call even with nil error
func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

type notCachedError struct{}

func (notCachedError) Error() string {
	return "node not cached"
}

var _ ErrorNumber = notCachedError{}

func (notCachedError) Errno() Errno {
	// Behave just like if the original syscall.ENOENT had been passed
	// straight through.
	return ENOENT
}

// ErrNotCached is returned by the invalidate notifications when the
// kernel is not currently caching the named node or entry, so there
// was nothing to invalidate.
var (
	ErrNotCached = notCachedError{}
)
