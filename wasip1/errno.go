package wasip1

import (
	"errors"
	"io/fs"
)

// Sentinel errors returned by device drivers and the VFS router for
// conditions that have no direct counterpart in io/fs. Mirrors the
// teacher's own wasi.ErrNotImplemented / wasi.ErrReadOnly pair (§7).
var (
	// ErrNotImplemented is returned by a driver method the concrete
	// driver does not support; maps to ENOSYS.
	ErrNotImplemented = errors.New("wasip1: not implemented")
	// ErrNotCapable is returned by the VFS router when a guest path lies
	// under no mount; maps to ENOTCAPABLE.
	ErrNotCapable = errors.New("wasip1: not capable")
	// ErrNotSeekable is returned by a driver whose handle has no
	// addressable offset (console/tty); maps to ESPIPE.
	ErrNotSeekable = errors.New("wasip1: not seekable")
	// ErrNotEmpty is returned when rmdir targets a non-empty directory;
	// maps to ENOTEMPTY.
	ErrNotEmpty = errors.New("wasip1: directory not empty")
	// ErrReadOnly is returned by a driver mounted read-only; maps to EROFS.
	ErrReadOnly = errors.New("wasip1: read only")
	// ErrNotDir is returned when a path component expected to be a
	// directory is not; maps to ENOTDIR.
	ErrNotDir = errors.New("wasip1: not a directory")
	// ErrIsDir is returned when an operation requiring a regular file is
	// applied to a directory; maps to EISDIR.
	ErrIsDir = errors.New("wasip1: is a directory")
)

// ErrnoOf maps a Go error produced anywhere below the dispatcher (driver,
// VFS router, fd table) to the preview-1 errno reported to the guest
// (§7). It uses errors.Is throughout so wrapped errors compose correctly
// across layers; nil maps to ESUCCESS and anything unrecognised maps to
// EIO rather than lying about success.
func ErrnoOf(err error) Errno {
	switch {
	case err == nil:
		return ESUCCESS
	case errors.Is(err, ErrNotImplemented):
		return ENOSYS
	case errors.Is(err, ErrNotCapable):
		return ENOTCAPABLE
	case errors.Is(err, ErrNotSeekable):
		return ESPIPE
	case errors.Is(err, ErrNotEmpty):
		return ENOTEMPTY
	case errors.Is(err, ErrReadOnly):
		return EROFS
	case errors.Is(err, ErrNotDir):
		return ENOTDIR
	case errors.Is(err, ErrIsDir):
		return EISDIR
	case errors.Is(err, fs.ErrNotExist):
		return ENOENT
	case errors.Is(err, fs.ErrExist):
		return EEXIST
	case errors.Is(err, fs.ErrPermission):
		return EACCES
	case errors.Is(err, fs.ErrInvalid):
		return EINVAL
	case errors.Is(err, fs.ErrClosed):
		return EBADF
	default:
		return EIO
	}
}
