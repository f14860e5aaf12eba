// Package device defines the Device Driver Interface (C3): the
// polymorphic contract every concrete backend (console, workspace
// filesystem, in-memory) implements, and the FileHandle abstraction it
// yields to the VFS router and descriptor table.
//
// Grounded on the teacher's wasi.File/wasi.FS pair (wasi/fs.go): instead
// of a small interface extended ad hoc, every preview-1 filesystem
// capability gets its own method, and a driver that does not support one
// returns wasip1.ErrNotImplemented — the Go type system then guarantees
// every layer handles every capability explicitly.
package device

import (
	"time"

	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

// Handle is a driver-private reference to an open object: a file, a
// directory, or a console session. It is opaque to the VFS router and the
// descriptor table (§3, "FileHandle"); only the driver that produced it
// knows how to interpret it.
type Handle interface {
	// Driver returns the driver that owns this handle.
	Driver() Driver
}

// DirEntry is one entry produced by Driver.Readdir.
type DirEntry struct {
	Name     string
	Cookie   wasip1.Dircookie
	Ino      uint64
	Filetype wasip1.Filetype
}

// Stat is the metadata a driver reports for an object; it is the
// driver-level analogue of wasip1.Filestat, decoupled from wire encoding.
type Stat struct {
	Dev      uint64
	Ino      uint64
	Filetype wasip1.Filetype
	Nlink    uint64
	Size     uint64
	Atim     time.Time
	Mtim     time.Time
	Ctim     time.Time
}

// Driver is the capability set every device backend implements (§4.3).
// Methods that do not apply to a given driver return
// wasip1.ErrNotImplemented, which the dispatcher maps to ENOSYS.
type Driver interface {
	// ID is a stable device id reported in filestat.dev.
	ID() uint64

	// Open resolves path relative to anchor (nil for the device root) and
	// returns a handle plus its resolved filetype. It honours
	// oflags.creat/excl/trunc/directory.
	Open(anchor Handle, path string, oflags wasip1.Oflags, fdflags wasip1.Fdflags) (Handle, wasip1.Filetype, error)

	// Stat returns metadata for an open handle.
	Stat(h Handle) (Stat, error)
	// StatPath returns metadata for a path relative to anchor without
	// requiring an open handle; follow controls symlink resolution
	// (always false-equivalent since no driver produces symlinks).
	StatPath(anchor Handle, path string, follow bool) (Stat, error)

	// Read reads into buf. When offset is nil the handle's own cursor is
	// used and advanced; when non-nil the read is positional and the
	// cursor is untouched.
	Read(h Handle, buf []byte, offset *uint64) (int, error)
	// Write writes b. When offset is nil the handle's own cursor is used
	// (subject to append semantics applied by the dispatcher) and
	// advanced; when non-nil the write is positional.
	Write(h Handle, b []byte, offset *uint64) (int, error)
	// Seek repositions the handle's cursor and returns the new absolute
	// offset. Non-seekable handles return wasip1.ErrNotSeekable.
	Seek(h Handle, delta int64, whence wasip1.Whence) (uint64, error)

	// Allocate zero-extends the file referenced by h to at least off+len
	// bytes.
	Allocate(h Handle, off, length uint64) error
	// Truncate sets the exact size of the file referenced by h.
	Truncate(h Handle, size uint64) error
	// Sync and Datasync request best-effort persistence.
	Sync(h Handle) error
	Datasync(h Handle) error

	// Readdir returns entries starting strictly after cookie, in a
	// driver-defined but stable-within-session order (§4.7).
	Readdir(h Handle, cookie wasip1.Dircookie) ([]DirEntry, error)

	// Unlink, Rmdir and Mkdir operate on a path relative to anchor.
	Unlink(anchor Handle, path string) error
	Rmdir(anchor Handle, path string) error
	Mkdir(anchor Handle, path string) error
	// Rename moves path (relative to anchor) to newPath (relative to
	// newAnchor), which may belong to the same driver instance only —
	// cross-device rename is rejected by the VFS router before this is
	// called.
	Rename(anchor Handle, path string, newAnchor Handle, newPath string) error

	// SetTimes updates atim/mtim on an open handle, honouring fstflags.
	SetTimes(h Handle, atim, mtim time.Time, flags wasip1.Fstflags) error
	// SetTimesPath is the path-relative analogue of SetTimes.
	SetTimesPath(anchor Handle, path string, atim, mtim time.Time, flags wasip1.Fstflags) error

	// Close releases any backend resources owned by h. It is idempotent
	// from the driver's point of view; the descriptor table guarantees a
	// single call per handle.
	Close(h Handle) error
}
