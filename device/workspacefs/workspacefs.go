// Package workspacefs implements the workspace-filesystem Device Driver
// (C9b): it wraps the host's synchronous, URI-addressed FileSystem
// collaborator (host.Workspace), converting positional reads and writes
// into whole-file fetch/read-modify-write-slice operations since that
// collaborator offers no partial I/O of its own (§4.9).
//
// Grounded on the teacher's wasi.DirFS (wasi/fs.go), which wraps
// os.OpenFile/os.Stat/os.Mkdir/os.Chtimes behind the same File/FS method
// set; here every os.* call is replaced by a host.Workspace call over a
// URI instead of a local path, because the backing store lives across an
// RPC boundary to the extension host rather than on the local disk.
package workspacefs

import (
	iofs "io/fs"
	"path"
	"strings"
	"time"

	"github.com/microsoft/vscode-wasm-sub002/device"
	"github.com/microsoft/vscode-wasm-sub002/host"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

// Driver is the workspace-fs device, rooted at a single workspace URI.
type Driver struct {
	id   uint64
	root string // e.g. "file:///workspace", no trailing slash
	ws   host.Workspace
}

// New returns a workspace-fs driver identified by id, rooted at root and
// backed by ws.
func New(id uint64, root string, ws host.Workspace) *Driver {
	return &Driver{id: id, root: strings.TrimSuffix(root, "/"), ws: ws}
}

type handle struct {
	d    *Driver
	uri  string
	isDir bool
	cursor uint64
}

func (h *handle) Driver() device.Driver { return h.d }

var _ device.Driver = (*Driver)(nil)

func (d *Driver) ID() uint64 { return d.id }

func (d *Driver) uriFor(anchor device.Handle, p string) string {
	base := d.root
	if anchor != nil {
		base = anchor.(*handle).uri
	}
	if p == "" || p == "." {
		return base
	}
	return base + "/" + path.Clean(p)
}

func kindToFiletype(k host.WorkspaceEntryKind) wasip1.Filetype {
	switch k {
	case host.WorkspaceDirectory:
		return wasip1.FILETYPE_DIRECTORY
	case host.WorkspaceSymbolicLink:
		return wasip1.FILETYPE_SYMBOLIC_LINK
	case host.WorkspaceFile:
		return wasip1.FILETYPE_REGULAR_FILE
	default:
		return wasip1.FILETYPE_UNKNOWN
	}
}

func (d *Driver) statToDevice(st host.WorkspaceStat) device.Stat {
	mtim := st.Mtime
	atim := mtim // atime tracking is a non-goal (§1); mirrored to mtime
	return device.Stat{
		Dev: d.id, Filetype: kindToFiletype(st.Type), Nlink: 1,
		Size: st.Size, Atim: atim, Mtim: mtim, Ctim: st.Ctime,
	}
}

func (d *Driver) Open(anchor device.Handle, p string, oflags wasip1.Oflags, fdflags wasip1.Fdflags) (device.Handle, wasip1.Filetype, error) {
	uri := d.uriFor(anchor, p)

	st, err := d.ws.Stat(uri)
	if err != nil {
		if !oflags.Has(wasip1.OFLAG_CREAT) {
			return nil, 0, mapErr(err)
		}
		if err := d.ws.WriteFile(uri, nil); err != nil {
			return nil, 0, mapErr(err)
		}
		return &handle{d: d, uri: uri}, wasip1.FILETYPE_REGULAR_FILE, nil
	}

	if oflags.Has(wasip1.OFLAG_EXCL) && oflags.Has(wasip1.OFLAG_CREAT) {
		return nil, 0, iofs.ErrExist
	}
	isDir := st.Type == host.WorkspaceDirectory
	if oflags.Has(wasip1.OFLAG_DIRECTORY) && !isDir {
		return nil, 0, wasip1.ErrNotDir
	}
	if oflags.Has(wasip1.OFLAG_TRUNC) && !isDir {
		if err := d.ws.WriteFile(uri, nil); err != nil {
			return nil, 0, mapErr(err)
		}
	}
	return &handle{d: d, uri: uri, isDir: isDir}, kindToFiletype(st.Type), nil
}

func (d *Driver) Stat(h device.Handle) (device.Stat, error) {
	st, err := d.ws.Stat(h.(*handle).uri)
	if err != nil {
		return device.Stat{}, mapErr(err)
	}
	return d.statToDevice(st), nil
}

func (d *Driver) StatPath(anchor device.Handle, p string, follow bool) (device.Stat, error) {
	st, err := d.ws.Stat(d.uriFor(anchor, p))
	if err != nil {
		return device.Stat{}, mapErr(err)
	}
	return d.statToDevice(st), nil
}

func (d *Driver) Read(hh device.Handle, buf []byte, offset *uint64) (int, error) {
	h := hh.(*handle)
	if h.isDir {
		return 0, wasip1.ErrIsDir
	}
	data, err := d.ws.ReadFile(h.uri)
	if err != nil {
		return 0, mapErr(err)
	}
	pos := h.cursor
	if offset != nil {
		pos = *offset
	}
	if pos >= uint64(len(data)) {
		return 0, nil
	}
	n := copy(buf, data[pos:])
	if offset == nil {
		h.cursor += uint64(n)
	}
	return n, nil
}

func (d *Driver) Write(hh device.Handle, b []byte, offset *uint64) (int, error) {
	h := hh.(*handle)
	if h.isDir {
		return 0, wasip1.ErrIsDir
	}
	data, err := d.ws.ReadFile(h.uri)
	if err != nil {
		data = nil
	}
	pos := h.cursor
	if offset != nil {
		pos = *offset
	}
	end := pos + uint64(len(b))
	if end > uint64(len(data)) {
		grown := make([]byte, end)
		copy(grown, data)
		data = grown
	}
	copy(data[pos:end], b)
	if err := d.ws.WriteFile(h.uri, data); err != nil {
		return 0, mapErr(err)
	}
	if offset == nil {
		h.cursor = end
	}
	return len(b), nil
}

func (d *Driver) Seek(hh device.Handle, delta int64, whence wasip1.Whence) (uint64, error) {
	h := hh.(*handle)
	if h.isDir {
		return 0, wasip1.ErrIsDir
	}
	var base int64
	switch whence {
	case wasip1.WHENCE_SET:
		base = 0
	case wasip1.WHENCE_CUR:
		base = int64(h.cursor)
	case wasip1.WHENCE_END:
		st, err := d.ws.Stat(h.uri)
		if err != nil {
			return 0, mapErr(err)
		}
		base = int64(st.Size)
	}
	next := base + delta
	if next < 0 {
		return 0, iofs.ErrInvalid
	}
	h.cursor = uint64(next)
	return h.cursor, nil
}

func (d *Driver) Allocate(hh device.Handle, off, length uint64) error {
	h := hh.(*handle)
	data, err := d.ws.ReadFile(h.uri)
	if err != nil {
		data = nil
	}
	end := off + length
	if end < off {
		return iofs.ErrInvalid
	}
	if end <= uint64(len(data)) {
		return nil
	}
	grown := make([]byte, end)
	copy(grown, data)
	return mapErr(d.ws.WriteFile(h.uri, grown))
}

func (d *Driver) Truncate(hh device.Handle, size uint64) error {
	h := hh.(*handle)
	data, err := d.ws.ReadFile(h.uri)
	if err != nil {
		data = nil
	}
	if size <= uint64(len(data)) {
		data = data[:size]
	} else {
		grown := make([]byte, size)
		copy(grown, data)
		data = grown
	}
	return mapErr(d.ws.WriteFile(h.uri, data))
}

// Sync and Datasync no-op: every write already went through WriteFile, a
// whole-file synchronous call the host workspace implementation owns the
// durability of; see SPEC_FULL.md §9(a).
func (d *Driver) Sync(device.Handle) error     { return nil }
func (d *Driver) Datasync(device.Handle) error { return nil }

func (d *Driver) Readdir(hh device.Handle, cookie wasip1.Dircookie) ([]device.DirEntry, error) {
	h := hh.(*handle)
	entries, err := d.ws.ReadDirectory(h.uri)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []device.DirEntry
	for i, e := range entries {
		c := wasip1.Dircookie(i + 1)
		if c <= cookie {
			continue
		}
		out = append(out, device.DirEntry{Name: e.Name, Cookie: c, Filetype: kindToFiletype(e.Type)})
	}
	return out, nil
}

func (d *Driver) Unlink(anchor device.Handle, p string) error {
	return mapErr(d.ws.Delete(d.uriFor(anchor, p), false))
}

func (d *Driver) Rmdir(anchor device.Handle, p string) error {
	uri := d.uriFor(anchor, p)
	entries, err := d.ws.ReadDirectory(uri)
	if err == nil && len(entries) != 0 {
		return wasip1.ErrNotEmpty
	}
	return mapErr(d.ws.Delete(uri, false))
}

func (d *Driver) Mkdir(anchor device.Handle, p string) error {
	return mapErr(d.ws.CreateDirectory(d.uriFor(anchor, p)))
}

func (d *Driver) Rename(anchor device.Handle, p string, newAnchor device.Handle, newPath string) error {
	return mapErr(d.ws.Rename(d.uriFor(anchor, p), d.uriFor(newAnchor, newPath), false))
}

// SetTimes and SetTimesPath return ENOSYS: the workspace collaborator
// (§6.7) exposes no time-setting primitive.
func (d *Driver) SetTimes(device.Handle, time.Time, time.Time, wasip1.Fstflags) error {
	return wasip1.ErrNotImplemented
}

func (d *Driver) SetTimesPath(device.Handle, string, time.Time, time.Time, wasip1.Fstflags) error {
	return wasip1.ErrNotImplemented
}

func (d *Driver) Close(device.Handle) error { return nil }

// mapErr returns a host.Workspace error unchanged and leaves the mapping
// to wasip1.ErrnoOf (§4.9): wrapped io/fs sentinels give noent
// (ErrNotExist), exist (ErrExist) and acces (ErrPermission); notdir and
// rofs are produced only when the Workspace implementation returns
// wasip1.ErrNotDir or wasip1.ErrReadOnly; anything else surfaces as a
// plain I/O error (EIO).
func mapErr(err error) error { return err }
