// Package memfs implements the in-memory Device Driver (C9c): a tree of
// nodes holding bytes-and-times for files, where each directory maps child
// names to nodes and keeps the names in insertion order (the order Readdir
// reports them in; they are not sorted). Used for small roots, pipe
// emulation, and tests.
//
// Grounded on the teacher's wasi.DirFS (wasi/fs.go) for the overall
// open/stat/mkdir/chtimes method shapes, adapted from a real-filesystem
// backend to a synthetic in-process tree since memfs has no host
// filesystem underneath it.
package memfs

import (
	iofs "io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/microsoft/vscode-wasm-sub002/device"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

var (
	errNotExist = iofs.ErrNotExist
	errExist    = iofs.ErrExist
	errInvalid  = iofs.ErrInvalid
)

type node struct {
	name     string
	isDir    bool
	data     []byte
	children map[string]*node
	order    []string
	atim     time.Time
	mtim     time.Time
	ctim     time.Time
}

func newDir(name string) *node {
	now := time.Now()
	return &node{name: name, isDir: true, children: map[string]*node{}, atim: now, mtim: now, ctim: now}
}

// FS is the in-memory driver. The zero value is not usable; construct with New.
type FS struct {
	id   uint64
	mu   sync.Mutex
	root *node
}

// New returns an empty in-memory filesystem identified by id (reported as
// filestat.dev to distinguish mounts of the same driver kind).
func New(id uint64) *FS {
	return &FS{id: id, root: newDir("")}
}

type handle struct {
	fs     *FS
	node   *node
	path   string // device-local path, for error messages and rename bookkeeping
	cursor uint64
}

func (h *handle) Driver() device.Driver { return h.fs }

var _ device.Driver = (*FS)(nil)

func (f *FS) ID() uint64 { return f.id }

func splitPath(p string) []string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

// lookup walks segs from start, returning the node and its parent (nil if
// start itself is the result).
func lookup(start *node, segs []string) (n, parent *node, name string, err error) {
	n = start
	for i, seg := range segs {
		if !n.isDir {
			return nil, nil, "", wasip1.ErrNotDir
		}
		child, ok := n.children[seg]
		if !ok {
			if i == len(segs)-1 {
				return nil, n, seg, errNotExist
			}
			return nil, nil, "", errNotExist
		}
		parent = n
		name = seg
		n = child
	}
	return n, parent, name, nil
}

func (f *FS) anchorNode(anchor device.Handle) *node {
	if anchor == nil {
		return f.root
	}
	return anchor.(*handle).node
}

func (f *FS) Open(anchor device.Handle, p string, oflags wasip1.Oflags, fdflags wasip1.Fdflags) (device.Handle, wasip1.Filetype, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	start := f.anchorNode(anchor)
	segs := splitPath(p)
	if len(segs) == 0 {
		return &handle{fs: f, node: start, path: p}, wasip1.FILETYPE_DIRECTORY, nil
	}

	n, parent, name, err := lookup(start, segs)
	if err == errNotExist {
		if !oflags.Has(wasip1.OFLAG_CREAT) {
			return nil, 0, errNotExist
		}
		if parent == nil {
			return nil, 0, errNotExist
		}
		child := &node{name: name, atim: time.Now()}
		child.mtim, child.ctim = child.atim, child.atim
		parent.children[name] = child
		parent.order = append(parent.order, name)
		n = child
	} else if err != nil {
		return nil, 0, err
	} else {
		if oflags.Has(wasip1.OFLAG_EXCL) && oflags.Has(wasip1.OFLAG_CREAT) {
			return nil, 0, errExist
		}
		if oflags.Has(wasip1.OFLAG_DIRECTORY) && !n.isDir {
			return nil, 0, wasip1.ErrNotDir
		}
		if oflags.Has(wasip1.OFLAG_TRUNC) && !n.isDir {
			n.data = nil
			n.mtim = time.Now()
		}
	}

	ft := wasip1.FILETYPE_REGULAR_FILE
	if n.isDir {
		ft = wasip1.FILETYPE_DIRECTORY
	}
	return &handle{fs: f, node: n, path: p}, ft, nil
}

func statOf(f *FS, n *node) device.Stat {
	ft := wasip1.FILETYPE_REGULAR_FILE
	if n.isDir {
		ft = wasip1.FILETYPE_DIRECTORY
	}
	return device.Stat{
		Dev: f.id, Filetype: ft, Nlink: 1,
		Size: uint64(len(n.data)),
		Atim: n.atim, Mtim: n.mtim, Ctim: n.ctim,
	}
}

func (f *FS) Stat(h device.Handle) (device.Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return statOf(f, h.(*handle).node), nil
}

func (f *FS) StatPath(anchor device.Handle, p string, follow bool) (device.Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _, _, err := lookup(f.anchorNode(anchor), splitPath(p))
	if err != nil {
		return device.Stat{}, err
	}
	return statOf(f, n), nil
}

func (f *FS) Read(hh device.Handle, buf []byte, offset *uint64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := hh.(*handle)
	if h.node.isDir {
		return 0, wasip1.ErrIsDir
	}
	pos := h.cursor
	if offset != nil {
		pos = *offset
	}
	if pos >= uint64(len(h.node.data)) {
		return 0, nil
	}
	n := copy(buf, h.node.data[pos:])
	if offset == nil {
		h.cursor += uint64(n)
	}
	h.node.atim = time.Now()
	return n, nil
}

func (f *FS) Write(hh device.Handle, b []byte, offset *uint64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := hh.(*handle)
	if h.node.isDir {
		return 0, wasip1.ErrIsDir
	}
	pos := h.cursor
	if offset != nil {
		pos = *offset
	}
	end := pos + uint64(len(b))
	if end > uint64(len(h.node.data)) {
		grown := make([]byte, end)
		copy(grown, h.node.data)
		h.node.data = grown
	}
	copy(h.node.data[pos:end], b)
	if offset == nil {
		h.cursor = end
	}
	h.node.mtim = time.Now()
	return len(b), nil
}

func (f *FS) Seek(hh device.Handle, delta int64, whence wasip1.Whence) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := hh.(*handle)
	if h.node.isDir {
		return 0, wasip1.ErrIsDir
	}
	var base int64
	switch whence {
	case wasip1.WHENCE_SET:
		base = 0
	case wasip1.WHENCE_CUR:
		base = int64(h.cursor)
	case wasip1.WHENCE_END:
		base = int64(len(h.node.data))
	}
	next := base + delta
	if next < 0 {
		return 0, errInvalid
	}
	h.cursor = uint64(next)
	return h.cursor, nil
}

func (f *FS) Allocate(hh device.Handle, off, length uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := hh.(*handle)
	end := off + length
	if end < off {
		return errInvalid
	}
	if end > uint64(len(h.node.data)) {
		grown := make([]byte, end)
		copy(grown, h.node.data)
		h.node.data = grown
	}
	return nil
}

func (f *FS) Truncate(hh device.Handle, size uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := hh.(*handle)
	if size <= uint64(len(h.node.data)) {
		h.node.data = h.node.data[:size]
	} else {
		grown := make([]byte, size)
		copy(grown, h.node.data)
		h.node.data = grown
	}
	h.node.mtim = time.Now()
	return nil
}

func (f *FS) Sync(device.Handle) error     { return nil }
func (f *FS) Datasync(device.Handle) error { return nil }

func (f *FS) Readdir(hh device.Handle, cookie wasip1.Dircookie) ([]device.DirEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := hh.(*handle)
	if !h.node.isDir {
		return nil, wasip1.ErrNotDir
	}

	var out []device.DirEntry
	for i, name := range h.node.order {
		c := wasip1.Dircookie(i + 1)
		if c <= cookie {
			continue
		}
		child, ok := h.node.children[name]
		if !ok {
			continue // deleted since insertion; skip per §4.7 tolerance
		}
		ft := wasip1.FILETYPE_REGULAR_FILE
		if child.isDir {
			ft = wasip1.FILETYPE_DIRECTORY
		}
		out = append(out, device.DirEntry{Name: name, Cookie: c, Filetype: ft})
	}
	return out, nil
}

func (f *FS) Unlink(anchor device.Handle, p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, parent, name, err := lookup(f.anchorNode(anchor), splitPath(p))
	if err != nil {
		return err
	}
	if n.isDir {
		return wasip1.ErrIsDir
	}
	delete(parent.children, name)
	parent.order = removeName(parent.order, name)
	return nil
}

func (f *FS) Rmdir(anchor device.Handle, p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, parent, name, err := lookup(f.anchorNode(anchor), splitPath(p))
	if err != nil {
		return err
	}
	if !n.isDir {
		return wasip1.ErrNotDir
	}
	if len(n.children) != 0 {
		return wasip1.ErrNotEmpty
	}
	delete(parent.children, name)
	parent.order = removeName(parent.order, name)
	return nil
}

func (f *FS) Mkdir(anchor device.Handle, p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := f.anchorNode(anchor)
	segs := splitPath(p)
	if len(segs) == 0 {
		return errExist
	}
	_, parent, name, err := lookup(start, segs)
	if err == nil {
		return errExist
	}
	if err != errNotExist || parent == nil {
		return err
	}
	parent.children[name] = newDir(name)
	parent.order = append(parent.order, name)
	return nil
}

func (f *FS) Rename(anchor device.Handle, p string, newAnchor device.Handle, newPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, parent, name, err := lookup(f.anchorNode(anchor), splitPath(p))
	if err != nil {
		return err
	}
	newSegs := splitPath(newPath)
	if len(newSegs) == 0 {
		return errInvalid
	}
	_, newParent, newName, err := lookup(f.anchorNode(newAnchor), newSegs)
	if err != nil && err != errNotExist {
		return err
	}
	if newParent == nil {
		return errNotExist
	}

	delete(parent.children, name)
	parent.order = removeName(parent.order, name)

	if _, ok := newParent.children[newName]; ok {
		delete(newParent.children, newName)
		newParent.order = removeName(newParent.order, newName)
	}
	n.name = newName
	newParent.children[newName] = n
	newParent.order = append(newParent.order, newName)
	return nil
}

func (f *FS) SetTimes(hh device.Handle, atim, mtim time.Time, flags wasip1.Fstflags) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := hh.(*handle)
	applyTimes(h.node, atim, mtim, flags)
	return nil
}

func (f *FS) SetTimesPath(anchor device.Handle, p string, atim, mtim time.Time, flags wasip1.Fstflags) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _, _, err := lookup(f.anchorNode(anchor), splitPath(p))
	if err != nil {
		return err
	}
	applyTimes(n, atim, mtim, flags)
	return nil
}

func applyTimes(n *node, atim, mtim time.Time, flags wasip1.Fstflags) {
	now := time.Now()
	switch {
	case flags.Has(wasip1.FSTFLAG_ATIM_NOW):
		n.atim = now
	case flags.Has(wasip1.FSTFLAG_ATIM):
		n.atim = atim
	}
	switch {
	case flags.Has(wasip1.FSTFLAG_MTIM_NOW):
		n.mtim = now
	case flags.Has(wasip1.FSTFLAG_MTIM):
		n.mtim = mtim
	}
}

func (f *FS) Close(device.Handle) error { return nil }

func removeName(order []string, name string) []string {
	for i, n := range order {
		if n == name {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
