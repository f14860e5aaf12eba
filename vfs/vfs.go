// Package vfs implements the Virtual Filesystem Router (C4): it holds the
// Mount Table (§3, "MountTable") and resolves guest paths — always
// relative to some open anchor descriptor — to a (Driver, driver-relative
// path) pair using longest-mount-prefix matching, without ever touching
// the local disk or following symbolic links (no driver produces one).
//
// Grounded on the teacher's mountPoints/RootFS (experimental/sys/rootfs.go),
// whose findMountPoint does the same longest-prefix search; the symlink
// resolution loop in that file (lookup/sandboxFS) has no counterpart here
// since §1 scopes symlinks out, and path normalisation reuses the shape of
// experimental/sys/path.go's CleanPath/JoinPath/PathContains without
// pulling in its generics-based lookupDir helpers.
package vfs

import (
	"path"
	"sort"
	"strings"

	"github.com/microsoft/vscode-wasm-sub002/device"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

// Mount associates a guest-visible path prefix with the driver that serves
// paths under it, and the root handle to resolve relative to (nil when the
// driver's own root is the mount point).
type Mount struct {
	Prefix string // e.g. "/", "/tmp", "/workspace"
	Driver device.Driver
	Root   device.Handle
}

// Table is the Mount Table (§3): an ordered set of mounts, routed by
// longest matching prefix. It is built once at startup and never mutated
// concurrently with lookups (§5).
type Table struct {
	mounts []Mount // sorted by descending prefix length
}

// NewTable builds a routing table from mounts. Order of the input slice
// does not matter; NewTable sorts by prefix length so the longest match
// always wins regardless of registration order.
func NewTable(mounts []Mount) *Table {
	t := &Table{mounts: append([]Mount{}, mounts...)}
	sort.SliceStable(t.mounts, func(i, j int) bool {
		return len(t.mounts[i].Prefix) > len(t.mounts[j].Prefix)
	})
	return t
}

// OpenMount opens driver's own root as a handle and returns the Mount
// entry ready to register in a Table. Every driver accepts an empty path
// against a nil anchor to mean "my own root" (§4.3), so this needs no
// driver-specific knowledge.
func OpenMount(prefix string, driver device.Driver) (Mount, error) {
	h, _, err := driver.Open(nil, "", 0, 0)
	if err != nil {
		return Mount{}, err
	}
	return Mount{Prefix: prefix, Driver: driver, Root: h}, nil
}

// Mounts returns the table's mounts in routing order (longest prefix
// first), used by the dispatcher to register one preopen descriptor per
// mount at startup.
func (t *Table) Mounts() []Mount { return t.mounts }

// Resolve finds the mount whose prefix matches guestPath most specifically
// and returns the driver plus the path to pass to that driver's methods,
// relative to the mount's root handle.
//
// guestPath must already be absolute (mount prefixes are always absolute);
// callers combine a relative path with its anchor's absolute path before
// calling Resolve (see Join).
func (t *Table) Resolve(guestPath string) (Mount, string, error) {
	clean := cleanAbs(guestPath)
	for _, m := range t.mounts {
		if pathContains(m.Prefix, clean) {
			rel := strings.TrimPrefix(clean, m.Prefix)
			rel = strings.TrimPrefix(rel, "/")
			if rel == "" {
				rel = "."
			}
			return m, rel, nil
		}
	}
	return Mount{}, "", wasip1.ErrNotCapable
}

// Join combines an anchor's absolute path with a guest-supplied relative
// path via path.Join, which also cleans "." and ".." components. It never
// returns an error and does not check whether the result stays inside the
// anchor's mount; callers check that with EscapesMount first (§4.4). A rel
// beginning with "/" is joined under anchorAbsPath like any other.
func Join(anchorAbsPath, rel string) (string, error) {
	if rel == "" {
		return anchorAbsPath, nil
	}
	joined := path.Join("/", anchorAbsPath, rel)
	return joined, nil
}

// EscapesMount reports whether resolving rel against the anchor's mount
// prefix would walk above that prefix via leading ".." components.
func EscapesMount(mountPrefix, anchorAbsPath, rel string) bool {
	joined := path.Join("/", anchorAbsPath, rel)
	return !pathContains(mountPrefix, joined)
}

func cleanAbs(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// pathContains reports whether path is base itself or a descendant of it,
// mirroring experimental/sys/path.go's PathContains but operating on
// slash-absolute paths throughout instead of fs.FS-relative ones.
func pathContains(base, p string) bool {
	if base == "/" {
		return true
	}
	if len(base) > len(p) {
		return false
	}
	return p[:len(base)] == base && (len(p) == len(base) || p[len(base)] == '/')
}
