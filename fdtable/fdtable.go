// Package fdtable implements the File-Descriptor Table (C5): a dense,
// bitset-indexed map from guest-visible Fd values to Entry records, with
// fds 0-2 always reserved for stdio.
//
// The free-slot search (a masks []uint64 density bitmap, lowest free bit
// via bits.TrailingZeros64) is the same trick the teacher's fileTable
// uses (internal/wasi_snapshot_preview1/file.go, now removed); everything
// built on top of it is specific to this host: Entry stores a capability
// record (rights, flags, offset, preopen marker) rather than a bare
// file handle, Set seeds the three reserved stdio slots up front, and
// Renumber closes a displaced entry's driver handle before reuse. The
// teacher's len/reset methods and its growth-retry goto have no
// counterpart here — this table never needs a live count, is never bulk
// cleared, and Insert's retry loop is plain enough without a label.
package fdtable

import (
	"math/bits"

	"github.com/microsoft/vscode-wasm-sub002/device"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

// Entry is one open descriptor: a driver handle plus the capability and
// position state the dispatcher must consult on every operation (§3,
// "Descriptor").
type Entry struct {
	Driver           device.Driver
	Handle           device.Handle
	Filetype         wasip1.Filetype
	RightsBase       wasip1.Rights
	RightsInheriting wasip1.Rights
	Fdflags          wasip1.Fdflags
	Offset           uint64
	Preopen          bool
	PreopenPath      string // guest-visible mount path, set only when Preopen
	AbsPath          string // guest-absolute path this descriptor was opened at; used to resolve *at-relative path_* calls
}

// reservedStdio is the number of low fds (0, 1, 2) that are always
// reachable even before anything is inserted (§5, "fds 0-2 are reserved").
const reservedStdio = 3

// Table is the descriptor table. The zero value is ready to use.
type Table struct {
	masks []uint64
	slots []*Entry
}

// New returns an empty table with slots 0-2 pre-allocated (but unset) for
// stdio; callers populate them via Set before dispatch begins.
func New() *Table {
	t := &Table{}
	t.grow(reservedStdio)
	for fd := wasip1.Fd(0); fd < reservedStdio; fd++ {
		index, shift := fd/64, fd%64
		t.masks[index] |= 1 << shift
	}
	return t
}

// grow ensures the table has room for at least n fds, reallocating its
// backing slices if needed. Capacity always rounds up to a whole number
// of 64-bit mask words.
func (t *Table) grow(n int) {
	if n = (n*8 + 7) / 8; n > len(t.masks) {
		masks := make([]uint64, n)
		copy(masks, t.masks)
		slots := make([]*Entry, n*64)
		copy(slots, t.slots)
		t.masks = masks
		t.slots = slots
	}
}

// Set assigns entry to fd directly, growing the table if needed. Used to
// seed the reserved stdio slots, where the fd is fixed rather than
// allocated.
func (t *Table) Set(fd wasip1.Fd, entry *Entry) {
	t.grow(int(fd) + 1)
	index, shift := fd/64, fd%64
	t.slots[fd] = entry
	t.masks[index] |= 1 << shift
}

// Insert allocates the lowest fd not currently in use. Reserved stdio fds
// are always pre-marked, so Insert naturally starts returning fds >= 3
// until one of 0-2 is closed and reused.
func (t *Table) Insert(entry *Entry) wasip1.Fd {
	for {
		for index, mask := range t.masks {
			if ^mask == 0 {
				continue // word full
			}
			shift := bits.TrailingZeros64(^mask)
			fd := wasip1.Fd(index)*64 + wasip1.Fd(shift)
			t.slots[fd] = entry
			t.masks[index] = mask | uint64(1<<shift)
			return fd
		}
		n := 2 * len(t.masks)
		if n == 0 {
			n = 1
		}
		t.grow(n)
	}
}

// Get returns the entry at fd, or nil if fd is not open.
func (t *Table) Get(fd wasip1.Fd) *Entry {
	if i := int(fd); i >= 0 && i < len(t.slots) {
		return t.slots[i]
	}
	return nil
}

// Delete removes fd from the table and returns the entry that was there,
// or nil. Deletion is permitted on fds 0-2 (§5, "closing stdio detaches
// the sink without special-casing the fd number").
func (t *Table) Delete(fd wasip1.Fd) *Entry {
	index, shift := fd/64, fd%64
	if int(index) >= len(t.masks) {
		return nil
	}
	if t.masks[index]&(1<<shift) == 0 {
		return nil
	}
	e := t.slots[fd]
	t.slots[fd] = nil
	t.masks[index] &^= 1 << shift
	return e
}

// Renumber moves the entry at from to to, closing whatever was previously
// open at to through its driver (§4.5, fd_renumber) before the slot is
// reused. It is a no-op, returning nil, if from is not open.
func (t *Table) Renumber(from, to wasip1.Fd) *Entry {
	e := t.Get(from)
	if e == nil {
		return nil
	}
	if displaced := t.Get(to); displaced != nil && displaced.Driver != nil {
		displaced.Driver.Close(displaced.Handle)
	}
	t.Delete(to)
	t.Delete(from)
	t.Set(to, e)
	return e
}

// Scan calls fn for every open fd in ascending order; fn may return false
// to stop the iteration early.
func (t *Table) Scan(fn func(wasip1.Fd, *Entry) bool) {
	for i, mask := range t.masks {
		if mask == 0 {
			continue
		}
		for j := wasip1.Fd(0); j < 64; j++ {
			if mask&(1<<j) != 0 {
				fd := wasip1.Fd(i)*64 + j
				if t.slots[fd] == nil {
					continue // reserved stdio slot not yet Set
				}
				if !fn(fd, t.slots[fd]) {
					return
				}
			}
		}
	}
}
