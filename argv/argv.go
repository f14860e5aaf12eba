// Package argv implements the Argv/Env Packer (C10): it precomputes the
// flat, NUL-terminated buffer layout that args_get/args_sizes_get and
// environ_get/environ_sizes_get expose to the guest (§4.1, §4.6).
//
// Grounded on the teacher's internal argument-packing helpers used ahead
// of wazero module instantiation (cmd/wazero/wazero.go builds a flat
// []string before configuring the wasi module); this package owns that
// layout computation directly instead of delegating to a runtime-specific
// config builder, since here the host writes the bytes into linear memory
// itself rather than handing strings to an embedding API.
package argv

import "github.com/microsoft/vscode-wasm-sub002/wasip1"

// Packed is a precomputed flat buffer plus the byte offset of each entry
// within it, ready for args_get/environ_get to copy into guest memory.
type Packed struct {
	offsets []uint32
	buf     []byte
}

// Count returns the number of entries (args_sizes_get's first result).
func (p *Packed) Count() uint32 { return uint32(len(p.offsets)) }

// Size returns the total byte length of the packed buffer (args_sizes_get's
// second result).
func (p *Packed) Size() uint32 { return uint32(len(p.buf)) }

// Buf returns the flat NUL-terminated buffer.
func (p *Packed) Buf() []byte { return p.buf }

// Offsets returns the byte offset of each entry within Buf, relative to
// wherever the caller ultimately writes Buf into linear memory.
func (p *Packed) Offsets() []uint32 { return p.offsets }

// PackArgs packs [progName, args...] into a Packed buffer: one entry per
// element, each NUL-terminated (§8 scenario 1).
func PackArgs(progName string, args []string) *Packed {
	all := make([]string, 0, len(args)+1)
	all = append(all, progName)
	all = append(all, args...)
	return pack(all)
}

// PackEnv packs env into a Packed buffer of "KEY=VALUE\0" entries (§8
// scenario 2), one entry per element of keys, in the order of keys; callers
// should make that order deterministic (e.g. sort keys) before calling
// PackEnv if reproducible layouts matter.
func PackEnv(keys []string, env map[string]string) *Packed {
	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = k + "=" + env[k]
	}
	return pack(entries)
}

func pack(entries []string) *Packed {
	offsets := make([]uint32, len(entries))
	var size int
	for _, e := range entries {
		size += len(e) + 1
	}
	buf := make([]byte, 0, size)
	for i, e := range entries {
		offsets[i] = uint32(len(buf))
		buf = append(buf, e...)
		buf = append(buf, 0)
	}
	return &Packed{offsets: offsets, buf: buf}
}

// WritePointers writes the parallel vector of absolute pointers for each
// entry into memory at ptrBase, given that Buf itself was (or will be)
// written starting at bufBase. Used by args_get/environ_get once the
// dispatcher has chosen where in linear memory to place the flat buffer.
func WritePointers(mem wasip1.Memory, ptrBase, bufBase uint32, offsets []uint32) bool {
	for i, off := range offsets {
		if !mem.WriteUint32Le(ptrBase+uint32(i)*4, bufBase+off) {
			return false
		}
	}
	return true
}
