// Package console implements the console/tty Device Driver (C9a): writes
// go to the host's byte sink, reads come from the host's byte source;
// the device is non-seekable and reports filetype character_device.
//
// Grounded on the teacher's internal/sys.file (internal/sys/file.go),
// which wraps a bare io.Reader/io.Writer pair behind the same "unsupported
// operations return a fixed error" shape used here for seek/allocate/
// readdir/rename/mkdir.
package console

import (
	"time"

	"github.com/microsoft/vscode-wasm-sub002/device"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

// Sink is the host collaborator a write targets (§6.6, TTY byte sink).
type Sink interface {
	Write(uri string, b []byte) (int, error)
}

// Source is the host collaborator a read pulls from (§6.6, TTY byte source).
type Source interface {
	Read(uri string, max int) ([]byte, error)
}

// Driver is the console/tty device. One Driver instance serves one
// backing URI (typically a VS Code terminal or pseudo-console); the stdio
// mapping in host.Config decides which fds route to it.
type Driver struct {
	id      uint64
	uri     string
	sink    Sink
	source  Source
	pending []byte // bytes consumed by Ready's readiness probe, not yet handed to a Read
}

// New returns a console driver identified by id, forwarding writes and
// reads to sink/source against the given URI.
func New(id uint64, uri string, sink Sink, source Source) *Driver {
	return &Driver{id: id, uri: uri, sink: sink, source: source}
}

type handle struct{ d *Driver }

func (h *handle) Driver() device.Driver { return h.d }

var _ device.Driver = (*Driver)(nil)

func (d *Driver) ID() uint64 { return d.id }

func (d *Driver) Open(anchor device.Handle, path string, oflags wasip1.Oflags, fdflags wasip1.Fdflags) (device.Handle, wasip1.Filetype, error) {
	return &handle{d: d}, wasip1.FILETYPE_CHARACTER_DEVICE, nil
}

func (d *Driver) Stat(device.Handle) (device.Stat, error) {
	return device.Stat{Dev: d.id, Filetype: wasip1.FILETYPE_CHARACTER_DEVICE}, nil
}

func (d *Driver) StatPath(device.Handle, string, bool) (device.Stat, error) {
	return device.Stat{Dev: d.id, Filetype: wasip1.FILETYPE_CHARACTER_DEVICE}, nil
}

// Read returns whatever the byte source yields, including zero bytes,
// which surfaces to the guest as success with a zero-length read (§4.9).
func (d *Driver) Read(h device.Handle, buf []byte, offset *uint64) (int, error) {
	if offset != nil {
		return 0, wasip1.ErrNotSeekable
	}
	if len(d.pending) > 0 {
		n := copy(buf, d.pending)
		d.pending = d.pending[n:]
		return n, nil
	}
	b, err := d.source.Read(d.uri, len(buf))
	if err != nil {
		return 0, err
	}
	return copy(buf, b), nil
}

// Ready reports whether a subsequent Read would return data, for
// poll_oneoff's readiness subscriptions (§4.8). Checking requires pulling
// from the source, so any bytes it yields are buffered and served to the
// next Read instead of being dropped.
func (d *Driver) Ready() (bool, error) {
	if len(d.pending) > 0 {
		return true, nil
	}
	b, err := d.source.Read(d.uri, 1)
	if err != nil {
		return false, err
	}
	d.pending = b
	return len(d.pending) > 0, nil
}

func (d *Driver) Write(h device.Handle, b []byte, offset *uint64) (int, error) {
	if offset != nil {
		return 0, wasip1.ErrNotSeekable
	}
	return d.sink.Write(d.uri, b)
}

func (d *Driver) Seek(device.Handle, int64, wasip1.Whence) (uint64, error) {
	return 0, wasip1.ErrNotSeekable
}

func (d *Driver) Allocate(device.Handle, uint64, uint64) error        { return wasip1.ErrNotImplemented }
func (d *Driver) Truncate(device.Handle, uint64) error                { return wasip1.ErrNotImplemented }
func (d *Driver) Sync(device.Handle) error                            { return nil }
func (d *Driver) Datasync(device.Handle) error                        { return nil }
func (d *Driver) Readdir(device.Handle, wasip1.Dircookie) ([]device.DirEntry, error) {
	return nil, wasip1.ErrNotDir
}
func (d *Driver) Unlink(device.Handle, string) error                            { return wasip1.ErrNotImplemented }
func (d *Driver) Rmdir(device.Handle, string) error                             { return wasip1.ErrNotImplemented }
func (d *Driver) Mkdir(device.Handle, string) error                             { return wasip1.ErrNotImplemented }
func (d *Driver) Rename(device.Handle, string, device.Handle, string) error     { return wasip1.ErrNotImplemented }
func (d *Driver) SetTimes(device.Handle, time.Time, time.Time, wasip1.Fstflags) error {
	return wasip1.ErrNotImplemented
}
func (d *Driver) SetTimesPath(device.Handle, string, time.Time, time.Time, wasip1.Fstflags) error {
	return wasip1.ErrNotImplemented
}
func (d *Driver) Close(device.Handle) error { return nil }
