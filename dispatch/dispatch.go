// Package dispatch implements the WASI Dispatcher (C6) and the Directory
// Iterator (C7): the full 46-function wasi_snapshot_preview1 surface,
// wired to the capability model, descriptor table, VFS router and device
// drivers built up in the sibling packages.
//
// Grounded on the teacher's Context (internal/wasi_snapshot_preview1/context.go):
// one exported method per preview-1 function, named after it
// (FdRead, PathOpen, PollOneoff, ...), returning the wire Errno alongside
// any typed result — https://github.com/WebAssembly/WASI/blob/main/legacy/preview1/docs.md
// documents the semantics each method below implements. Unlike the
// teacher, every method here also takes the wasip1.Memory view directly
// and performs its own argument/result marshalling inline rather than
// delegating to a separate host-function adapter layer, since this host
// has only one ABI generation to support.
package dispatch

import (
	cryptorand "crypto/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/microsoft/vscode-wasm-sub002/argv"
	"github.com/microsoft/vscode-wasm-sub002/fdtable"
	"github.com/microsoft/vscode-wasm-sub002/host"
	"github.com/microsoft/vscode-wasm-sub002/poll"
	"github.com/microsoft/vscode-wasm-sub002/vfs"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{})
}

// Context is the per-instance dispatcher state: the open descriptor table,
// the mount table, the collaborator services and the precomputed argv/env
// buffers. One Context serves exactly one wasm instance (§5).
type Context struct {
	Services host.Services
	Fds      *fdtable.Table
	Mounts   *vfs.Table
	Args     *argv.Packed
	Env      *argv.Packed
	Log      *logrus.Entry

	poll     *poll.Engine
	exitCode *int32
}

// New builds a dispatcher ready to serve a freshly instantiated guest.
// Preopen entries in mounts are registered into fds starting at 3; fds 0-2
// are left for the caller to Set via fdtable before first use.
func New(services host.Services, mounts *vfs.Table, fds *fdtable.Table, args, env *argv.Packed) *Context {
	log := logrus.WithField("component", "dispatch")
	ctx := &Context{Services: services, Fds: fds, Mounts: mounts, Args: args, Env: env, Log: log}
	ctx.poll = &poll.Engine{Clock: services.Clock, Timer: services.Timer, Readiness: ctx}
	for _, m := range mounts.Mounts() {
		fd := fds.Insert(&fdtable.Entry{
			Driver:           m.Driver,
			Handle:           m.Root,
			Filetype:         wasip1.FILETYPE_DIRECTORY,
			RightsBase:       wasip1.DirectoryBase,
			RightsInheriting: wasip1.DirectoryInheriting,
			Preopen:          true,
			PreopenPath:      m.Prefix,
			AbsPath:          m.Prefix,
		})
		log.WithFields(logrus.Fields{"fd": fd, "mount": m.Prefix, "driver": m.Driver.ID()}).
			Info("registered preopen")
	}
	return ctx
}

func memErr() wasip1.Errno { return wasip1.EFAULT }

// --- args / environ (§4.1, §4.6) ---------------------------------------

func (c *Context) ArgsSizesGet(mem wasip1.Memory, countPtr, sizePtr uint32) wasip1.Errno {
	if !mem.WriteUint32Le(countPtr, c.Args.Count()) || !mem.WriteUint32Le(sizePtr, c.Args.Size()) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) ArgsGet(mem wasip1.Memory, argvPtr, argvBufPtr uint32) wasip1.Errno {
	if !mem.Write(argvBufPtr, c.Args.Buf()) {
		return memErr()
	}
	if !argv.WritePointers(mem, argvPtr, argvBufPtr, c.Args.Offsets()) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) EnvironSizesGet(mem wasip1.Memory, countPtr, sizePtr uint32) wasip1.Errno {
	if !mem.WriteUint32Le(countPtr, c.Env.Count()) || !mem.WriteUint32Le(sizePtr, c.Env.Size()) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) EnvironGet(mem wasip1.Memory, environPtr, environBufPtr uint32) wasip1.Errno {
	if !mem.Write(environBufPtr, c.Env.Buf()) {
		return memErr()
	}
	if !argv.WritePointers(mem, environPtr, environBufPtr, c.Env.Offsets()) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

// --- clocks (§4.6) ------------------------------------------------------

// ClockResGet reports 1ns resolution for every supported clock.
func (c *Context) ClockResGet(mem wasip1.Memory, clockID wasip1.Clockid, resPtr uint32) wasip1.Errno {
	if !mem.WriteUint64Le(resPtr, 1) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) ClockTimeGet(mem wasip1.Memory, clockID wasip1.Clockid, precision uint64, timePtr uint32) wasip1.Errno {
	var now wasip1.Timestamp
	switch clockID {
	case wasip1.CLOCK_REALTIME:
		now = c.Services.Clock.Realtime()
	default: // monotonic, process_cputime_id, thread_cputime_id (§4.6)
		now = c.Services.Clock.Monotonic()
	}
	if !mem.WriteUint64Le(timePtr, now) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

// --- proc / misc ---------------------------------------------------------

func (c *Context) ProcExit(code int32) {
	if c.exitCode == nil {
		c.exitCode = new(int32)
	}
	*c.exitCode = code
	c.Log.WithField("code", code).Info("guest exited")
	c.Services.Exit.Exit(code)
}

// ExitCode reports the code passed to the most recent ProcExit call, if any.
func (c *Context) ExitCode() (int32, bool) {
	if c.exitCode == nil {
		return 0, false
	}
	return *c.exitCode, true
}

// ProcRaise always returns nosys: the host exposes only process exit, no
// signal delivery primitive (§9, open question (c)).
func (c *Context) ProcRaise(signal uint8) wasip1.Errno { return c.nosys("proc_raise") }

// SchedYield is a pure no-op success: this host never multiplexes guest
// instances on one goroutine (§4.6).
func (c *Context) SchedYield() wasip1.Errno { return wasip1.ESUCCESS }

func (c *Context) RandomGet(mem wasip1.Memory, buf uint32, length uint32) wasip1.Errno {
	b := make([]byte, length)
	if _, err := cryptorand.Read(b); err != nil {
		return wasip1.EIO
	}
	if !mem.Write(buf, b) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

// --- sock_* (always unsupported; no networking in this host) ------------

func (c *Context) nosys(fn string) wasip1.Errno {
	c.Log.WithField("fn", fn).Warn("unsupported call mapped to nosys")
	return wasip1.ENOSYS
}

func (c *Context) SockAccept() wasip1.Errno   { return c.nosys("sock_accept") }
func (c *Context) SockRecv() wasip1.Errno     { return c.nosys("sock_recv") }
func (c *Context) SockSend() wasip1.Errno     { return c.nosys("sock_send") }
func (c *Context) SockShutdown() wasip1.Errno { return c.nosys("sock_shutdown") }

// --- fd table lookups -----------------------------------------------------

func (c *Context) lookup(fd wasip1.Fd) (*fdtable.Entry, wasip1.Errno) {
	e := c.Fds.Get(fd)
	if e == nil {
		c.Log.WithField("fd", fd).Debug("fd lookup failed")
		return nil, wasip1.EBADF
	}
	return e, wasip1.ESUCCESS
}

// checkRights reports ENOTCAPABLE at warn level: a real extension hits
// this routinely (it probes rights speculatively), so it is not an error,
// just a refusal worth having in the log when diagnosing a stuck guest.
func (c *Context) checkRights(e *fdtable.Entry, want wasip1.Rights) wasip1.Errno {
	if !e.RightsBase.Has(want) {
		c.Log.WithFields(logrus.Fields{"want": want, "have": e.RightsBase}).Warn("capability refused")
		return wasip1.ENOTCAPABLE
	}
	return wasip1.ESUCCESS
}

func timeOf(t time.Time) wasip1.Timestamp { return wasip1.Timestamp(t.UnixNano()) }

// --- fd_* descriptor operations (§4.5) ------------------------------------

func (c *Context) FdClose(fd wasip1.Fd) wasip1.Errno {
	e := c.Fds.Get(fd)
	if e == nil {
		return wasip1.EBADF
	}
	err := e.Driver.Close(e.Handle)
	c.Fds.Delete(fd)
	return wasip1.ErrnoOf(err)
}

func (c *Context) FdAdvise(fd wasip1.Fd, offset, length uint64, advice wasip1.Advice) wasip1.Errno {
	if _, errno := c.lookup(fd); errno != wasip1.ESUCCESS {
		return errno
	}
	return wasip1.ESUCCESS // advice is accepted and ignored (§4.9 scope)
}

func (c *Context) FdAllocate(fd wasip1.Fd, offset, length uint64) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if errno := c.checkRights(e, wasip1.FD_ALLOCATE); errno != wasip1.ESUCCESS {
		return errno
	}
	if offset+length < offset {
		return wasip1.EINVAL // overflow (§9, open question (b))
	}
	return wasip1.ErrnoOf(e.Driver.Allocate(e.Handle, offset, length))
}

func (c *Context) FdDatasync(fd wasip1.Fd) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if errno := c.checkRights(e, wasip1.FD_DATASYNC); errno != wasip1.ESUCCESS {
		return errno
	}
	return wasip1.ErrnoOf(e.Driver.Datasync(e.Handle))
}

func (c *Context) FdSync(fd wasip1.Fd) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if errno := c.checkRights(e, wasip1.FD_SYNC); errno != wasip1.ESUCCESS {
		return errno
	}
	return wasip1.ErrnoOf(e.Driver.Sync(e.Handle))
}

func (c *Context) FdFdstatGet(mem wasip1.Memory, fd wasip1.Fd, statPtr uint32) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	stat := wasip1.Fdstat{Filetype: e.Filetype, Flags: e.Fdflags, RightsBase: e.RightsBase, RightsInheriting: e.RightsInheriting}
	if !stat.Marshal(mem, statPtr) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

// FdFdstatSetFlags accepts only the five fdflags bits defined in preview-1
// (§4.5): append, dsync, nonblock, rsync, sync.
func (c *Context) FdFdstatSetFlags(fd wasip1.Fd, flags wasip1.Fdflags) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	const allowed = wasip1.FDFLAG_APPEND | wasip1.FDFLAG_DSYNC | wasip1.FDFLAG_NONBLOCK | wasip1.FDFLAG_RSYNC | wasip1.FDFLAG_SYNC
	if flags&^allowed != 0 {
		return wasip1.EINVAL
	}
	e.Fdflags = flags
	return wasip1.ESUCCESS
}

func (c *Context) FdFilestatGet(mem wasip1.Memory, fd wasip1.Fd, statPtr uint32) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if errno := c.checkRights(e, wasip1.FD_FILESTAT_GET); errno != wasip1.ESUCCESS {
		return errno
	}
	st, err := e.Driver.Stat(e.Handle)
	if err != nil {
		return wasip1.ErrnoOf(err)
	}
	fs := wasip1.Filestat{
		Dev: st.Dev, Ino: st.Ino, Filetype: st.Filetype, Nlink: st.Nlink, Size: st.Size,
		Atim: timeOf(st.Atim), Mtim: timeOf(st.Mtim), Ctim: timeOf(st.Ctim),
	}
	if !fs.Marshal(mem, statPtr) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) FdFilestatSetSize(fd wasip1.Fd, size uint64) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if errno := c.checkRights(e, wasip1.FD_FILESTAT_SET_SIZE); errno != wasip1.ESUCCESS {
		return errno
	}
	return wasip1.ErrnoOf(e.Driver.Truncate(e.Handle, size))
}

func (c *Context) FdFilestatSetTimes(fd wasip1.Fd, atim, mtim wasip1.Timestamp, flags wasip1.Fstflags) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if errno := c.checkRights(e, wasip1.FD_FILESTAT_SET_TIMES); errno != wasip1.ESUCCESS {
		return errno
	}
	a, m := resolveTimes(c.Services.Clock, atim, mtim, flags)
	return wasip1.ErrnoOf(e.Driver.SetTimes(e.Handle, a, m, flags))
}

func resolveTimes(clk host.Clock, atim, mtim wasip1.Timestamp, flags wasip1.Fstflags) (time.Time, time.Time) {
	a := time.Unix(0, int64(atim))
	m := time.Unix(0, int64(mtim))
	if flags.Has(wasip1.FSTFLAG_ATIM_NOW) {
		a = time.Unix(0, int64(clk.Realtime()))
	}
	if flags.Has(wasip1.FSTFLAG_MTIM_NOW) {
		m = time.Unix(0, int64(clk.Realtime()))
	}
	return a, m
}

func (c *Context) FdPrestatGet(mem wasip1.Memory, fd wasip1.Fd, prestatPtr uint32) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if !e.Preopen {
		return wasip1.EBADF
	}
	p := wasip1.Prestat{Tag: 0, Len: uint32(len(e.PreopenPath))}
	if !p.Marshal(mem, prestatPtr) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) FdPrestatDirName(mem wasip1.Memory, fd wasip1.Fd, pathPtr, pathLen uint32) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if !e.Preopen {
		return wasip1.EBADF
	}
	if uint32(len(e.PreopenPath)) > pathLen {
		return wasip1.ENAMETOOLONG
	}
	if !mem.Write(pathPtr, []byte(e.PreopenPath)) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) FdRenumber(from, to wasip1.Fd) wasip1.Errno {
	if c.Fds.Renumber(from, to) == nil {
		return wasip1.EBADF
	}
	return wasip1.ESUCCESS
}

func (c *Context) FdSeek(fd wasip1.Fd, delta int64, whence wasip1.Whence, resultPtr uint32, mem wasip1.Memory) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	want := wasip1.Rights(wasip1.FD_SEEK)
	if delta == 0 && whence == wasip1.WHENCE_CUR {
		want = wasip1.FD_TELL
	}
	if errno := c.checkRights(e, want); errno != wasip1.ESUCCESS {
		return errno
	}
	pos, err := e.Driver.Seek(e.Handle, delta, whence)
	if err != nil {
		return wasip1.ErrnoOf(err)
	}
	e.Offset = pos
	if !mem.WriteUint64Le(resultPtr, pos) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) FdTell(mem wasip1.Memory, fd wasip1.Fd, resultPtr uint32) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if errno := c.checkRights(e, wasip1.FD_TELL); errno != wasip1.ESUCCESS {
		return errno
	}
	pos, err := e.Driver.Seek(e.Handle, 0, wasip1.WHENCE_CUR)
	if err != nil {
		return wasip1.ErrnoOf(err)
	}
	if !mem.WriteUint64Le(resultPtr, pos) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

// --- fd_read / fd_write / fd_pread / fd_pwrite (§4.1, §4.5) ---------------

func (c *Context) FdRead(mem wasip1.Memory, fd wasip1.Fd, iovsPtr, iovsLen, resultPtr uint32) wasip1.Errno {
	return c.readv(mem, fd, iovsPtr, iovsLen, nil, resultPtr)
}

func (c *Context) FdPread(mem wasip1.Memory, fd wasip1.Fd, iovsPtr, iovsLen uint32, offset uint64, resultPtr uint32) wasip1.Errno {
	return c.readv(mem, fd, iovsPtr, iovsLen, &offset, resultPtr)
}

func (c *Context) readv(mem wasip1.Memory, fd wasip1.Fd, iovsPtr, iovsLen uint32, offset *uint64, resultPtr uint32) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	want := wasip1.Rights(wasip1.FD_READ)
	if offset != nil {
		want |= wasip1.FD_SEEK
	}
	if errno := c.checkRights(e, want); errno != wasip1.ESUCCESS {
		return errno
	}
	iovs, ok := wasip1.ReadIovecs(mem, iovsPtr, iovsLen)
	if !ok {
		return memErr()
	}
	var total uint32
	for _, iov := range iovs {
		buf := make([]byte, iov.Len)
		n, err := e.Driver.Read(e.Handle, buf, offset)
		if err != nil {
			return wasip1.ErrnoOf(err)
		}
		if !mem.Write(iov.Buf, buf[:n]) {
			return memErr()
		}
		total += uint32(n)
		if offset == nil {
			e.Offset += uint64(n)
		} else {
			off := *offset + uint64(n)
			offset = &off
		}
		if n < len(buf) {
			break // short read: stream exhausted
		}
	}
	if !mem.WriteUint32Le(resultPtr, total) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) FdWrite(mem wasip1.Memory, fd wasip1.Fd, iovsPtr, iovsLen, resultPtr uint32) wasip1.Errno {
	return c.writev(mem, fd, iovsPtr, iovsLen, nil, resultPtr)
}

func (c *Context) FdPwrite(mem wasip1.Memory, fd wasip1.Fd, iovsPtr, iovsLen uint32, offset uint64, resultPtr uint32) wasip1.Errno {
	return c.writev(mem, fd, iovsPtr, iovsLen, &offset, resultPtr)
}

func (c *Context) writev(mem wasip1.Memory, fd wasip1.Fd, iovsPtr, iovsLen uint32, offset *uint64, resultPtr uint32) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	want := wasip1.Rights(wasip1.FD_WRITE)
	if offset != nil {
		want |= wasip1.FD_SEEK
	}
	if errno := c.checkRights(e, want); errno != wasip1.ESUCCESS {
		return errno
	}
	iovs, ok := wasip1.ReadIovecs(mem, iovsPtr, iovsLen)
	if !ok {
		return memErr()
	}
	if offset == nil && e.Fdflags.Has(wasip1.FDFLAG_APPEND) {
		pos, err := e.Driver.Seek(e.Handle, 0, wasip1.WHENCE_END)
		if err != nil {
			return wasip1.ErrnoOf(err)
		}
		e.Offset = pos
	}
	var total uint32
	for _, iov := range iovs {
		b, ok := mem.Read(iov.Buf, iov.Len)
		if !ok {
			return memErr()
		}
		n, err := e.Driver.Write(e.Handle, b, offset)
		if err != nil {
			return wasip1.ErrnoOf(err)
		}
		total += uint32(n)
		if offset == nil {
			e.Offset += uint64(n)
		} else {
			off := *offset + uint64(n)
			offset = &off
		}
	}
	if !mem.WriteUint32Le(resultPtr, total) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

// --- fd_readdir (§4.7) ----------------------------------------------------

// FdReaddir fills buf starting at cookie, never splitting a dirent header
// across the buffer boundary (§4.7): it stops as soon as the remaining
// space cannot hold another full header, even if the name itself could
// still fit.
func (c *Context) FdReaddir(mem wasip1.Memory, fd wasip1.Fd, bufPtr, bufLen uint32, cookie wasip1.Dircookie, resultPtr uint32) wasip1.Errno {
	e, errno := c.lookup(fd)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if errno := c.checkRights(e, wasip1.FD_READDIR); errno != wasip1.ESUCCESS {
		return errno
	}
	entries, err := e.Driver.Readdir(e.Handle, cookie)
	if err != nil {
		return wasip1.ErrnoOf(err)
	}

	var written uint32
	for _, ent := range entries {
		if written+wasip1.DirentSize > bufLen {
			break // not even a header would fit; never write a partial one
		}
		d := wasip1.Dirent{NextCookie: ent.Cookie, Ino: ent.Ino, NameLen: uint32(len(ent.Name)), Type: ent.Filetype}
		if !d.Marshal(mem, bufPtr+written) {
			return memErr()
		}
		written += wasip1.DirentSize

		name := []byte(ent.Name)
		remaining := bufLen - written
		if uint32(len(name)) > remaining {
			name = name[:remaining]
		}
		if !mem.Write(bufPtr+written, name) {
			return memErr()
		}
		written += uint32(len(name))
		if written >= bufLen {
			break // buffer exhausted, possibly mid-name; caller resumes at ent.Cookie
		}
	}
	if !mem.WriteUint32Le(resultPtr, written) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

// --- poll_oneoff (§4.8) ----------------------------------------------------

func (c *Context) PollOneoff(mem wasip1.Memory, inPtr, outPtr uint32, nsubs uint32, resultPtr uint32) wasip1.Errno {
	var clocks, fds []wasip1.Subscription
	for i := uint32(0); i < nsubs; i++ {
		sub, ok := wasip1.UnmarshalSubscription(mem, inPtr+i*wasip1.SubscriptionSize)
		if !ok {
			return memErr()
		}
		if sub.Type == wasip1.EVENTTYPE_CLOCK {
			clocks = append(clocks, sub)
		} else {
			fds = append(fds, sub)
		}
	}

	events, err := c.poll.Poll(clocks, fds)
	if err != nil {
		return wasip1.ErrnoOf(err)
	}
	for i, ev := range events {
		if !ev.Marshal(mem, outPtr+uint32(i)*wasip1.EventSize) {
			return memErr()
		}
	}
	if !mem.WriteUint32Le(resultPtr, uint32(len(events))) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

// readyProber is implemented by drivers (console) whose readiness cannot
// be determined from filetype alone and must be probed against the live
// byte source.
type readyProber interface {
	Ready() (bool, error)
}

// ReadReady implements poll.Readiness: tty stdin is readable only when the
// byte source reports data; regular files and directories are always
// readable (§4.8).
func (c *Context) ReadReady(fd wasip1.Fd) (bool, error) {
	e := c.Fds.Get(fd)
	if e == nil {
		return false, wasip1.ErrNotImplemented
	}
	if e.Filetype != wasip1.FILETYPE_CHARACTER_DEVICE {
		return true, nil
	}
	prober, ok := e.Driver.(readyProber)
	if !ok {
		return true, nil
	}
	return prober.Ready()
}

// WriteReady implements poll.Readiness: every driver in this host accepts
// writes immediately (§4.8).
func (c *Context) WriteReady(fd wasip1.Fd) (bool, error) {
	if c.Fds.Get(fd) == nil {
		return false, wasip1.ErrNotImplemented
	}
	return true, nil
}
