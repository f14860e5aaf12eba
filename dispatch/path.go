package dispatch

import (
	"github.com/microsoft/vscode-wasm-sub002/fdtable"
	"github.com/microsoft/vscode-wasm-sub002/vfs"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

// resolvePath resolves a guest path given relative to dirfd: it checks
// dirfd grants want, rejects escapes above dirfd's own mount (§4.4), routes
// the combined absolute path through the mount table, and returns the
// owning driver plus the driver-relative path to operate on.
func (c *Context) resolvePath(dirfd wasip1.Fd, rel string, want wasip1.Rights) (*fdtable.Entry, vfs.Mount, string, wasip1.Errno) {
	e, errno := c.lookup(dirfd)
	if errno != wasip1.ESUCCESS {
		return nil, vfs.Mount{}, "", errno
	}
	if errno := c.checkRights(e, want); errno != wasip1.ESUCCESS {
		return nil, vfs.Mount{}, "", errno
	}
	if vfs.EscapesMount(mountPrefixOf(c, e), e.AbsPath, rel) {
		return nil, vfs.Mount{}, "", wasip1.ENOTCAPABLE
	}
	abs, _ := vfs.Join(e.AbsPath, rel)
	m, driverPath, err := c.Mounts.Resolve(abs)
	if err != nil {
		return nil, vfs.Mount{}, "", wasip1.ErrnoOf(err)
	}
	return e, m, driverPath, wasip1.ESUCCESS
}

// mountPrefixOf returns the mount prefix that owns e's own path, used as
// the escape boundary for a further path_* call relative to e.
func mountPrefixOf(c *Context, e *fdtable.Entry) string {
	m, _, err := c.Mounts.Resolve(e.AbsPath)
	if err != nil {
		return e.AbsPath
	}
	return m.Prefix
}

func readPath(mem wasip1.Memory, ptr, length uint32) (string, wasip1.Errno) {
	s, ok := wasip1.ReadString(mem, ptr, length)
	if !ok {
		return "", memErr()
	}
	return s, wasip1.ESUCCESS
}

func (c *Context) PathOpen(mem wasip1.Memory, dirfd wasip1.Fd, dirflags wasip1.Lookupflags, pathPtr, pathLen uint32, oflags wasip1.Oflags, rightsBase, rightsInheriting wasip1.Rights, fdflags wasip1.Fdflags, fdPtr uint32) wasip1.Errno {
	rel, errno := readPath(mem, pathPtr, pathLen)
	if errno != wasip1.ESUCCESS {
		return errno
	}

	e, m, driverPath, errno := c.resolvePath(dirfd, rel, wasip1.PATH_OPEN)
	if errno != wasip1.ESUCCESS {
		return errno
	}

	h, filetype, err := m.Driver.Open(m.Root, driverPath, oflags, fdflags)
	if err != nil {
		return wasip1.ErrnoOf(err)
	}

	if rightsBase&^e.RightsInheriting != 0 || rightsInheriting&^e.RightsInheriting != 0 {
		return wasip1.ENOTCAPABLE
	}
	base := rightsBase.Intersect(e.RightsInheriting)
	inherit := rightsInheriting.Intersect(e.RightsInheriting)

	abs, _ := vfs.Join(e.AbsPath, rel)
	fd := c.Fds.Insert(&fdtable.Entry{
		Driver: m.Driver, Handle: h, Filetype: filetype,
		RightsBase: base, RightsInheriting: inherit,
		Fdflags: fdflags, AbsPath: abs,
	})
	if !mem.WriteUint32Le(fdPtr, fd) {
		return memErr()
	}
	return wasip1.ESUCCESS
}

func (c *Context) PathCreateDirectory(mem wasip1.Memory, dirfd wasip1.Fd, pathPtr, pathLen uint32) wasip1.Errno {
	rel, errno := readPath(mem, pathPtr, pathLen)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	_, m, driverPath, errno := c.resolvePath(dirfd, rel, wasip1.PATH_CREATE_DIRECTORY)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	return wasip1.ErrnoOf(m.Driver.Mkdir(m.Root, driverPath))
}

func (c *Context) PathRemoveDirectory(mem wasip1.Memory, dirfd wasip1.Fd, pathPtr, pathLen uint32) wasip1.Errno {
	rel, errno := readPath(mem, pathPtr, pathLen)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	_, m, driverPath, errno := c.resolvePath(dirfd, rel, wasip1.PATH_REMOVE_DIRECTORY)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	return wasip1.ErrnoOf(m.Driver.Rmdir(m.Root, driverPath))
}

func (c *Context) PathUnlinkFile(mem wasip1.Memory, dirfd wasip1.Fd, pathPtr, pathLen uint32) wasip1.Errno {
	rel, errno := readPath(mem, pathPtr, pathLen)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	_, m, driverPath, errno := c.resolvePath(dirfd, rel, wasip1.PATH_UNLINK_FILE)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	return wasip1.ErrnoOf(m.Driver.Unlink(m.Root, driverPath))
}

func (c *Context) PathFilestatGet(mem wasip1.Memory, dirfd wasip1.Fd, lookupflags wasip1.Lookupflags, pathPtr, pathLen, statPtr uint32) wasip1.Errno {
	rel, errno := readPath(mem, pathPtr, pathLen)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	_, m, driverPath, errno := c.resolvePath(dirfd, rel, wasip1.PATH_FILESTAT_GET)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	st, err := m.Driver.StatPath(m.Root, driverPath, lookupflags.Has(wasip1.LOOKUP_SYMLINK_FOLLOW))
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

func (c *Context) PathFilestatSetTimes(mem wasip1.Memory, dirfd wasip1.Fd, lookupflags wasip1.Lookupflags, pathPtr, pathLen uint32, atim, mtim wasip1.Timestamp, flags wasip1.Fstflags) wasip1.Errno {
	rel, errno := readPath(mem, pathPtr, pathLen)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	_, m, driverPath, errno := c.resolvePath(dirfd, rel, wasip1.PATH_FILESTAT_SET_TIMES)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	a, mt := resolveTimes(c.Services.Clock, atim, mtim, flags)
	return wasip1.ErrnoOf(m.Driver.SetTimesPath(m.Root, driverPath, a, mt, flags))
}

func (c *Context) PathRename(mem wasip1.Memory, dirfd wasip1.Fd, oldPathPtr, oldPathLen uint32, newDirfd wasip1.Fd, newPathPtr, newPathLen uint32) wasip1.Errno {
	oldRel, errno := readPath(mem, oldPathPtr, oldPathLen)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	newRel, errno := readPath(mem, newPathPtr, newPathLen)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	_, srcMount, srcPath, errno := c.resolvePath(dirfd, oldRel, wasip1.PATH_RENAME_SOURCE)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	_, dstMount, dstPath, errno := c.resolvePath(newDirfd, newRel, wasip1.PATH_RENAME_TARGET)
	if errno != wasip1.ESUCCESS {
		return errno
	}
	if srcMount.Driver.ID() != dstMount.Driver.ID() {
		return wasip1.EXDEV
	}
	return wasip1.ErrnoOf(srcMount.Driver.Rename(srcMount.Root, srcPath, dstMount.Root, dstPath))
}

// PathLink, PathSymlink and PathReadlink are unsupported: no driver in
// this host produces hard links or symbolic links (§4.6).
func (c *Context) PathLink() wasip1.Errno    { return c.nosys("path_link") }
func (c *Context) PathSymlink() wasip1.Errno { return c.nosys("path_symlink") }
func (c *Context) PathReadlink() wasip1.Errno {
	c.Log.Warn("path_readlink: no driver produces symlinks")
	return wasip1.ENOLINK
}
