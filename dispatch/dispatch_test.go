package dispatch

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/vscode-wasm-sub002/argv"
	"github.com/microsoft/vscode-wasm-sub002/device/memfs"
	"github.com/microsoft/vscode-wasm-sub002/fdtable"
	"github.com/microsoft/vscode-wasm-sub002/host"
	"github.com/microsoft/vscode-wasm-sub002/vfs"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

// fakeMemory is the smallest wasip1.Memory implementation needed to drive
// the dispatcher end to end, mirroring wasip1's own sliceMemory test double.
type fakeMemory []byte

func (m fakeMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if uint64(offset)+uint64(byteCount) > uint64(len(m)) {
		return nil, false
	}
	return m[offset : offset+byteCount], true
}

func (m fakeMemory) Write(offset uint32, v []byte) bool {
	if uint64(offset)+uint64(len(v)) > uint64(len(m)) {
		return false
	}
	copy(m[offset:], v)
	return true
}

func (m fakeMemory) ReadUint32Le(offset uint32) (uint32, bool) {
	b, ok := m.Read(offset, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

func (m fakeMemory) ReadUint64Le(offset uint32) (uint64, bool) {
	b, ok := m.Read(offset, 8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

func (m fakeMemory) WriteUint32Le(offset uint32, v uint32) bool {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return m.Write(offset, b[:])
}

func (m fakeMemory) WriteUint64Le(offset uint32, v uint64) bool {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return m.Write(offset, b[:])
}

var _ wasip1.Memory = fakeMemory(nil)

type fakeClock struct{ now uint64 }

func (c *fakeClock) Realtime() uint64  { return c.now }
func (c *fakeClock) Monotonic() uint64 { return c.now }

type fakeTimer struct{}

func (fakeTimer) Sleep(time.Duration) {}

type fakeExit struct{ code *int32 }

func (f *fakeExit) Exit(code int32) { f.code = &code }

func newTestContext(t *testing.T) *Context {
	t.Helper()
	fs := memfs.New(1)
	mount, err := vfs.OpenMount("/", fs)
	require.NoError(t, err)
	mounts := vfs.NewTable([]vfs.Mount{mount})
	fds := fdtable.New()
	args := argv.PackArgs("testApp", []string{"arg1"})
	env := argv.PackEnv([]string{"var1"}, map[string]string{"var1": "value1"})
	services := host.Services{Clock: &fakeClock{now: 42}, Timer: fakeTimer{}, Exit: &fakeExit{}}
	return New(services, mounts, fds, args, env)
}

func TestPreopenRegisteredAtFd3(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 64)
	errno := c.FdPrestatGet(mem, 3, 0)
	assert.Equal(t, wasip1.ESUCCESS, errno)
}

func TestArgsGetRoundTrips(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 256)
	require.Equal(t, wasip1.ESUCCESS, c.ArgsSizesGet(mem, 0, 4))
	count, _ := mem.ReadUint32Le(0)
	size, _ := mem.ReadUint32Le(4)
	assert.EqualValues(t, 2, count)

	argvPtr, bufPtr := uint32(16), uint32(16+count*4)
	require.Equal(t, wasip1.ESUCCESS, c.ArgsGet(mem, argvPtr, bufPtr))
	buf, ok := mem.Read(bufPtr, size)
	require.True(t, ok)
	assert.Equal(t, "testApp\x00arg1\x00", string(buf))
}

func TestPathOpenWriteReadCycle(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 4096)

	name := "greeting.txt"
	require.True(t, mem.Write(0, []byte(name)))
	oflags := wasip1.OFLAG_CREAT
	rightsBase := wasip1.FileBase
	rightsInheriting := wasip1.FileBase

	require.Equal(t, wasip1.ESUCCESS, c.PathOpen(mem, 3, 0, 0, uint32(len(name)), oflags, rightsBase, rightsInheriting, 0, 100))
	fd, _ := mem.ReadUint32Le(100)
	require.NotZero(t, fd)

	payload := "hello wasi"
	iovBase := uint32(200)
	require.True(t, mem.Write(iovBase+8, []byte(payload)))
	require.True(t, mem.WriteUint32Le(iovBase, iovBase+8))
	require.True(t, mem.WriteUint32Le(iovBase+4, uint32(len(payload))))
	require.Equal(t, wasip1.ESUCCESS, c.FdWrite(mem, wasip1.Fd(fd), iovBase, 1, 300))
	written, _ := mem.ReadUint32Le(300)
	assert.EqualValues(t, len(payload), written)

	require.Equal(t, wasip1.ESUCCESS, c.FdSeek(wasip1.Fd(fd), 0, wasip1.WHENCE_SET, 400, mem))

	readIovBase := uint32(500)
	readBufBase := uint32(600)
	require.True(t, mem.WriteUint32Le(readIovBase, readBufBase))
	require.True(t, mem.WriteUint32Le(readIovBase+4, uint32(len(payload))))
	require.Equal(t, wasip1.ESUCCESS, c.FdRead(mem, wasip1.Fd(fd), readIovBase, 1, 700))
	nread, _ := mem.ReadUint32Le(700)
	assert.EqualValues(t, len(payload), nread)
	got, _ := mem.Read(readBufBase, nread)
	assert.Equal(t, payload, string(got))

	assert.Equal(t, wasip1.ESUCCESS, c.FdClose(wasip1.Fd(fd)))
}

func TestPathOpenExclCreateCollision(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 4096)
	name := "dup.txt"
	require.True(t, mem.Write(0, []byte(name)))
	oflags := wasip1.OFLAG_CREAT
	require.Equal(t, wasip1.ESUCCESS, c.PathOpen(mem, 3, 0, 0, uint32(len(name)), oflags, wasip1.FileBase, wasip1.FileBase, 0, 100))

	excl := wasip1.OFLAG_CREAT | wasip1.OFLAG_EXCL
	errno := c.PathOpen(mem, 3, 0, 0, uint32(len(name)), excl, wasip1.FileBase, wasip1.FileBase, 0, 104)
	assert.Equal(t, wasip1.EEXIST, errno)
}

func createFile(t *testing.T, c *Context, mem fakeMemory, name string) {
	t.Helper()
	require.True(t, mem.Write(0, []byte(name)))
	require.Equal(t, wasip1.ESUCCESS, c.PathOpen(mem, 3, 0, 0, uint32(len(name)), wasip1.OFLAG_CREAT, wasip1.FileBase, wasip1.FileBase, 0, 900))
	fd, _ := mem.ReadUint32Le(900)
	require.Equal(t, wasip1.ESUCCESS, c.FdClose(wasip1.Fd(fd)))
}

func TestFdReaddirCoversEveryEntryOnce(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 4096)
	names := []string{"a.txt", "bbbbbbbbbb.txt", "c.txt"}
	for _, name := range names {
		createFile(t, c, mem, name)
	}

	bufPtr, bufLen := uint32(2000), uint32(2000)
	require.Equal(t, wasip1.ESUCCESS, c.FdReaddir(mem, 3, bufPtr, bufLen, 0, 3000))
	written, _ := mem.ReadUint32Le(3000)
	require.True(t, written > 0)

	seen := map[string]bool{}
	for off := uint32(0); off < written; {
		declaredNameLen, _ := mem.ReadUint32Le(bufPtr + off + 16)
		nameBytes, ok := mem.Read(bufPtr+off+wasip1.DirentSize, declaredNameLen)
		require.True(t, ok)
		assert.False(t, seen[string(nameBytes)], "duplicate entry %q", nameBytes)
		seen[string(nameBytes)] = true
		off += wasip1.DirentSize + declaredNameLen
	}
	for _, name := range names {
		assert.True(t, seen[name], "missing entry %q", name)
	}
}

// FdReaddir must never write a partial dirent header: if the remaining
// buffer can't hold a full DirentSize-byte header, it stops immediately,
// even though the entry's name might otherwise fit.
func TestFdReaddirNeverSplitsDirentHeader(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 4096)
	createFile(t, c, mem, "onlyentry.txt")

	bufPtr := uint32(2000)
	errno := c.FdReaddir(mem, 3, bufPtr, wasip1.DirentSize-1, 0, 3000)
	require.Equal(t, wasip1.ESUCCESS, errno)
	written, _ := mem.ReadUint32Le(3000)
	assert.EqualValues(t, 0, written, "no header should be written when less than DirentSize bytes are available")

	// A buffer that fits the header but not the full name truncates the
	// name rather than omitting the entry.
	truncated := uint32(wasip1.DirentSize + 3)
	errno = c.FdReaddir(mem, 3, bufPtr, truncated, 0, 3004)
	require.Equal(t, wasip1.ESUCCESS, errno)
	written, _ = mem.ReadUint32Le(3004)
	assert.EqualValues(t, truncated, written)
}

func TestFdRenumberClosesDestination(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 512)
	name := "renumber.txt"
	require.True(t, mem.Write(0, []byte(name)))
	require.Equal(t, wasip1.ESUCCESS, c.PathOpen(mem, 3, 0, 0, uint32(len(name)), wasip1.OFLAG_CREAT, wasip1.FileBase, wasip1.FileBase, 0, 100))
	fd, _ := mem.ReadUint32Le(100)

	errno := c.FdRenumber(wasip1.Fd(fd), 3)
	assert.Equal(t, wasip1.ESUCCESS, errno)
	assert.Equal(t, wasip1.EBADF, c.FdPrestatGet(mem, 3, 0)) // overwritten: no longer the preopen
	_, lookupErrno := c.lookup(fd)
	assert.Equal(t, wasip1.EBADF, lookupErrno) // the source fd was vacated by the move
}

func TestRandomGetFillsBuffer(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 32)
	require.Equal(t, wasip1.ESUCCESS, c.RandomGet(mem, 0, 16))
	b, _ := mem.Read(0, 16)
	var allZero = true
	for _, v := range b {
		if v != 0 {
			allZero = false
		}
	}
	assert.False(t, allZero)
}

func TestClockTimeGetUsesServiceClock(t *testing.T) {
	c := newTestContext(t)
	mem := make(fakeMemory, 16)
	require.Equal(t, wasip1.ESUCCESS, c.ClockTimeGet(mem, wasip1.CLOCK_REALTIME, 0, 0))
	v, _ := mem.ReadUint64Le(0)
	assert.EqualValues(t, 42, v)
}

func TestProcExitRecordsCode(t *testing.T) {
	c := newTestContext(t)
	c.ProcExit(7)
	code, ok := c.ExitCode()
	assert.True(t, ok)
	assert.EqualValues(t, 7, code)
}

func TestSockCallsAreUnsupported(t *testing.T) {
	c := newTestContext(t)
	assert.Equal(t, wasip1.ENOSYS, c.SockAccept())
	assert.Equal(t, wasip1.ENOSYS, c.SockRecv())
	assert.Equal(t, wasip1.ENOSYS, c.SockSend())
	assert.Equal(t, wasip1.ENOSYS, c.SockShutdown())
}
