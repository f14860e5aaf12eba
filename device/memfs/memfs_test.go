package memfs

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

func TestOpenMissingFails(t *testing.T) {
	fs := New(1)
	_, _, err := fs.Open(nil, "test.txt", 0, 0)
	assert.ErrorIs(t, err, errNotExist)
}

func TestCreateWriteReadBack(t *testing.T) {
	fs := New(1)
	h, ft, err := fs.Open(nil, "test.txt", wasip1.OFLAG_CREAT, 0)
	require.NoError(t, err)
	assert.Equal(t, wasip1.FILETYPE_REGULAR_FILE, ft)

	n, err := fs.Write(h, []byte("Hello World"), nil)
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	h2, _, err := fs.Open(nil, "test.txt", 0, 0)
	require.NoError(t, err)
	buf := make([]byte, 1024)
	n, err = fs.Read(h2, buf, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(buf[:n]))
}

func TestTruncateOnOpen(t *testing.T) {
	fs := New(1)
	h, _, err := fs.Open(nil, "test.txt", wasip1.OFLAG_CREAT, 0)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("Hello World"), nil)
	require.NoError(t, err)

	h2, _, err := fs.Open(nil, "test.txt", wasip1.OFLAG_TRUNC, 0)
	require.NoError(t, err)
	st, err := fs.Stat(h2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, st.Size)
}

func TestExclusiveCreateCollision(t *testing.T) {
	fs := New(1)
	_, _, err := fs.Open(nil, "test.txt", wasip1.OFLAG_CREAT, 0)
	require.NoError(t, err)

	_, _, err = fs.Open(nil, "test.txt", wasip1.OFLAG_CREAT|wasip1.OFLAG_EXCL, 0)
	assert.ErrorIs(t, err, errExist)
}

func TestRenameKeepsOpenHandleReadable(t *testing.T) {
	fs := New(1)
	h, _, err := fs.Open(nil, "test.txt", wasip1.OFLAG_CREAT, 0)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("Hello World"), nil)
	require.NoError(t, err)

	require.NoError(t, fs.Rename(nil, "test.txt", nil, "newTest.txt"))

	buf := make([]byte, 1024)
	zero := uint64(0)
	n, err := fs.Read(h, buf, &zero)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(buf[:n]))

	_, _, err = fs.StatPath(nil, "test.txt", false)
	assert.ErrorIs(t, err, errNotExist)
	_, err = fs.StatPath(nil, "newTest.txt", false)
	assert.NoError(t, err)
}

func TestReaddirCoversEveryEntryOnce(t *testing.T) {
	fs := New(1)
	for i := 1; i <= 11; i++ {
		_, _, err := fs.Open(nil, namef(i), wasip1.OFLAG_CREAT, 0)
		require.NoError(t, err)
	}
	root, _, err := fs.Open(nil, "", 0, 0)
	require.NoError(t, err)

	seen := map[string]bool{}
	var cookie wasip1.Dircookie
	entries, err := fs.Readdir(root, cookie)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, seen[e.Name], "duplicate entry %s", e.Name)
		seen[e.Name] = true
		cookie = e.Cookie
	}
	assert.Len(t, seen, 11)
}

func namef(i int) string {
	return "test" + strconv.Itoa(i) + ".txt"
}

func TestSeekTell(t *testing.T) {
	fs := New(1)
	h, _, err := fs.Open(nil, "test.txt", wasip1.OFLAG_CREAT, 0)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("Hello World"), nil) // 11 bytes
	require.NoError(t, err)

	off, err := fs.Seek(h, 3, wasip1.WHENCE_SET)
	require.NoError(t, err)
	assert.EqualValues(t, 3, off)

	off, err = fs.Seek(h, 0, wasip1.WHENCE_CUR)
	require.NoError(t, err)
	assert.EqualValues(t, 3, off)

	off, err = fs.Seek(h, 2, wasip1.WHENCE_CUR)
	require.NoError(t, err)
	assert.EqualValues(t, 5, off)

	off, err = fs.Seek(h, -4, wasip1.WHENCE_CUR)
	require.NoError(t, err)
	assert.EqualValues(t, 1, off)

	off, err = fs.Seek(h, 3, wasip1.WHENCE_END)
	require.NoError(t, err)
	assert.EqualValues(t, 14, off)
}
