package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/vscode-wasm-sub002/device/memfs"
)

func TestResolveLongestPrefixWins(t *testing.T) {
	root := memfs.New(1)
	tmp := memfs.New(2)
	table := NewTable([]Mount{
		{Prefix: "/", Driver: root},
		{Prefix: "/tmp", Driver: tmp},
	})

	m, rel, err := table.Resolve("/tmp/foo.txt")
	require.NoError(t, err)
	assert.Same(t, tmp, m.Driver)
	assert.Equal(t, "foo.txt", rel)

	m, rel, err = table.Resolve("/etc/motd")
	require.NoError(t, err)
	assert.Same(t, root, m.Driver)
	assert.Equal(t, "etc/motd", rel)
}

func TestResolveMountRootItself(t *testing.T) {
	tmp := memfs.New(1)
	table := NewTable([]Mount{{Prefix: "/tmp", Driver: tmp}})

	m, rel, err := table.Resolve("/tmp")
	require.NoError(t, err)
	assert.Same(t, tmp, m.Driver)
	assert.Equal(t, ".", rel)
}

func TestResolveOutsideAnyMountFails(t *testing.T) {
	tmp := memfs.New(1)
	table := NewTable([]Mount{{Prefix: "/tmp", Driver: tmp}})

	_, _, err := table.Resolve("/etc/motd")
	assert.Error(t, err)
}

func TestEscapesMountDetectsParentWalk(t *testing.T) {
	assert.True(t, EscapesMount("/tmp", "/tmp", "../etc/passwd"))
	assert.False(t, EscapesMount("/tmp", "/tmp/sub", "../foo.txt"))
}
