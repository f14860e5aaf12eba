package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/vscode-wasm-sub002/host"
)

func TestParseMountsSplitsHostAndGuestPaths(t *testing.T) {
	devices, err := parseMounts([]string{"/tmp/data:/workspace"})
	require.NoError(t, err)
	require.Len(t, devices, 2) // the mount plus the always-appended console device
	assert.Equal(t, host.DeviceFileSystem, devices[0].Kind)
	assert.Equal(t, "file:///tmp/data", devices[0].URI)
	assert.Equal(t, "/workspace", devices[0].MountPoint)
	assert.Equal(t, host.DeviceConsole, devices[1].Kind)
}

func TestParseMountsStripsReadOnlySuffix(t *testing.T) {
	devices, err := parseMounts([]string{"/tmp/data:/workspace:ro"})
	require.NoError(t, err)
	assert.Equal(t, "/workspace", devices[0].MountPoint)
}

func TestParseMountsRejectsMissingSeparator(t *testing.T) {
	_, err := parseMounts([]string{"noseparator"})
	assert.Error(t, err)
}

func TestParseMountsRejectsEmptyEntry(t *testing.T) {
	_, err := parseMounts([]string{""})
	assert.Error(t, err)
}
