package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/vscode-wasm-sub002/host"
)

const sampleYAML = `
program: demoApp
args: ["--flag"]
env:
  EXAMPLE: "1"
devices:
  - kind: console
    mountPoint: /dev/console
  - kind: fileSystem
    uri: file:///workspace
    mountPoint: /workspace
stdio:
  stdin: console
  stdout: console
  stderr: console
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "host.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDecodesDevicesAndStdio(t *testing.T) {
	path := writeFixture(t, sampleYAML)
	h, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demoApp", h.Config.ProgramName)
	assert.Equal(t, []string{"--flag"}, h.Config.Args)
	assert.Equal(t, "1", h.Config.Env["EXAMPLE"])

	require.Len(t, h.Config.Devices, 2)
	assert.Equal(t, host.DeviceConsole, h.Config.Devices[0].Kind)
	assert.Equal(t, "/dev/console", h.Config.Devices[0].MountPoint)
	assert.Equal(t, host.DeviceFileSystem, h.Config.Devices[1].Kind)
	assert.Equal(t, "file:///workspace", h.Config.Devices[1].URI)
	assert.Equal(t, "/workspace", h.Config.Devices[1].MountPoint)

	assert.Equal(t, 0, h.Config.Stdio.Stdin)
	assert.Equal(t, 0, h.Config.Stdio.Stdout)
	assert.Equal(t, 0, h.Config.Stdio.Stderr)

	require.Len(t, h.InstanceIDs, 2)
	assert.NotEqual(t, h.InstanceIDs[0], h.InstanceIDs[1])
}

func TestLoadDefaultsMissingMountPointToRoot(t *testing.T) {
	path := writeFixture(t, `
program: p
devices:
  - kind: console
stdio:
  stdin: console
  stdout: console
  stderr: console
`)
	h, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/", h.Config.Devices[0].MountPoint)
}

func TestLoadRejectsUnknownDeviceKind(t *testing.T) {
	path := writeFixture(t, `
program: p
devices:
  - kind: bogus
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnresolvedStdio(t *testing.T) {
	path := writeFixture(t, `
program: p
devices:
  - kind: console
stdio:
  stdin: fileSystem
  stdout: console
  stderr: console
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
