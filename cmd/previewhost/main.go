// Command previewhost is a thin demo bootstrap for the preview-1 host
// (§12): it resolves a configuration, builds the mount table and
// descriptor table the dispatcher needs, constructs the dispatcher, and
// prints what it built. It never loads or instantiates a wasm module —
// that is explicitly out of scope; this exists to exercise construction,
// configuration loading and logging end to end.
//
// Grounded on the teacher's cmd/wazero/wazero.go for the overall
// "parse flags, build a rootfs-equivalent, run" shape, rebuilt on
// github.com/urfave/cli/v3 the way bytecodealliance/wasm-tools-go's
// cmd/wit-bindgen-go does.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/microsoft/vscode-wasm-sub002/argv"
	"github.com/microsoft/vscode-wasm-sub002/config"
	"github.com/microsoft/vscode-wasm-sub002/device/console"
	"github.com/microsoft/vscode-wasm-sub002/device/memfs"
	"github.com/microsoft/vscode-wasm-sub002/device/workspacefs"
	"github.com/microsoft/vscode-wasm-sub002/dispatch"
	"github.com/microsoft/vscode-wasm-sub002/fdtable"
	"github.com/microsoft/vscode-wasm-sub002/host"
	"github.com/microsoft/vscode-wasm-sub002/vfs"
)

func main() {
	cmd := &cli.Command{
		Name:  "previewhost",
		Usage: "construct and inspect a wasi_snapshot_preview1 host without running a wasm module",
		Commands: []*cli.Command{
			runCommand,
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "build the mount table and descriptor table described by a config file or --mount flags",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to a YAML host configuration (§11)",
		},
		&cli.StringSliceFlag{
			Name:  "mount",
			Usage: "host:guest[:ro] mount, equivalent to the teacher's own -mount flag; repeatable",
		},
		&cli.StringFlag{
			Name:  "program",
			Value: "previewhost-guest",
			Usage: "program name reported via args_get when --config is not used",
		},
	},
	Action: runAction,
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	var hostCfg host.Config
	if p := cmd.String("config"); p != "" {
		loaded, err := config.Load(p)
		if err != nil {
			return err
		}
		hostCfg = loaded.Config
	} else {
		devices, err := parseMounts(cmd.StringSlice("mount"))
		if err != nil {
			return err
		}
		hostCfg = host.Config{
			ProgramName: cmd.String("program"),
			Devices:     devices,
			Env:         map[string]string{},
		}
	}

	services := host.Services{
		Clock: systemClock{},
		Timer: systemTimer{},
		Exit:  exitFunc(func(int32) {}),
	}

	mounts, err := buildMounts(hostCfg.Devices)
	if err != nil {
		return err
	}

	fds := fdtable.New()
	args := argv.PackArgs(hostCfg.ProgramName, hostCfg.Args)
	env := argv.PackEnv(envKeys(hostCfg.Env), hostCfg.Env)

	d := dispatch.New(services, mounts, fds, args, env)

	fmt.Printf("program: %s\n", hostCfg.ProgramName)
	fmt.Printf("mounts:\n")
	for _, m := range mounts.Mounts() {
		fmt.Printf("  %s -> driver %d\n", m.Prefix, m.Driver.ID())
	}
	fds.Scan(func(fd uint32, e *fdtable.Entry) bool {
		fmt.Printf("  fd %d: preopen=%v path=%q\n", fd, e.Preopen, e.AbsPath)
		return true
	})
	d.Log.Info("dispatcher ready; wasm instantiation is out of scope for this command")
	return nil
}

func envKeys(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	return keys
}

// parseMounts decodes `--mount host:guest[:ro]` flags into device
// descriptions backed by the workspace-fs driver, mirroring the
// teacher's own mountRootFS flag grammar. A trailing ":ro" is accepted and
// stripped; the resulting mount is not read-only.
func parseMounts(mounts []string) ([]host.DeviceDescription, error) {
	var out []host.DeviceDescription
	for _, m := range mounts {
		if m == "" {
			return nil, fmt.Errorf("invalid mount: empty string")
		}
		m = strings.TrimSuffix(m, ":ro")
		idx := strings.LastIndexByte(m, ':')
		if idx < 0 {
			return nil, fmt.Errorf("invalid mount %q: expected host:guest", m)
		}
		hostPath, guestPath := m[:idx], m[idx+1:]
		out = append(out, host.DeviceDescription{
			Kind:       host.DeviceFileSystem,
			URI:        "file://" + hostPath,
			MountPoint: guestPath,
		})
	}
	out = append(out, host.DeviceDescription{Kind: host.DeviceConsole, MountPoint: "/dev/console"})
	return out, nil
}

// buildMounts instantiates one driver per device description and opens
// its root handle via vfs.OpenMount, the step dispatch.New relies on
// every mount having already performed.
func buildMounts(devices []host.DeviceDescription) (*vfs.Table, error) {
	var mounts []vfs.Mount
	for i, d := range devices {
		var driver interface {
			ID() uint64
		}
		var m vfs.Mount
		var err error
		switch d.Kind {
		case host.DeviceConsole:
			drv := console.New(uint64(i), d.URI, stdioConsole{}, stdioConsole{})
			m, err = vfs.OpenMount(normalizeMount(d.MountPoint), drv)
			driver = drv
		case host.DeviceFileSystem:
			if d.URI == "" {
				drv := memfs.New(uint64(i))
				m, err = vfs.OpenMount(normalizeMount(d.MountPoint), drv)
				driver = drv
			} else {
				drv := workspacefs.New(uint64(i), d.URI, osWorkspace{})
				m, err = vfs.OpenMount(normalizeMount(d.MountPoint), drv)
				driver = drv
			}
		default:
			return nil, fmt.Errorf("unknown device kind %d", d.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("mount %s: %w", d.MountPoint, err)
		}
		logrus.WithFields(logrus.Fields{"mount": d.MountPoint, "driver": driver.ID()}).Info("mounted device")
		mounts = append(mounts, m)
	}
	return vfs.NewTable(mounts), nil
}

func normalizeMount(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// systemClock and systemTimer adapt the stdlib time package to host.Clock
// and host.Timer for this standalone demo; a real extension host instead
// supplies clocks synchronized with the guest's own notion of time.
type systemClock struct{}

func (systemClock) Realtime() uint64  { return uint64(time.Now().UnixNano()) }
func (systemClock) Monotonic() uint64 { return uint64(time.Now().UnixNano()) }

type systemTimer struct{}

func (systemTimer) Sleep(d time.Duration) { time.Sleep(d) }

type exitFunc func(code int32)

func (f exitFunc) Exit(code int32) { f(code) }

// stdioConsole routes console/tty traffic to this process's own stdio,
// standing in for the VS Code terminal a real extension host would wire
// the console driver to.
type stdioConsole struct{}

func (stdioConsole) Write(uri string, b []byte) (int, error) { return os.Stdout.Write(b) }
func (stdioConsole) Read(uri string, max int) ([]byte, error) {
	buf := make([]byte, max)
	n, err := os.Stdin.Read(buf)
	return buf[:n], err
}

// osWorkspace adapts host.Workspace to the local filesystem via file://
// URIs, for the demo's --mount flag; a real extension host instead talks
// to VS Code's FileSystem API over RPC (§6.7).
type osWorkspace struct{}

func (osWorkspace) toPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(u.Path), nil
}

func (w osWorkspace) Stat(uri string) (host.WorkspaceStat, error) {
	p, err := w.toPath(uri)
	if err != nil {
		return host.WorkspaceStat{}, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return host.WorkspaceStat{}, err
	}
	kind := host.WorkspaceFile
	if info.IsDir() {
		kind = host.WorkspaceDirectory
	}
	return host.WorkspaceStat{Type: kind, Size: uint64(info.Size()), Mtime: info.ModTime()}, nil
}

func (w osWorkspace) ReadFile(uri string) ([]byte, error) {
	p, err := w.toPath(uri)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

func (w osWorkspace) WriteFile(uri string, data []byte) error {
	p, err := w.toPath(uri)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (w osWorkspace) ReadDirectory(uri string) ([]host.WorkspaceDirEntry, error) {
	p, err := w.toPath(uri)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}
	out := make([]host.WorkspaceDirEntry, len(entries))
	for i, e := range entries {
		kind := host.WorkspaceFile
		if e.IsDir() {
			kind = host.WorkspaceDirectory
		}
		out[i] = host.WorkspaceDirEntry{Name: e.Name(), Type: kind}
	}
	return out, nil
}

func (w osWorkspace) CreateDirectory(uri string) error {
	p, err := w.toPath(uri)
	if err != nil {
		return err
	}
	return os.MkdirAll(p, 0o755)
}

func (w osWorkspace) Delete(uri string, recursive bool) error {
	p, err := w.toPath(uri)
	if err != nil {
		return err
	}
	if recursive {
		return os.RemoveAll(p)
	}
	return os.Remove(p)
}

func (w osWorkspace) Rename(oldURI, newURI string, overwrite bool) error {
	oldPath, err := w.toPath(oldURI)
	if err != nil {
		return err
	}
	newPath, err := w.toPath(newURI)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(newPath); err == nil {
			return fs.ErrExist
		}
	}
	return os.Rename(oldPath, newPath)
}

var _ host.Workspace = osWorkspace{}
