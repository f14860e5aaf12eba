// Package host defines the external collaborator contracts the preview-1
// host consumes (§6) and the configuration it is constructed from. Every
// type here is an interface or a plain value — no wasm runtime is
// imported — so a concrete wasm engine can adapt to Instance without the
// core ever depending on one.
//
// Grounded on the teacher's wasi.Context (wasi/context.go), which plays
// the same "everything the dispatcher needs, gathered in one place" role
// but against a single local os.File-backed world; here the collaborators
// are abstracted because the workspace, console and timer all live across
// an RPC boundary to the extension host.
package host

import "time"

// Memory declares the same method set as wasip1.Memory, for callers that
// only need the ABI view without importing wasip1 directly.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	ReadUint32Le(offset uint32) (uint32, bool)
	ReadUint64Le(offset uint32) (uint64, bool)
	WriteUint32Le(offset uint32, v uint32) bool
	WriteUint64Le(offset uint32, v uint64) bool
}

// Instance is the Wasm instance collaborator (§6.1): it must expose
// linear memory and let the host observe growth. The dispatcher never
// caches the Memory it returns across calls.
type Instance interface {
	Memory() Memory
}

// Clock is the realtime/monotonic clock source collaborator (§6.2).
type Clock interface {
	// Realtime returns nanoseconds since the Unix epoch.
	Realtime() uint64
	// Monotonic returns nanoseconds since an unspecified fixed point.
	Monotonic() uint64
}

// Timer is the synchronous sleep collaborator (§6.3), also used by the
// poll/timer engine (C8) to block on the earliest subscribed deadline.
type Timer interface {
	// Sleep blocks the calling goroutine for d.
	Sleep(d time.Duration)
}

// ProcessExit is the process-exit collaborator (§6.4).
type ProcessExit interface {
	Exit(code int32)
}

// Console is the host log collaborator (§6.5), used only through the
// console/tty driver for diagnostics distinct from guest tty traffic.
type Console interface {
	Log(message string)
	Error(message string)
}

// WorkspaceEntryKind is the `type` field of a workspace stat result.
type WorkspaceEntryKind int

const (
	WorkspaceFile WorkspaceEntryKind = iota
	WorkspaceDirectory
	WorkspaceSymbolicLink
	WorkspaceUnknown
)

// WorkspaceStat is the metadata shape returned by the workspace
// filesystem's stat (§6.7).
type WorkspaceStat struct {
	Type        WorkspaceEntryKind
	Size        uint64
	Ctime       time.Time
	Mtime       time.Time
	Permissions *WorkspacePermissions
}

// WorkspacePermissions mirrors VS Code's optional readonly marker.
type WorkspacePermissions struct {
	Readonly bool
}

// WorkspaceDirEntry is one entry returned by readDirectory.
type WorkspaceDirEntry struct {
	Name string
	Type WorkspaceEntryKind
}

// Workspace is the synchronous, URI-addressed filesystem collaborator
// (§6.7) that the workspace-fs device driver wraps. It is phrased
// synchronously per the collaborator contract even though the underlying
// VS Code FileSystem is asynchronous; adapting implementations block the
// host thread, which is acceptable because the dispatcher itself is
// single-threaded (§5, §9).
type Workspace interface {
	Stat(uri string) (WorkspaceStat, error)
	ReadFile(uri string) ([]byte, error)
	WriteFile(uri string, data []byte) error
	ReadDirectory(uri string) ([]WorkspaceDirEntry, error)
	CreateDirectory(uri string) error
	Delete(uri string, recursive bool) error
	Rename(oldURI, newURI string, overwrite bool) error
}

// Services bundles every collaborator the dispatcher needs besides the
// Wasm instance itself.
type Services struct {
	Clock     Clock
	Timer     Timer
	Exit      ProcessExit
	Console   Console
	Workspace Workspace
}

// DeviceKind selects which concrete driver a DeviceDescription instantiates.
type DeviceKind int

const (
	DeviceConsole DeviceKind = iota
	DeviceFileSystem
)

// DeviceDescription is one entry of the host configuration's device list
// (§6, "Host configuration input").
type DeviceDescription struct {
	Kind       DeviceKind
	URI        string // console session id, or workspace root URI
	MountPoint string // guest-visible mount prefix; "" defaults to "/"
}

// StdioMapping names, by index into Config.Devices, which device backs
// each of fds 0/1/2.
type StdioMapping struct {
	Stdin  int
	Stdout int
	Stderr int
}

// Config is the host's creation-time configuration (§6, "Host
// configuration input").
type Config struct {
	ProgramName string
	Args        []string
	Env         map[string]string
	Devices     []DeviceDescription
	Stdio       StdioMapping
}
