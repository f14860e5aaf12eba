// Package wasip1 defines the wire types of the WASI preview-1 ABI
// (wasi_snapshot_preview1): the numeric constants for errno, rights,
// fdflags, oflags, lookupflags, fstflags, filetype, whence, clockid,
// advice and event/subscription tags, together with their little-endian
// record layouts.
//
// Nothing in this package depends on a particular wasm runtime; it is
// pure data plus (de)serialisation, consumed by the dispatch package.
package wasip1

import "fmt"

// Fd is a guest-visible file descriptor number.
type Fd = uint32

// Dircookie is an opaque continuation token for directory iteration.
// Cookie 0 means "from the beginning"; the first cookie a driver issues
// is 1.
type Dircookie = uint64

// Timestamp is nanoseconds, either since the Unix epoch (realtime) or
// since an unspecified fixed point (monotonic).
type Timestamp = uint64

// Errno is the preview-1 error code returned by every host function.
type Errno uint16

// The preview-1 errno enumeration, in wire order. Values and ordering are
// fixed by the standard and must not be changed.
const (
	ESUCCESS Errno = iota
	E2BIG
	EACCES
	EADDRINUSE
	EADDRNOTAVAIL
	EAFNOSUPPORT
	EAGAIN
	EALREADY
	EBADF
	EBADMSG
	EBUSY
	ECANCELED
	ECHILD
	ECONNABORTED
	ECONNREFUSED
	ECONNRESET
	EDEADLK
	EDESTADDRREQ
	EDOM
	EDQUOT
	EEXIST
	EFAULT
	EFBIG
	EHOSTUNREACH
	EIDRM
	EILSEQ
	EINPROGRESS
	EINTR
	EINVAL
	EIO
	EISCONN
	EISDIR
	ELOOP
	EMFILE
	EMLINK
	EMSGSIZE
	EMULTIHOP
	ENAMETOOLONG
	ENETDOWN
	ENETRESET
	ENETUNREACH
	ENFILE
	ENOBUFS
	ENODEV
	ENOENT
	ENOEXEC
	ENOLCK
	ENOLINK
	ENOMEM
	ENOMSG
	ENOPROTOOPT
	ENOSPC
	ENOSYS
	ENOTCONN
	ENOTDIR
	ENOTEMPTY
	ENOTRECOVERABLE
	ENOTSOCK
	ENOTSUP
	ENOTTY
	ENXIO
	EOVERFLOW
	EOWNERDEAD
	EPERM
	EPIPE
	EPROTO
	EPROTONOSUPPORT
	EPROTOTYPE
	ERANGE
	EROFS
	ESPIPE
	ESRCH
	ESTALE
	ETIMEDOUT
	ETXTBSY
	EXDEV
	ENOTCAPABLE
)

var errnoNames = [...]string{
	ESUCCESS: "success", E2BIG: "2big", EACCES: "acces", EADDRINUSE: "addrinuse",
	EADDRNOTAVAIL: "addrnotavail", EAFNOSUPPORT: "afnosupport", EAGAIN: "again",
	EALREADY: "already", EBADF: "badf", EBADMSG: "badmsg", EBUSY: "busy",
	ECANCELED: "canceled", ECHILD: "child", ECONNABORTED: "connaborted",
	ECONNREFUSED: "connrefused", ECONNRESET: "connreset", EDEADLK: "deadlk",
	EDESTADDRREQ: "destaddrreq", EDOM: "dom", EDQUOT: "dquot", EEXIST: "exist",
	EFAULT: "fault", EFBIG: "fbig", EHOSTUNREACH: "hostunreach", EIDRM: "idrm",
	EILSEQ: "ilseq", EINPROGRESS: "inprogress", EINTR: "intr", EINVAL: "inval",
	EIO: "io", EISCONN: "isconn", EISDIR: "isdir", ELOOP: "loop", EMFILE: "mfile",
	EMLINK: "mlink", EMSGSIZE: "msgsize", EMULTIHOP: "multihop",
	ENAMETOOLONG: "nametoolong", ENETDOWN: "netdown", ENETRESET: "netreset",
	ENETUNREACH: "netunreach", ENFILE: "nfile", ENOBUFS: "nobufs", ENODEV: "nodev",
	ENOENT: "noent", ENOEXEC: "noexec", ENOLCK: "nolck", ENOLINK: "nolink",
	ENOMEM: "nomem", ENOMSG: "nomsg", ENOPROTOOPT: "noprotoopt", ENOSPC: "nospc",
	ENOSYS: "nosys", ENOTCONN: "notconn", ENOTDIR: "notdir", ENOTEMPTY: "notempty",
	ENOTRECOVERABLE: "notrecoverable", ENOTSOCK: "notsock", ENOTSUP: "notsup",
	ENOTTY: "notty", ENXIO: "nxio", EOVERFLOW: "overflow", EOWNERDEAD: "ownerdead",
	EPERM: "perm", EPIPE: "pipe", EPROTO: "proto", EPROTONOSUPPORT: "protonosupport",
	EPROTOTYPE: "prototype", ERANGE: "range", EROFS: "rofs", ESPIPE: "spipe",
	ESRCH: "srch", ESTALE: "stale", ETIMEDOUT: "timedout", ETXTBSY: "txtbsy",
	EXDEV: "xdev", ENOTCAPABLE: "notcapable",
}

func (e Errno) String() string {
	if int(e) < len(errnoNames) && errnoNames[e] != "" {
		return errnoNames[e]
	}
	return fmt.Sprintf("errno(%d)", uint16(e))
}

// Rights is the preview-1 rights bitset (fs_rights_base / fs_rights_inheriting).
type Rights uint64

const (
	FD_DATASYNC Rights = 1 << iota
	FD_READ
	FD_SEEK
	FD_FDSTAT_SET_FLAGS
	FD_SYNC
	FD_TELL
	FD_WRITE
	FD_ADVISE
	FD_ALLOCATE
	PATH_CREATE_DIRECTORY
	PATH_CREATE_FILE
	PATH_LINK_SOURCE
	PATH_LINK_TARGET
	PATH_OPEN
	FD_READDIR
	PATH_READLINK
	PATH_RENAME_SOURCE
	PATH_RENAME_TARGET
	PATH_FILESTAT_GET
	PATH_FILESTAT_SET_SIZE
	PATH_FILESTAT_SET_TIMES
	FD_FILESTAT_GET
	FD_FILESTAT_SET_SIZE
	FD_FILESTAT_SET_TIMES
	PATH_SYMLINK
	PATH_REMOVE_DIRECTORY
	PATH_UNLINK_FILE
	POLL_FD_READWRITE
	SOCK_SHUTDOWN
	SOCK_ACCEPT
)

// Has reports whether the receiver holds every bit set in want.
func (r Rights) Has(want Rights) bool { return r&want == want }

// Intersect narrows r to only the bits also present in limit; used when
// computing a child descriptor's rights from its parent (§4.2).
func (r Rights) Intersect(limit Rights) Rights { return r & limit }

// Fdflags is the preview-1 fdflags bitset.
type Fdflags uint16

const (
	FDFLAG_APPEND Fdflags = 1 << iota
	FDFLAG_DSYNC
	FDFLAG_NONBLOCK
	FDFLAG_RSYNC
	FDFLAG_SYNC
)

func (f Fdflags) Has(want Fdflags) bool { return f&want == want }

// Oflags is the preview-1 oflags bitset, valid only for path_open.
type Oflags uint16

const (
	OFLAG_CREAT Oflags = 1 << iota
	OFLAG_DIRECTORY
	OFLAG_EXCL
	OFLAG_TRUNC
)

func (o Oflags) Has(want Oflags) bool { return o&want == want }

// Lookupflags controls symlink resolution of a path lookup.
type Lookupflags uint32

const (
	LOOKUP_SYMLINK_FOLLOW Lookupflags = 1 << iota
)

func (l Lookupflags) Has(want Lookupflags) bool { return l&want == want }

// Fstflags selects which of atim/mtim a filestat_set_times call updates.
type Fstflags uint16

const (
	FSTFLAG_ATIM Fstflags = 1 << iota
	FSTFLAG_ATIM_NOW
	FSTFLAG_MTIM
	FSTFLAG_MTIM_NOW
)

func (f Fstflags) Has(want Fstflags) bool { return f&want == want }

// Filetype classifies the kind of object a descriptor refers to.
type Filetype uint8

const (
	FILETYPE_UNKNOWN Filetype = iota
	FILETYPE_BLOCK_DEVICE
	FILETYPE_CHARACTER_DEVICE
	FILETYPE_DIRECTORY
	FILETYPE_REGULAR_FILE
	FILETYPE_SOCKET_DGRAM
	FILETYPE_SOCKET_STREAM
	FILETYPE_SYMBOLIC_LINK
)

// Whence selects the origin of an fd_seek call.
type Whence uint8

const (
	WHENCE_SET Whence = iota
	WHENCE_CUR
	WHENCE_END
)

// Clockid selects the clock queried by clock_res_get / clock_time_get.
type Clockid uint32

const (
	CLOCK_REALTIME Clockid = iota
	CLOCK_MONOTONIC
	CLOCK_PROCESS_CPUTIME_ID
	CLOCK_THREAD_CPUTIME_ID
)

// Advice is the fd_advise hint; the core accepts and ignores every value.
type Advice uint8

const (
	ADVICE_NORMAL Advice = iota
	ADVICE_SEQUENTIAL
	ADVICE_RANDOM
	ADVICE_WILLNEED
	ADVICE_DONTNEED
	ADVICE_NOREUSE
)

// Eventtype tags a poll_oneoff subscription/event as a clock or fd readiness.
type Eventtype uint8

const (
	EVENTTYPE_CLOCK Eventtype = iota
	EVENTTYPE_FD_READ
	EVENTTYPE_FD_WRITE
)

// Subclockflags modifies a clock subscription.
type Subclockflags uint16

const (
	SUBSCRIPTION_CLOCK_ABSTIME Subclockflags = 1 << iota
)

func (f Subclockflags) Has(want Subclockflags) bool { return f&want == want }

// Eventrwflags is set on a fd-readiness event to report extra conditions.
type Eventrwflags uint16

const (
	EVENT_FD_READWRITE_HANGUP Eventrwflags = 1 << iota
)
