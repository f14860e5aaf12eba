package wasip1

// Per-filetype capability presets (§4.2). path_open computes a child
// descriptor's rights by intersecting the parent's rights_inheriting with
// the caller-supplied fs_rights_base (and similarly for inheriting); these
// presets are the upper bound offered to the guest for a freshly
// discovered object of the given kind, before that intersection narrows
// them.

// FileBase is the full right set meaningful on a regular file descriptor.
const FileBase = FD_DATASYNC | FD_READ | FD_SEEK | FD_FDSTAT_SET_FLAGS |
	FD_SYNC | FD_TELL | FD_WRITE | FD_ADVISE | FD_ALLOCATE |
	FD_FILESTAT_GET | FD_FILESTAT_SET_SIZE | FD_FILESTAT_SET_TIMES |
	POLL_FD_READWRITE

// FileInheriting is empty: a regular file cannot be the anchor of a
// further path_open, so it grants nothing to children.
const FileInheriting Rights = 0

// DirectoryBase is the full right set meaningful on a directory descriptor.
const DirectoryBase = FD_FDSTAT_SET_FLAGS | FD_SYNC | FD_READDIR |
	FD_FILESTAT_GET | FD_FILESTAT_SET_TIMES |
	PATH_CREATE_DIRECTORY | PATH_CREATE_FILE | PATH_LINK_SOURCE |
	PATH_LINK_TARGET | PATH_OPEN | PATH_READLINK | PATH_RENAME_SOURCE |
	PATH_RENAME_TARGET | PATH_FILESTAT_GET | PATH_FILESTAT_SET_SIZE |
	PATH_FILESTAT_SET_TIMES | PATH_SYMLINK | PATH_REMOVE_DIRECTORY |
	PATH_UNLINK_FILE

// DirectoryInheriting is everything a directory may hand down to a child
// opened through it — the union of what a nested file or nested directory
// could ever need.
const DirectoryInheriting = DirectoryBase | FileBase

// CharacterDeviceBase is the right set meaningful on a character device
// (the console/tty driver): no seek, no filestat_set_*, no path_* rights.
const CharacterDeviceBase = FD_DATASYNC | FD_READ | FD_FDSTAT_SET_FLAGS |
	FD_SYNC | FD_WRITE | FD_ADVISE | FD_FILESTAT_GET | POLL_FD_READWRITE

// CharacterDeviceInheriting is empty: a character device is never an anchor.
const CharacterDeviceInheriting Rights = 0

// BaseForFiletype returns the rights preset offered to a freshly opened
// object of the given kind.
func BaseForFiletype(ft Filetype) Rights {
	switch ft {
	case FILETYPE_DIRECTORY:
		return DirectoryBase
	case FILETYPE_CHARACTER_DEVICE:
		return CharacterDeviceBase
	default:
		return FileBase
	}
}

// InheritingForFiletype returns the rights_inheriting preset for a freshly
// opened object of the given kind.
func InheritingForFiletype(ft Filetype) Rights {
	switch ft {
	case FILETYPE_DIRECTORY:
		return DirectoryInheriting
	case FILETYPE_CHARACTER_DEVICE:
		return CharacterDeviceInheriting
	default:
		return FileInheriting
	}
}
