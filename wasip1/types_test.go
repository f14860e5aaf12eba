package wasip1

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRightsHasAndIntersect(t *testing.T) {
	parent := DirectoryInheriting
	requested := FileBase | PATH_OPEN

	assert.True(t, parent.Has(FD_READ))
	narrowed := requested.Intersect(parent)
	assert.Equal(t, requested, narrowed, "every bit of requested is within what a directory inherits")

	assert.False(t, Rights(0).Has(FD_READ))
}

func TestBaseForFiletype(t *testing.T) {
	assert.Equal(t, DirectoryBase, BaseForFiletype(FILETYPE_DIRECTORY))
	assert.Equal(t, FileBase, BaseForFiletype(FILETYPE_REGULAR_FILE))
	assert.Equal(t, CharacterDeviceBase, BaseForFiletype(FILETYPE_CHARACTER_DEVICE))
}

func TestErrnoOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Errno
	}{
		{"nil", nil, ESUCCESS},
		{"not exist", fs.ErrNotExist, ENOENT},
		{"exist", fs.ErrExist, EEXIST},
		{"permission", fs.ErrPermission, EACCES},
		{"invalid", fs.ErrInvalid, EINVAL},
		{"closed", fs.ErrClosed, EBADF},
		{"not implemented", ErrNotImplemented, ENOSYS},
		{"not capable", ErrNotCapable, ENOTCAPABLE},
		{"not seekable", ErrNotSeekable, ESPIPE},
		{"not empty", ErrNotEmpty, ENOTEMPTY},
		{"read only", ErrReadOnly, EROFS},
		{"not dir", ErrNotDir, ENOTDIR},
		{"is dir", ErrIsDir, EISDIR},
		{"unrecognised error", errors.New("driver exploded"), EIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrnoOf(tt.err))
		})
	}
}

func TestErrnoString(t *testing.T) {
	assert.Equal(t, "noent", ENOENT.String())
	assert.Equal(t, "success", ESUCCESS.String())
}
