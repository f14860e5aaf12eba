package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

type fakeSink struct{ written []byte }

func (s *fakeSink) Write(uri string, b []byte) (int, error) {
	s.written = append(s.written, b...)
	return len(b), nil
}

type fakeSource struct{ chunks [][]byte }

func (s *fakeSource) Read(uri string, max int) ([]byte, error) {
	if len(s.chunks) == 0 {
		return nil, nil
	}
	c := s.chunks[0]
	s.chunks = s.chunks[1:]
	if len(c) > max {
		c = c[:max]
	}
	return c, nil
}

func TestWriteForwardsToSink(t *testing.T) {
	sink := &fakeSink{}
	d := New(1, "console:0", sink, &fakeSource{})
	h, ft, err := d.Open(nil, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, wasip1.FILETYPE_CHARACTER_DEVICE, ft)

	n, err := d.Write(h, []byte("hello"), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(sink.written))
}

func TestReadMayReturnZeroBytes(t *testing.T) {
	d := New(1, "console:0", &fakeSink{}, &fakeSource{chunks: [][]byte{{}}})
	h, _, err := d.Open(nil, "", 0, 0)
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := d.Read(h, buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSeekUnsupported(t *testing.T) {
	d := New(1, "console:0", &fakeSink{}, &fakeSource{})
	h, _, err := d.Open(nil, "", 0, 0)
	require.NoError(t, err)

	_, err = d.Seek(h, 0, wasip1.WHENCE_SET)
	assert.ErrorIs(t, err, wasip1.ErrNotSeekable)
}
