package fdtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

func TestInsertSkipsReservedStdio(t *testing.T) {
	table := New()
	fd := table.Insert(&Entry{})
	assert.GreaterOrEqual(t, fd, wasip1.Fd(3))
}

func TestInsertReusesLowestFreeSlot(t *testing.T) {
	table := New()
	a := table.Insert(&Entry{})
	b := table.Insert(&Entry{})
	table.Delete(a)
	c := table.Insert(&Entry{})
	assert.Equal(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestDeleteStdioAllowed(t *testing.T) {
	table := New()
	table.Set(1, &Entry{})
	require.NotNil(t, table.Get(1))
	table.Delete(1)
	assert.Nil(t, table.Get(1))
}

func TestRenumberClosesDestination(t *testing.T) {
	table := New()
	from := table.Insert(&Entry{Filetype: 1})
	to := table.Insert(&Entry{Filetype: 2})

	e := table.Renumber(from, to)
	require.NotNil(t, e)
	assert.Nil(t, table.Get(from))
	assert.Equal(t, wasip1.Filetype(1), table.Get(to).Filetype)
}

func TestScanVisitsOnlyOpenDescriptors(t *testing.T) {
	table := New()
	fd := table.Insert(&Entry{})

	var seen []wasip1.Fd
	table.Scan(func(fd wasip1.Fd, e *Entry) bool {
		seen = append(seen, fd)
		return true
	})
	assert.Contains(t, seen, fd)
}
