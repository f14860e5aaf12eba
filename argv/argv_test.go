package argv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackArgsMatchesScenario1(t *testing.T) {
	p := PackArgs("testApp", []string{"arg1", "arg22", "arg333"})
	assert.EqualValues(t, 4, p.Count())
	assert.EqualValues(t, 8+5+6+7, p.Size())
	assert.Equal(t, "testApp\x00arg1\x00arg22\x00arg333\x00", string(p.Buf()))
}

func TestPackEnvMatchesScenario2(t *testing.T) {
	p := PackEnv([]string{"var1", "var2"}, map[string]string{"var1": "value1", "var2": "value2"})
	assert.EqualValues(t, 2, p.Count())
	assert.EqualValues(t, 12+12, p.Size())
	assert.Equal(t, "var1=value1\x00var2=value2\x00", string(p.Buf()))
}

func TestOffsetsPointToEachEntryStart(t *testing.T) {
	p := PackArgs("a", []string{"bb", "ccc"})
	assert.Equal(t, []uint32{0, 2, 5}, p.Offsets())
}
