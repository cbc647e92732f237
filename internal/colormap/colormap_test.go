package colormap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellID(t *testing.T) {
	assert.Equal(t, "r01c01", CellID(0, 0))
	assert.Equal(t, "r29c29", CellID(28, 28))
	assert.Equal(t, "r10c03", CellID(9, 2))
}

func TestParseCellID(t *testing.T) {
	r, c, ok := ParseCellID("r10c03")
	assert.True(t, ok)
	assert.Equal(t, 9, r)
	assert.Equal(t, 2, c)

	for _, bad := range []string{"", "r1c1", "r00c01", "c01r01", "r01c01x", "rxxc01"} {
		_, _, ok := ParseCellID(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Purple ")
	assert.True(t, ok)
	assert.Equal(t, Purple, c)

	_, ok = ParseCategory("green")
	assert.False(t, ok)
}

func TestBuildDropsUnknownCategories(t *testing.T) {
	m := Build(map[string]string{
		"r01c01": "red",
		"r01c02": "green",
		"r02c01": "BLUE",
	}, Black)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, Red, m.ColorFor(0, 0))
	assert.Equal(t, Black, m.ColorFor(0, 1))
	assert.Equal(t, Blue, m.ColorFor(1, 0))
	assert.Equal(t, Black, m.ColorFor(28, 28))
	assert.Equal(t, map[Category]int{Red: 1, Blue: 1}, m.Counts())
}

func TestDecode(t *testing.T) {
	m := Decode([]byte(`{"r01c01":"yellow","r29c29":"purple","r02c02":"mauve"}`), Black)
	assert.Equal(t, Yellow, m.ColorFor(0, 0))
	assert.Equal(t, Purple, m.ColorFor(28, 28))
	assert.Equal(t, Black, m.ColorFor(1, 1))
}

func TestDecodeMalformedFallsBackToDefault(t *testing.T) {
	for _, data := range []string{"", "{", `["r01c01"]`, `{"r01c01": 3}`} {
		m := Decode([]byte(data), Red)
		assert.Equal(t, 0, m.Len(), data)
		assert.Equal(t, Red, m.ColorFor(0, 0))
		assert.Equal(t, Red, m.Default())
	}
}
