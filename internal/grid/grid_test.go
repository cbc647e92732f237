package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridAccessors(t *testing.T) {
	g := FromLines([][]string{{"甲", "乙"}, {"丙"}}, 2)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Cols())
	assert.Equal(t, "乙", g.At(Position{Row: 0, Col: 1}))
	assert.Equal(t, "", g.Char(1, 1))
	assert.Equal(t, "", g.Char(-1, 0))
	assert.Equal(t, "", g.Char(0, 2))
	assert.True(t, g.Contains(Position{Row: 1, Col: 1}))
	assert.False(t, g.Contains(Position{Row: 2, Col: 0}))
	assert.Equal(t, 3, g.Filled())
	assert.Equal(t, "甲乙\n丙　", g.String())
}

func TestLinesReturnsCopy(t *testing.T) {
	g := FromLines([][]string{{"甲"}}, 1)
	lines := g.Lines()
	lines[0][0] = "乙"

	assert.Equal(t, "甲", g.Char(0, 0))
}

func TestPositionAsMapKey(t *testing.T) {
	seen := map[Position]bool{{Row: 1, Col: 2}: true}
	assert.True(t, seen[Position{Row: 1, Col: 2}])
	assert.Equal(t, "(1,2)", Position{Row: 1, Col: 2}.String())
}
