package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsChinese(t *testing.T) {
	assert.True(t, ContainsChinese("璇玑图"))
	assert.True(t, ContainsChinese("row 行"))
	assert.False(t, ContainsChinese("r01c01"))
	assert.False(t, ContainsChinese(""))
}

func TestHashIsStable(t *testing.T) {
	assert.Equal(t, Hash("仁智"), Hash("仁智"))
	assert.NotEqual(t, Hash("仁智"), Hash("智仁"))
	assert.Len(t, Hash("x"), 64)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "璇玑", Truncate("璇玑", 5))
	assert.Equal(t, "璇玑...", Truncate("璇玑图诗", 2))
	assert.Equal(t, "", Truncate("", 0))
}
