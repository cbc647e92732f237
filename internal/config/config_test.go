package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xuanji/internal/colormap"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"XUANJI_RESOURCE_DIR", "XUANJI_GRID_SIZE", "XUANJI_DEFAULT_COLOR", "WORKER_COUNT", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "resources", cfg.ResourceDir)
	assert.Equal(t, 29, cfg.GridSize)
	assert.Equal(t, colormap.Black, cfg.DefaultColor)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XUANJI_RESOURCE_DIR", "/data/xuanji")
	t.Setenv("XUANJI_GRID_SIZE", "7")
	t.Setenv("XUANJI_DEFAULT_COLOR", "Yellow")
	t.Setenv("WORKER_COUNT", "2")

	cfg := Load()

	assert.Equal(t, "/data/xuanji", cfg.ResourceDir)
	assert.Equal(t, 7, cfg.GridSize)
	assert.Equal(t, colormap.Yellow, cfg.DefaultColor)
	assert.Equal(t, 2, cfg.WorkerCount)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XUANJI_GRID_SIZE", "twenty-nine")
	t.Setenv("XUANJI_DEFAULT_COLOR", "green")
	t.Setenv("WORKER_COUNT", "-3")

	cfg := Load()

	assert.Equal(t, 29, cfg.GridSize)
	assert.Equal(t, colormap.Black, cfg.DefaultColor)
	assert.Equal(t, 4, cfg.WorkerCount)
}
