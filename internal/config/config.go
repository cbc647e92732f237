package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"xuanji/internal/colormap"
	"xuanji/internal/grid"
)

type Config struct {
	ResourceDir  string
	GridFile     string
	PhraseFile   string
	ColorFile    string
	GridSize     int
	DefaultColor colormap.Category
	WorkerCount  int
	LogLevel     string

	DatabaseURL   string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	GeminiAPIKey     string
	TranslationModel string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		ResourceDir:      getEnv("XUANJI_RESOURCE_DIR", "resources"),
		GridFile:         getEnv("XUANJI_GRID_FILE", ""),
		PhraseFile:       getEnv("XUANJI_PHRASE_FILE", ""),
		ColorFile:        getEnv("XUANJI_COLOR_FILE", ""),
		GridSize:         getEnvInt("XUANJI_GRID_SIZE", grid.DefaultSize),
		DefaultColor:     getEnvCategory("XUANJI_DEFAULT_COLOR", colormap.Black),
		WorkerCount:      getEnvInt("WORKER_COUNT", 4),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		Neo4jURI:         getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:        getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", "password"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		TranslationModel: getEnv("TRANSLATION_MODEL", "gemini-2.5-flash"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer, using default")
		return fallback
	}
	return n
}

func getEnvCategory(key string, fallback colormap.Category) colormap.Category {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	c, ok := colormap.ParseCategory(v)
	if !ok {
		log.Warn().Str("key", key).Str("value", v).Msg("Unknown color category, using default")
		return fallback
	}
	return c
}
