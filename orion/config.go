package orion

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is read by ConfigFromEnv if it exists in the working directory.
// Variables of the process environment take precedence.
const EnvFile = ".env"

// Config holds the settings read from the environment.
type Config struct {
	LogLevel slog.Level

	// AssetRoot is the directory shader sources and images are loaded from
	AssetRoot string

	// Profile enables profiling of the render loop, either "cpu" or "mem"
	Profile string

	// WatchShaders rebuilds programs when their source files change
	WatchShaders bool
}

// ConfigFromEnv reads LEARNGL_LOG_LEVEL, LEARNGL_ASSETS, LEARNGL_PROFILE
// and LEARNGL_WATCH_SHADERS from the environment and the EnvFile.
func ConfigFromEnv() Config {
	fileValues, err := godotenv.Read(EnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read env file",
			slog.String("path", EnvFile),
			slog.String("err", err.Error()),
		)
	}

	return configFromLookup(func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}

		value, ok := fileValues[key]
		return value, ok
	})
}

func configFromLookup(lookup func(string) (string, bool)) Config {
	config := Config{
		LogLevel:  slog.LevelInfo,
		AssetRoot: "assets",
	}

	if value, ok := lookup("LEARNGL_LOG_LEVEL"); ok {
		switch strings.ToUpper(value) {
		case "DEBUG", "TRACE":
			config.LogLevel = slog.LevelDebug
		case "INFO":
			config.LogLevel = slog.LevelInfo
		case "WARN", "WARNING":
			config.LogLevel = slog.LevelWarn
		case "ERROR":
			config.LogLevel = slog.LevelError
		}
	}

	if value, ok := lookup("LEARNGL_ASSETS"); ok && value != "" {
		config.AssetRoot = value
	}

	if value, ok := lookup("LEARNGL_PROFILE"); ok {
		config.Profile = strings.ToLower(value)
	}

	if value, ok := lookup("LEARNGL_WATCH_SHADERS"); ok {
		switch strings.ToLower(value) {
		case "1", "true", "yes", "on":
			config.WatchShaders = true
		}
	}

	return config
}

// ConfigureLogging installs a text logger writing to stderr as the default logger.
func (c Config) ConfigureLogging() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel})
	slog.SetDefault(slog.New(handler))
}

// Asset resolves a path relative to the asset root.
func (c Config) Asset(path string) string {
	return filepath.Join(c.AssetRoot, filepath.FromSlash(path))
}
