package config

import (
	"os"
	"runtime"
	"strconv"
)

type Config struct {
	OutputSubdir string // subdirectory of the input folder for results
	OutputPrefix string // prepended to each watermarked filename
	FontPath     string // optional .ttf path, tried before system fonts
	Color        string // watermark color as #RRGGBB
	JPEGQuality  int
	Workers      int
}

func Load() *Config {
	return &Config{
		OutputSubdir: getEnv("OUTPUT_SUBDIR", "mask"),
		OutputPrefix: getEnv("OUTPUT_PREFIX", "watermarked_"),
		FontPath:     getEnv("FONT_PATH", ""),
		Color:        getEnv("WATERMARK_COLOR", "#FFD700"),
		JPEGQuality:  getEnvInt("JPEG_QUALITY", 95),
		Workers:      getEnvInt("WORKERS", runtime.NumCPU()),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
