// Package config loads ccopt configuration from defaults, config files,
// .env files and the environment.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory or its parent, once.
// It reports the file it loaded, or "" when none was found.
func LoadEnv() string {
	var loaded string
	envOnce.Do(func() {
		loaded = loadEnvFile()
	})
	return loaded
}

func loadEnvFile() string {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return ""
		}
		return candidate
	}
	return ""
}
