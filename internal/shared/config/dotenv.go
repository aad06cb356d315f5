package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"ats-checker/internal/shared/telemetry"
)

// loadEnvFiles applies KEY=VALUE pairs from the given files, earliest file
// first. Variables already set in the process environment win. It returns
// the files that were applied.
func loadEnvFiles(paths ...string) []string {
	var applied []string
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				telemetry.Warn("config.env_file.skipped", map[string]any{"path": path, "err": err.Error()})
			}
			continue
		}
		for key, val := range values {
			if _, set := os.LookupEnv(key); !set {
				_ = os.Setenv(key, val)
			}
		}
		applied = append(applied, path)
	}
	return applied
}
