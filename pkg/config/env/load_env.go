package env

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file into the process environment. ENV_PATH
// overrides defaultPath. Variables already set are kept. A missing file is
// an error only when env is "local" or empty.
func LoadDotEnv(env string, defaultPath string) error {
	path := cmp.Or(os.Getenv("ENV_PATH"), defaultPath)

	if err := godotenv.Load(path); err != nil {
		if isLocal(env) {
			return fmt.Errorf("load %s: %w", path, err)
		}
		slog.Debug("No .env file loaded", "path", path, "env", env)
		return nil
	}

	slog.Info("Loaded .env file", "path", path)
	return nil
}

func isLocal(env string) bool {
	return env == "" || env == "local"
}
