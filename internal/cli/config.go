package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds settings read from the environment. Flags override them.
type Config struct {
	LogLevel  string `env:"FORMCHECK_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FORMCHECK_LOG_FORMAT" envDefault:"text"`
	Output    string `env:"FORMCHECK_OUTPUT" envDefault:"json"`
	DefsDir   string `env:"FORMCHECK_DEFS"`
}

// LoadConfig parses Config from environ, after layering the optional dotenv
// file underneath it. Variables already present in environ win over the file.
// A missing dotenv file is not an error.
func LoadConfig(envFile string, environ map[string]string) (Config, error) {
	merged := make(map[string]string, len(environ))
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cli: read %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			merged[k] = v
		}
	}
	for k, v := range environ {
		merged[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: merged}); err != nil {
		return Config{}, fmt.Errorf("cli: parse config: %w", err)
	}
	return cfg, nil
}

// ProcessEnv returns the current process environment as a map.
func ProcessEnv() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
