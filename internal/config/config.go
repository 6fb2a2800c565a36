package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the environment-derived runtime configuration, read once at
// startup and never reloaded.
type Config struct {
	// GitHub access
	Token string
	Org   string
	// Optional YAML ruleset overriding the built-in expectations
	RulesFile string
}

// Load reads configuration from the process environment, optionally
// pre-populated from a dotenv file. A missing dotenv file is not an
// error; the system environment still applies.
func Load(envFile string) Config {
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	return Config{
		Token:     os.Getenv("GITHUB_TOKEN"),
		Org:       os.Getenv("GITHUB_ORG"),
		RulesFile: getEnvDefault("LABELAUDIT_RULES", ""),
	}
}

// Validate checks the required variables are present. It is called before
// any API request is made.
func (c Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is not set (configure it in .env or the environment)")
	}
	if c.Org == "" {
		return fmt.Errorf("GITHUB_ORG is not set (configure it in .env or the environment)")
	}
	return nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
