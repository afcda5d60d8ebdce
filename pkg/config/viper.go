package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pensieveco/pensieve/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the PENSIEVE_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (PENSIEVE_API_LISTEN, PENSIEVE_MEMORY_PATH, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
//
// A .env file in the working directory is loaded first so both viper and
// the process environment see its values.
func InitViper(configDir string) (*viper.Viper, error) {
	// Missing .env is the common case and not an error.
	_ = godotenv.Load()

	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: PENSIEVE_MEMORY_PATH, PENSIEVE_API_LISTEN, etc.
	v.SetEnvPrefix("PENSIEVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The fact base path also answers to the short PENSIEVE_MEMORY name.
	_ = v.BindEnv("memory.path", "PENSIEVE_MEMORY_PATH", "PENSIEVE_MEMORY")

	// Search credentials also honor the Google tooling variable names so an
	// existing GOOGLE_API_KEY / GOOGLE_CSE_ID setup works without remapping.
	_ = v.BindEnv("search.api_key", "PENSIEVE_SEARCH_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("search.engine_id", "PENSIEVE_SEARCH_ENGINE_ID", "GOOGLE_CSE_ID")

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Memory
	v.SetDefault("memory.path", d.Memory.Path)

	// API
	v.SetDefault("api.listen", d.API.Listen)

	// Search
	v.SetDefault("search.api_key", d.Search.APIKey)
	v.SetDefault("search.engine_id", d.Search.EngineID)
}
