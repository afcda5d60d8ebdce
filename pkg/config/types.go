package config

// Config represents the persistent pensieve configuration stored as config.toml
// in the .pensieve/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Memory  MemoryConfig `toml:"memory"`
	API     APIConfig    `toml:"api"`
	Search  SearchConfig `toml:"search"`
}

// MemoryConfig holds fact base settings.
type MemoryConfig struct {
	// Path is the location of the memories.json fact base. Empty means
	// the default <dotdir>/memories.json resolved at runtime.
	Path string `toml:"path,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// SearchConfig holds Google Programmable Search Engine credentials.
// Both values must be set for the web search tool to function.
type SearchConfig struct {
	APIKey   string `toml:"api_key,omitempty"`
	EngineID string `toml:"engine_id,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"memory.path": {
		get: func(c *Config) string { return c.Memory.Path },
		set: func(c *Config, v string) error { c.Memory.Path = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"search.api_key": {
		get: func(c *Config) string { return c.Search.APIKey },
		set: func(c *Config, v string) error { c.Search.APIKey = v; return nil },
	},
	"search.engine_id": {
		get: func(c *Config) string { return c.Search.EngineID },
		set: func(c *Config, v string) error { c.Search.EngineID = v; return nil },
	},
}
