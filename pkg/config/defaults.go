package config

const (
	defaultAPIListen = ":8088"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
//
// Memory.Path stays empty here: the actual default lives under the resolved
// .pensieve/ directory, which is not known until runtime. Search credentials
// have no defaults at all.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: defaultAPIListen,
		},
	}
}
