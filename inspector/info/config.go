package info

// Config controls which declarations the inspectors report
type Config struct {
	IncludeUnexported bool
	SkipTests         bool
}

// DefaultConfig returns a config including unexported declarations and skipping test files
func DefaultConfig() *Config {
	return &Config{
		IncludeUnexported: true,
		SkipTests:         true,
	}
}
