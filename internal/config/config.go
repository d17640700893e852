// Package config handles tool configuration loading and management.
package config

// Config holds all tilesmith settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls where packed tiles are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`       // directory for packed tiles
	Extension string `yaml:"extension"` // file extension for packed tiles
	Overwrite bool   `yaml:"overwrite"` // replace existing output files
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:       ".",
			Extension: ".i3dm",
			Overwrite: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
