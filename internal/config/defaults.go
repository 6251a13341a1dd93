package config

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: "~/.local/share/ticketflow",
			LogDir:  "~/.local/share/ticketflow/logs",
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
