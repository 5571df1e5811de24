package config

const (
	defaultDataRoot    = "~/tangle/data"
	defaultOutputDir   = "~/.local/share/tangle/outputs"
	defaultLogDir      = "~/.local/share/tangle/logs"
	defaultExternalDir = "~/tangle/external"
	defaultToolTimeout = 1800
	defaultThreshold   = 0.5
	defaultLocale      = "en"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataRoot:    defaultDataRoot,
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
			ExternalDir: defaultExternalDir,
		},
		Run: Run{
			SimulateIfMissing: true,
			ToolTimeout:       defaultToolTimeout,
			Threshold:         defaultThreshold,
			Locale:            defaultLocale,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
