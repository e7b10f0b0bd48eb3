package config

const (
	defaultServerURL            = "http://127.0.0.1:8989"
	defaultServerRequestTimeout = 30
	defaultLogDir               = "~/.local/share/cornerman/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogRetentionDays     = 30
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			URL:            defaultServerURL,
			RequestTimeout: defaultServerRequestTimeout,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Grabs:          true,
			Errors:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
