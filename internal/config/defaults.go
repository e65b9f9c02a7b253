package config

const (
	defaultWorkDir      = "~/.local/share/videoforge/work"
	defaultLogDir       = "~/.local/share/videoforge/logs"
	defaultFetchBinary  = "yt-dlp"
	defaultEncodeBinary = "ffmpeg"
	defaultProbeBinary  = "ffprobe"
	defaultMaxHeight    = 1080
	defaultHistoryPath  = "~/.local/share/videoforge/history.db"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Tools: Tools{
			FetchBinary:  defaultFetchBinary,
			EncodeBinary: defaultEncodeBinary,
			ProbeBinary:  defaultProbeBinary,
		},
		Download: Download{
			MaxHeight: defaultMaxHeight,
		},
		History: History{
			Enabled: false,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
