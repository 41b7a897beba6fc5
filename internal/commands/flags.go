package commands

import (
	"path/filepath"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/util"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return filepath.Join(util.ConfigDir(config.AppName), config.ConfigFileName)
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	return util.DataDir(config.AppName)
}

// LogPath returns the log file path, defaulting to <data-dir>/pomo.log.
func (f *Flags) LogPath() string {
	if f.LogFile != "" {
		return f.LogFile
	}
	return filepath.Join(f.DataDir, config.LogFileName)
}

// DBPath returns the database file inside the data directory.
func (f *Flags) DBPath() string {
	return filepath.Join(f.DataDir, config.DBFileName)
}
