package internal

import (
	"os"
	"path/filepath"
	"runtime"
)

const AppName = "snipman"

// Paths holds the per-user locations snipman reads and writes.
type Paths struct {
	ConfigDir string
	DataDir   string
}

func (p Paths) ConfigPath() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

func (p Paths) LogPath() string {
	return filepath.Join(p.DataDir, AppName+".log")
}

// DefaultPaths resolves the platform's conventional directories.
//
//	linux:   $XDG_CONFIG_HOME/snipman, $XDG_DATA_HOME/snipman
//	darwin:  ~/Library/Preferences/snipman, ~/Library/Application Support/snipman
//	windows: %APPDATA%/snipman for both
func DefaultPaths() Paths {
	home, _ := os.UserHomeDir()
	return pathsFor(runtime.GOOS, home, os.Getenv)
}

func pathsFor(goos, home string, getenv func(string) string) Paths {
	switch goos {
	case "windows":
		base := getenv("APPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Roaming")
		}
		return Paths{
			ConfigDir: filepath.Join(base, AppName),
			DataDir:   filepath.Join(base, AppName),
		}
	case "darwin":
		return Paths{
			ConfigDir: filepath.Join(home, "Library", "Preferences", AppName),
			DataDir:   filepath.Join(home, "Library", "Application Support", AppName),
		}
	default:
		configBase := getenv("XDG_CONFIG_HOME")
		if configBase == "" {
			configBase = filepath.Join(home, ".config")
		}
		dataBase := getenv("XDG_DATA_HOME")
		if dataBase == "" {
			dataBase = filepath.Join(home, ".local", "share")
		}
		return Paths{
			ConfigDir: filepath.Join(configBase, AppName),
			DataDir:   filepath.Join(dataBase, AppName),
		}
	}
}
