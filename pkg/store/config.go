package store

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names a persistence implementation.
type Backend string

const (
	BackendDiskv    Backend = "diskv"
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Config selects and locates the persistence backend.
type Config interface {
	Backend() Backend
	BasePath() string
	DSN() string
}

// LoadConfig reads .planner.yaml from $PLANNER_CONFIG_PATH or the working
// directory, with PLANNER_* environment overrides. A missing file is fine.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("backend", string(BackendDiskv))
	v.SetDefault("path", "~/.planner.db")
	v.SetDefault("dsn", "")
	v.SetConfigName(".planner") // .yaml is implicit
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Kind: Backend(strings.ToLower(strings.TrimSpace(v.GetString("backend")))),
		Path: path,
		Conn: v.GetString("dsn"),
	}, nil
}

// StaticConfig is a Config built in code, for tests and embedding.
func StaticConfig(backend Backend, path, dsn string) Config {
	return &fileConfig{Kind: backend, Path: path, Conn: dsn}
}

type fileConfig struct {
	Kind Backend `json:"backend"`
	Path string  `json:"path"`
	Conn string  `json:"dsn"`
}

func (f *fileConfig) Backend() Backend {
	if f.Kind == "" {
		return BackendDiskv
	}
	return f.Kind
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) DSN() string {
	return f.Conn
}
