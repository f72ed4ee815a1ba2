package core

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sakura-notes/sakura/app/core/srv"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string   `toml:"addr"`
	Log      Log      `toml:"log"`
	Postgres PGConfig `toml:"postgres"`

	AI      srv.AIConfig      `toml:"ai"`
	Cluster srv.ClusterConfig `toml:"cluster"`
	Limiter srv.LimiterConfig `toml:"limiter"`

	Security Security `toml:"security"`
}

type Security struct {
	TokenSecret string `toml:"token_secret"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("SAKURA_API_SERVICE_ADDRESS")
	c.Security.TokenSecret = os.Getenv("SAKURA_API_TOKEN_SECRET")
	c.AI.Token = os.Getenv("SAKURA_AI_TOKEN")
	c.Cluster.Endpoint = os.Getenv("SAKURA_CLUSTER_ENDPOINT")
	c.Log.FromENV()
	c.Postgres.FromENV()
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("SAKURA_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("SAKURA_API_LOG_LEVEL")
	l.Path = os.Getenv("SAKURA_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
