package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Source string

const (
	SourcePostgres Source = "postgres"
	SourceSQLite   Source = "sqlite"
	SourceJSON     Source = "json"
)

type Transport string

const (
	TransportStdio      Transport = "stdio"
	TransportStreamable Transport = "streamable"
)

type Config struct {
	Source                Source    `mapstructure:"source"`
	DatabaseDSN           string    `mapstructure:"database_dsn"`
	SQLitePath            string    `mapstructure:"sqlite_path"`
	TrailsPath            string    `mapstructure:"trails_path"`
	ConnectTimeoutSeconds int       `mapstructure:"connect_timeout_seconds"`
	StatementTimeoutMs    int       `mapstructure:"statement_timeout_ms"`
	AppName               string    `mapstructure:"app_name"`
	LogLevel              string    `mapstructure:"log_level"`
	EnableCaching         bool      `mapstructure:"enable_caching"`
	CacheTTLSeconds       int       `mapstructure:"cache_ttl_seconds"`
	RulesPath             string    `mapstructure:"rules_path"`
	ScoringWorkers        int       `mapstructure:"scoring_workers"`
	MaxRows               int       `mapstructure:"max_rows"`
	Transport             Transport `mapstructure:"transport"`
	HTTPAddr              string    `mapstructure:"http_addr"`
	HTTPPort              int       `mapstructure:"http_port"`
	HTTPPath              string    `mapstructure:"http_path"`
}

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"source":                  "source",
	"dsn":                     "database_dsn",
	"sqlite-path":             "sqlite_path",
	"trails-path":             "trails_path",
	"connect-timeout-seconds": "connect_timeout_seconds",
	"statement-timeout-ms":    "statement_timeout_ms",
	"app-name":                "app_name",
	"log-level":               "log_level",
	"enable-caching":          "enable_caching",
	"cache-ttl-seconds":       "cache_ttl_seconds",
	"rules-path":              "rules_path",
	"workers":                 "scoring_workers",
	"max-rows":                "max_rows",
	"transport":               "transport",
	"http-addr":               "http_addr",
	"http-port":               "http_port",
	"http-path":               "http_path",
}

func defaults(v *viper.Viper) {
	v.SetDefault("source", string(SourcePostgres))
	v.SetDefault("database_dsn", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("trails_path", "")
	v.SetDefault("connect_timeout_seconds", 5)
	v.SetDefault("statement_timeout_ms", 30000)
	v.SetDefault("app_name", "trail-recommender")
	v.SetDefault("log_level", "info")
	v.SetDefault("enable_caching", true)
	v.SetDefault("cache_ttl_seconds", 60)
	v.SetDefault("rules_path", "")
	v.SetDefault("scoring_workers", 1)
	v.SetDefault("max_rows", 200)
	v.SetDefault("transport", string(TransportStdio))
	v.SetDefault("http_addr", "127.0.0.1")
	v.SetDefault("http_port", 8080)
	v.SetDefault("http_path", "/mcp")
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Config file path (yaml|json|toml)")
	fs.String("source", string(SourcePostgres), "Trail source: postgres|sqlite|json")
	fs.String("dsn", "", "Postgres DSN (postgres://…)")
	fs.String("sqlite-path", "", "SQLite database path")
	fs.String("trails-path", "", "JSON trail catalog path")
	fs.Int("connect-timeout-seconds", 5, "Connection timeout in seconds")
	fs.Int("statement-timeout-ms", 30000, "Statement timeout in milliseconds")
	fs.String("app-name", "trail-recommender", "Application name")
	fs.String("log-level", "info", "Log level")
	fs.Bool("enable-caching", true, "Cache the trail catalog")
	fs.Int("cache-ttl-seconds", 60, "Catalog cache TTL in seconds")
	fs.String("rules-path", "", "YAML rule file replacing the built-in rule base")
	fs.Int("workers", 1, "Scoring goroutines")
	fs.Int("max-rows", 200, "Maximum rows returned by tools")
	fs.String("transport", string(TransportStdio), "MCP transport: stdio|streamable")
	fs.String("http-addr", "127.0.0.1", "HTTP listen address")
	fs.Int("http-port", 8080, "HTTP listen port")
	fs.String("http-path", "/mcp", "HTTP endpoint path")
}

// Load parses os.Args and resolves the configuration.
func Load() (Config, error) {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])
	return LoadFromFlags(fs)
}

// LoadFromFlags resolves defaults, environment (TRAILREC_*), config file and
// the flags of an already parsed flag set, in increasing precedence.
func LoadFromFlags(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("TRAILREC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfgPath := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath == "" {
		cfgPath = os.Getenv("TRAILREC_CONFIG")
	}
	if cfgPath != "" {
		if err := readConfigFile(v, cfgPath); err != nil {
			return Config{}, err
		}
	} else {
		_ = readDefaultConfig(v) // best-effort
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Source = Source(strings.ToLower(string(cfg.Source)))
	cfg.Transport = Transport(strings.ToLower(string(cfg.Transport)))
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Source {
	case SourcePostgres:
		if cfg.DatabaseDSN == "" {
			return errors.New("config: database_dsn is required for source=postgres")
		}
	case SourceSQLite:
		if cfg.SQLitePath == "" {
			return errors.New("config: sqlite_path is required for source=sqlite")
		}
	case SourceJSON:
		if cfg.TrailsPath == "" {
			return errors.New("config: trails_path is required for source=json")
		}
	default:
		return fmt.Errorf("config: source must be one of [%s,%s,%s]", SourcePostgres, SourceSQLite, SourceJSON)
	}
	if cfg.Transport != TransportStdio && cfg.Transport != TransportStreamable {
		return fmt.Errorf("config: transport must be one of [%s,%s]", TransportStdio, TransportStreamable)
	}
	if cfg.ConnectTimeoutSeconds <= 0 {
		return errors.New("config: connect_timeout_seconds must be > 0")
	}
	if cfg.StatementTimeoutMs <= 0 {
		return errors.New("config: statement_timeout_ms must be > 0")
	}
	if cfg.MaxRows <= 0 {
		return errors.New("config: max_rows must be > 0")
	}
	if cfg.ScoringWorkers <= 0 {
		return errors.New("config: scoring_workers must be > 0")
	}
	if cfg.CacheTTLSeconds < 0 {
		return errors.New("config: cache_ttl_seconds must be >= 0")
	}
	if cfg.Transport == TransportStreamable {
		if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
			return errors.New("config: http_port must be in 1..65535")
		}
		if !strings.HasPrefix(cfg.HTTPPath, "/") {
			return errors.New("config: http_path must start with /")
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func readDefaultConfig(v *viper.Viper) error {
	paths := defaultConfigCandidates()
	exts := []string{"yaml", "yml", "json", "toml"}
	for _, base := range paths {
		for _, ext := range exts {
			candidate := base + "." + ext
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read default config %s: %w", candidate, err)
				}
				return nil
			}
		}
	}
	return nil
}

func defaultConfigCandidates() []string {
	var out []string
	cwd, _ := os.Getwd()
	if cwd != "" {
		out = append(out,
			filepath.Join(cwd, "trail-recommender"),
			filepath.Join(cwd, "config", "trail-recommender"),
		)
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			xdg = filepath.Join(home, ".config")
		}
	}
	if xdg != "" {
		out = append(out, filepath.Join(xdg, "trail-recommender", "config"))
	}
	return out
}
