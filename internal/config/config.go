package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files, environment variables and flags.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	PublishersFile string `mapstructure:"publishers_file"`

	JournalType            string        `mapstructure:"journal_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	PostgresDSN            string        `mapstructure:"postgres_dsn"`
	JournalTTLSeconds      int64         `mapstructure:"journal_ttl_seconds"`
	JournalCleanupSeconds  int64         `mapstructure:"journal_cleanup_interval_seconds"`
	JournalTTL             time.Duration `mapstructure:"-"`
	JournalCleanupInterval time.Duration `mapstructure:"-"`

	EventType   string `mapstructure:"event_type"`
	RoutingKey  string `mapstructure:"routing_key"`
	PayloadFile string `mapstructure:"payload"`
	LookupID    string `mapstructure:"lookup"`
}

// Flags declares the command line flags Load understands.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("event-type", "", "event type label, e.g. SURVEY_LAUNCHED")
	fs.String("routing-key", "", "routing key handed to every sink")
	fs.String("payload", "-", "business payload JSON file ('-' reads stdin)")
	fs.String("lookup", "", "print the journal entry for a transaction id instead of publishing")
	fs.String("publishers-file", "", "publishers registry file (YAML or JSON)")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	return fs
}

// Load reads configuration from environment variables, config files and the parsed flag set.
func Load(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "event-gateway")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("journal_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/journal.db")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("journal_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("journal_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))
	v.SetDefault("event_type", "")
	v.SetDefault("routing_key", "")
	v.SetDefault("payload", "-")
	v.SetDefault("lookup", "")

	v.AutomaticEnv()

	if fs != nil {
		for flag, key := range map[string]string{
			"event-type":      "event_type",
			"routing-key":     "routing_key",
			"payload":         "payload",
			"lookup":          "lookup",
			"publishers-file": "publishers_file",
			"log-level":       "log_level",
		} {
			f := fs.Lookup(flag)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JournalTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid journal_ttl_seconds (must be positive seconds)")
	}
	if cfg.JournalCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid journal_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.JournalTTL = time.Duration(cfg.JournalTTLSeconds) * time.Second
	cfg.JournalCleanupInterval = time.Duration(cfg.JournalCleanupSeconds) * time.Second

	return &cfg, nil
}
