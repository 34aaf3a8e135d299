package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/saeidalz13/battleship-backend/internal/logs"
)

const (
	StageDev  = "dev"
	StageProd = "prod"
)

const DefaultPort = 8080

type Config struct {
	Stage        string         `mapstructure:"stage"`
	Port         int            `mapstructure:"port"`
	DatabaseUrl  string         `mapstructure:"database_url"`
	MigrationDir string         `mapstructure:"migration_dir"`
	RulesFile    string         `mapstructure:"rules_file"`
	Seed         int64          `mapstructure:"seed"`
	Log          logs.LogConfig `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stage", StageDev)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("database_url", "")
	v.SetDefault("migration_dir", "file://db/migration")
	v.SetDefault("rules_file", "")
	v.SetDefault("seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file_dir", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.compress", false)
	v.SetDefault("log.dev", false)
	v.SetDefault("log.quiet", false)
}

// RegisterFlags adds the flags Load understands to fs. Flags override
// the environment, which overrides the config file.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "optional config file (yaml, json or toml)")
	fs.String("env-file", ".env", "dotenv file loaded outside prod")
	fs.String("stage", StageDev, "dev or prod")
	fs.Int("port", 8080, "server port")
	fs.String("rules-file", "", "YAML file with grid size and fleet")
	fs.Int64("seed", 0, "random seed, 0 seeds from the clock")
	fs.String("log-level", "info", "debug, info, warn or error")
}

// Load reads the configuration. fs must have been set up with
// RegisterFlags; args are parsed into it.
func Load(fs *pflag.FlagSet, args []string) (Config, error) {
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	envFile, _ := fs.GetString("env-file")
	if os.Getenv("STAGE") != StageProd {
		// A missing .env is fine, the environment may be set already
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile, _ := fs.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, flag := range map[string]string{
		"stage":      "stage",
		"port":       "port",
		"rules_file": "rules-file",
		"seed":       "seed",
		"log.level":  "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Stage != StageDev && c.Stage != StageProd {
		return fmt.Errorf("stage must be either %s or %s, got: %q", StageDev, StageProd, c.Stage)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.Stage == StageProd
}
