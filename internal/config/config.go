// Package config loads animefmt settings from defaults, an optional YAML file
// and ANIMEFMT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/animefmt/internal/logging"
	"github.com/aretw0/animefmt/pkg/format"
)

// EnvPrefix is prepended to every environment override (telegram.token -> ANIMEFMT_TELEGRAM_TOKEN).
const EnvPrefix = "ANIMEFMT"

// anilistMaxPerPage is the largest page size the catalog accepts.
const anilistMaxPerPage = 50

// ErrMissingToken is returned by RequireToken when no bot token is configured.
var ErrMissingToken = errors.New("telegram.token is required (or set ANIMEFMT_TELEGRAM_TOKEN)")

// Config is the full runtime configuration.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram" yaml:"telegram"`
	AniList  AniListConfig  `mapstructure:"anilist" yaml:"anilist"`
	Synopsis SynopsisConfig `mapstructure:"synopsis" yaml:"synopsis"`
	Session  SessionConfig  `mapstructure:"session" yaml:"session"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	HTTP     HTTPConfig     `mapstructure:"http" yaml:"http"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Branding BrandingConfig `mapstructure:"branding" yaml:"branding"`
}

type TelegramConfig struct {
	Token       string `mapstructure:"token" yaml:"token"`
	PollTimeout int    `mapstructure:"poll_timeout" yaml:"poll_timeout"` // Seconds
}

type AniListConfig struct {
	Endpoint    string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	PerPage     int           `mapstructure:"per_page" yaml:"per_page"`
	ProbeCovers bool          `mapstructure:"probe_covers" yaml:"probe_covers"`
}

type SynopsisConfig struct {
	Policy    string `mapstructure:"policy" yaml:"policy"` // pack or truncate
	LineWidth int    `mapstructure:"line_width" yaml:"line_width"`
	MaxLines  int    `mapstructure:"max_lines" yaml:"max_lines"`
	MaxChars  int    `mapstructure:"max_chars" yaml:"max_chars"`
	SmallCaps bool   `mapstructure:"small_caps" yaml:"small_caps"`
}

// SessionConfig controls the selection session store. A zero TTL keeps
// sessions until they are replaced.
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// CacheConfig enables the Redis catalog cache when RedisAddr is set.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// HTTPConfig controls the ops server. An empty Addr disables it.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

type BrandingConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url" yaml:"url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Telegram: TelegramConfig{PollTimeout: 60},
		AniList: AniListConfig{
			Endpoint:    "https://graphql.anilist.co",
			Timeout:     10 * time.Second,
			PerPage:     10,
			ProbeCovers: true,
		},
		Synopsis: SynopsisConfig{
			Policy:    string(format.PolicyPack),
			LineWidth: format.DefaultLineWidth,
			MaxLines:  format.DefaultMaxLines,
			MaxChars:  format.DefaultMaxChars,
		},
		Session: SessionConfig{TTL: time.Hour},
		Cache:   CacheConfig{TTL: 15 * time.Minute},
		HTTP:    HTTPConfig{Addr: ":8080"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Branding: BrandingConfig{
			Name: format.DefaultBrandName,
			URL:  format.DefaultBrandURL,
		},
	}
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("telegram.token", d.Telegram.Token)
	v.SetDefault("telegram.poll_timeout", d.Telegram.PollTimeout)
	v.SetDefault("anilist.endpoint", d.AniList.Endpoint)
	v.SetDefault("anilist.timeout", d.AniList.Timeout)
	v.SetDefault("anilist.per_page", d.AniList.PerPage)
	v.SetDefault("anilist.probe_covers", d.AniList.ProbeCovers)
	v.SetDefault("synopsis.policy", d.Synopsis.Policy)
	v.SetDefault("synopsis.line_width", d.Synopsis.LineWidth)
	v.SetDefault("synopsis.max_lines", d.Synopsis.MaxLines)
	v.SetDefault("synopsis.max_chars", d.Synopsis.MaxChars)
	v.SetDefault("synopsis.small_caps", d.Synopsis.SmallCaps)
	v.SetDefault("session.ttl", d.Session.TTL)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.redis_password", d.Cache.RedisPassword)
	v.SetDefault("cache.redis_db", d.Cache.RedisDB)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("branding.name", d.Branding.Name)
	v.SetDefault("branding.url", d.Branding.URL)
}

// Load reads the configuration. When cfgFile is empty, animefmt.yaml is looked
// up in the working directory and in $HOME/.animefmt; a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("animefmt")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.animefmt")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges. It does not require a bot token, since only
// the bot command needs one; see RequireToken.
func (c *Config) Validate() error {
	var errs []error
	if c.Telegram.PollTimeout < 0 {
		errs = append(errs, fmt.Errorf("telegram.poll_timeout must not be negative, got %d", c.Telegram.PollTimeout))
	}
	if c.AniList.Endpoint == "" {
		errs = append(errs, errors.New("anilist.endpoint must not be empty"))
	}
	if c.AniList.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("anilist.timeout must be positive, got %s", c.AniList.Timeout))
	}
	if c.AniList.PerPage < 1 || c.AniList.PerPage > anilistMaxPerPage {
		errs = append(errs, fmt.Errorf("anilist.per_page must be between 1 and %d, got %d", anilistMaxPerPage, c.AniList.PerPage))
	}
	if _, err := format.ParsePolicy(c.Synopsis.Policy); err != nil {
		errs = append(errs, fmt.Errorf("synopsis.policy: %w", err))
	}
	if c.Synopsis.LineWidth < 1 || c.Synopsis.MaxLines < 1 || c.Synopsis.MaxChars < 1 {
		errs = append(errs, errors.New("synopsis.line_width, synopsis.max_lines and synopsis.max_chars must be positive"))
	}
	if c.Session.TTL < 0 {
		errs = append(errs, fmt.Errorf("session.ttl must not be negative, got %s", c.Session.TTL))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RequireToken reports ErrMissingToken when the bot token is blank.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return ErrMissingToken
	}
	return nil
}

// Renderer builds the card renderer described by the synopsis and branding sections.
func (c *Config) Renderer() (*format.Renderer, error) {
	policy, err := format.ParsePolicy(c.Synopsis.Policy)
	if err != nil {
		return nil, err
	}
	compactor := format.NewCompactor(
		format.WithPolicy(policy),
		format.WithLineWidth(c.Synopsis.LineWidth),
		format.WithMaxLines(c.Synopsis.MaxLines),
		format.WithMaxChars(c.Synopsis.MaxChars),
		format.WithSmallCaps(c.Synopsis.SmallCaps),
	)
	return format.NewRenderer(
		format.WithCompactor(compactor),
		format.WithBranding(c.Branding.Name, c.Branding.URL),
	), nil
}

// WriteDefault writes the built-in configuration to path as YAML.
// An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
