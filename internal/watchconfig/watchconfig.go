// Package watchconfig represents watch daemon configuration
package watchconfig

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/bcmk/camgrab/internal/fetch"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents watch daemon configuration
type Config struct {
	Models            []string    `mapstructure:"models"`              // model IDs or page links to watch
	PeriodSeconds     int         `mapstructure:"period_seconds"`      // the period of querying statuses
	TimeoutSeconds    int         `mapstructure:"timeout_seconds"`     // HTTP timeout
	SourceIPAddresses []string    `mapstructure:"source_ip_addresses"` // source IP addresses for rate limited access
	EnableCookies     bool        `mapstructure:"enable_cookies"`      // enable cookies, it can be useful to mitigate rate limits
	CookiesFile       string      `mapstructure:"cookies_file"`        // cookie jar file to import before resolution
	Headers           [][2]string `mapstructure:"headers"`             // HTTP headers to make queries with
	FetchStrategy     string      `mapstructure:"fetch_strategy"`      // one of "http", "browser", "chrome"
	BotToken          string      `mapstructure:"bot_token"`           // Telegram bot token, empty to disable notifications
	ChatID            int64       `mapstructure:"chat_id"`             // Telegram chat to notify
	Record            bool        `mapstructure:"record"`              // record streams while they are available
	OutputDirectory   string      `mapstructure:"output_directory"`    // directory for recordings
	Debug             bool        `mapstructure:"debug"`               // debug mode
}

var cfgPath = pflag.StringP("config", "c", "config.yaml", "path to a config file")

// ReadConfig reads config from the file given by the --config flag
func ReadConfig() (*Config, error) {
	pflag.Parse()
	return Read(*cfgPath)
}

// Read reads config from the given file, environment variables with
// the CAMGRAB_ prefix override file values
func Read(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading %q: %v", path, err)
	}
	v.SetEnvPrefix("CAMGRAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range defaults {
		v.SetDefault(key, defaults[key])
	}
	cfg := &Config{}
	err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, err
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	if len(cfg.SourceIPAddresses) == 0 {
		cfg.SourceIPAddresses = append(cfg.SourceIPAddresses, "")
	}
	return cfg, nil
}

var defaults = map[string]interface{}{
	"period_seconds":  60,
	"timeout_seconds": 10,
	"fetch_strategy":  fetch.StrategyHTTP,
}

func checkConfig(cfg *Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("no models to watch")
	}
	if cfg.PeriodSeconds <= 0 {
		return errors.New("period_seconds must be positive")
	}
	if cfg.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}
	switch cfg.FetchStrategy {
	case fetch.StrategyHTTP, fetch.StrategyBrowser, fetch.StrategyChrome:
	default:
		return fmt.Errorf("unknown fetch strategy %q", cfg.FetchStrategy)
	}
	for _, x := range cfg.SourceIPAddresses {
		if net.ParseIP(x) == nil {
			return fmt.Errorf("cannot parse source IP address %s", x)
		}
	}
	if cfg.BotToken != "" && cfg.ChatID == 0 {
		return errors.New("chat_id is required for notifications")
	}
	return nil
}
