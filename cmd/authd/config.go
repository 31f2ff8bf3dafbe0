package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	auth "github.com/aegeanlabs/go-userauth"
)

type serverConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type dbConfig struct {
	DSN string `mapstructure:"dsn"`
}

type authConfig struct {
	AccessSecret     string        `mapstructure:"access_secret"`
	RefreshSecret    string        `mapstructure:"refresh_secret"`
	AccessTTL        time.Duration `mapstructure:"access_ttl"`
	RefreshTTL       time.Duration `mapstructure:"refresh_ttl"`
	MaxRefreshTokens int           `mapstructure:"max_refresh_tokens"`
	Issuer           string        `mapstructure:"issuer"`
	Audience         []string      `mapstructure:"audience"`
}

type logConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type config struct {
	Server serverConfig `mapstructure:"server"`
	DB     dbConfig     `mapstructure:"db"`
	Auth   authConfig   `mapstructure:"auth"`
	Log    logConfig    `mapstructure:"log"`
}

// AuthConfig projects the file/env values onto the library's explicit
// config struct. Secrets have no defaults; an empty secret fails
// Config.Validate at startup.
func (c *config) AuthConfig() auth.Config {
	return auth.Config{
		AccessSigningKey:  c.Auth.AccessSecret,
		RefreshSigningKey: c.Auth.RefreshSecret,
		AccessTokenTTL:    c.Auth.AccessTTL,
		RefreshTokenTTL:   c.Auth.RefreshTTL,
		MaxRefreshTokens:  c.Auth.MaxRefreshTokens,
		Issuer:            c.Auth.Issuer,
		Audience:          c.Auth.Audience,
	}
}

func loadConfig(path string) (*config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		_ = v.ReadInConfig()
	}

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "5s")

	v.SetDefault("db.dsn", "file:authd.db?cache=shared&mode=rwc")

	v.SetDefault("auth.access_ttl", "15m")
	v.SetDefault("auth.refresh_ttl", "720h")
	v.SetDefault("auth.max_refresh_tokens", 5)
	v.SetDefault("auth.issuer", "authd")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetEnvPrefix("AUTHD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
