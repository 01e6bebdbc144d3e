// Package config resolves server settings from defaults, environment
// variables and (when bound) command-line flags, in that order of precedence.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the server.
type Config struct {
	Port           string
	LogLevel       string
	DBPath         string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	DailySalt      string
	ThemesDir      string
	Production     bool
	SessionTTL     time.Duration
}

// Defaults registers default values on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("port", "5175")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_path", "./data/app.db")
	v.SetDefault("jwt_secret", "dev_secret_change_me")
	v.SetDefault("jwt_expires_days", 14)
	v.SetDefault("cookie_name", "wordsearch_token")
	v.SetDefault("client_origin", "http://localhost:5173")
	v.SetDefault("daily_salt", "local_dev_salt")
	v.SetDefault("themes_dir", "")
	v.SetDefault("node_env", "development")
	v.SetDefault("session_ttl", 2*time.Hour)
}

// New returns a viper instance wired to defaults and the environment
// (PORT, LOG_LEVEL, DB_PATH, ...).
func New() *viper.Viper {
	v := viper.New()
	Defaults(v)
	v.AutomaticEnv()
	return v
}

// Load reads a Config out of v.
func Load(v *viper.Viper) Config {
	ttl := v.GetDuration("session_ttl")
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	days := v.GetInt("jwt_expires_days")
	if days <= 0 {
		days = 14
	}
	return Config{
		Port:           v.GetString("port"),
		LogLevel:       v.GetString("log_level"),
		DBPath:         v.GetString("db_path"),
		JWTSecret:      v.GetString("jwt_secret"),
		JWTExpiresDays: days,
		CookieName:     v.GetString("cookie_name"),
		ClientOrigin:   v.GetString("client_origin"),
		DailySalt:      v.GetString("daily_salt"),
		ThemesDir:      v.GetString("themes_dir"),
		Production:     v.GetString("node_env") == "production",
		SessionTTL:     ttl,
	}
}
