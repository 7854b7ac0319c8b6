package config

import (
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the runtime configuration of the web server. Values are
// resolved in three layers: built-in defaults, then an optional TOML file,
// then environment variables.
type Settings struct {
	Listen        string `toml:"listen"`
	Port          int    `toml:"port"`
	Domain        string `toml:"domain"`
	SessionSecret string `toml:"session_secret"`
	SessionMaxAge int    `toml:"session_max_age"` // minutes
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

func defaultSettings() *Settings {
	return &Settings{
		Listen:        "",
		Port:          8000,
		SessionMaxAge: 60,
	}
}

// GetSettingsPath returns the TOML config file path, or "" when none is set
// and the default file does not exist.
func GetSettingsPath() string {
	if path := os.Getenv("DASHAPI_CONFIG"); path != "" {
		return path
	}
	defaultPath := GetName() + ".toml"
	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath
	}
	return ""
}

// LoadSettings resolves the effective settings from defaults, the optional
// TOML file and the environment.
func LoadSettings() (*Settings, error) {
	s := defaultSettings()

	if path := GetSettingsPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, err
		}
	}

	if listen := os.Getenv("DASHAPI_LISTEN"); listen != "" {
		s.Listen = listen
	}
	if port := os.Getenv("DASHAPI_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			s.Port = p
		}
	}
	if domain := os.Getenv("DASHAPI_DOMAIN"); domain != "" {
		s.Domain = domain
	}
	if secret := os.Getenv("DASHAPI_SESSION_SECRET"); secret != "" {
		s.SessionSecret = secret
	}
	if maxAge := os.Getenv("DASHAPI_SESSION_MAX_AGE"); maxAge != "" {
		if m, err := strconv.Atoi(maxAge); err == nil {
			s.SessionMaxAge = m
		}
	}
	if addr := os.Getenv("DASHAPI_REDIS_ADDR"); addr != "" {
		s.RedisAddr = addr
	}
	if password := os.Getenv("DASHAPI_REDIS_PASSWORD"); password != "" {
		s.RedisPassword = password
	}
	if db := os.Getenv("DASHAPI_REDIS_DB"); db != "" {
		if d, err := strconv.Atoi(db); err == nil {
			s.RedisDB = d
		}
	}

	return s, nil
}
