package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const minSecretKeyLength = 32

var insecureSecretKeys = []string{
	"change_me_in_production",
	"replace_with_at_least_32_random_characters",
	"changeme",
	"secret",
}

type Config struct {
	Port            string
	DBPath          string
	SecretKey       string
	Location        *time.Location
	DefaultLanguage string
	CookieSecure    bool
}

// Load reads .env (if present), the optional YAML file named by CONFIG_FILE
// and the process environment, in increasing order of precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("ignoring unreadable .env file: %v", err)
	}

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", filepath.Join("data", "gentle75.db"))
	v.SetDefault("tz", "UTC")
	v.SetDefault("default_language", "en")
	v.SetDefault("cookie_secure", false)
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("config_file")); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			var pathErr *fs.PathError
			if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			log.Printf("config file %s not found, using environment only", path)
		}
	}

	secretKey, err := ResolveSecretKey(v.GetString("secret_key"))
	if err != nil {
		return Config{}, err
	}
	port, err := ResolvePort(v.GetString("port"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:            port,
		DBPath:          v.GetString("db_path"),
		SecretKey:       secretKey,
		Location:        ResolveLocation(v.GetString("tz")),
		DefaultLanguage: strings.TrimSpace(v.GetString("default_language")),
		CookieSecure:    v.GetBool("cookie_secure"),
	}, nil
}

func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	for _, placeholder := range insecureSecretKeys {
		if strings.EqualFold(secret, placeholder) {
			return "", errors.New("SECRET_KEY uses a placeholder value")
		}
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func ResolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(value), nil
}

func ResolveLocation(name string) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
