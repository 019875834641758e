// Package config loads client configuration from a YAML file, a .env file and
// POSTBOARD_* environment variables, in increasing precedence.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"github.com/viant/postboard/internal/logging"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "http://localhost:3000"
	DefaultLoginPath = "/login"
	DefaultHomePath  = "/"
	appDir           = ".postboard"
	envPrefix        = "POSTBOARD_"
)

// Config represents client configuration
type Config struct {
	BaseURL       string         `yaml:"base_url" json:"baseURL,omitempty"`
	LoginPath     string         `yaml:"login_path" json:"loginPath,omitempty"`
	HomePath      string         `yaml:"home_path" json:"homePath,omitempty"`
	PreferenceURL string         `yaml:"preference_url" json:"preferenceURL,omitempty"`
	CookieJarPath string         `yaml:"cookie_jar_path" json:"cookieJarPath,omitempty"`
	Log           logging.Config `yaml:"log" json:"log,omitempty"`
}

// Default returns configuration with defaults applied
func Default() *Config {
	ret := &Config{}
	ret.applyDefaults()
	return ret
}

// Load reads config at URL (optional), .env files and environment overrides;
// with no envFiles, ./.env is loaded when present.
func Load(ctx context.Context, URL string, envFiles ...string) (*Config, error) {
	ret := &Config{}
	if URL != "" {
		data, err := afs.New().DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
		}
		if err = yaml.Unmarshal(data, ret); err != nil {
			return nil, fmt.Errorf("invalid config %v: %w", URL, err)
		}
	}
	if err := loadEnv(envFiles); err != nil {
		return nil, err
	}
	ret.applyEnvOverrides()
	ret.applyDefaults()
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

func loadEnv(envFiles []string) error {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
		return nil
	}
	for _, candidate := range envFiles {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return fmt.Errorf("failed to load env file %v: %w", candidate, err)
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	for key, dest := range map[string]*string{
		"BASE_URL":        &c.BaseURL,
		"LOGIN_PATH":      &c.LoginPath,
		"HOME_PATH":       &c.HomePath,
		"PREFERENCE_URL":  &c.PreferenceURL,
		"COOKIE_JAR_PATH": &c.CookieJarPath,
		"LOG_ENV":         &c.Log.Env,
		"LOG_LEVEL":       &c.Log.Level,
	} {
		if v, ok := getEnvStr(envPrefix + key); ok {
			*dest = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.LoginPath == "" {
		c.LoginPath = DefaultLoginPath
	}
	if c.HomePath == "" {
		c.HomePath = DefaultHomePath
	}
	if c.PreferenceURL == "" {
		c.PreferenceURL = filepath.Join(baseDir(), "preference.json")
	}
	if c.CookieJarPath == "" {
		c.CookieJarPath = filepath.Join(baseDir(), "cookies.json")
	}
	if c.Log.Name == "" {
		c.Log.Name = "postboard"
	}
}

// Validate checks config
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: expected http(s)://host", c.BaseURL)
	}
	if !strings.HasPrefix(c.LoginPath, "/") {
		return fmt.Errorf("invalid login_path %q", c.LoginPath)
	}
	if !strings.HasPrefix(c.HomePath, "/") {
		return fmt.Errorf("invalid home_path %q", c.HomePath)
	}
	return nil
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, appDir)
}

func getEnvStr(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}
