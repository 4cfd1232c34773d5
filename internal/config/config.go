package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"color-scene/internal/env"
)

// DefaultPath is the config file location, relative to the process working directory.
const DefaultPath = "config/app.yaml"

// Environment variables that override values from the file. Secrets normally live here (or in .env)
// rather than in app.yaml.
const (
	EnvStorageURL = "COLORSCENE_STORAGE_URL"
	EnvGraphQLURL = "COLORSCENE_GRAPHQL_URL"
	EnvAPIKey     = "COLORSCENE_API_KEY"
)

// Config is the full application configuration.
type Config struct {
	Window  Window  `yaml:"window"`
	Storage Storage `yaml:"storage"`
	API     API     `yaml:"api"`
	Scene   Scene   `yaml:"scene"`
	Debug   Debug   `yaml:"debug"`
}

type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
}

// Storage configures the object store the sphere texture is fetched from.
type Storage struct {
	BaseURL string `yaml:"base_url"`
	// Prefix is prepended to every key (the "public/" access level of the bucket).
	Prefix     string `yaml:"prefix"`
	CacheDir   string `yaml:"cache_dir"`
	TextureKey string `yaml:"texture_key"`
	// ValidateObjectExistence issues a HEAD before the download so a missing object fails early.
	ValidateObjectExistence bool          `yaml:"validate_object_existence"`
	Timeout                 time.Duration `yaml:"timeout"`
}

// API configures the GraphQL endpoint color changes are recorded on.
type API struct {
	GraphQLURL string        `yaml:"graphql_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
}

type Scene struct {
	// ShowBox adds the spinning box driven by the frame callback.
	ShowBox bool    `yaml:"show_box"`
	RPM     float32 `yaml:"rpm"`
}

type Debug struct {
	ShowFPS bool `yaml:"show_fps"`
	ShowLog bool `yaml:"show_log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "color-scene",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
		Storage: Storage{
			Prefix:     "public/",
			CacheDir:   "assets/cache",
			TextureKey: "checkered-texture.png",
			Timeout:    60 * time.Second,
		},
		API: API{
			Timeout: 10 * time.Second,
		},
		Scene: Scene{
			RPM: 10,
		},
		Debug: Debug{
			ShowLog: true,
		},
	}
}

// Load reads the YAML file at path on top of Default, then applies environment overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), errors.Wrapf(err, "config: parse %s", path)
		}
	case os.IsNotExist(err):
	default:
		return Default(), errors.Wrapf(err, "config: read %s", path)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := env.First(EnvStorageURL); v != "" {
		c.Storage.BaseURL = v
	}
	if v := env.First(EnvGraphQLURL); v != "" {
		c.API.GraphQLURL = v
	}
	if v := env.First(EnvAPIKey); v != "" {
		c.API.APIKey = v
	}
}

// Validate reports the first unusable value.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		return errors.Errorf("config: target_fps must not be negative, got %d", c.Window.TargetFPS)
	}
	if c.Scene.RPM < 0 {
		return errors.Errorf("config: scene rpm must not be negative, got %v", c.Scene.RPM)
	}
	if c.Storage.TextureKey == "" {
		return errors.New("config: storage texture_key is empty")
	}
	return nil
}

// Save writes cfg as YAML to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "config: save")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "config: save")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "config: save")
}
