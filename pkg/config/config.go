package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Map    MapConfig    `yaml:"map"`
	Search SearchConfig `yaml:"search"`
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

type MapConfig struct {
	Path         string `yaml:"path" validate:"required"`
	Format       string `yaml:"format" validate:"oneof=map osm"`
	Strict       bool   `yaml:"strict"`
	ShowProgress bool   `yaml:"showProgress"`
	MaxLocations int    `yaml:"maxLocations" validate:"gte=0"`
	MaxEdges     int    `yaml:"maxEdges" validate:"gte=0"`
}

type SearchConfig struct {
	MaxIterations int    `yaml:"maxIterations" validate:"gte=1"`
	Divisor       int    `yaml:"divisor" validate:"gte=1"`
	Heuristic     string `yaml:"heuristic" validate:"oneof=auto manhattan haversine zero"`
}

type ServerConfig struct {
	ListenAddr     string   `yaml:"listenAddr" validate:"required"`
	Workers        int      `yaml:"workers" validate:"gte=1"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type StoreConfig struct {
	Dir         string `yaml:"dir"`
	MapKey      string `yaml:"mapKey" validate:"required"`
	UseSnapshot bool   `yaml:"useSnapshot"`
	CacheRoutes bool   `yaml:"cacheRoutes"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default config kalau tidak ada file config.
func Default() Config {
	return Config{
		Map: MapConfig{
			Path:   "./FRANCE.MAP",
			Format: "map",
		},
		Search: SearchConfig{
			MaxIterations: 10000,
			Divisor:       4,
			Heuristic:     "auto",
		},
		Server: ServerConfig{
			ListenAddr:     ":5000",
			Workers:        4,
			AllowedOrigins: []string{"https://*", "http://*"},
		},
		Store: StoreConfig{
			Dir:    "./cityroute_db",
			MapKey: "default",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load default config ditimpa isi file yaml di filename. filename kosong = Default().
func Load(filename string) (Config, error) {
	c := Default()
	if filename != "" {
		if err := c.DeserializeFromFile(filename); err != nil {
			return Config{}, err
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) SerializeToFile(filename string) error {
	fBytes, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("yaml.Marshal(): %s", err)
	}
	err = os.WriteFile(filename, fBytes, 0644)
	if err != nil {
		return fmt.Errorf("os.WriteFile(%q, ...): %s", filename, err)
	}
	return nil
}

func (c *Config) DeserializeFromFile(filename string) error {
	fBytes, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("os.ReadFile(%q): %w", filename, err)
	}
	err = yaml.Unmarshal(fBytes, c)
	if err != nil {
		return fmt.Errorf("yaml.Unmarshal(): %s", err)
	}
	return nil
}
