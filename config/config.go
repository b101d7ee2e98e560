package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint = "tcp://127.0.0.1:6000"
	DefaultHTTPAddr = ":8000"
)

type Config struct {
	Endpoint    string `yaml:"endpoint"`
	HTTPAddr    string `yaml:"http_addr"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	DialRetries int    `yaml:"dial_retries"`
}

func Default() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		HTTPAddr:  DefaultHTTPAddr,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

var (
	current = Default()
	lock    sync.RWMutex
)

// Parse reads yaml on top of the defaults. Keys missing from data keep
// their default values.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "Failed to parse config")
	}
	if c.DialRetries < 0 {
		return c, errors.Errorf("dial_retries must not be negative, got %d", c.DialRetries)
	}
	return c, nil
}

// Load makes the file at path, with environment overrides applied, the
// current config. An empty path loads only the defaults and environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, errors.Wrapf(err, "Failed to read config %q", path)
		}
		if c, err = Parse(data); err != nil {
			return c, err
		}
	}
	if err := applyEnv(&c); err != nil {
		return c, err
	}
	Set(c)
	return c, nil
}

func applyEnv(c *Config) error {
	if v, ok := os.LookupEnv("MESHCAT_ENDPOINT"); ok {
		c.Endpoint = v
	}
	if v, ok := os.LookupEnv("MESHCAT_HTTP_ADDR"); ok {
		c.HTTPAddr = v
	}
	if v, ok := os.LookupEnv("MESHCAT_DIAL_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errors.Errorf("Invalid MESHCAT_DIAL_RETRIES %q", v)
		}
		c.DialRetries = n
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	return nil
}

func Get() Config {
	lock.RLock()
	defer lock.RUnlock()
	return current
}

func Set(c Config) {
	lock.Lock()
	defer lock.Unlock()
	current = c
}

func SetEndpoint(endpoint string) {
	lock.Lock()
	defer lock.Unlock()
	current.Endpoint = endpoint
}

func SetLogLevel(level string) {
	lock.Lock()
	defer lock.Unlock()
	current.LogLevel = level
}
