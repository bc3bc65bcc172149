// Package config loads the optional topst configuration file.
package config

import (
	"net/http"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFile is the well-known configuration file name, looked up in the
	// working directory when no explicit path is given.
	ConfigFile = "topst-config.yml"

	// ConfigEnvVar overrides the configuration file location.
	ConfigEnvVar = "TOPST_CONFIG"
)

// FlavorConfig overrides where the schema documents for one flavor are
// fetched from. Useful for mirrors and air-gapped hosts.
type FlavorConfig struct {
	BaseURL      string `yaml:"baseUrl"`
	RootDocument string `yaml:"rootDocument"`
}

// Config holds the user-tunable settings. The zero value is fully usable:
// built-in schema locations, no default flavor, no HTTP timeout.
type Config struct {
	// DefaultFlavor is used by the CLI when no --flavor is given and the
	// document flavor cannot be detected.
	DefaultFlavor string `yaml:"defaultFlavor"`

	// HTTPTimeoutSeconds bounds each schema fetch. Zero means no timeout,
	// matching the default blocking behaviour.
	HTTPTimeoutSeconds int `yaml:"httpTimeoutSeconds"`

	// Flavors maps a flavor name to its location overrides.
	Flavors map[string]FlavorConfig `yaml:"flavors"`
}

// Load reads the configuration from path. An empty path falls back to the
// TOPST_CONFIG environment variable and then the well-known file name; if no
// file exists at the fallback locations the zero configuration is returned.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv(ConfigEnvVar)
		explicit = path != ""
	}
	if path == "" {
		path = ConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		if os.IsNotExist(err) {
			return nil, &MissingConfigError{Path: path}
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, fc := range c.Flavors {
		if fc.BaseURL == "" {
			continue
		}
		if err := validateHTTPURL("flavors."+name+".baseUrl", fc.BaseURL); err != nil {
			return err
		}
	}
	if c.HTTPTimeoutSeconds < 0 {
		return &InvalidTimeoutError{Value: c.HTTPTimeoutSeconds}
	}
	return nil
}

// HTTPClient returns a client honouring the configured timeout. With no
// timeout configured the client blocks indefinitely, which is the documented
// default for schema fetches.
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{
		Timeout: time.Duration(c.HTTPTimeoutSeconds) * time.Second,
	}
}

// FlavorOverride returns the overrides for the named flavor, if any.
func (c *Config) FlavorOverride(name string) (FlavorConfig, bool) {
	fc, ok := c.Flavors[name]
	return fc, ok
}

func validateHTTPURL(property, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return &InvalidURLError{Property: property, Value: value, Wrapped: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &InvalidURLError{Property: property, Value: value}
	}
	return nil
}
