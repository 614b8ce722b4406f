package corezoid

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/petrijr/corezoid/internal/sign"
	"github.com/petrijr/corezoid/pkg/api"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultAPIURL       = "https://api.corezoid.com/api/2/json"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBatchSize = 100

	// DefaultHashAlgorithmVersion is pinned by the engine's wire
	// protocol: version 2 is HMAC-SHA256, version 3 is HMAC-BLAKE2b-256.
	DefaultHashAlgorithmVersion = 2
)

// Config carries everything a Client needs. It is passed explicitly to
// NewClient; there is no ambient or global configuration.
type Config struct {
	// APILogin and APISecret authenticate every request. APISecret is
	// never echoed: String and the YAML round trip redact it, and it
	// appears in no log or error.
	APILogin  string `yaml:"api_login"`
	APISecret string `yaml:"api_secret"`

	// APIURL overrides the default engine endpoint.
	APIURL string `yaml:"api_url"`

	// Timeout bounds one whole HTTP exchange.
	Timeout time.Duration `yaml:"timeout"`

	// MaxBatchSize caps the number of operations per envelope.
	MaxBatchSize int `yaml:"max_batch_size"`

	// HashAlgorithmVersion selects the signature algorithm; zero means
	// the protocol default.
	HashAlgorithmVersion int `yaml:"hash_algorithm_version"`
}

// ConfigFromEnv builds a Config from COREZOID_API_LOGIN,
// COREZOID_API_SECRET, COREZOID_API_URL, COREZOID_TIMEOUT (seconds),
// and COREZOID_MAX_BATCH_SIZE.
func ConfigFromEnv() Config {
	cfg := Config{
		APILogin:  os.Getenv("COREZOID_API_LOGIN"),
		APISecret: os.Getenv("COREZOID_API_SECRET"),
		APIURL:    os.Getenv("COREZOID_API_URL"),
	}
	if v := os.Getenv("COREZOID_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("COREZOID_MAX_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxBatchSize = n
		}
	}
	return cfg
}

// LoadConfig reads a YAML config file. Fields missing from the file
// keep their zero value and fall back to defaults in NewClient.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("corezoid: reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("corezoid: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// UnmarshalYAML decodes a Config, accepting timeout as a Go duration
// string ("30s", "2m").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		APILogin             string `yaml:"api_login"`
		APISecret            string `yaml:"api_secret"`
		APIURL               string `yaml:"api_url"`
		Timeout              string `yaml:"timeout"`
		MaxBatchSize         int    `yaml:"max_batch_size"`
		HashAlgorithmVersion int    `yaml:"hash_algorithm_version"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.APILogin = raw.APILogin
	c.APISecret = raw.APISecret
	c.APIURL = raw.APIURL
	c.MaxBatchSize = raw.MaxBatchSize
	c.HashAlgorithmVersion = raw.HashAlgorithmVersion
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// MarshalYAML renders the configuration with the secret redacted, so a
// Config dumped into logs or diagnostics never echoes credentials.
func (c Config) MarshalYAML() (any, error) {
	return struct {
		APILogin             string `yaml:"api_login"`
		APISecret            string `yaml:"api_secret"`
		APIURL               string `yaml:"api_url,omitempty"`
		Timeout              string `yaml:"timeout,omitempty"`
		MaxBatchSize         int    `yaml:"max_batch_size,omitempty"`
		HashAlgorithmVersion int    `yaml:"hash_algorithm_version,omitempty"`
	}{
		APILogin:             c.APILogin,
		APISecret:            "[redacted]",
		APIURL:               c.APIURL,
		Timeout:              c.Timeout.String(),
		MaxBatchSize:         c.MaxBatchSize,
		HashAlgorithmVersion: c.HashAlgorithmVersion,
	}, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.APILogin == "" {
		return &api.ValidationError{Reason: "api_login is required"}
	}
	if c.APISecret == "" {
		return &api.ValidationError{Reason: "api_secret is required"}
	}
	if c.HashAlgorithmVersion != 0 && !sign.Algorithm(c.HashAlgorithmVersion).Valid() {
		return &api.ValidationError{
			Reason: "unsupported hash_algorithm_version: " + strconv.Itoa(c.HashAlgorithmVersion),
		}
	}
	if c.MaxBatchSize < 0 {
		return &api.ValidationError{Reason: "max_batch_size must not be negative"}
	}
	return nil
}

// String renders the configuration with the secret redacted.
func (c Config) String() string {
	return fmt.Sprintf("corezoid.Config{APILogin:%q, APISecret:[redacted], APIURL:%q, Timeout:%s, MaxBatchSize:%d, HashAlgorithmVersion:%d}",
		c.APILogin, c.APIURL, c.Timeout, c.MaxBatchSize, c.HashAlgorithmVersion)
}

// withDefaults returns a copy with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
	if c.HashAlgorithmVersion == 0 {
		c.HashAlgorithmVersion = DefaultHashAlgorithmVersion
	}
	return c
}

func (c Config) algorithm() sign.Algorithm {
	return sign.Algorithm(c.HashAlgorithmVersion)
}
