package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ENV_DEVELOPMENT = "development"
	ENV_HOMOLOG     = "homolog"
	ENV_RELEASE     = "production"

	POLICY_REJECT      = "reject"
	POLICY_CLAMP       = "clamp"
	POLICY_EXTRAPOLATE = "extrapolate"
)

var allowedEnvValues = []string{ENV_DEVELOPMENT, ENV_HOMOLOG, ENV_RELEASE}

var allowedPolicies = []string{POLICY_REJECT, POLICY_CLAMP, POLICY_EXTRAPOLATE}

// Config holds everything the service reads at startup. It is built once
// and passed down explicitly; business code never reads the environment.
type Config struct {
	Env       string          `yaml:"env"`
	LogLevel  string          `yaml:"log_level"`
	Server    ServerConfig    `yaml:"server"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Insurance InsuranceConfig `yaml:"insurance"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Notify    NotifyConfig    `yaml:"notify"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	ReadTimeout    int      `yaml:"read_timeout_seconds"`
	WriteTimeout   int      `yaml:"write_timeout_seconds"`
}

func (c ServerConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

type MongoConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c MongoConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig is optional; an empty URI keeps the notification queue in memory.
type RedisConfig struct {
	URI string `yaml:"uri"`
	Key string `yaml:"queue_key"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// InsuranceConfig carries the values echoed by the insurance calculator and
// the policy applied to values above the top tier.
type InsuranceConfig struct {
	Rate           float64 `yaml:"rate"`
	MinimumFee     float64 `yaml:"minimum_fee"`
	Currency       string  `yaml:"currency"`
	OverflowPolicy string  `yaml:"overflow_policy"`
}

// SMTPConfig holds the sender credentials. A missing sender address or app
// password disables outbound mail.
type SMTPConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	SenderEmail    string `yaml:"sender_email"`
	AppPassword    string `yaml:"app_password"`
	SenderName     string `yaml:"sender_name"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c SMTPConfig) Enabled() bool {
	return c.SenderEmail != "" && c.AppPassword != ""
}

func (c SMTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type NotifyConfig struct {
	Workers     int    `yaml:"workers"`
	BufferSize  int    `yaml:"buffer_size"`
	FrontendURL string `yaml:"frontend_url"`
}

// Load starts from Defaults, overlays the optional YAML file at path, then
// the process environment (after loading .env when present).
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Defaults returns the configuration used for anything the YAML file and
// the environment leave unset. Values set explicitly, zero included, win.
func Defaults() *Config {
	return &Config{
		Env:      ENV_DEVELOPMENT,
		LogLevel: "info",
		Server: ServerConfig{
			Port:           8000,
			AllowedOrigins: []string{"*"},
			ReadTimeout:    15,
			WriteTimeout:   30,
		},
		Mongo: MongoConfig{
			Database:       "transdom",
			TimeoutSeconds: 20,
		},
		Redis: RedisConfig{
			Key: "transdom:notifications",
		},
		Insurance: InsuranceConfig{
			Rate:           0.01,
			MinimumFee:     5000,
			Currency:       "NGN",
			OverflowPolicy: POLICY_REJECT,
		},
		SMTP: SMTPConfig{
			Host:           "smtp.zoho.com",
			Port:           587,
			SenderName:     "Transdom Express",
			TimeoutSeconds: 15,
		},
		Notify: NotifyConfig{
			Workers:     2,
			BufferSize:  100,
			FrontendURL: "https://transdomexpress.com",
		},
	}
}

// Validate reports the first configuration problem that would stop the
// service from serving requests.
func (c *Config) Validate() error {
	if !slices.Contains(allowedEnvValues, c.Env) {
		return fmt.Errorf("invalid ENV %q, allowed: %s", c.Env, strings.Join(allowedEnvValues, ", "))
	}
	if c.Mongo.URI == "" {
		return errors.New("MONGODB_URI is required")
	}
	if c.Auth.APIKey == "" {
		return errors.New("API_KEY is required")
	}
	if !slices.Contains(allowedPolicies, c.Insurance.OverflowPolicy) {
		return fmt.Errorf("invalid INSURANCE_OVERFLOW_POLICY %q, allowed: %s",
			c.Insurance.OverflowPolicy, strings.Join(allowedPolicies, ", "))
	}
	if c.Insurance.MinimumFee < 0 {
		return errors.New("INSURANCE_MINIMUM_FEE must not be negative")
	}
	return nil
}
