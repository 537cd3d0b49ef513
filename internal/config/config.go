/*
Copyright 2026 Altaira Labs.

SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the server configuration from an optional YAML file
// and OPENARCHIEVEN_* environment variables. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the server version, set at build time with -ldflags.
var Version = "dev"

// Transports.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Environment variable names.
const (
	envConfigFile        = "OPENARCHIEVEN_CONFIG"
	envBaseURL           = "OPENARCHIEVEN_API_BASE_URL"
	envHTTPTimeout       = "OPENARCHIEVEN_HTTP_TIMEOUT"
	envUserAgent         = "OPENARCHIEVEN_USER_AGENT"
	envRequestsPerSecond = "OPENARCHIEVEN_REQUESTS_PER_SECOND"
	envMaxPages          = "OPENARCHIEVEN_MAX_PAGES"
	envTransport         = "OPENARCHIEVEN_TRANSPORT"
	envListenAddr        = "OPENARCHIEVEN_LISTEN_ADDR"
	envStateless         = "OPENARCHIEVEN_STATELESS"
	envHealthAddr        = "OPENARCHIEVEN_HEALTH_ADDR"
	envTracingEnabled    = "OPENARCHIEVEN_TRACING_ENABLED"
	envTracingEndpoint   = "OPENARCHIEVEN_TRACING_ENDPOINT"
	envTracingSampleRate = "OPENARCHIEVEN_TRACING_SAMPLE_RATE"
	envTracingInsecure   = "OPENARCHIEVEN_TRACING_INSECURE"
)

// Defaults.
const (
	defaultBaseURL           = "https://api.openarchieven.nl"
	defaultHTTPTimeout       = 20 * time.Second
	defaultTransport         = TransportHTTP
	defaultListenAddr        = ":8000"
	defaultHealthAddr        = ":9001"
	defaultTracingSampleRate = 1.0
)

const errFmtInvalidEnvVar = "invalid %s: %w"

// Config holds the server configuration.
type Config struct {
	// Upstream
	BaseURL           string
	HTTPTimeout       time.Duration
	UserAgent         string
	RequestsPerSecond float64
	MaxPages          int

	// MCP transport
	Transport  string // "http" or "stdio"
	ListenAddr string
	Stateless  bool

	// Health, readiness and metrics
	HealthAddr string

	// Tracing
	TracingEnabled    bool
	TracingEndpoint   string
	TracingSampleRate float64
	TracingInsecure   bool
}

// fileConfig is the YAML file layout. Unset fields keep their defaults.
type fileConfig struct {
	API struct {
		BaseURL           string  `yaml:"baseURL"`
		Timeout           string  `yaml:"timeout"`
		UserAgent         string  `yaml:"userAgent"`
		RequestsPerSecond float64 `yaml:"requestsPerSecond"`
		MaxPages          int     `yaml:"maxPages"`
	} `yaml:"api"`
	Server struct {
		Transport  string `yaml:"transport"`
		ListenAddr string `yaml:"listenAddr"`
		Stateless  *bool  `yaml:"stateless"`
		HealthAddr string `yaml:"healthAddr"`
	} `yaml:"server"`
	Tracing struct {
		Enabled    *bool    `yaml:"enabled"`
		Endpoint   string   `yaml:"endpoint"`
		SampleRate *float64 `yaml:"sampleRate"`
		Insecure   *bool    `yaml:"insecure"`
	} `yaml:"tracing"`
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by OPENARCHIEVEN_CONFIG and the environment, then validates it.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(envConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.parseEnvironmentOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		BaseURL:           defaultBaseURL,
		HTTPTimeout:       defaultHTTPTimeout,
		UserAgent:         "openarchieven-mcp/" + Version,
		Transport:         defaultTransport,
		ListenAddr:        defaultListenAddr,
		HealthAddr:        defaultHealthAddr,
		TracingSampleRate: defaultTracingSampleRate,
	}
}

// loadFile applies the YAML file at path.
func (cfg *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	setString(&cfg.BaseURL, fc.API.BaseURL)
	setString(&cfg.UserAgent, fc.API.UserAgent)
	if fc.API.Timeout != "" {
		d, err := time.ParseDuration(fc.API.Timeout)
		if err != nil {
			return fmt.Errorf("parsing config file: api.timeout: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if fc.API.RequestsPerSecond != 0 {
		cfg.RequestsPerSecond = fc.API.RequestsPerSecond
	}
	if fc.API.MaxPages != 0 {
		cfg.MaxPages = fc.API.MaxPages
	}

	setString(&cfg.Transport, fc.Server.Transport)
	setString(&cfg.ListenAddr, fc.Server.ListenAddr)
	setString(&cfg.HealthAddr, fc.Server.HealthAddr)
	if fc.Server.Stateless != nil {
		cfg.Stateless = *fc.Server.Stateless
	}

	if fc.Tracing.Enabled != nil {
		cfg.TracingEnabled = *fc.Tracing.Enabled
	}
	setString(&cfg.TracingEndpoint, fc.Tracing.Endpoint)
	if fc.Tracing.SampleRate != nil {
		cfg.TracingSampleRate = *fc.Tracing.SampleRate
	}
	if fc.Tracing.Insecure != nil {
		cfg.TracingInsecure = *fc.Tracing.Insecure
	}
	return nil
}

// parseEnvironmentOverrides applies OPENARCHIEVEN_* variables.
func (cfg *Config) parseEnvironmentOverrides() error {
	cfg.BaseURL = getEnvOrDefault(envBaseURL, cfg.BaseURL)
	cfg.UserAgent = getEnvOrDefault(envUserAgent, cfg.UserAgent)
	cfg.Transport = getEnvOrDefault(envTransport, cfg.Transport)
	cfg.ListenAddr = getEnvOrDefault(envListenAddr, cfg.ListenAddr)
	cfg.HealthAddr = getEnvOrDefault(envHealthAddr, cfg.HealthAddr)
	cfg.TracingEndpoint = getEnvOrDefault(envTracingEndpoint, cfg.TracingEndpoint)

	if err := parseDuration(envHTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := parseFloat(envRequestsPerSecond, &cfg.RequestsPerSecond); err != nil {
		return err
	}
	if err := parseInt(envMaxPages, &cfg.MaxPages); err != nil {
		return err
	}
	if err := parseBool(envStateless, &cfg.Stateless); err != nil {
		return err
	}
	if err := parseBool(envTracingEnabled, &cfg.TracingEnabled); err != nil {
		return err
	}
	if err := parseBool(envTracingInsecure, &cfg.TracingInsecure); err != nil {
		return err
	}
	return parseFloat(envTracingSampleRate, &cfg.TracingSampleRate)
}

// validate validates the configuration.
func (cfg *Config) validate() error {
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return err
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid %s: must be positive", envHTTPTimeout)
	}
	if cfg.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid %s: must not be negative", envRequestsPerSecond)
	}
	if cfg.MaxPages < 0 {
		return fmt.Errorf("invalid %s: must not be negative", envMaxPages)
	}
	switch cfg.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("invalid %s: must be '%s' or '%s'", envTransport, TransportHTTP, TransportStdio)
	}
	if cfg.TracingSampleRate < 0 || cfg.TracingSampleRate > 1 {
		return fmt.Errorf("invalid %s: must be between 0.0 and 1.0", envTracingSampleRate)
	}
	if cfg.TracingEnabled && cfg.TracingEndpoint == "" {
		return fmt.Errorf("%s is required when tracing is enabled", envTracingEndpoint)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, envBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf(errFmtInvalidEnvVar, envBaseURL, errors.New("must be an absolute http(s) URL"))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func parseDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, key, err)
	}
	*dst = d
	return nil
}

func parseFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, key, err)
	}
	*dst = f
	return nil
}

func parseInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, key, err)
	}
	*dst = i
	return nil
}

func parseBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, key, err)
	}
	*dst = b
	return nil
}
