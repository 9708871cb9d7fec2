/*
Package config wraps the ptrsync and associated plugin packages and creates a
PTR synchronizer based on configuration data.

Configuration is read from a YAML file, then overlaid by environment variables
and then by the key/value AWS Secrets Manager secret named by the
CONFIG_SECRET_ID environment variable, if set.
*/
package config

import (
	"context"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/ptrsync/pkg/lookup"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	AwsAssumeRoleArn string        `yaml:"aws_assume_role_arn"`
	AwsProfile       string        `yaml:"aws_profile"`
	CallTimeout      time.Duration `yaml:"call_timeout"` // Default: 30s.
	DefaultRegion    string        `yaml:"default_region"`
	LookupTimeout    time.Duration `yaml:"lookup_timeout"` // Default: 5s.
	MaxRetries       int           `yaml:"max_retries"`    // Default: 3.
	Nameserver       string        `yaml:"nameserver"`
	ptrsync.Config   `yaml:",inline"`
	Regions          []string `yaml:"regions"`
}

type Params struct {
	Logger          log.DebugLogger
	ProviderFactory ptrsync.ProviderFactory // Default: Route 53.
	Registerer      prometheus.Registerer
}

// Load reads the configuration from filename (if not empty), then applies the
// environment and the configuration secret. Defaults are applied and the
// result is checked.
func Load(ctx context.Context, filename string, logger log.DebugLogger) (
	Config, error) {
	return load(ctx, filename, logger)
}

// NewLookup creates a *lookup.Client using the configured nameserver, or the
// platform resolver if none is configured.
func NewLookup(config Config, logger log.DebugLogger) *lookup.Client {
	return newLookup(config, logger)
}

// NewProviderFactory returns a factory which creates Route 53 providers using
// the configured AWS credentials.
func NewProviderFactory(config Config, logger log.DebugLogger) (
	ptrsync.ProviderFactory, error) {
	return newAwsProviderFactory(config, logger)
}

// NewSynchronizer creates a *ptrsync.Synchronizer using the provided
// configuration.
func NewSynchronizer(config Config, params Params) (
	*ptrsync.Synchronizer, error) {
	return newSynchronizer(config, params)
}

// ApplyEnvironment overlays configuration from environment variables.
func (c *Config) ApplyEnvironment() error {
	return c.apply(lookupEnvironment)
}

// ApplySecret overlays configuration from the AWS Secrets Manager secret.
func (c *Config) ApplySecret(ctx context.Context, secretId string,
	logger log.DebugLogger) error {
	return c.applySecret(ctx, secretId, logger)
}

// ApplyVariables overlays configuration from variables, which use the same
// names as the environment variables.
func (c *Config) ApplyVariables(variables map[string]string) error {
	return c.apply(func(key string) string { return variables[key] })
}

func (c Config) Check() error {
	return c.check()
}

// Region returns the region used for the whole-account scope.
func (c Config) Region() string {
	return c.region()
}

// Scopes returns one scope per configured region, or a single whole-account
// scope if no regions are configured.
func (c Config) Scopes() []ptrsync.Scope {
	return c.scopes()
}

func (c *Config) SetDefaults() {
	c.setDefaults()
}
