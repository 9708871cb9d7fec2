package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/decoders"
	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/awsutil/metadata"
	"github.com/Cloud-Foundations/ptrsync/pkg/constants"
	"github.com/Cloud-Foundations/ptrsync/pkg/lookup"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync"
	"gopkg.in/yaml.v2"
)

const (
	defaultCallTimeout   = 30 * time.Second
	defaultLookupTimeout = 5 * time.Second
	defaultMaxRetries    = 3
)

type setterFunc func(config *Config, value string) error

var (
	getMetadataRegion = metadata.GetRegion

	setters = map[string]setterFunc{
		"AWS_PROFILE": func(c *Config, value string) error {
			c.AwsProfile = value
			return nil
		},
		"LOOKUP_NAMESERVER": func(c *Config, value string) error {
			c.Nameserver = value
			return nil
		},
		"LOOKUP_TIMEOUT": func(c *Config, value string) error {
			return parseDuration(&c.LookupTimeout, value)
		},
		"PTR_ASSUME_ROLE_ARN": func(c *Config, value string) error {
			c.AwsAssumeRoleArn = value
			return nil
		},
		"PTR_CALL_TIMEOUT": func(c *Config, value string) error {
			return parseDuration(&c.CallTimeout, value)
		},
		"PTR_DRY_RUN": func(c *Config, value string) error {
			return parseBool(&c.DryRun, value)
		},
		"PTR_IPV6": func(c *Config, value string) error {
			return parseBool(&c.IPv6, value)
		},
		"PTR_MAX_RETRIES": func(c *Config, value string) error {
			retries, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			c.MaxRetries = retries
			return nil
		},
		"PTR_TARGET": func(c *Config, value string) error {
			c.PtrTarget = value
			return nil
		},
		"PTR_TTL": func(c *Config, value string) error {
			return parsePositive(&c.PtrTTL, value)
		},
		"PTR_WORKERS": func(c *Config, value string) error {
			return parsePositive(&c.Workers, value)
		},
		"PTR_ZONE_MODE": func(c *Config, value string) error {
			c.PtrZoneMode = value
			return nil
		},
		"PTR_ZONE_NAME": func(c *Config, value string) error {
			c.PtrZoneName = value
			return nil
		},
		"REGIONS": func(c *Config, value string) error {
			c.Regions = splitList(value)
			return nil
		},
	}
)

func init() {
	decoders.RegisterDecoder(".yaml", yamlDecoderGenerator)
	decoders.RegisterDecoder(".yml", yamlDecoderGenerator)
}

func yamlDecoderGenerator(r io.Reader) decoders.Decoder {
	return yaml.NewDecoder(r)
}

func lookupEnvironment(key string) string {
	return os.Getenv(key)
}

func parseBool(pointer *bool, value string) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*pointer = parsed
	return nil
}

func parseDuration(pointer *time.Duration, value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*pointer = parsed
	return nil
}

func parsePositive(pointer *uint, value string) error {
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return err
	}
	if parsed < 1 {
		return errors.New("must be at least 1")
	}
	*pointer = uint(parsed)
	return nil
}

func splitList(value string) []string {
	var list []string
	for _, field := range strings.Split(value, ",") {
		if field = strings.TrimSpace(field); field != "" {
			list = append(list, field)
		}
	}
	return list
}

func load(ctx context.Context, filename string, logger log.DebugLogger) (
	Config, error) {
	if logger == nil {
		logger = nulllogger.New()
	}
	var config Config
	if filename != "" {
		if err := decoders.DecodeFile(filename, &config); err != nil {
			return Config{}, err
		}
	}
	if err := config.ApplyEnvironment(); err != nil {
		return Config{}, err
	}
	if secretId := os.Getenv(constants.ConfigSecretIdVariable); secretId != "" {
		if err := config.applySecret(ctx, secretId, logger); err != nil {
			return Config{}, err
		}
	}
	config.setDefaults()
	if err := config.check(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func newLookup(config Config, logger log.DebugLogger) *lookup.Client {
	config.setDefaults()
	params := lookup.Params{Logger: logger, Timeout: config.LookupTimeout}
	if config.Nameserver != "" {
		params.Resolver = lookup.NewNameserverResolver(config.Nameserver,
			config.LookupTimeout)
	}
	return lookup.New(params)
}

func newSynchronizer(config Config, params Params) (
	*ptrsync.Synchronizer, error) {
	config.setDefaults()
	if err := config.check(); err != nil {
		return nil, err
	}
	if params.Logger == nil {
		params.Logger = nulllogger.New()
	}
	if params.ProviderFactory == nil {
		factory, err := newAwsProviderFactory(config, params.Logger)
		if err != nil {
			return nil, err
		}
		params.ProviderFactory = factory
	}
	return ptrsync.New(config.Config, ptrsync.Params{
		Logger:          params.Logger,
		ProviderFactory: params.ProviderFactory,
		Registerer:      params.Registerer,
	})
}

// Keys are applied in sorted order so that errors are reported consistently.
func (c *Config) apply(getter func(key string) string) error {
	keys := make([]string, 0, len(setters))
	for key := range setters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := strings.TrimSpace(getter(key))
		if value == "" {
			continue
		}
		if err := setters[key](c, value); err != nil {
			return fmt.Errorf("%s: %s", key, err)
		}
	}
	return nil
}

func (c Config) check() error {
	if err := c.Config.Check(); err != nil {
		return err
	}
	if c.MaxRetries < 0 {
		return errors.New("max_retries may not be negative")
	}
	for _, region := range c.Regions {
		if strings.TrimSpace(region) == "" {
			return errors.New("empty region specified")
		}
	}
	return nil
}

func (c Config) region() string {
	if c.DefaultRegion != "" {
		return c.DefaultRegion
	}
	for _, key := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
		if region := os.Getenv(key); region != "" {
			return region
		}
	}
	if region, err := getMetadataRegion(); err == nil && region != "" {
		return region
	}
	return constants.DefaultRegion
}

func (c Config) scopes() []ptrsync.Scope {
	if len(c.Regions) < 1 {
		return []ptrsync.Scope{{}}
	}
	seen := make(map[string]struct{}, len(c.Regions))
	scopes := make([]ptrsync.Scope, 0, len(c.Regions))
	for _, region := range c.Regions {
		region = strings.TrimSpace(region)
		if _, ok := seen[region]; ok || region == "" {
			continue
		}
		seen[region] = struct{}{}
		scopes = append(scopes, ptrsync.Scope{Region: region})
	}
	return scopes
}

func (c *Config) setDefaults() {
	if c.CallTimeout <= 0 {
		c.CallTimeout = defaultCallTimeout
	}
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = defaultLookupTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	c.Config.SetDefaults()
}
