package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log/testlogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns/memory"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
regions:
  - us-east-1
  - us-west-2
ptr_zone_mode: discover
ptr_ttl: 600
ptr_target: record
ipv6: true
workers: 4
call_timeout: 10s
lookup_timeout: 2s
max_retries: 5
nameserver: 192.0.2.53
`

// clearEnvironment empties every variable the configuration reads.
func clearEnvironment(t *testing.T) {
	for key := range setters {
		t.Setenv(key, "")
	}
	t.Setenv("CONFIG_SECRET_ID", "")
}

func TestLoadFile(t *testing.T) {
	clearEnvironment(t)
	filename := filepath.Join(t.TempDir(), "ptrsync.yml")
	require.NoError(t, os.WriteFile(filename, []byte(testConfig), 0600))
	config, err := Load(context.Background(), filename, testlogger.New(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"us-east-1", "us-west-2"}, config.Regions)
	assert.Equal(t, ptrsync.ModeDiscover, config.PtrZoneMode)
	assert.Equal(t, uint(600), config.PtrTTL)
	assert.Equal(t, ptrsync.TargetRecord, config.PtrTarget)
	assert.True(t, config.IPv6)
	assert.Equal(t, uint(4), config.Workers)
	assert.Equal(t, 10*time.Second, config.CallTimeout)
	assert.Equal(t, 2*time.Second, config.LookupTimeout)
	assert.Equal(t, 5, config.MaxRetries)
	assert.Equal(t, "192.0.2.53", config.Nameserver)
	assert.Equal(t, "in-addr.arpa.", config.PtrZoneName)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	clearEnvironment(t)
	filename := filepath.Join(t.TempDir(), "ptrsync.yml")
	require.NoError(t, os.WriteFile(filename, []byte(testConfig), 0600))
	t.Setenv("REGIONS", "eu-west-1")
	t.Setenv("PTR_ZONE_MODE", "create")
	t.Setenv("PTR_DRY_RUN", "true")
	config, err := Load(context.Background(), filename, testlogger.New(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-west-1"}, config.Regions)
	assert.Equal(t, ptrsync.ModeCreate, config.PtrZoneMode)
	assert.True(t, config.DryRun)
}

func TestLoadDefaults(t *testing.T) {
	clearEnvironment(t)
	config, err := Load(context.Background(), "", testlogger.New(t))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, config.CallTimeout)
	assert.Equal(t, 5*time.Second, config.LookupTimeout)
	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, ptrsync.ModeCreate, config.PtrZoneMode)
	assert.Equal(t, ptrsync.TargetZone, config.PtrTarget)
	assert.Equal(t, uint(300), config.PtrTTL)
	assert.Equal(t, uint(1), config.Workers)
	assert.False(t, config.DryRun)
	assert.Equal(t, []ptrsync.Scope{{}}, config.Scopes())
}

func TestLoadInvalid(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("PTR_ZONE_MODE", "guess")
	_, err := Load(context.Background(), "", testlogger.New(t))
	assert.Error(t, err)
	_, err = Load(context.Background(),
		filepath.Join(t.TempDir(), "missing.yml"), testlogger.New(t))
	assert.Error(t, err)
}

func TestApplyVariables(t *testing.T) {
	var config Config
	require.NoError(t, config.ApplyVariables(map[string]string{
		"AWS_PROFILE":         "production",
		"LOOKUP_NAMESERVER":   "192.0.2.53",
		"LOOKUP_TIMEOUT":      "3s",
		"PTR_ASSUME_ROLE_ARN": "arn:aws:iam::123456789012:role/ptrsync",
		"PTR_CALL_TIMEOUT":    "20s",
		"PTR_DRY_RUN":         "1",
		"PTR_IPV6":            "true",
		"PTR_MAX_RETRIES":     "7",
		"PTR_TARGET":          "record",
		"PTR_TTL":             "60",
		"PTR_WORKERS":         "8",
		"PTR_ZONE_MODE":       "discover",
		"PTR_ZONE_NAME":       "10.in-addr.arpa.",
		"REGIONS":             " us-east-1, ,us-west-2,",
	}))
	assert.Equal(t, Config{
		AwsAssumeRoleArn: "arn:aws:iam::123456789012:role/ptrsync",
		AwsProfile:       "production",
		CallTimeout:      20 * time.Second,
		LookupTimeout:    3 * time.Second,
		MaxRetries:       7,
		Nameserver:       "192.0.2.53",
		Config: ptrsync.Config{
			DryRun:      true,
			IPv6:        true,
			PtrTarget:   ptrsync.TargetRecord,
			PtrTTL:      60,
			PtrZoneMode: ptrsync.ModeDiscover,
			PtrZoneName: "10.in-addr.arpa.",
			Workers:     8,
		},
		Regions: []string{"us-east-1", "us-west-2"},
	}, config)
}

func TestApplyVariablesErrors(t *testing.T) {
	tests := map[string]string{
		"LOOKUP_TIMEOUT":   "soon",
		"PTR_CALL_TIMEOUT": "30",
		"PTR_DRY_RUN":      "maybe",
		"PTR_IPV6":         "yes please",
		"PTR_MAX_RETRIES":  "many",
		"PTR_TTL":          "0",
		"PTR_WORKERS":      "-2",
	}
	for key, value := range tests {
		var config Config
		err := config.ApplyVariables(map[string]string{key: value})
		assert.Error(t, err, key)
		if err != nil {
			assert.Contains(t, err.Error(), key)
		}
	}
}

func TestCheck(t *testing.T) {
	config := Config{MaxRetries: -1}
	config.SetDefaults()
	assert.Error(t, config.Check())
	config = Config{Regions: []string{" "}}
	config.SetDefaults()
	assert.Error(t, config.Check())
	config = Config{Config: ptrsync.Config{PtrTarget: "host"}}
	config.SetDefaults()
	assert.Error(t, config.Check())
}

func TestScopes(t *testing.T) {
	config := Config{Regions: []string{"us-east-1", "us-west-2", "us-east-1"}}
	assert.Equal(t, []ptrsync.Scope{
		{Region: "us-east-1"},
		{Region: "us-west-2"},
	}, config.Scopes())
}

func TestRegion(t *testing.T) {
	savedGetter := getMetadataRegion
	defer func() { getMetadataRegion = savedGetter }()
	getMetadataRegion = func() (string, error) {
		return "", errors.New("not on EC2")
	}
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	assert.Equal(t, "us-east-1", Config{}.Region())
	getMetadataRegion = func() (string, error) { return "ap-south-1", nil }
	assert.Equal(t, "ap-south-1", Config{}.Region())
	t.Setenv("AWS_DEFAULT_REGION", "eu-central-1")
	assert.Equal(t, "eu-central-1", Config{}.Region())
	t.Setenv("AWS_REGION", "eu-west-1")
	assert.Equal(t, "eu-west-1", Config{}.Region())
	assert.Equal(t, "sa-east-1", Config{DefaultRegion: "sa-east-1"}.Region())
}

func TestNewSynchronizer(t *testing.T) {
	provider := memory.New()
	provider.AddZone("in-addr.arpa.")
	zone := provider.AddZone("example.com.")
	provider.AddRecordSet(zone.Id, dns.RecordSet{
		Name:   "www.example.com.",
		Type:   dns.TypeA,
		Values: []string{"10.0.0.5"},
	})
	config := Config{Regions: []string{"us-east-1"}}
	synchronizer, err := NewSynchronizer(config, Params{
		Logger: testlogger.New(t),
		ProviderFactory: func(ptrsync.Scope) (dns.Provider, error) {
			return provider, nil
		},
	})
	require.NoError(t, err)
	summary, err := synchronizer.Run(context.Background(), config.Scopes())
	require.NoError(t, err)
	assert.Equal(t, uint(1), summary.Upserts)
	_, err = NewSynchronizer(Config{MaxRetries: -1}, Params{
		ProviderFactory: func(ptrsync.Scope) (dns.Provider, error) {
			return provider, nil
		},
	})
	assert.Error(t, err)
}

func TestNewLookup(t *testing.T) {
	assert.NotNil(t, NewLookup(Config{}, testlogger.New(t)))
	assert.NotNil(t, NewLookup(Config{Nameserver: "192.0.2.53"},
		testlogger.New(t)))
}
