/*
Package ptrsync synchronizes reverse-DNS (PTR) records with the forward (A and
AAAA) records hosted by a DNS provider.

For each scope the synchronizer locates (or creates) the reverse zone, lists
every forward zone and upserts a PTR record for each address record found. PTR
records are only ever created or replaced, never deleted. Provider failures are
logged and skip the affected scope, zone or record; they never abort the run.

Record sets holding several addresses are reduced to their first value.
*/
package ptrsync

import (
	"context"
	"errors"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ModeCreate   = "create"
	ModeDiscover = "discover"

	TargetRecord = "record"
	TargetZone   = "zone"
)

var (
	// ErrNoProcessableZones is returned by Run when the records of no zone in
	// any scope could be listed.
	ErrNoProcessableZones = errors.New("no processable zones")

	ErrZoneNotFound = errors.New("PTR zone not found")
)

type Config struct {
	DryRun      bool   `yaml:"dry_run"`
	IPv6        bool   `yaml:"ipv6"`
	PtrTarget   string `yaml:"ptr_target"`    // Default: "zone".
	PtrTTL      uint   `yaml:"ptr_ttl"`       // Default: 300.
	PtrZoneMode string `yaml:"ptr_zone_mode"` // Default: "create".
	PtrZoneName string `yaml:"ptr_zone_name"` // Default: "in-addr.arpa.".
	Workers     uint   `yaml:"workers"`       // Default: 1.
}

// ProviderFactory returns the DNS provider serving a scope.
type ProviderFactory func(scope Scope) (dns.Provider, error)

type Params struct {
	Logger          log.DebugLogger
	ProviderFactory ProviderFactory
	Registerer      prometheus.Registerer // Default: private registry.
}

// PtrZone identifies a resolved reverse zone. An empty Id means that records
// of that address family are skipped.
type PtrZone struct {
	Id   string
	Name string
}

type PtrZones struct {
	IPv4 PtrZone
	IPv6 PtrZone
}

// Scope is a unit of processing. An empty Region selects the whole account
// using the default region.
type Scope struct {
	Region string
}

// Summary counts what a run (or part of a run) did.
type Summary struct {
	Scopes         uint `json:"scopes"`
	ScopesSkipped  uint `json:"scopes_skipped"`
	Zones          uint `json:"zones"`
	ZonesSynced    uint `json:"zones_synced"`
	ZonesFailed    uint `json:"zones_failed"`
	Records        uint `json:"records"`
	RecordsSkipped uint `json:"records_skipped"`
	Upserts        uint `json:"upserts"`
	UpsertsFailed  uint `json:"upserts_failed"`
	UpsertsPlanned uint `json:"upserts_planned"`
}

type Synchronizer struct {
	config          Config
	logger          log.DebugLogger
	metrics         *metrics
	providerFactory ProviderFactory
}

// New creates a *Synchronizer. The configuration is checked after defaults
// are applied.
func New(config Config, params Params) (*Synchronizer, error) {
	return newSynchronizer(config, params)
}

// CallerReference returns the zone creation caller reference used for the
// reverse zone name. It never changes for a given name, which makes zone
// creation idempotent.
func CallerReference(zoneName string) string {
	return callerReference(zoneName)
}

// Check returns an error if the configuration is invalid.
func (c Config) Check() error {
	return c.check()
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	c.setDefaults()
}

func (s Scope) String() string {
	if s.Region == "" {
		return "account"
	}
	return s.Region
}

// Add adds the counts of other to s.
func (s *Summary) Add(other Summary) {
	s.add(other)
}

func (s Summary) String() string {
	return s.string()
}

// EnumerateForwardZones returns all zones except reverse zones. A listing
// failure is logged and an empty list is returned.
func (s *Synchronizer) EnumerateForwardZones(ctx context.Context,
	provider dns.ZoneLister) []dns.Zone {
	return s.enumerateForwardZones(ctx, provider, s.logger)
}

// EnumerateRecords returns all record sets in the zone.
func (s *Synchronizer) EnumerateRecords(ctx context.Context,
	provider dns.RecordLister, zoneId string) ([]dns.RecordSet, error) {
	return provider.ListRecordSets(ctx, zoneId)
}

// ResolvePtrZone returns the Id of the zone named name, creating it if it does
// not exist and the configured mode permits. Failures are logged and reported
// as not found.
func (s *Synchronizer) ResolvePtrZone(ctx context.Context,
	provider dns.ZoneManager, name string) (string, bool) {
	return s.resolvePtrZone(ctx, provider, name, s.logger)
}

// ResolvePtrZones resolves the IPv4 reverse zone and, if enabled, the IPv6
// reverse zone. ErrZoneNotFound is returned if no reverse zone was resolved.
func (s *Synchronizer) ResolvePtrZones(ctx context.Context,
	provider dns.ZoneManager) (PtrZones, error) {
	return s.resolvePtrZones(ctx, provider, s.logger)
}

// Run processes each scope in turn. If scopes is empty, a single whole-account
// scope is processed. ErrNoProcessableZones is returned if no zone could be
// processed.
func (s *Synchronizer) Run(ctx context.Context, scopes []Scope) (
	Summary, error) {
	return s.run(ctx, scopes)
}

// SyncZone lists the records of zone and upserts a PTR record for each address
// record. An error is returned only if the records could not be listed.
func (s *Synchronizer) SyncZone(ctx context.Context, provider dns.Provider,
	zone dns.Zone, ptrZones PtrZones) (Summary, error) {
	return s.syncZone(ctx, provider, zone, ptrZones, s.logger)
}
