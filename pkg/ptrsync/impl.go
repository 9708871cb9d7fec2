package ptrsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/Dominator/lib/log/prefixlogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/constants"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns/dryrun"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns/reverse"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func callerReference(zoneName string) string {
	name := strings.TrimSuffix(strings.ToLower(dns.Fqdn(zoneName)), ".")
	return constants.CallerReferencePrefix + strings.ReplaceAll(name, ".", "-")
}

func isReverseZone(name string) bool {
	return reverse.InZone(name, reverse.IPv4Zone) ||
		reverse.InZone(name, reverse.IPv6Zone)
}

func newSynchronizer(config Config, params Params) (*Synchronizer, error) {
	config.setDefaults()
	if err := config.check(); err != nil {
		return nil, err
	}
	if params.ProviderFactory == nil {
		return nil, errors.New("no provider factory specified")
	}
	if params.Logger == nil {
		params.Logger = nulllogger.New()
	}
	if params.Registerer == nil {
		params.Registerer = prometheus.NewRegistry()
	}
	metrics, err := newMetrics(params.Registerer)
	if err != nil {
		return nil, err
	}
	return &Synchronizer{
		config:          config,
		logger:          params.Logger,
		metrics:         metrics,
		providerFactory: params.ProviderFactory,
	}, nil
}

func (c *Config) setDefaults() {
	if c.PtrTarget == "" {
		c.PtrTarget = TargetZone
	}
	if c.PtrTTL < 1 {
		c.PtrTTL = constants.DefaultPtrTTL
	}
	if c.PtrZoneMode == "" {
		c.PtrZoneMode = ModeCreate
	}
	if c.PtrZoneName == "" {
		c.PtrZoneName = reverse.IPv4Zone
	} else {
		c.PtrZoneName = strings.ToLower(dns.Fqdn(c.PtrZoneName))
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
}

func (c Config) check() error {
	switch c.PtrZoneMode {
	case ModeCreate, ModeDiscover:
	default:
		return fmt.Errorf("unknown PTR zone mode: \"%s\"", c.PtrZoneMode)
	}
	switch c.PtrTarget {
	case TargetRecord, TargetZone:
	default:
		return fmt.Errorf("unknown PTR target: \"%s\"", c.PtrTarget)
	}
	if c.PtrTTL < 1 {
		return errors.New("PTR TTL must be at least 1")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if !reverse.InZone(c.PtrZoneName, reverse.IPv4Zone) {
		return fmt.Errorf("PTR zone: %s is not within %s",
			c.PtrZoneName, reverse.IPv4Zone)
	}
	return nil
}

func (s *Summary) add(other Summary) {
	s.Scopes += other.Scopes
	s.ScopesSkipped += other.ScopesSkipped
	s.Zones += other.Zones
	s.ZonesSynced += other.ZonesSynced
	s.ZonesFailed += other.ZonesFailed
	s.Records += other.Records
	s.RecordsSkipped += other.RecordsSkipped
	s.Upserts += other.Upserts
	s.UpsertsFailed += other.UpsertsFailed
	s.UpsertsPlanned += other.UpsertsPlanned
}

func (s Summary) string() string {
	return fmt.Sprintf(
		"scopes: %d (%d skipped), zones: %d (%d synced, %d failed), "+
			"records: %d (%d skipped), upserts: %d (%d failed, %d planned)",
		s.Scopes, s.ScopesSkipped, s.Zones, s.ZonesSynced, s.ZonesFailed,
		s.Records, s.RecordsSkipped, s.Upserts, s.UpsertsFailed,
		s.UpsertsPlanned)
}

func (s *Synchronizer) enumerateForwardZones(ctx context.Context,
	provider dns.ZoneLister, logger log.DebugLogger) []dns.Zone {
	zones, err := provider.ListZones(ctx)
	if err != nil {
		logger.Printf("error listing zones: %s\n", err)
		return nil
	}
	forwardZones := make([]dns.Zone, 0, len(zones))
	for _, zone := range zones {
		if isReverseZone(zone.Name) {
			logger.Debugf(1, "ignoring reverse zone: %s (%s)\n",
				zone.Name, zone.Id)
			continue
		}
		forwardZones = append(forwardZones, zone)
	}
	logger.Debugf(0, "found %d forward zones\n", len(forwardZones))
	return forwardZones
}

func (s *Synchronizer) resolvePtrZone(ctx context.Context,
	provider dns.ZoneManager, name string, logger log.DebugLogger) (
	string, bool) {
	zones, err := provider.ListZonesByName(ctx, name)
	if err != nil {
		logger.Printf("error listing zones named: %s: %s\n", name, err)
		return "", false
	}
	if len(zones) > 0 {
		if len(zones) > 1 {
			logger.Printf("%d zones named: %s, using: %s\n",
				len(zones), name, zones[0].Id)
		}
		logger.Debugf(0, "using PTR zone: %s (%s)\n", name, zones[0].Id)
		return zones[0].Id, true
	}
	if s.config.PtrZoneMode != ModeCreate {
		logger.Printf("PTR zone: %s not found\n", name)
		return "", false
	}
	zone, err := provider.CreateZone(ctx, name, callerReference(name),
		constants.PtrZoneComment)
	if err == nil {
		logger.Printf("created PTR zone: %s (%s)\n", zone.Name, zone.Id)
		return zone.Id, true
	}
	if !errors.Is(err, dns.ErrZoneExists) {
		logger.Printf("error creating PTR zone: %s: %s\n", name, err)
		return "", false
	}
	// Created earlier with the same caller reference: find it again.
	zones, err = provider.ListZonesByName(ctx, name)
	if err != nil {
		logger.Printf("error listing zones named: %s: %s\n", name, err)
		return "", false
	}
	if len(zones) < 1 {
		logger.Printf("PTR zone: %s exists but was not listed\n", name)
		return "", false
	}
	return zones[0].Id, true
}

func (s *Synchronizer) resolvePtrZones(ctx context.Context,
	provider dns.ZoneManager, logger log.DebugLogger) (PtrZones, error) {
	ptrZones := PtrZones{
		IPv4: PtrZone{Name: s.config.PtrZoneName},
		IPv6: PtrZone{Name: reverse.IPv6Zone},
	}
	ptrZones.IPv4.Id, _ = s.resolvePtrZone(ctx, provider, ptrZones.IPv4.Name,
		logger)
	if s.config.IPv6 {
		ptrZones.IPv6.Id, _ = s.resolvePtrZone(ctx, provider,
			ptrZones.IPv6.Name, logger)
	}
	if ptrZones.IPv4.Id == "" && ptrZones.IPv6.Id == "" {
		return ptrZones, ErrZoneNotFound
	}
	return ptrZones, nil
}

func (s *Synchronizer) run(ctx context.Context, scopes []Scope) (
	Summary, error) {
	if len(scopes) < 1 {
		scopes = []Scope{{}}
	}
	var summary Summary
	for _, scope := range scopes {
		if err := ctx.Err(); err != nil {
			s.logger.Printf("stopping before: %s: %s\n", scope, err)
			break
		}
		summary.add(s.runScope(ctx, scope))
	}
	s.logger.Printf("run complete: %s\n", summary)
	if summary.ZonesSynced < 1 {
		return summary, ErrNoProcessableZones
	}
	return summary, nil
}

func (s *Synchronizer) runScope(ctx context.Context, scope Scope) Summary {
	logger := prefixlogger.New(scope.String()+": ", s.logger)
	summary := Summary{Scopes: 1}
	skip := func() Summary {
		summary.ScopesSkipped++
		s.metrics.scopes.WithLabelValues("skipped").Inc()
		return summary
	}
	provider, err := s.providerFactory(scope)
	if err != nil {
		logger.Printf("error creating DNS provider: %s\n", err)
		return skip()
	}
	if s.config.DryRun {
		provider = dryrun.New(provider, logger)
	}
	ptrZones, err := s.resolvePtrZones(ctx, provider, logger)
	if err != nil {
		logger.Printf("skipping: %s\n", err)
		return skip()
	}
	zones := s.enumerateForwardZones(ctx, provider, logger)
	if len(zones) < 1 {
		logger.Println("skipping: no forward zones found")
		return skip()
	}
	summary.add(s.syncZones(ctx, provider, zones, ptrZones, logger))
	s.metrics.scopes.WithLabelValues("processed").Inc()
	logger.Printf("done: %s\n", summary)
	return summary
}

func (s *Synchronizer) syncZones(ctx context.Context, provider dns.Provider,
	zones []dns.Zone, ptrZones PtrZones, logger log.DebugLogger) Summary {
	var group errgroup.Group
	group.SetLimit(int(s.config.Workers))
	var mutex sync.Mutex
	var summary Summary
	for _, zone := range zones {
		zone := zone
		group.Go(func() error {
			zoneSummary, _ := s.syncZone(ctx, provider, zone, ptrZones, logger)
			mutex.Lock()
			defer mutex.Unlock()
			summary.add(zoneSummary)
			return nil
		})
	}
	group.Wait()
	return summary
}

func (s *Synchronizer) syncZone(ctx context.Context, provider dns.Provider,
	zone dns.Zone, ptrZones PtrZones, logger log.DebugLogger) (
	Summary, error) {
	summary := Summary{Zones: 1}
	recordSets, err := provider.ListRecordSets(ctx, zone.Id)
	if err != nil {
		logger.Printf("zone: %s (%s): error listing records: %s\n",
			zone.Name, zone.Id, err)
		summary.ZonesFailed++
		s.metrics.zones.WithLabelValues("failed").Inc()
		return summary, err
	}
	logger.Debugf(1, "zone: %s (%s): %d record sets\n",
		zone.Name, zone.Id, len(recordSets))
	for _, recordSet := range recordSets {
		summary.add(s.syncRecordSet(ctx, provider, zone, recordSet, ptrZones,
			logger))
	}
	summary.ZonesSynced++
	s.metrics.zones.WithLabelValues("synced").Inc()
	return summary, nil
}

func (s *Synchronizer) syncRecordSet(ctx context.Context,
	provider dns.RecordUpserter, zone dns.Zone, recordSet dns.RecordSet,
	ptrZones PtrZones, logger log.DebugLogger) Summary {
	summary := Summary{Records: 1}
	skip := func(level int16, format string, v ...interface{}) Summary {
		if level < 0 {
			logger.Printf(format, v...)
		} else {
			logger.Debugf(uint8(level), format, v...)
		}
		summary.RecordsSkipped++
		s.metrics.records.WithLabelValues(recordSet.Type, "skipped").Inc()
		return summary
	}
	var ptrZone PtrZone
	switch recordSet.Type {
	case dns.TypeA:
		ptrZone = ptrZones.IPv4
	case dns.TypeAAAA:
		if !s.config.IPv6 {
			return skip(-1, "%s AAAA: IPv6 not enabled, skipping\n",
				recordSet.Name)
		}
		ptrZone = ptrZones.IPv6
	default:
		return skip(2, "%s %s: not an address record, skipping\n",
			recordSet.Name, recordSet.Type)
	}
	if recordSet.Alias {
		return skip(1, "%s %s: alias record, skipping\n",
			recordSet.Name, recordSet.Type)
	}
	if len(recordSet.Values) < 1 {
		return skip(1, "%s %s: no values, skipping\n",
			recordSet.Name, recordSet.Type)
	}
	if len(recordSet.Values) > 1 {
		logger.Debugf(1, "%s %s: using first value, discarding %d\n",
			recordSet.Name, recordSet.Type, len(recordSet.Values)-1)
	}
	address := recordSet.Values[0]
	var ptrName string
	var err error
	if recordSet.Type == dns.TypeA {
		ptrName, err = reverse.IPv4Name(address)
	} else {
		ptrName, err = reverse.IPv6Name(address)
	}
	if err != nil {
		return skip(-1, "%s %s: %s, skipping\n",
			recordSet.Name, recordSet.Type, err)
	}
	if ptrZone.Id == "" {
		return skip(1, "%s %s: no PTR zone: %s, skipping\n",
			recordSet.Name, recordSet.Type, ptrZone.Name)
	}
	if !reverse.InZone(ptrName, ptrZone.Name) {
		return skip(-1, "%s %s: %s is not within PTR zone: %s, skipping\n",
			recordSet.Name, recordSet.Type, address, ptrZone.Name)
	}
	target := dns.Fqdn(zone.Name)
	if s.config.PtrTarget == TargetRecord {
		target = dns.Fqdn(recordSet.Name)
	}
	err = provider.UpsertRecordSet(ctx, ptrZone.Id, dns.RecordSet{
		Name:   ptrName,
		TTL:    time.Duration(s.config.PtrTTL) * time.Second,
		Type:   dns.TypePTR,
		Values: []string{target},
	})
	s.metrics.records.WithLabelValues(recordSet.Type, "processed").Inc()
	if err != nil {
		logger.Printf("error upserting PTR: %s (%s) -> %s: %s\n",
			ptrName, address, target, err)
		summary.UpsertsFailed++
		s.metrics.upserts.WithLabelValues("failed").Inc()
		return summary
	}
	if s.config.DryRun {
		summary.UpsertsPlanned++
		s.metrics.upserts.WithLabelValues("planned").Inc()
	} else {
		summary.Upserts++
		s.metrics.upserts.WithLabelValues("succeeded").Inc()
	}
	logger.Debugf(0, "upserted PTR: %s (%s) -> %s\n", ptrName, address, target)
	return summary
}
