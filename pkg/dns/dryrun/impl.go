package dryrun

import (
	"context"
	"strings"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
)

const placeholderPrefix = "dry-run/"

func isPlaceholder(zoneId string) bool {
	return strings.HasPrefix(zoneId, placeholderPrefix)
}

func newProvider(provider dns.Provider, logger log.DebugLogger) *Provider {
	if logger == nil {
		logger = nulllogger.New()
	}
	return &Provider{logger: logger, provider: provider}
}

func (p *Provider) createZone(name, callerReference string) (dns.Zone, error) {
	zone := dns.Zone{
		Id:   placeholderPrefix + callerReference,
		Name: dns.Fqdn(name),
	}
	p.logger.Printf("dry run: would create zone: %s (caller reference: %s)\n",
		zone.Name, callerReference)
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.zones = append(p.zones, zone)
	return zone, nil
}

// Placeholder zones are reported so that repeated resolution does not create
// more of them.
func (p *Provider) listZonesByName(ctx context.Context, name string) (
	[]dns.Zone, error) {
	zones, err := p.provider.ListZonesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	for _, zone := range p.zones {
		if dns.SameName(zone.Name, name) {
			zones = append(zones, zone)
		}
	}
	return zones, nil
}

func (p *Provider) upsertRecordSet(zoneId string, recordSet dns.RecordSet) {
	p.logger.Printf("dry run: would upsert: %s %s %s in zone: %s\n",
		recordSet.Name, recordSet.Type, strings.Join(recordSet.Values, ","),
		zoneId)
	recordSet.Values = append([]string(nil), recordSet.Values...)
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.changes = append(p.changes, Change{RecordSet: recordSet, ZoneId: zoneId})
}
