/*
Package dryrun wraps a DNS provider so that reads are passed through and writes
are logged and recorded instead of being performed.
*/
package dryrun

import (
	"context"
	"sync"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
)

// Change is a write which would have been made.
type Change struct {
	RecordSet dns.RecordSet
	ZoneId    string
}

type Provider struct {
	logger   log.DebugLogger
	provider dns.Provider
	mutex    sync.Mutex // Protect everything below.
	changes  []Change
	zones    []dns.Zone
}

// Interface check.
var _ dns.Provider = (*Provider)(nil)

// New wraps provider. The logger is used to log the writes which are skipped.
func New(provider dns.Provider, logger log.DebugLogger) *Provider {
	return newProvider(provider, logger)
}

// Changes returns the record set writes which were skipped, in order.
func (p *Provider) Changes() []Change {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]Change(nil), p.changes...)
}

// CreateZone does not create a zone. It returns a placeholder zone which
// subsequent (skipped) upserts may target.
func (p *Provider) CreateZone(ctx context.Context, name, callerReference,
	comment string) (dns.Zone, error) {
	return p.createZone(name, callerReference)
}

func (p *Provider) ListRecordSets(ctx context.Context, zoneId string) (
	[]dns.RecordSet, error) {
	if isPlaceholder(zoneId) {
		return nil, nil
	}
	return p.provider.ListRecordSets(ctx, zoneId)
}

func (p *Provider) ListZones(ctx context.Context) ([]dns.Zone, error) {
	return p.provider.ListZones(ctx)
}

func (p *Provider) ListZonesByName(ctx context.Context, name string) (
	[]dns.Zone, error) {
	return p.listZonesByName(ctx, name)
}

func (p *Provider) UpsertRecordSet(ctx context.Context, zoneId string,
	recordSet dns.RecordSet) error {
	p.upsertRecordSet(zoneId, recordSet)
	return nil
}
