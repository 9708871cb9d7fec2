/*
Package memory implements an in-memory DNS provider. It is safe for concurrent
use, records every create and upsert call and can be told to fail specific
operations, which makes it suitable as a test double.
*/
package memory

import (
	"context"
	"sync"

	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
)

// Upsert records a single UpsertRecordSet call.
type Upsert struct {
	RecordSet dns.RecordSet
	ZoneId    string
}

type Provider struct {
	mutex          sync.Mutex // Protect everything below.
	callerRefs     map[string]string
	createCalls    int
	failCreate     error
	failListZones  error
	failRecordSets map[string]error // Key: zone ID.
	failUpserts    map[string]error // Key: canonical record name.
	nextId         int
	records        map[string][]dns.RecordSet // Key: zone ID.
	upserts        []Upsert
	zones          []dns.Zone
}

// Interface check.
var _ dns.Provider = (*Provider)(nil)

func New() *Provider {
	return newProvider()
}

// AddZone adds a zone and returns it.
func (p *Provider) AddZone(name string) dns.Zone {
	return p.addZone(name)
}

// AddRecordSet adds a record set to the specified zone.
func (p *Provider) AddRecordSet(zoneId string, recordSet dns.RecordSet) {
	p.addRecordSet(zoneId, recordSet)
}

// CreateCalls returns the number of CreateZone calls made.
func (p *Provider) CreateCalls() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.createCalls
}

// FailCreateZone makes subsequent CreateZone calls fail with err.
func (p *Provider) FailCreateZone(err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.failCreate = err
}

// FailListRecordSets makes ListRecordSets fail with err for the zone.
func (p *Provider) FailListRecordSets(zoneId string, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.failRecordSets[zoneId] = err
}

// FailListZones makes subsequent zone listings fail with err.
func (p *Provider) FailListZones(err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.failListZones = err
}

// FailUpsert makes UpsertRecordSet fail with err for the record name.
func (p *Provider) FailUpsert(name string, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.failUpserts[canonicalName(name)] = err
}

// Upserts returns a copy of the successful UpsertRecordSet calls, in order.
func (p *Provider) Upserts() []Upsert {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]Upsert(nil), p.upserts...)
}

func (p *Provider) CreateZone(ctx context.Context, name, callerReference,
	comment string) (dns.Zone, error) {
	return p.createZone(name, callerReference)
}

func (p *Provider) ListRecordSets(ctx context.Context, zoneId string) (
	[]dns.RecordSet, error) {
	return p.listRecordSets(zoneId)
}

func (p *Provider) ListZones(ctx context.Context) ([]dns.Zone, error) {
	return p.listZones("")
}

func (p *Provider) ListZonesByName(ctx context.Context, name string) (
	[]dns.Zone, error) {
	return p.listZones(name)
}

func (p *Provider) UpsertRecordSet(ctx context.Context, zoneId string,
	recordSet dns.RecordSet) error {
	return p.upsertRecordSet(zoneId, recordSet)
}
