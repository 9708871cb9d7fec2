package memory

import (
	"fmt"
	"strings"

	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
)

func canonicalName(name string) string {
	return strings.ToLower(dns.Fqdn(name))
}

func newProvider() *Provider {
	return &Provider{
		callerRefs:     make(map[string]string),
		failRecordSets: make(map[string]error),
		failUpserts:    make(map[string]error),
		records:        make(map[string][]dns.RecordSet),
	}
}

// Must be called with lock held.
func (p *Provider) addZoneLocked(name string) dns.Zone {
	p.nextId++
	zone := dns.Zone{
		Id:   fmt.Sprintf("Z%04d", p.nextId),
		Name: dns.Fqdn(name),
	}
	p.zones = append(p.zones, zone)
	return zone
}

func (p *Provider) addZone(name string) dns.Zone {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.addZoneLocked(name)
}

func (p *Provider) addRecordSet(zoneId string, recordSet dns.RecordSet) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.records[zoneId] = append(p.records[zoneId], recordSet)
}

func (p *Provider) createZone(name, callerReference string) (dns.Zone, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.createCalls++
	if p.failCreate != nil {
		return dns.Zone{}, p.failCreate
	}
	if _, ok := p.callerRefs[callerReference]; ok {
		return dns.Zone{}, fmt.Errorf("%s: %w", callerReference,
			dns.ErrZoneExists)
	}
	zone := p.addZoneLocked(name)
	p.callerRefs[callerReference] = zone.Id
	return zone, nil
}

func (p *Provider) listRecordSets(zoneId string) ([]dns.RecordSet, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if err := p.failRecordSets[zoneId]; err != nil {
		return nil, err
	}
	if !p.hasZoneLocked(zoneId) {
		return nil, fmt.Errorf("no such zone: %s", zoneId)
	}
	return append([]dns.RecordSet(nil), p.records[zoneId]...), nil
}

// Must be called with lock held.
func (p *Provider) hasZoneLocked(zoneId string) bool {
	for _, zone := range p.zones {
		if zone.Id == zoneId {
			return true
		}
	}
	return false
}

func (p *Provider) listZones(name string) ([]dns.Zone, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.failListZones != nil {
		return nil, p.failListZones
	}
	zones := make([]dns.Zone, 0, len(p.zones))
	for _, zone := range p.zones {
		if name == "" || dns.SameName(zone.Name, name) {
			zones = append(zones, zone)
		}
	}
	return zones, nil
}

func (p *Provider) upsertRecordSet(zoneId string,
	recordSet dns.RecordSet) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if err := p.failUpserts[canonicalName(recordSet.Name)]; err != nil {
		return err
	}
	if !p.hasZoneLocked(zoneId) {
		return fmt.Errorf("no such zone: %s", zoneId)
	}
	recordSet.Values = append([]string(nil), recordSet.Values...)
	p.upserts = append(p.upserts,
		Upsert{RecordSet: recordSet, ZoneId: zoneId})
	recordSets := p.records[zoneId]
	for index, existing := range recordSets {
		if dns.SameName(existing.Name, recordSet.Name) &&
			existing.Type == recordSet.Type {
			recordSets[index] = recordSet
			return nil
		}
	}
	p.records[zoneId] = append(recordSets, recordSet)
	return nil
}
