/*
Package dns defines generic interfaces for managing DNS zones and record sets
hosted by a DNS provider.
*/
package dns

import (
	"context"
	"errors"
	"time"
)

const (
	TypeA     = "A"
	TypeAAAA  = "AAAA"
	TypeCNAME = "CNAME"
	TypePTR   = "PTR"
	TypeTXT   = "TXT"
)

// ErrZoneExists is returned (wrapped) by ZoneCreator implementations when the
// zone already exists or the caller reference was already used.
var ErrZoneExists = errors.New("zone already exists")

// Zone is a hosted zone. The Id is assigned by the provider and is stable for
// the lifetime of the zone. Names are fully qualified (dot terminated).
type Zone struct {
	Id          string
	Name        string
	Private     bool
	RecordCount int64
}

// RecordSet is a set of records sharing a name and type. Alias record sets
// carry no values.
type RecordSet struct {
	Alias  bool
	Name   string
	TTL    time.Duration
	Type   string
	Values []string
}

// RecordLister defines a record set lister.
type RecordLister interface {
	ListRecordSets(ctx context.Context, zoneId string) ([]RecordSet, error)
}

// RecordUpserter defines a record set writer which creates the record set if
// absent and replaces it if present.
type RecordUpserter interface {
	UpsertRecordSet(ctx context.Context, zoneId string, recordSet RecordSet) error
}

// ZoneCreator defines a zone creator. Creation is idempotent for a given
// caller reference.
type ZoneCreator interface {
	CreateZone(ctx context.Context, name, callerReference, comment string) (
		Zone, error)
}

// ZoneLister defines a zone lister.
type ZoneLister interface {
	ListZones(ctx context.Context) ([]Zone, error)
	ListZonesByName(ctx context.Context, name string) ([]Zone, error)
}

// ZoneManager defines a zone lister/creator.
type ZoneManager interface {
	ZoneCreator
	ZoneLister
}

// Provider defines a DNS provider.
type Provider interface {
	RecordLister
	RecordUpserter
	ZoneCreator
	ZoneLister
}

// Fqdn returns name with a trailing dot appended if missing.
func Fqdn(name string) string {
	return fqdn(name)
}

// SameName returns true if the two names are equal, ignoring case and a
// trailing dot.
func SameName(left, right string) bool {
	return sameName(left, right)
}
