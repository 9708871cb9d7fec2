/*
Package route53 implements a DNS provider using AWS Route 53. It lists hosted
zones and record sets, creates hosted zones and upserts record sets.
*/
package route53

import (
	"context"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
)

type Params struct {
	CallTimeout time.Duration // Default: 30s.
	Logger      log.DebugLogger
}

type Provider struct {
	awsService  route53iface.Route53API
	callTimeout time.Duration
	logger      log.DebugLogger
}

// Interface check.
var _ dns.Provider = (*Provider)(nil)

// New creates a *Provider using the specified AWS session.
// The logger is used for logging messages.
func New(awsSession *session.Session, params Params) *Provider {
	return newProvider(newService(awsSession), params)
}

// NewWithService creates a *Provider using an existing Route 53 client.
func NewWithService(awsService route53iface.Route53API,
	params Params) *Provider {
	return newProvider(awsService, params)
}

func (p *Provider) CreateZone(ctx context.Context, name, callerReference,
	comment string) (dns.Zone, error) {
	return p.createZone(ctx, name, callerReference, comment)
}

func (p *Provider) ListRecordSets(ctx context.Context, zoneId string) (
	[]dns.RecordSet, error) {
	return p.listRecordSets(ctx, zoneId)
}

func (p *Provider) ListZones(ctx context.Context) ([]dns.Zone, error) {
	return p.listZones(ctx)
}

// ListZonesByName returns the zones named exactly name.
func (p *Provider) ListZonesByName(ctx context.Context, name string) (
	[]dns.Zone, error) {
	return p.listZonesByName(ctx, name)
}

func (p *Provider) UpsertRecordSet(ctx context.Context, zoneId string,
	recordSet dns.RecordSet) error {
	return p.upsertRecordSet(ctx, zoneId, recordSet)
}
