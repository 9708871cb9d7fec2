package route53

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
)

const (
	defaultCallTimeout = 30 * time.Second
	hostedZonePrefix   = "/hostedzone/"
)

func newService(awsSession *session.Session) route53iface.Route53API {
	return route53.New(awsSession)
}

func newProvider(awsService route53iface.Route53API, params Params) *Provider {
	if params.CallTimeout <= 0 {
		params.CallTimeout = defaultCallTimeout
	}
	if params.Logger == nil {
		params.Logger = nulllogger.New()
	}
	return &Provider{
		awsService:  awsService,
		callTimeout: params.CallTimeout,
		logger:      params.Logger,
	}
}

// Insert double quotes if missing.
func insertQuotes(value string) string {
	if len(value) > 1 && value[0] == '"' && value[len(value)-1] == '"' {
		return value
	}
	return "\"" + value + "\""
}

// Strip double quotes if present.
func stripQuotes(value string) string {
	if len(value) > 1 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}
	return value
}

// Route 53 returns some characters in names as \ddd octal escapes.
func unescapeName(name string) string {
	if !strings.Contains(name, `\`) {
		return name
	}
	var builder strings.Builder
	for index := 0; index < len(name); index++ {
		if name[index] == '\\' && index+4 <= len(name) {
			value, err := strconv.ParseUint(name[index+1:index+4], 8, 8)
			if err == nil {
				builder.WriteByte(byte(value))
				index += 3
				continue
			}
		}
		builder.WriteByte(name[index])
	}
	return builder.String()
}

func convertZone(hostedZone *route53.HostedZone) dns.Zone {
	zone := dns.Zone{
		Id: strings.TrimPrefix(aws.StringValue(hostedZone.Id),
			hostedZonePrefix),
		Name:        unescapeName(aws.StringValue(hostedZone.Name)),
		RecordCount: aws.Int64Value(hostedZone.ResourceRecordSetCount),
	}
	if hostedZone.Config != nil {
		zone.Private = aws.BoolValue(hostedZone.Config.PrivateZone)
	}
	return zone
}

func convertRecordSet(recordSet *route53.ResourceRecordSet) dns.RecordSet {
	rs := dns.RecordSet{
		Alias: recordSet.AliasTarget != nil,
		Name:  unescapeName(aws.StringValue(recordSet.Name)),
		TTL:   time.Duration(aws.Int64Value(recordSet.TTL)) * time.Second,
		Type:  aws.StringValue(recordSet.Type),
	}
	for _, record := range recordSet.ResourceRecords {
		value := aws.StringValue(record.Value)
		if rs.Type == dns.TypeTXT {
			value = stripQuotes(value)
		}
		rs.Values = append(rs.Values, value)
	}
	return rs
}

func isAwsErrorCode(err error, code string) bool {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		return awsErr.Code() == code
	}
	return false
}

func (p *Provider) callContext(ctx context.Context) (
	context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.callTimeout)
}

func (p *Provider) createZone(ctx context.Context, name, callerReference,
	comment string) (dns.Zone, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()
	name = dns.Fqdn(name)
	output, err := p.awsService.CreateHostedZoneWithContext(ctx,
		&route53.CreateHostedZoneInput{
			CallerReference: aws.String(callerReference),
			HostedZoneConfig: &route53.HostedZoneConfig{
				Comment: aws.String(comment),
			},
			Name: aws.String(name),
		})
	if err != nil {
		if isAwsErrorCode(err, route53.ErrCodeHostedZoneAlreadyExists) {
			return dns.Zone{}, fmt.Errorf("route53:CreateHostedZone: %s: %w",
				name, dns.ErrZoneExists)
		}
		return dns.Zone{}, fmt.Errorf("route53:CreateHostedZone: %s: %w",
			name, err)
	}
	if output.HostedZone == nil {
		return dns.Zone{}, errors.New("route53:CreateHostedZone: no zone")
	}
	zone := convertZone(output.HostedZone)
	if output.ChangeInfo != nil {
		p.logger.Debugf(1, "created zone: %s (%s), change: %s\n",
			zone.Name, zone.Id, aws.StringValue(output.ChangeInfo.Id))
	}
	return zone, nil
}

func (p *Provider) listRecordSets(ctx context.Context, zoneId string) (
	[]dns.RecordSet, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()
	var recordSets []dns.RecordSet
	err := p.awsService.ListResourceRecordSetsPagesWithContext(ctx,
		&route53.ListResourceRecordSetsInput{
			HostedZoneId: aws.String(zoneId),
		},
		func(page *route53.ListResourceRecordSetsOutput, lastPage bool) bool {
			for _, recordSet := range page.ResourceRecordSets {
				recordSets = append(recordSets, convertRecordSet(recordSet))
			}
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("route53:ListResourceRecordSets: %s: %w",
			zoneId, err)
	}
	p.logger.Debugf(2, "zone: %s: listed %d record sets\n",
		zoneId, len(recordSets))
	return recordSets, nil
}

func (p *Provider) listZones(ctx context.Context) ([]dns.Zone, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()
	var zones []dns.Zone
	err := p.awsService.ListHostedZonesPagesWithContext(ctx,
		&route53.ListHostedZonesInput{},
		func(page *route53.ListHostedZonesOutput, lastPage bool) bool {
			for _, hostedZone := range page.HostedZones {
				zones = append(zones, convertZone(hostedZone))
			}
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("route53:ListHostedZones: %w", err)
	}
	return zones, nil
}

// Zones are returned in name order starting at the requested name, so the
// first non-matching zone ends the search.
func (p *Provider) listZonesByName(ctx context.Context, name string) (
	[]dns.Zone, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()
	name = dns.Fqdn(name)
	input := &route53.ListHostedZonesByNameInput{DNSName: aws.String(name)}
	var zones []dns.Zone
	for {
		output, err := p.awsService.ListHostedZonesByNameWithContext(ctx,
			input)
		if err != nil {
			return nil, fmt.Errorf("route53:ListHostedZonesByName: %s: %w",
				name, err)
		}
		for _, hostedZone := range output.HostedZones {
			zone := convertZone(hostedZone)
			if !dns.SameName(zone.Name, name) {
				return zones, nil
			}
			zones = append(zones, zone)
		}
		if !aws.BoolValue(output.IsTruncated) {
			return zones, nil
		}
		input.DNSName = output.NextDNSName
		input.HostedZoneId = output.NextHostedZoneId
	}
}

func (p *Provider) upsertRecordSet(ctx context.Context, zoneId string,
	recordSet dns.RecordSet) error {
	ctx, cancel := p.callContext(ctx)
	defer cancel()
	var resourceRecords []*route53.ResourceRecord
	for _, value := range recordSet.Values {
		if recordSet.Type == dns.TypeTXT {
			value = insertQuotes(value)
		}
		resourceRecords = append(resourceRecords,
			&route53.ResourceRecord{Value: aws.String(value)})
	}
	input := &route53.ChangeResourceRecordSetsInput{
		ChangeBatch: &route53.ChangeBatch{
			Changes: []*route53.Change{{
				Action: aws.String(route53.ChangeActionUpsert),
				ResourceRecordSet: &route53.ResourceRecordSet{
					Name:            aws.String(dns.Fqdn(recordSet.Name)),
					ResourceRecords: resourceRecords,
					TTL:             aws.Int64(int64(recordSet.TTL.Seconds())),
					Type:            aws.String(recordSet.Type),
				}},
			},
		},
		HostedZoneId: aws.String(zoneId),
	}
	output, err := p.awsService.ChangeResourceRecordSetsWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("route53:ChangeResourceRecordSets: %s %s: %w",
			recordSet.Name, recordSet.Type, err)
	}
	if output.ChangeInfo != nil {
		p.logger.Debugf(1, "upserted: %s %s, change: %s\n",
			recordSet.Name, recordSet.Type,
			aws.StringValue(output.ChangeInfo.Id))
	}
	return nil
}
