package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	provider := New()
	zone := provider.AddZone("in-addr.arpa")
	ptr := dns.RecordSet{
		Name:   "5.0.0.10.in-addr.arpa.",
		Type:   dns.TypePTR,
		Values: []string{"old.example.com."},
	}
	require.NoError(t, provider.UpsertRecordSet(ctx, zone.Id, ptr))
	ptr.Values = []string{"new.example.com."}
	require.NoError(t, provider.UpsertRecordSet(ctx, zone.Id, ptr))
	recordSets, err := provider.ListRecordSets(ctx, zone.Id)
	require.NoError(t, err)
	require.Len(t, recordSets, 1)
	assert.Equal(t, []string{"new.example.com."}, recordSets[0].Values)
	assert.Len(t, provider.Upserts(), 2)
}

func TestCreateZoneCallerReference(t *testing.T) {
	ctx := context.Background()
	provider := New()
	zone, err := provider.CreateZone(ctx, "in-addr.arpa.", "ref", "")
	require.NoError(t, err)
	_, err = provider.CreateZone(ctx, "in-addr.arpa.", "ref", "")
	assert.True(t, errors.Is(err, dns.ErrZoneExists))
	zones, err := provider.ListZonesByName(ctx, "IN-ADDR.ARPA")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, zone.Id, zones[0].Id)
	assert.Equal(t, 2, provider.CreateCalls())
}

func TestFailures(t *testing.T) {
	ctx := context.Background()
	provider := New()
	zone := provider.AddZone("example.com.")
	provider.FailListRecordSets(zone.Id, errors.New("boom"))
	_, err := provider.ListRecordSets(ctx, zone.Id)
	assert.Error(t, err)
	provider.FailListZones(errors.New("boom"))
	_, err = provider.ListZones(ctx)
	assert.Error(t, err)
	provider.FailUpsert("x.example.com", errors.New("boom"))
	err = provider.UpsertRecordSet(ctx, zone.Id,
		dns.RecordSet{Name: "X.example.com.", Type: dns.TypeA})
	assert.Error(t, err)
	_, err = provider.ListRecordSets(ctx, "ZNONE")
	assert.Error(t, err)
}
