/*
Package invoke implements event handlers for the PTR synchronizer and the
reverse lookup utility. Handlers always return a Response; failures are
reported through the status code and body, never as errors.
*/
package invoke

import (
	"context"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/ptrsync/pkg/lookup"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync/config"
	"github.com/prometheus/client_golang/prometheus"
)

type LookupEvent struct {
	IpAddress string `json:"ip_address"`
}

type LookupHandler struct {
	client *lookup.Client
	logger log.DebugLogger
}

type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// SyncEvent may override the configured regions and dry-run setting.
type SyncEvent struct {
	DryRun  *bool    `json:"dry_run,omitempty"`
	Regions []string `json:"regions,omitempty"`
}

type SyncHandler struct {
	config config.Config
	params SyncParams
}

type SyncParams struct {
	Logger          log.DebugLogger
	ProviderFactory ptrsync.ProviderFactory // Default: Route 53.
	Registerer      prometheus.Registerer
}

// NewLookupHandler creates a handler which resolves the IP address in each
// event using client.
func NewLookupHandler(client *lookup.Client,
	logger log.DebugLogger) *LookupHandler {
	return newLookupHandler(client, logger)
}

// NewSyncHandler creates a handler which runs a synchronization for each
// event using the provided configuration.
func NewSyncHandler(cfg config.Config, params SyncParams) *SyncHandler {
	return newSyncHandler(cfg, params)
}

// Handle returns 200 with the lookup result, or 400 if the address is invalid
// or has no PTR record, or 500 for other failures.
func (h *LookupHandler) Handle(ctx context.Context, event LookupEvent) (
	Response, error) {
	return h.handle(ctx, event), nil
}

// Handle returns 200 with a run summary, or 500 if no zone could be processed.
func (h *SyncHandler) Handle(ctx context.Context, event SyncEvent) (
	Response, error) {
	return h.handle(ctx, event), nil
}
