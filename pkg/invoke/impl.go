package invoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/constants"
	"github.com/Cloud-Foundations/ptrsync/pkg/lookup"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync/config"
)

type lookupFailure struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type syncResult struct {
	Message string          `json:"message"`
	Summary ptrsync.Summary `json:"summary"`
}

func jsonResponse(statusCode int, value interface{}) Response {
	body, err := json.Marshal(value)
	if err != nil {
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       fmt.Sprintf("error encoding response: %s", err),
		}
	}
	return Response{StatusCode: statusCode, Body: string(body)}
}

func newLookupHandler(client *lookup.Client,
	logger log.DebugLogger) *LookupHandler {
	if logger == nil {
		logger = nulllogger.New()
	}
	return &LookupHandler{client: client, logger: logger}
}

func newSyncHandler(cfg config.Config, params SyncParams) *SyncHandler {
	if params.Logger == nil {
		params.Logger = nulllogger.New()
	}
	return &SyncHandler{config: cfg, params: params}
}

func (h *LookupHandler) handle(ctx context.Context,
	event LookupEvent) Response {
	address := event.IpAddress
	if address == "" {
		address = constants.DefaultLookupAddress
	}
	result, err := h.client.Lookup(ctx, address)
	if err == nil {
		return jsonResponse(http.StatusOK, result)
	}
	h.logger.Printf("Reverse DNS lookup failed for IP %s: %s\n", address, err)
	statusCode := http.StatusInternalServerError
	if errors.Is(err, lookup.ErrHostNotFound) ||
		errors.Is(err, lookup.ErrInvalidAddress) {
		statusCode = http.StatusBadRequest
	}
	return jsonResponse(statusCode, lookupFailure{
		Error:   "Reverse DNS lookup failed for IP " + address,
		Message: err.Error(),
	})
}

func (h *SyncHandler) handle(ctx context.Context, event SyncEvent) Response {
	cfg := h.config
	if len(event.Regions) > 0 {
		cfg.Regions = event.Regions
	}
	if event.DryRun != nil {
		cfg.DryRun = *event.DryRun
	}
	synchronizer, err := config.NewSynchronizer(cfg, config.Params{
		Logger:          h.params.Logger,
		ProviderFactory: h.params.ProviderFactory,
		Registerer:      h.params.Registerer,
	})
	if err != nil {
		h.params.Logger.Printf("error creating synchronizer: %s\n", err)
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       "Failed to create synchronizer: " + err.Error(),
		}
	}
	summary, err := synchronizer.Run(ctx, cfg.Scopes())
	if err != nil {
		h.params.Logger.Printf("synchronization failed: %s\n", err)
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       "Failed to process any hosted zone: " + err.Error(),
		}
	}
	return jsonResponse(http.StatusOK, syncResult{
		Message: constants.SyncCompletedMessage,
		Summary: summary,
	})
}
