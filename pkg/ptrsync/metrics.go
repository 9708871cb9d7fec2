package ptrsync

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	records *prometheus.CounterVec
	scopes  *prometheus.CounterVec
	upserts *prometheus.CounterVec
	zones   *prometheus.CounterVec
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	var m metrics
	var err error
	m.records, err = registerCounterVec(registerer, prometheus.CounterOpts{
		Name: "ptrsync_records_total",
		Help: "Record sets examined, by record type and outcome",
	}, "type", "outcome")
	if err != nil {
		return nil, err
	}
	m.scopes, err = registerCounterVec(registerer, prometheus.CounterOpts{
		Name: "ptrsync_scopes_total",
		Help: "Scopes attempted, by outcome",
	}, "outcome")
	if err != nil {
		return nil, err
	}
	m.upserts, err = registerCounterVec(registerer, prometheus.CounterOpts{
		Name: "ptrsync_upserts_total",
		Help: "PTR record upserts, by outcome",
	}, "outcome")
	if err != nil {
		return nil, err
	}
	m.zones, err = registerCounterVec(registerer, prometheus.CounterOpts{
		Name: "ptrsync_zones_total",
		Help: "Forward zones attempted, by outcome",
	}, "outcome")
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Synchronizers sharing a registry share counters.
func registerCounterVec(registerer prometheus.Registerer,
	opts prometheus.CounterOpts, labels ...string) (
	*prometheus.CounterVec, error) {
	counterVec := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(counterVec); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counterVec, nil
}
