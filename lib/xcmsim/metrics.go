// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "xcmsim"

type metrics struct {
	sent      *prometheus.CounterVec
	delivered *prometheus.CounterVec
	rounds    prometheus.Histogram
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}

	m := &metrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "messages_sent_total",
			Help:      "total number of messages sent per sender chain and channel",
		}, []string{"chain", "channel"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "messages_delivered_total",
			Help:      "total number of messages delivered per recipient chain and channel",
		}, []string{"chain", "channel"}),
		rounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_rounds",
			Help:      "number of rounds needed by a dispatch to converge",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
	}

	var err error
	m.sent, err = register(registerer, m.sent)
	if err != nil {
		return nil, err
	}
	m.delivered, err = register(registerer, m.delivered)
	if err != nil {
		return nil, err
	}
	m.rounds, err = register(registerer, m.rounds)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// register registers the collector, or returns the collector already
// registered with the same description, so several networks can share
// one registerer.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) (T, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		existing, ok := alreadyRegistered.ExistingCollector.(T)
		if ok {
			return existing, nil
		}
	}
	return collector, fmt.Errorf("registering metrics: %w", err)
}

func chainLabel(id ChainID) string {
	return strconv.FormatUint(uint64(id), 10)
}
