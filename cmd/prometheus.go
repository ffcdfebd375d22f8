package main

import (
	"remesa/internal/usecasees/structs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Claim map[structs.MetricConst]prometheus.Counter
}

func (a *App) initMetrics() {
	metrics := Metrics{Claim: map[structs.MetricConst]prometheus.Counter{}}

	for _, m := range []structs.MetricConst{
		structs.MetricClaimCompleted,
		structs.MetricClaimFailed,
		structs.MetricTradeExecuted,
		structs.MetricWithdrawalSubmitted,
	} {
		metrics.Claim[m] = promauto.NewCounter(prometheus.CounterOpts{
			Name: m.ToString(),
			Help: m.ToString(),
		})
	}

	a.Metrics = &metrics
}
