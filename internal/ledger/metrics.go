package ledger

import "github.com/prometheus/client_golang/prometheus"

var (
	// ledgerParticipants gauges the registered participants as of the last
	// persisted snapshot.
	ledgerParticipants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_participants",
			Help: "Number of registered participants.",
		},
	)

	// ledgerTickets gauges the sum of all participants' tickets.
	ledgerTickets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_tickets",
			Help: "Total tickets across all participants.",
		},
	)

	// ledgerMutations counts applied mutations by operation.
	ledgerMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_mutations_total",
			Help: "Total number of ledger mutations by operation.",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(ledgerParticipants, ledgerTickets, ledgerMutations)
}
