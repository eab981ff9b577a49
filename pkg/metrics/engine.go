package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the game round HTTP handlers (answer, back, reveal)
	GameRoundLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "game_round_latency_seconds",
		Help:    "Latency of game round handlers",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of game sessions started
	GameSessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "game_sessions_started_total",
		Help: "Total number of game sessions started",
	})
)

func Init() {
	prometheus.MustRegister(
		GameRoundLatency,
		GameSessionsStarted,
	)
}
