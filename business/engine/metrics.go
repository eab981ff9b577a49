package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AnswerEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_answer_events_total",
			Help: "Count of answered questions by question kind and answer.",
		},
		[]string{"kind", "answer"},
	)

	SessionOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_session_outcomes_total",
			Help: "Count of sessions reaching a terminal phase, by phase.",
		},
		[]string{"phase"},
	)
)

func init() {
	prometheus.MustRegister(AnswerEventsTotal, SessionOutcomesTotal)
}
