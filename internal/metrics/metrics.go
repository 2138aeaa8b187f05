package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lifewheel",
		Name:      "assessment_steps_total",
		Help:      "Assessment submit steps by outcome.",
	}, []string{"step", "outcome"})

	AIGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lifewheel",
		Name:      "ai_generations_total",
		Help:      "AI text generations by kind (category, overall) and outcome.",
	}, []string{"kind", "outcome"})
)

const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
)
