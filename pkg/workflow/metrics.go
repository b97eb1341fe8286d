package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var movementSubmits = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "console",
	Subsystem: "workflow",
	Name:      "submits_total",
	Help:      "Total money-movement submits by workflow and outcome.",
}, []string{"workflow", "outcome"})
