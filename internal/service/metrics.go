package service

import "github.com/prometheus/client_golang/prometheus"

var (
	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_application_status_transitions_total",
			Help: "Job application status changes",
		},
		[]string{"from", "to"},
	)
	entitiesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_entities_created_total",
			Help: "Entities created through the API",
		},
		[]string{"kind"},
	)
)

func init() { prometheus.MustRegister(statusTransitions, entitiesCreated) }
