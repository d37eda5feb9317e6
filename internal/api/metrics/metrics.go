// Package metrics defines the custom Prometheus metrics for the jobs API.
// It is the single source of truth for metric names, labels and help strings.
// HTTP-level metrics (request counts, latencies) come from the echoprometheus
// middleware; the counters here track domain events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fieldserve"

// Label values for result-style counters.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// LoginsTotal counts login attempts, labelled by result.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations.",
	},
)

// TokenRefreshesTotal counts session refresh attempts, labelled by result.
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of session refresh attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDenialsTotal counts authorization denials, labelled by the denial
// reason ("role_mismatch" or "ownership_violation").
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of denied authorization checks, by reason.",
	},
	[]string{"reason"},
)

// JobsCreatedTotal counts created jobs, labelled by their initial status.
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs created, by initial status.",
	},
	[]string{"status"},
)

// JobStatusChangesTotal counts explicit status changes, labelled by the
// target status.
var JobStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_status_changes_total",
		Help:      "Total number of job status changes, by target status.",
	},
	[]string{"status"},
)

// JobAssignmentsTotal counts assignment operations, labelled by action
// ("assign" or "unassign").
var JobAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_assignments_total",
		Help:      "Total number of job assignment operations, by action.",
	},
	[]string{"action"},
)
