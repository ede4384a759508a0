package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	signupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hobby_directory",
		Subsystem: "accounts",
		Name:      "signups_total",
		Help:      "Number of sign-up attempts by outcome.",
	}, []string{"outcome"})
	loginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hobby_directory",
		Subsystem: "accounts",
		Name:      "logins_total",
		Help:      "Number of sign-in attempts by outcome.",
	}, []string{"outcome"})
	activitiesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hobby_directory",
		Subsystem: "directory",
		Name:      "activities_created_total",
		Help:      "Number of activity listings created.",
	})
	activitiesDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hobby_directory",
		Subsystem: "directory",
		Name:      "activities_soft_deleted_total",
		Help:      "Number of activity listings soft-deleted.",
	})
)

func init() {
	prometheus.MustRegister(signupsTotal, loginsTotal, activitiesCreatedTotal, activitiesDeletedTotal)
}

// RecordSignup counts a sign-up attempt. outcome is "ok", "rejected", or
// "conflict".
func RecordSignup(outcome string) { signupsTotal.WithLabelValues(outcome).Inc() }

// RecordLogin counts a sign-in attempt. outcome is "ok" or "invalid".
func RecordLogin(outcome string) { loginsTotal.WithLabelValues(outcome).Inc() }

// RecordActivityCreated counts a created listing.
func RecordActivityCreated() { activitiesCreatedTotal.Inc() }

// RecordActivitySoftDeleted counts a soft-deleted listing.
func RecordActivitySoftDeleted() { activitiesDeletedTotal.Inc() }
