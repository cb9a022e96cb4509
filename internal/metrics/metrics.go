package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signInAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_signin_attempts_total",
		Help: "Number of sign-in attempts grouped by status.",
	}, []string{"status"})

	followToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_follow_toggles_total",
		Help: "Number of follow toggles grouped by outcome.",
	}, []string{"outcome"})

	passwordChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_password_changes_total",
		Help: "Number of password change attempts grouped by status.",
	}, []string{"status"})

	notificationViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_notification_views_total",
		Help: "Number of notification page views.",
	})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncSignIn increments the sign-in counter.
func IncSignIn(status string) {
	signInAttempts.WithLabelValues(status).Inc()
}

// IncFollowToggle increments the follow toggle counter.
func IncFollowToggle(outcome string) {
	followToggles.WithLabelValues(outcome).Inc()
}

// IncPasswordChange increments the password change counter.
func IncPasswordChange(status string) {
	passwordChanges.WithLabelValues(status).Inc()
}

// IncNotificationView increments the notification view counter.
func IncNotificationView() {
	notificationViews.Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
