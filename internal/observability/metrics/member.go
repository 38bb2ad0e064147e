package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MembersRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "members_registered_total",
			Help: "Total number of registered members",
		},
		[]string{"role"},
	)

	MemberLogins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "member_logins_total",
			Help: "Total number of successful logins",
		},
	)

	MemberLoginFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_login_failures_total",
			Help: "Total number of failed logins",
		},
		[]string{"reason"},
	)

	MembersDeactivated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "members_deactivated_total",
			Help: "Total number of deactivated members",
		},
	)

	MemberProfileLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_profile_lookups_total",
			Help: "Total number of member profile lookups",
		},
		[]string{"role"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of currently active sessions",
		},
	)
)
