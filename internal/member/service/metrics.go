package service

import (
	"github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	"github.com/teamnine/humanofdelivery/backend/internal/observability/metrics"
)

func incrementMembersRegistered(role domain.Role) {
	metrics.MembersRegistered.WithLabelValues(string(role)).Inc()
}

func incrementMemberLogins() {
	metrics.MemberLogins.Inc()
}

func incrementMemberLoginFailures(reason string) {
	metrics.MemberLoginFailures.WithLabelValues(reason).Inc()
}

func incrementMembersDeactivated() {
	metrics.MembersDeactivated.Inc()
}

func incrementProfileLookups(role domain.Role) {
	metrics.MemberProfileLookups.WithLabelValues(string(role)).Inc()
}
