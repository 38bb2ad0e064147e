package service

import "github.com/teamnine/humanofdelivery/backend/internal/member/domain"

// Authorizer decides whether a member may act at all. It is injected so the
// lifecycle service stays independent of the concrete policy.
type Authorizer interface {
	Authorize(member domain.Member) error
}

// StatusAuthorizer rejects deactivated accounts.
type StatusAuthorizer struct{}

func (StatusAuthorizer) Authorize(member domain.Member) error {
	if member.Status == domain.StatusDeleted {
		return ErrUserDeactivated
	}
	return nil
}
