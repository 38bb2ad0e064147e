package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleOwner
}

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// Member is one registered account. The password is held only as a hash.
type Member struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	ModifiedAt   time.Time
}
