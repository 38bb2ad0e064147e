package domain

import "time"

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

type Store struct {
	ID         int64
	Name       string
	Status     Status
	OwnerID    int64
	CreatedAt  time.Time
	ModifiedAt time.Time
}
