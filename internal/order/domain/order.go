package domain

import "time"

type Status string

const (
	StatusOrdered    Status = "ORDERED"
	StatusAccepted   Status = "ACCEPTED"
	StatusCooking    Status = "COOKING"
	StatusDelivering Status = "DELIVERING"
	StatusDelivered  Status = "DELIVERED"
	StatusCanceled   Status = "CANCELED"
)

var order = map[Status]int{
	StatusOrdered:    0,
	StatusAccepted:   1,
	StatusCooking:    2,
	StatusDelivering: 3,
	StatusDelivered:  4,
}

func (s Status) Valid() bool {
	if s == StatusCanceled {
		return true
	}
	_, ok := order[s]
	return ok
}

// CanTransition reports whether an order may move from s to next. The flow
// is forward-only, one step at a time; cancellation is allowed any time
// before delivery.
func (s Status) CanTransition(next Status) bool {
	if s == StatusCanceled || s == StatusDelivered {
		return false
	}
	if next == StatusCanceled {
		return true
	}

	from, ok := order[s]
	if !ok {
		return false
	}
	to, ok := order[next]
	if !ok {
		return false
	}

	return to == from+1
}

// Order snapshots the menu name at placement time so later menu edits do not
// rewrite order history.
type Order struct {
	ID         int64
	StoreID    int64
	UserID     int64
	MenuName   string
	Status     Status
	CreatedAt  time.Time
	ModifiedAt time.Time
}
