package domain

import "time"

type Status string

const (
	StatusOnSale  Status = "ON_SALE"
	StatusSoldOut Status = "SOLD_OUT"
	StatusDeleted Status = "DELETED"
)

func (s Status) Valid() bool {
	return s == StatusOnSale || s == StatusSoldOut || s == StatusDeleted
}

type Menu struct {
	ID         int64
	StoreID    int64
	Name       string
	Price      int
	Status     Status
	CreatedAt  time.Time
	ModifiedAt time.Time
}
