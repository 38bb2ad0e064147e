package domain_test

import (
	"testing"

	"github.com/teamnine/humanofdelivery/backend/internal/order/domain"
)

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.Status
		to   domain.Status
		want bool
	}{
		{"ordered to accepted", domain.StatusOrdered, domain.StatusAccepted, true},
		{"accepted to cooking", domain.StatusAccepted, domain.StatusCooking, true},
		{"cooking to delivering", domain.StatusCooking, domain.StatusDelivering, true},
		{"delivering to delivered", domain.StatusDelivering, domain.StatusDelivered, true},
		{"ordered skips to cooking", domain.StatusOrdered, domain.StatusCooking, false},
		{"accepted back to ordered", domain.StatusAccepted, domain.StatusOrdered, false},
		{"ordered to canceled", domain.StatusOrdered, domain.StatusCanceled, true},
		{"delivering to canceled", domain.StatusDelivering, domain.StatusCanceled, true},
		{"delivered to canceled", domain.StatusDelivered, domain.StatusCanceled, false},
		{"delivered is terminal", domain.StatusDelivered, domain.StatusDelivered, false},
		{"canceled is terminal", domain.StatusCanceled, domain.StatusAccepted, false},
		{"unknown target", domain.StatusOrdered, domain.Status("BOGUS"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []domain.Status{
		domain.StatusOrdered,
		domain.StatusAccepted,
		domain.StatusCooking,
		domain.StatusDelivering,
		domain.StatusDelivered,
		domain.StatusCanceled,
	} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}

	if domain.Status("BOGUS").Valid() {
		t.Error("expected BOGUS to be invalid")
	}
}
