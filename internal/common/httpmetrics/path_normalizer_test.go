package httpmetrics_test

import (
	"testing"

	"github.com/teamnine/humanofdelivery/backend/internal/common/httpmetrics"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/members/42", "/api/members/{id}"},
		{"/api/stores/7/menus/13", "/api/stores/{id}/menus/{id}"},
		{"/api/members/signup", "/api/members/signup"},
		{"/health", "/health"},
		{"", "/"},
		{"/api/members/42abc", "/api/members/42abc"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := httpmetrics.NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
