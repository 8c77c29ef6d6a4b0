package period

import (
	"errors"
	"testing"
	"time"

	"github.com/raceworks/car-number-registry/internal/models"
)

func intPtr(v int) *int { return &v }

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		reservedYear  int
		lastUsageYear *int
		want          time.Time
	}{
		{"no usage", 2022, nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"usage after reservation", 2022, intPtr(2024), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"later usage wins", 2022, intPtr(2026), time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"usage before reservation still wins", 2022, intPtr(2020), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"usage only", 0, intPtr(2024), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.reservedYear, tt.lastUsageYear)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Compute(%d, %v) = %s, want %s", tt.reservedYear, tt.lastUsageYear, got, tt.want)
			}
		})
	}
}

func TestComputeMissingYears(t *testing.T) {
	_, err := Compute(0, nil)
	if !errors.Is(err, ErrMissingYear) {
		t.Fatalf("expected ErrMissingYear, got %v", err)
	}
}

func TestActiveInPeriod(t *testing.T) {
	expiration := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status models.Status
		now    time.Time
		want   bool
	}{
		{"active before expiration", models.StatusActive, time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC), true},
		{"active on expiration day", models.StatusActive, time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC), true},
		{"active after expiration", models.StatusActive, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"retired never active", models.StatusRetired, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"pending never active", models.StatusPending, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActiveInPeriod(expiration, tt.status, tt.now); got != tt.want {
				t.Errorf("ActiveInPeriod(%s, %s, %s) = %v, want %v", expiration, tt.status, tt.now, got, tt.want)
			}
		})
	}
}
