package models

import (
	"time"

	"gorm.io/gorm"
)

// Status is the administrative state of a registration. It is independent
// of the rolling period: a Retired number is never active in period, no
// matter what its expiration date says.
type Status string

const (
	StatusActive  Status = "Active"
	StatusRetired Status = "Retired"
	StatusPending Status = "Pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusRetired, StatusPending:
		return true
	}
	return false
}

// VehicleFields describes the car attached to a reserved number.
type VehicleFields struct {
	CarMake  string `json:"car_make"`
	CarModel string `json:"car_model"`
	CarYear  int    `json:"car_year"`
	CarColor string `json:"car_color"`
}

type Registration struct {
	gorm.Model
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// CarNumber is free-form text ("001", "14"). Duplicates are allowed;
	// SortKey orders numbers for display and is nil for non-numeric values.
	CarNumber string `json:"car_number" gorm:"index"`
	SortKey   *int   `json:"sort_key"`

	VehicleFields `gorm:"embedded"`

	ReservedDate time.Time `json:"reserved_date"`
	ReservedYear int       `json:"reserved_year"`
	Status       Status    `json:"status" gorm:"default:Active"`
	Notes        string    `json:"notes"`

	// Rolling-period state. LastUsageYear and UsageCount are written by the
	// usage recorder; ExpirationDate and IsActiveInPeriod are derived and
	// recomputed on every mutating path before persisting.
	LastUsageYear    *int      `json:"last_usage_year"`
	UsageCount       int       `json:"usage_count"`
	ExpirationDate   time.Time `json:"expiration_date"`
	IsActiveInPeriod bool      `json:"is_active_in_period"`
}

// OwnerName renders the two-part owner name the way search matches it.
func (r *Registration) OwnerName() string {
	return r.FirstName + " " + r.LastName
}
