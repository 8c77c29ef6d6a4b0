package registry

import (
	"sort"
	"time"

	"github.com/raceworks/car-number-registry/internal/models"
	"github.com/raceworks/car-number-registry/internal/period"
)

// MakeCount is one row of the car-make frequency table.
type MakeCount struct {
	Make  string `json:"make"`
	Count int    `json:"count"`
}

// StatsSnapshot is a point-in-time aggregate over every registration.
// Nothing in it is cached: each snapshot is computed fresh from a full
// store scan.
type StatsSnapshot struct {
	AsOf           time.Time   `json:"as_of"`
	Total          int         `json:"total"`
	Active         int         `json:"active"`
	Retired        int         `json:"retired"`
	Pending        int         `json:"pending"`
	ActiveInPeriod int         `json:"active_in_period"`
	ExpiringSoon   int         `json:"expiring_soon"`
	Expired        int         `json:"expired"`
	HighestNumber  int         `json:"highest_number"`
	CommonMakes    []MakeCount `json:"common_makes"`
}

// Aggregate computes a snapshot over regs as of asOf in a single pass.
// "Expiring soon" means an Active registration whose expiration falls
// within soonDays of asOf but has not passed yet; "expired" means the
// expiration date is strictly before asOf, whatever the status. The make
// table keeps original casing, skips blanks, and orders by descending
// count with first-seen order breaking ties.
func Aggregate(regs []models.Registration, asOf time.Time, soonDays int) *StatsSnapshot {
	snap := &StatsSnapshot{AsOf: asOf, Total: len(regs)}

	today := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	soonCutoff := today.AddDate(0, 0, soonDays)

	makeCounts := map[string]int{}
	makeOrder := map[string]int{}

	for _, reg := range regs {
		switch reg.Status {
		case models.StatusActive:
			snap.Active++
		case models.StatusRetired:
			snap.Retired++
		case models.StatusPending:
			snap.Pending++
		}

		if period.ActiveInPeriod(reg.ExpirationDate, reg.Status, asOf) {
			snap.ActiveInPeriod++
		}
		if reg.ExpirationDate.Before(today) {
			snap.Expired++
		}
		if reg.Status == models.StatusActive &&
			reg.ExpirationDate.After(today) && !reg.ExpirationDate.After(soonCutoff) {
			snap.ExpiringSoon++
		}

		if reg.SortKey != nil && *reg.SortKey > snap.HighestNumber {
			snap.HighestNumber = *reg.SortKey
		}

		if reg.CarMake != "" {
			if _, seen := makeCounts[reg.CarMake]; !seen {
				makeOrder[reg.CarMake] = len(makeOrder)
			}
			makeCounts[reg.CarMake]++
		}
	}

	snap.CommonMakes = make([]MakeCount, 0, len(makeCounts))
	for name, count := range makeCounts {
		snap.CommonMakes = append(snap.CommonMakes, MakeCount{Make: name, Count: count})
	}
	sort.Slice(snap.CommonMakes, func(i, j int) bool {
		a, b := snap.CommonMakes[i], snap.CommonMakes[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return makeOrder[a.Make] < makeOrder[b.Make]
	})

	return snap
}

// Stats scans the whole store and aggregates it as of asOf (now when zero).
func (s *Service) Stats(asOf time.Time) (*StatsSnapshot, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	var regs []models.Registration
	if err := s.db.Find(&regs).Error; err != nil {
		return nil, err
	}
	return Aggregate(regs, asOf, s.expiringSoon), nil
}
