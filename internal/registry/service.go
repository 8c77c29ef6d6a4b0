// Package registry is the reservation engine: it owns the registration
// store and the rules for creating, editing, and expiring reserved car
// numbers. HTTP handlers call into it and never touch derived fields
// themselves.
package registry

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/raceworks/car-number-registry/internal/models"
	"github.com/raceworks/car-number-registry/internal/period"
)

type Service struct {
	db            *gorm.DB
	currentSeason int
	expiringSoon  int
	now           func() time.Time
}

// NewService wires the engine to its store. currentSeason is the configured
// cycle year used when a reservation is created without one, and
// expiringSoonDays the stats window for "expiring soon"; both are injected
// here rather than read from a global.
func NewService(db *gorm.DB, currentSeason, expiringSoonDays int) *Service {
	if expiringSoonDays <= 0 {
		expiringSoonDays = 30
	}
	return &Service{db: db, currentSeason: currentSeason, expiringSoon: expiringSoonDays, now: time.Now}
}

// CreateInput carries the caller-supplied fields for a new reservation.
// ReservedYear and ReservedDate default to the current season and today.
type CreateInput struct {
	FirstName    string
	LastName     string
	CarNumber    string
	Vehicle      models.VehicleFields
	ReservedDate time.Time
	ReservedYear int
	Status       models.Status
	Notes        string
}

// UpdateInput lists the editable fields; nil pointers leave the stored
// value untouched.
type UpdateInput struct {
	FirstName    *string
	LastName     *string
	CarNumber    *string
	CarMake      *string
	CarModel     *string
	CarYear      *int
	CarColor     *string
	ReservedDate *time.Time
	ReservedYear *int
	Status       *models.Status
	Notes        *string
}

// recompute refreshes every derived field from its inputs. All mutating
// paths must go through it before persisting.
func (s *Service) recompute(reg *models.Registration) error {
	reg.SortKey = SortKey(reg.CarNumber)
	expiration, err := period.Compute(reg.ReservedYear, reg.LastUsageYear)
	if err != nil {
		return err
	}
	reg.ExpirationDate = expiration
	reg.IsActiveInPeriod = period.ActiveInPeriod(expiration, reg.Status, s.now())
	return nil
}

func validateRequired(firstName, lastName, carNumber string) error {
	if strings.TrimSpace(firstName) == "" {
		return validationErr("first_name", "is required")
	}
	if strings.TrimSpace(lastName) == "" {
		return validationErr("last_name", "is required")
	}
	if strings.TrimSpace(carNumber) == "" {
		return validationErr("car_number", "is required")
	}
	return nil
}

// Create reserves a car number. Duplicate numbers are allowed: two drivers
// may hold "7" at once, and "007" does not collide with "7" either.
func (s *Service) Create(input CreateInput) (*models.Registration, error) {
	if err := validateRequired(input.FirstName, input.LastName, input.CarNumber); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = models.StatusActive
	}
	if !input.Status.Valid() {
		return nil, validationErr("status", "must be Active, Retired, or Pending")
	}
	if input.ReservedYear == 0 {
		input.ReservedYear = s.currentSeason
	}
	if input.ReservedDate.IsZero() {
		input.ReservedDate = s.now()
	}

	reg := models.Registration{
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		CarNumber:     strings.TrimSpace(input.CarNumber),
		VehicleFields: input.Vehicle,
		ReservedDate:  input.ReservedDate,
		ReservedYear:  input.ReservedYear,
		Status:        input.Status,
		Notes:         strings.TrimSpace(input.Notes),
	}
	if err := s.recompute(&reg); err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&reg).Error
	}); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *Service) Get(id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := s.db.First(&reg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// Update edits a registration and recomputes its derived fields inside one
// transaction, so a partially updated row is never observable.
func (s *Service) Update(id uint, input UpdateInput) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if input.FirstName != nil {
			reg.FirstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			reg.LastName = strings.TrimSpace(*input.LastName)
		}
		if input.CarNumber != nil {
			reg.CarNumber = strings.TrimSpace(*input.CarNumber)
		}
		if input.CarMake != nil {
			reg.CarMake = strings.TrimSpace(*input.CarMake)
		}
		if input.CarModel != nil {
			reg.CarModel = strings.TrimSpace(*input.CarModel)
		}
		if input.CarYear != nil {
			reg.CarYear = *input.CarYear
		}
		if input.CarColor != nil {
			reg.CarColor = strings.TrimSpace(*input.CarColor)
		}
		if input.ReservedDate != nil {
			reg.ReservedDate = *input.ReservedDate
		}
		if input.ReservedYear != nil {
			reg.ReservedYear = *input.ReservedYear
		}
		if input.Status != nil {
			if !input.Status.Valid() {
				return validationErr("status", "must be Active, Retired, or Pending")
			}
			reg.Status = *input.Status
		}
		if input.Notes != nil {
			reg.Notes = strings.TrimSpace(*input.Notes)
		}

		if err := validateRequired(reg.FirstName, reg.LastName, reg.CarNumber); err != nil {
			return err
		}
		if err := s.recompute(&reg); err != nil {
			return err
		}
		return tx.Save(&reg).Error
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Delete removes a registration for good. There is no tombstone: the id is
// never reused because ids are auto-assigned and only ever grow.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Delete(&models.Registration{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// RecordUsage logs that the number was used in the given year (the current
// season when year is nil), bumps the usage counter, and extends the
// rolling period. The supplied year replaces last_usage_year outright even
// when it is earlier than the year already on file; see the pinning test
// before changing that.
func (s *Service) RecordUsage(id uint, year *int) (*models.Registration, error) {
	usageYear := s.now().Year()
	if year != nil {
		usageYear = *year
	}

	var reg models.Registration
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		reg.LastUsageYear = &usageYear
		reg.UsageCount++
		if err := s.recompute(&reg); err != nil {
			return err
		}
		return tx.Save(&reg).Error
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// RemoveUsage undoes one usage event's counter, floored at zero. It
// deliberately leaves last_usage_year and the expiration date alone:
// removing a usage never claws back a rolling-period extension already
// granted.
func (s *Service) RemoveUsage(id uint) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if reg.UsageCount > 0 {
			reg.UsageCount--
		}
		return tx.Save(&reg).Error
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Filter narrows List results. NameContains matches a substring of the
// first name, last name, or the combined "first last" form; Number matches
// the car number exactly, or numerically through the sort key so that "1"
// also finds "001".
type Filter struct {
	NameContains string
	Number       string
}

// List returns registrations ordered for display: sort key ascending with
// non-numeric numbers last, then car number string ascending as the
// tie-break (so "001" sorts before "1" within the same key).
func (s *Service) List(f Filter) ([]models.Registration, error) {
	q := s.db.Model(&models.Registration{})

	if name := strings.TrimSpace(f.NameContains); name != "" {
		pattern := "%" + name + "%"
		q = q.Where(
			"first_name LIKE ? OR last_name LIKE ? OR (first_name || ' ' || last_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if number := strings.TrimSpace(f.Number); number != "" {
		if key := SortKey(number); key != nil {
			q = q.Where("sort_key = ? OR car_number = ?", *key, number)
		} else {
			q = q.Where("car_number = ?", number)
		}
	}

	var regs []models.Registration
	if err := q.Order("sort_key IS NULL, sort_key, car_number").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}
