package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/raceworks/car-number-registry/internal/metrics"
	"github.com/raceworks/car-number-registry/internal/models"
	"github.com/raceworks/car-number-registry/internal/notifier"
	"github.com/raceworks/car-number-registry/internal/period"
	"github.com/raceworks/car-number-registry/internal/registry"
)

type RegistrationHandler struct {
	service  *registry.Service
	notifier notifier.Notifier
	metrics  *metrics.Metrics
}

func NewRegistrationHandler(service *registry.Service, n notifier.Notifier, m *metrics.Metrics) *RegistrationHandler {
	return &RegistrationHandler{service: service, notifier: n, metrics: m}
}

// mapServiceError translates engine errors into HTTP ones. An invalid-state
// error from the expiration calculator means a broken invariant, not bad
// user input, so it surfaces as a 500.
func mapServiceError(err error) error {
	var verr *registry.ValidationError
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return huma.Error404NotFound("Registration not found")
	case errors.As(err, &verr):
		return huma.Error400BadRequest(verr.Error())
	case errors.Is(err, period.ErrMissingYear):
		log.Printf("invariant violation: %v", err)
		return huma.Error500InternalServerError("Registration has no reservation year")
	default:
		return huma.Error500InternalServerError("Failed to process registration: " + err.Error())
	}
}

type RegistrationBody struct {
	FirstName    string    `json:"first_name" doc:"Driver first name"`
	LastName     string    `json:"last_name" doc:"Driver last name"`
	CarNumber    string    `json:"car_number" doc:"Reserved car number, free-form (e.g. 001)"`
	CarMake      string    `json:"car_make,omitempty" doc:"Car make"`
	CarModel     string    `json:"car_model,omitempty" doc:"Car model"`
	CarYear      int       `json:"car_year,omitempty" doc:"Car model year"`
	CarColor     string    `json:"car_color,omitempty" doc:"Car color"`
	ReservedDate time.Time `json:"reserved_date,omitempty" doc:"Date the number was claimed; defaults to today"`
	ReservedYear int       `json:"reserved_year,omitempty" doc:"Season the reservation belongs to; defaults to the current season"`
	Status       string    `json:"status,omitempty" doc:"Active, Retired, or Pending; defaults to Active"`
	Notes        string    `json:"notes,omitempty" doc:"Free-form notes"`
}

type CreateRegistrationRequest struct {
	Body RegistrationBody
}

type RegistrationResponse struct {
	Body models.Registration
}

func (h *RegistrationHandler) HandleCreate(ctx context.Context, input *CreateRegistrationRequest) (*RegistrationResponse, error) {
	reg, err := h.service.Create(registry.CreateInput{
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		CarNumber: input.Body.CarNumber,
		Vehicle: models.VehicleFields{
			CarMake:  input.Body.CarMake,
			CarModel: input.Body.CarModel,
			CarYear:  input.Body.CarYear,
			CarColor: input.Body.CarColor,
		},
		ReservedDate: input.Body.ReservedDate,
		ReservedYear: input.Body.ReservedYear,
		Status:       models.Status(input.Body.Status),
		Notes:        input.Body.Notes,
	})
	if err != nil {
		return nil, mapServiceError(err)
	}

	if h.metrics != nil {
		h.metrics.RegistrationsCreated.Inc()
	}
	if h.notifier != nil {
		if err := h.notifier.NotifyReservation(*reg); err != nil {
			log.Printf("Failed to notify reservation: %v", err)
		}
	}

	return &RegistrationResponse{Body: *reg}, nil
}

type GetRegistrationRequest struct {
	ID uint `path:"id" doc:"Registration id"`
}

func (h *RegistrationHandler) HandleGet(ctx context.Context, input *GetRegistrationRequest) (*RegistrationResponse, error) {
	reg, err := h.service.Get(input.ID)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &RegistrationResponse{Body: *reg}, nil
}

type UpdateRegistrationRequest struct {
	ID   uint `path:"id" doc:"Registration id"`
	Body struct {
		FirstName    *string    `json:"first_name,omitempty" doc:"Driver first name"`
		LastName     *string    `json:"last_name,omitempty" doc:"Driver last name"`
		CarNumber    *string    `json:"car_number,omitempty" doc:"Reserved car number"`
		CarMake      *string    `json:"car_make,omitempty" doc:"Car make"`
		CarModel     *string    `json:"car_model,omitempty" doc:"Car model"`
		CarYear      *int       `json:"car_year,omitempty" doc:"Car model year"`
		CarColor     *string    `json:"car_color,omitempty" doc:"Car color"`
		ReservedDate *time.Time `json:"reserved_date,omitempty" doc:"Date the number was claimed"`
		ReservedYear *int       `json:"reserved_year,omitempty" doc:"Season the reservation belongs to"`
		Status       *string    `json:"status,omitempty" doc:"Active, Retired, or Pending"`
		Notes        *string    `json:"notes,omitempty" doc:"Free-form notes"`
	}
}

func (h *RegistrationHandler) HandleUpdate(ctx context.Context, input *UpdateRegistrationRequest) (*RegistrationResponse, error) {
	update := registry.UpdateInput{
		FirstName:    input.Body.FirstName,
		LastName:     input.Body.LastName,
		CarNumber:    input.Body.CarNumber,
		CarMake:      input.Body.CarMake,
		CarModel:     input.Body.CarModel,
		CarYear:      input.Body.CarYear,
		CarColor:     input.Body.CarColor,
		ReservedDate: input.Body.ReservedDate,
		ReservedYear: input.Body.ReservedYear,
		Notes:        input.Body.Notes,
	}
	if input.Body.Status != nil {
		status := models.Status(*input.Body.Status)
		update.Status = &status
	}

	reg, err := h.service.Update(input.ID, update)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &RegistrationResponse{Body: *reg}, nil
}

type DeleteRegistrationRequest struct {
	ID uint `path:"id" doc:"Registration id"`
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *RegistrationHandler) HandleDelete(ctx context.Context, input *DeleteRegistrationRequest) (*MessageResponse, error) {
	if err := h.service.Delete(input.ID); err != nil {
		return nil, mapServiceError(err)
	}
	if h.metrics != nil {
		h.metrics.RegistrationsDeleted.Inc()
	}

	res := &MessageResponse{}
	res.Body.Message = "Registration deleted successfully"
	return res, nil
}

type ListRegistrationsRequest struct {
	Query  string `query:"q" doc:"Owner name substring (first, last, or full name)"`
	Number string `query:"number" doc:"Car number; numeric values also match zero-padded forms"`
}

type ListRegistrationsResponse struct {
	Body struct {
		Registrations []models.Registration `json:"registrations"`
		Total         int                   `json:"total"`
	}
}

func (h *RegistrationHandler) HandleList(ctx context.Context, input *ListRegistrationsRequest) (*ListRegistrationsResponse, error) {
	regs, err := h.service.List(registry.Filter{
		NameContains: input.Query,
		Number:       input.Number,
	})
	if err != nil {
		return nil, mapServiceError(err)
	}

	res := &ListRegistrationsResponse{}
	res.Body.Registrations = regs
	res.Body.Total = len(regs)
	return res, nil
}

type RecordUsageRequest struct {
	ID   uint `path:"id" doc:"Registration id"`
	Body struct {
		Year *int `json:"year,omitempty" doc:"Usage year; defaults to the current year"`
	}
}

func (h *RegistrationHandler) HandleRecordUsage(ctx context.Context, input *RecordUsageRequest) (*RegistrationResponse, error) {
	reg, err := h.service.RecordUsage(input.ID, input.Body.Year)
	if err != nil {
		return nil, mapServiceError(err)
	}
	if h.metrics != nil {
		h.metrics.UsageEvents.Inc()
	}
	return &RegistrationResponse{Body: *reg}, nil
}

type RemoveUsageRequest struct {
	ID uint `path:"id" doc:"Registration id"`
}

func (h *RegistrationHandler) HandleRemoveUsage(ctx context.Context, input *RemoveUsageRequest) (*RegistrationResponse, error) {
	reg, err := h.service.RemoveUsage(input.ID)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &RegistrationResponse{Body: *reg}, nil
}
