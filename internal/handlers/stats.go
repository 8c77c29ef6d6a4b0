package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/raceworks/car-number-registry/internal/registry"
)

type StatsRequest struct {
	AsOf string `query:"as_of" doc:"Snapshot date (YYYY-MM-DD); defaults to today"`
}

type StatsResponse struct {
	Body registry.StatsSnapshot
}

func (h *RegistrationHandler) HandleStats(ctx context.Context, input *StatsRequest) (*StatsResponse, error) {
	var asOf time.Time
	if input.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", input.AsOf)
		if err != nil {
			return nil, huma.Error400BadRequest("as_of must be a YYYY-MM-DD date")
		}
		asOf = parsed
	}

	snap, err := h.service.Stats(asOf)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &StatsResponse{Body: *snap}, nil
}

type CheckNumberRequest struct {
	Number string `path:"number" doc:"Car number to check"`
}

type CheckNumberResponse struct {
	Body struct {
		Available bool   `json:"available"`
		Driver    string `json:"driver,omitempty"`
		CarInfo   string `json:"car_info,omitempty"`
	}
}

// HandleCheckNumber reports whether a number is taken. Duplicates are
// allowed, so "taken" is informational: it names the first current holder.
func (h *RegistrationHandler) HandleCheckNumber(ctx context.Context, input *CheckNumberRequest) (*CheckNumberResponse, error) {
	regs, err := h.service.List(registry.Filter{Number: input.Number})
	if err != nil {
		return nil, mapServiceError(err)
	}

	res := &CheckNumberResponse{}
	if len(regs) == 0 {
		res.Body.Available = true
		return res, nil
	}

	holder := regs[0]
	res.Body.Available = false
	res.Body.Driver = holder.OwnerName()
	res.Body.CarInfo = fmt.Sprintf("%s %s %d %s", holder.CarMake, holder.CarModel, holder.CarYear, holder.CarColor)
	return res, nil
}
