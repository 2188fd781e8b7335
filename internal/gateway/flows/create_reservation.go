package flows

import (
	"fmt"
	"net/http"
	"strconv"

	"chedoparti/internal/gateway/core"
	"chedoparti/pkg/client"
	"chedoparti/pkg/middleware"
	"chedoparti/pkg/model"
)

// CreateReservation books a slot on behalf of a user: it verifies the
// requested duration is still offered at that start time, then submits the
// reservation with the caller's identity headers.
func CreateReservation(ctx *core.FlowContext) error {
	return core.RunSteps(ctx, []core.Step{
		core.NewStep("extract_input", extractReservationInput),
		core.NewStep("verify_slot", verifyRequestedSlot),
		core.NewStep("submit_reservation", submitReservation),
	})
}

func extractReservationInput(ctx *core.FlowContext) error {
	courtID, err := ctx.ExtractString("court_id")
	if err != nil {
		return err
	}
	date, err := ctx.ExtractString("date")
	if err != nil {
		return err
	}
	startTime, err := ctx.ExtractString("start_time")
	if err != nil {
		return err
	}
	durationMin, err := ctx.ExtractInt("duration_min")
	if err != nil {
		return err
	}
	userID, err := ctx.ExtractString("user_id")
	if err != nil {
		return err
	}

	ctx.Process["court_id"] = courtID
	ctx.Process["date"] = date
	ctx.Process["start_time"] = startTime
	ctx.Process["duration_min"] = durationMin
	ctx.Process["user_id"] = userID
	ctx.Process["user_role"] = ctx.OptionalString("user_role")
	ctx.Process["member"] = ctx.OptionalBool("member")
	ctx.Process["notes"] = ctx.OptionalString("notes")
	ctx.Process["type"] = ctx.OptionalString("type")
	return nil
}

func verifyRequestedSlot(ctx *core.FlowContext) error {
	courtID := ctx.Process["court_id"].(string)
	date := ctx.Process["date"].(string)
	startTime := ctx.Process["start_time"].(string)
	durationMin := ctx.Process["duration_min"].(int)

	resp, err := ctx.Client.Reservations.Availability(courtID, date, startTime)
	if err != nil {
		return fmt.Errorf("availability lookup failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("availability lookup rejected: %s", client.GetErrorMessage(resp))
	}

	options, err := ctx.Client.Reservations.DecodeAvailability(resp)
	if err != nil {
		return err
	}

	for _, option := range options {
		if option.Minutes == durationMin {
			return nil
		}
	}
	return fmt.Errorf("duration %d min is not available at %s on %s", durationMin, startTime, date)
}

func submitReservation(ctx *core.FlowContext) error {
	reservation := model.Reservation{
		CourtID:     ctx.Process["court_id"].(string),
		Date:        ctx.Process["date"].(string),
		StartTime:   ctx.Process["start_time"].(string),
		DurationMin: ctx.Process["duration_min"].(int),
		Notes:       ctx.Process["notes"].(string),
		Type:        ctx.Process["type"].(string),
	}

	headers := map[string]string{
		middleware.HeaderUserID:     ctx.Process["user_id"].(string),
		middleware.HeaderUserRole:   ctx.Process["user_role"].(string),
		middleware.HeaderUserMember: strconv.FormatBool(ctx.Process["member"].(bool)),
	}

	resp, err := ctx.Client.Reservations.Create(reservation, headers)
	if err != nil {
		return fmt.Errorf("reservation create failed: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("reservation rejected: %s", client.GetErrorMessage(resp))
	}

	created, err := ctx.Client.Reservations.DecodeReservation(resp)
	if err != nil {
		return err
	}

	ctx.Output["reservation"] = created
	return nil
}
