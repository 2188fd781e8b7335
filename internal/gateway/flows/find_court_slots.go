package flows

import (
	"fmt"
	"net/http"
	"sync"

	"chedoparti/internal/gateway/core"
	"chedoparti/pkg/availability"
	"chedoparti/pkg/client"
	"chedoparti/pkg/model"
)

// FindCourtSlots answers "where can I play <sport> at <time> on <date>": it
// searches active courts for the sport and fans out one availability call per
// court, keeping only courts with at least one bookable duration.
func FindCourtSlots(ctx *core.FlowContext) error {
	sport, err := ctx.ExtractString("sport")
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

	resp, err := ctx.Client.Courts.Search(ctx.OptionalString("institution_id"), sport, 0, 0)
	if err != nil {
		return fmt.Errorf("court search failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("court search rejected: %s", client.GetErrorMessage(resp))
	}
	courts, _, err := ctx.Client.Courts.DecodeCourts(resp)
	if err != nil {
		return err
	}

	type courtSlots struct {
		Court     *model.Court                  `json:"court"`
		Durations []availability.DurationOption `json:"durations"`
	}

	results := make([]*courtSlots, len(courts))
	var wg sync.WaitGroup

	for i, court := range courts {
		wg.Add(1)
		go func(i int, court *model.Court) {
			defer wg.Done()
			core.RunWithRateLimitedConcurrency(func() {
				resp, err := ctx.Client.Reservations.Availability(court.ID, date, startTime)
				if err != nil || resp.StatusCode != http.StatusOK {
					ctx.Log.Warn("Availability lookup failed, skipping court",
						"court_id", court.ID,
						"error", err,
					)
					return
				}
				options, err := ctx.Client.Reservations.DecodeAvailability(resp)
				if err != nil || len(options) == 0 {
					return
				}
				results[i] = &courtSlots{Court: court, Durations: options}
			})
		}(i, court)
	}
	wg.Wait()

	available := make([]*courtSlots, 0, len(results))
	for _, r := range results {
		if r != nil {
			available = append(available, r)
		}
	}

	ctx.Output["sport"] = sport
	ctx.Output["date"] = date
	ctx.Output["start_time"] = startTime
	ctx.Output["courts"] = available
	return nil
}
