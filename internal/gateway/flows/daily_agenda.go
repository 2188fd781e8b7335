package flows

import (
	"fmt"
	"net/http"
	"sync"

	"chedoparti/internal/gateway/core"
	"chedoparti/pkg/client"
	"chedoparti/pkg/model"
)

const maxReservationsPerCourt = 100

// DailyAgenda assembles one day's reservations for an institution, court by
// court. With a court_id input it narrows to that single court.
func DailyAgenda(ctx *core.FlowContext) error {
	date, err := ctx.ExtractString("date")
	if err != nil {
		return err
	}

	courts, err := resolveCourts(ctx)
	if err != nil {
		return err
	}

	agenda := make(map[string][]*model.Reservation, len(courts))
	var mu sync.Mutex
	var wg sync.WaitGroup
	errs := make([]error, len(courts))

	for i, court := range courts {
		wg.Add(1)
		go func(i int, court *model.Court) {
			defer wg.Done()
			core.RunWithRateLimitedConcurrency(func() {
				resp, err := ctx.Client.Reservations.Search(court.ID, date, maxReservationsPerCourt, 0)
				if err != nil {
					errs[i] = fmt.Errorf("reservation search for court %s failed: %w", court.ID, err)
					return
				}
				if resp.StatusCode != http.StatusOK {
					errs[i] = fmt.Errorf("reservation search for court %s rejected: %s", court.ID, client.GetErrorMessage(resp))
					return
				}
				reservations, _, err := ctx.Client.Reservations.DecodeReservations(resp)
				if err != nil {
					errs[i] = err
					return
				}
				mu.Lock()
				agenda[court.ID] = reservations
				mu.Unlock()
			})
		}(i, court)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	ctx.Output["date"] = date
	ctx.Output["courts"] = courts
	ctx.Output["agenda"] = agenda
	return nil
}

// resolveCourts returns either the single named court or every active court
// of the institution.
func resolveCourts(ctx *core.FlowContext) ([]*model.Court, error) {
	if courtID := ctx.OptionalString("court_id"); courtID != "" {
		resp, err := ctx.Client.Courts.GetByID(courtID)
		if err != nil {
			return nil, fmt.Errorf("court lookup failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("court lookup rejected: %s", client.GetErrorMessage(resp))
		}
		court, err := ctx.Client.Courts.DecodeCourt(resp)
		if err != nil {
			return nil, err
		}
		return []*model.Court{court}, nil
	}

	institutionID, err := ctx.ExtractString("institution_id")
	if err != nil {
		return nil, err
	}

	resp, err := ctx.Client.Courts.Search(institutionID, ctx.OptionalString("sport"), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("court search failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("court search rejected: %s", client.GetErrorMessage(resp))
	}

	courts, _, err := ctx.Client.Courts.DecodeCourts(resp)
	if err != nil {
		return nil, err
	}
	return courts, nil
}
