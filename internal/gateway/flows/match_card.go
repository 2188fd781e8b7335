package flows

import (
	"fmt"
	"net/http"

	"chedoparti/internal/gateway/core"
	"chedoparti/pkg/client"
	"chedoparti/pkg/model"
)

// MatchCard assembles the share-page view of an open match: the match roster
// joined with the court it is played on, so invite links render in one call.
func MatchCard(ctx *core.FlowContext) error {
	return core.RunSteps(ctx, []core.Step{
		core.NewStep("extract_input", extractMatchCardInput),
		core.NewStep("fetch_match", fetchMatch),
		core.NewStep("fetch_match_court", fetchMatchCourt),
	})
}

func extractMatchCardInput(ctx *core.FlowContext) error {
	matchID, err := ctx.ExtractString("match_id")
	if err != nil {
		return err
	}
	ctx.Process["match_id"] = matchID
	return nil
}

func fetchMatch(ctx *core.FlowContext) error {
	matchID := ctx.Process["match_id"].(string)

	resp, err := ctx.Client.OpenMatches.GetByID(matchID)
	if err != nil {
		return fmt.Errorf("open match lookup failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("open match lookup rejected: %s", client.GetErrorMessage(resp))
	}

	match, err := ctx.Client.OpenMatches.DecodeOpenMatch(resp)
	if err != nil {
		return err
	}

	ctx.Process["match"] = match
	ctx.Output["match"] = match
	ctx.Output["spots_left"] = match.SpotsLeft()
	return nil
}

func fetchMatchCourt(ctx *core.FlowContext) error {
	match := ctx.Process["match"].(*model.OpenMatch)

	resp, err := ctx.Client.Courts.GetByID(match.CourtID)
	if err != nil {
		return fmt.Errorf("court lookup failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		// The card still renders without court details.
		ctx.Log.Warn("Court lookup failed for match card",
			"match_id", match.ID,
			"court_id", match.CourtID,
			"status", resp.StatusCode,
		)
		return nil
	}

	court, err := ctx.Client.Courts.DecodeCourt(resp)
	if err != nil {
		return err
	}

	ctx.Output["court"] = court
	return nil
}
