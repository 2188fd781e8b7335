package integration

import (
	"net/http"
	"testing"

	"chedoparti/pkg/model"
	"chedoparti/test/integration/testutil"
)

func TestCreateCourt(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	court := testutil.NewCourtBuilder().WithSport("Padel").Build()

	resp := client.POST(t, "/api/v1/courts", court)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Court
	if err := resp.UnmarshalData(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if created.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.Sport != model.SportPadel {
		t.Errorf("expected sport to be normalized to %q, got %q", model.SportPadel, created.Sport)
	}
	if !created.Active {
		t.Error("expected new court to be active")
	}

	if count := mongo.CountDocuments(t, testutil.CourtsCollection); count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestSearchCourts_BySport(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	padel := testutil.NewCourtBuilder().WithName("Padel One").WithSport(model.SportPadel).Build()
	tennis := testutil.NewCourtBuilder().WithName("Tennis One").WithSport(model.SportTennis).Build()

	for _, court := range []model.Court{padel, tennis} {
		resp := client.POST(t, "/api/v1/courts", court)
		testutil.AssertStatusCode(t, resp, http.StatusCreated)
	}

	resp := client.GET(t, "/api/v1/courts/search?institution_id=inst-001&sport=tennis")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var found []model.Court
	if err := resp.UnmarshalData(&found); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 court, got %d", len(found))
	}
	if found[0].Name != "Tennis One" {
		t.Errorf("expected Tennis One, got %q", found[0].Name)
	}
}

func TestUpdateCourt_Deactivate(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	court := testutil.NewCourtBuilder().Build()
	resp := client.POST(t, "/api/v1/courts", court)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Court
	if err := resp.UnmarshalData(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	inactive := false
	resp = client.PATCH(t, "/api/v1/courts/id/"+created.ID, model.CourtUpdate{Active: &inactive})
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, "/api/v1/courts/search?institution_id=inst-001")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var active []model.Court
	if err := resp.UnmarshalData(&active); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected deactivated court to drop out of search, got %d results", len(active))
	}
}
