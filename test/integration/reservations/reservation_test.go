package integration

import (
	"net/http"
	"testing"

	"chedoparti/pkg/model"
	"chedoparti/test/integration/testutil"
)

func TestCreateReservation_Member(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	ownerID := testutil.UniqueUserID("member")
	asMember := client.As(testutil.MemberHeaders(ownerID))

	reservation := testutil.NewReservationBuilder().Build()

	resp := asMember.POST(t, "/api/v1/reservations", reservation)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Reservation
	if err := resp.UnmarshalData(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if created.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.OwnerID != ownerID {
		t.Errorf("expected owner_id %q, got %q", ownerID, created.OwnerID)
	}
	if created.Price <= 0 {
		t.Errorf("expected a priced reservation, got %d", created.Price)
	}
	if created.Status != model.StatusPending {
		t.Errorf("expected status %q, got %q", model.StatusPending, created.Status)
	}

	if count := mongo.CountDocuments(t, testutil.ReservationsCollection); count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestCreateReservation_GuestRejected(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	reservation := testutil.NewReservationBuilder().Build()

	resp := client.POST(t, "/api/v1/reservations", reservation)
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)

	if count := mongo.CountDocuments(t, testutil.ReservationsCollection); count != 0 {
		t.Errorf("expected no documents in DB, got %d", count)
	}
}

func TestCreateReservation_OverlapRejected(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	asMember := client.As(testutil.MemberHeaders(testutil.UniqueUserID("member")))

	first := testutil.NewReservationBuilder().WithStartTime("10:00").WithDuration(60).Build()
	resp := asMember.POST(t, "/api/v1/reservations", first)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	overlapping := testutil.NewReservationBuilder().WithStartTime("10:30").WithDuration(60).Build()
	resp = asMember.POST(t, "/api/v1/reservations", overlapping)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	touching := testutil.NewReservationBuilder().WithStartTime("11:00").WithDuration(60).Build()
	resp = asMember.POST(t, "/api/v1/reservations", touching)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	if count := mongo.CountDocuments(t, testutil.ReservationsCollection); count != 2 {
		t.Errorf("expected 2 documents in DB, got %d", count)
	}
}

func TestCancelReservation_SoftDeletes(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	asMember := client.As(testutil.MemberHeaders(testutil.UniqueUserID("member")))

	reservation := testutil.NewReservationBuilder().Build()
	resp := asMember.POST(t, "/api/v1/reservations", reservation)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Reservation
	if err := resp.UnmarshalData(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	resp = asMember.DELETE(t, "/api/v1/reservations/id/"+created.ID+"?reason=rained+out")
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = asMember.GET(t, "/api/v1/reservations/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var cancelled model.Reservation
	if err := resp.UnmarshalData(&cancelled); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("expected status %q, got %q", model.StatusCancelled, cancelled.Status)
	}
	if cancelled.CancelReason != "rained out" {
		t.Errorf("expected cancel reason to survive, got %q", cancelled.CancelReason)
	}

	if count := mongo.CountDocuments(t, testutil.ReservationsCollection); count != 1 {
		t.Errorf("expected cancelled reservation to stay in DB, got %d documents", count)
	}
}

func TestAvailability_ReflectsBookings(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	asMember := client.As(testutil.MemberHeaders(testutil.UniqueUserID("member")))

	date := testutil.FutureDate(7)
	blocking := testutil.NewReservationBuilder().WithDate(date).WithStartTime("11:00").WithDuration(60).Build()
	resp := asMember.POST(t, "/api/v1/reservations", blocking)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = asMember.GET(t, "/api/v1/reservations/availability?court_id=court-001&date="+date+"&start=10:00")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var options []struct {
		Minutes int    `json:"minutes"`
		Value   string `json:"value"`
	}
	if err := resp.UnmarshalData(&options); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	// Only 30 and 60 minutes fit before the 11:00 booking.
	if len(options) != 2 {
		t.Fatalf("expected 2 duration options, got %d", len(options))
	}
	if options[len(options)-1].Minutes != 60 {
		t.Errorf("expected longest option of 60 minutes, got %d", options[len(options)-1].Minutes)
	}
}
