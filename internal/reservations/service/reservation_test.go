package service

import (
	"context"
	"io"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"chedoparti/internal/reservations/repository"
	"chedoparti/internal/reservations/validator"
	"chedoparti/pkg/config"
	mongotx "chedoparti/pkg/db/mongo"
	apperrors "chedoparti/pkg/errors"
	"chedoparti/pkg/kafka"
	"chedoparti/pkg/logger"
	"chedoparti/pkg/model"
	"chedoparti/pkg/pricing"
)

type mockReservationRepository struct {
	createFunc             func(ctx context.Context, r *model.Reservation) error
	findByIDFunc           func(ctx context.Context, id string) (*model.Reservation, error)
	findAllFunc            func(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error)
	updateFunc             func(ctx context.Context, id string, r *model.Reservation) (*mongo.UpdateResult, error)
	findByCourtAndDateFunc func(ctx context.Context, courtID, date string, limit int, offset int64) ([]*model.Reservation, error)
	countByCourtFunc       func(ctx context.Context, courtID, date string) (int64, error)
	countFunc              func(ctx context.Context) (int64, error)
}

func (m *mockReservationRepository) Create(ctx context.Context, r *model.Reservation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, r)
	}
	return nil
}

func (m *mockReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockReservationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) Update(ctx context.Context, id string, r *model.Reservation) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, r)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockReservationRepository) FindByCourtAndDate(ctx context.Context, courtID, date string, limit int, offset int64) ([]*model.Reservation, error) {
	if m.findByCourtAndDateFunc != nil {
		return m.findByCourtAndDateFunc(ctx, courtID, date, limit, offset)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) CountByCourtAndDate(ctx context.Context, courtID, date string) (int64, error) {
	if m.countByCourtFunc != nil {
		return m.countByCourtFunc(ctx, courtID, date)
	}
	return 0, nil
}

func (m *mockReservationRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleted    []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

type stubCourtGetter struct {
	court *model.Court
	err   error
}

func (s *stubCourtGetter) GetCourt(ctx context.Context, id string) (*model.Court, error) {
	return s.court, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Log:         logger.New(logger.Config{Output: io.Discard}),
		Pricing:     pricing.DefaultConfig(),
		SlotLockTTL: 30 * time.Second,
	}
}

func newTestService(repo repository.ReservationRepository, locks repository.SlotLockRepository, courts CourtGetter, events EventPublisher) ReservationService {
	cfg := testConfig()
	return NewReservationService(repo, locks, validator.NewReservationValidator(cfg.Log), cfg, courts, events)
}

func futureDate(t *testing.T) string {
	t.Helper()
	return time.Now().AddDate(0, 1, 0).Format("2006-01-02")
}

func memberUser() model.User {
	return model.User{ID: "user-1", Role: model.RoleMember, Member: true}
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	return apperrors.AsAppError(err).Code
}

func TestCreate_Success(t *testing.T) {
	var created *model.Reservation
	repo := &mockReservationRepository{
		createFunc: func(ctx context.Context, r *model.Reservation) error {
			created = r
			return nil
		},
	}
	locks := &mockSlotLockRepository{}
	events := &mockPublisher{}
	svc := newTestService(repo, locks, nil, events)

	r := &model.Reservation{
		CourtID:     "court-1",
		Date:        futureDate(t),
		StartTime:   "10:00",
		DurationMin: 60,
	}
	err := svc.Create(context.Background(), memberUser(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected repository Create to be called")
	}
	if created.Status != model.StatusPending {
		t.Errorf("expected default status %q, got %q", model.StatusPending, created.Status)
	}
	if created.Type != model.TypeNormal {
		t.Errorf("expected default type %q, got %q", model.TypeNormal, created.Type)
	}
	if created.OwnerID != "user-1" {
		t.Errorf("expected owner user-1, got %q", created.OwnerID)
	}
	// Default rate 2000/h, off-peak weekday, 10% member discount
	if created.Price != 1800 {
		t.Errorf("expected price 1800, got %d", created.Price)
	}
	if len(locks.deleted) != 1 {
		t.Errorf("expected slot lock to be released once, got %d", len(locks.deleted))
	}
	if len(events.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.published))
	}
}

func TestCreate_GuestForbidden(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &mockSlotLockRepository{}, nil, nil)

	r := &model.Reservation{
		CourtID:     "court-1",
		Date:        futureDate(t),
		StartTime:   "10:00",
		DurationMin: 60,
	}
	err := svc.Create(context.Background(), model.User{ID: "guest-1", Role: model.RoleGuest}, r)
	if code := appErrCode(t, err); code != apperrors.CodeForbidden {
		t.Errorf("expected code %s, got %s", apperrors.CodeForbidden, code)
	}
}

func TestCreate_MemberCannotCreateClass(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &mockSlotLockRepository{}, nil, nil)

	r := &model.Reservation{
		CourtID:     "court-1",
		Date:        futureDate(t),
		StartTime:   "10:00",
		DurationMin: 60,
		Type:        model.TypeClass,
	}
	err := svc.Create(context.Background(), memberUser(), r)
	if code := appErrCode(t, err); code != apperrors.CodeForbidden {
		t.Errorf("expected code %s, got %s", apperrors.CodeForbidden, code)
	}
}

func TestCreate_SlotConflict(t *testing.T) {
	date := futureDate(t)
	repo := &mockReservationRepository{
		findByCourtAndDateFunc: func(ctx context.Context, courtID, d string, limit int, offset int64) ([]*model.Reservation, error) {
			return []*model.Reservation{
				{ID: "existing", CourtID: "court-1", Date: date, StartTime: "10:30", DurationMin: 60, Status: model.StatusConfirmed},
			}, nil
		},
	}
	locks := &mockSlotLockRepository{}
	svc := newTestService(repo, locks, nil, nil)

	r := &model.Reservation{
		CourtID:     "court-1",
		Date:        date,
		StartTime:   "10:00",
		DurationMin: 60,
	}
	err := svc.Create(context.Background(), memberUser(), r)
	if code := appErrCode(t, err); code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, code)
	}
	if len(locks.deleted) != 1 {
		t.Errorf("slot lock must be released on conflict, released %d times", len(locks.deleted))
	}
}

func TestCreate_TouchingSlotAllowed(t *testing.T) {
	date := futureDate(t)
	repo := &mockReservationRepository{
		findByCourtAndDateFunc: func(ctx context.Context, courtID, d string, limit int, offset int64) ([]*model.Reservation, error) {
			return []*model.Reservation{
				{ID: "existing", CourtID: "court-1", Date: date, StartTime: "09:00", DurationMin: 60, Status: model.StatusConfirmed},
			}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, nil, nil)

	r := &model.Reservation{
		CourtID:     "court-1",
		Date:        date,
		StartTime:   "10:00",
		DurationMin: 60,
	}
	if err := svc.Create(context.Background(), memberUser(), r); err != nil {
		t.Fatalf("back-to-back slots must not conflict: %v", err)
	}
}

func TestCreate_LockContention(t *testing.T) {
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		},
	}
	svc := newTestService(&mockReservationRepository{}, locks, nil, nil)

	r := &model.Reservation{
		CourtID:     "court-1",
		Date:        futureDate(t),
		StartTime:   "10:00",
		DurationMin: 60,
	}
	err := svc.Create(context.Background(), memberUser(), r)
	if code := appErrCode(t, err); code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, code)
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	date := futureDate(t)
	existing := &model.Reservation{
		ID:          "res-1",
		CourtID:     "court-1",
		OwnerID:     "user-1",
		Date:        date,
		StartTime:   "10:00",
		DurationMin: 60,
		Status:      model.StatusConfirmed,
		Type:        model.TypeNormal,
	}

	var updated *model.Reservation
	repo := &mockReservationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			clone := *existing
			return &clone, nil
		},
		updateFunc: func(ctx context.Context, id string, r *model.Reservation) (*mongo.UpdateResult, error) {
			updated = r
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, &mockSlotLockRepository{}, nil, events)

	duration := 90
	err := svc.Update(context.Background(), memberUser(), "res-1", &model.ReservationUpdate{DurationMin: &duration})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected repository Update to be called")
	}
	if updated.DurationMin != 90 {
		t.Errorf("expected merged duration 90, got %d", updated.DurationMin)
	}
	if updated.StartTime != "10:00" {
		t.Errorf("untouched field changed: start_time %q", updated.StartTime)
	}
	if len(events.published) != 1 {
		t.Errorf("expected 1 update event, got %d", len(events.published))
	}
}

func TestUpdate_NonOwnerForbidden(t *testing.T) {
	repo := &mockReservationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return &model.Reservation{
				ID:          "res-1",
				CourtID:     "court-1",
				OwnerID:     "someone-else",
				Date:        time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
				StartTime:   "10:00",
				DurationMin: 60,
				Status:      model.StatusConfirmed,
			}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, nil, nil)

	duration := 90
	err := svc.Update(context.Background(), memberUser(), "res-1", &model.ReservationUpdate{DurationMin: &duration})
	if code := appErrCode(t, err); code != apperrors.CodeForbidden {
		t.Errorf("expected code %s, got %s", apperrors.CodeForbidden, code)
	}
}

func TestCancel_SoftDeletes(t *testing.T) {
	date := futureDate(t)
	var updated *model.Reservation
	repo := &mockReservationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return &model.Reservation{
				ID:          "res-1",
				CourtID:     "court-1",
				OwnerID:     "user-1",
				Date:        date,
				StartTime:   "10:00",
				DurationMin: 60,
				Status:      model.StatusConfirmed,
			}, nil
		},
		updateFunc: func(ctx context.Context, id string, r *model.Reservation) (*mongo.UpdateResult, error) {
			updated = r
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, &mockSlotLockRepository{}, nil, events)

	err := svc.Cancel(context.Background(), memberUser(), "res-1", "rain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected repository Update to be called")
	}
	if updated.Status != model.StatusCancelled {
		t.Errorf("expected status cancelled, got %q", updated.Status)
	}
	if updated.CancelledBy != "user-1" {
		t.Errorf("expected cancelled_by user-1, got %q", updated.CancelledBy)
	}
	if updated.CancelReason != "rain" {
		t.Errorf("expected cancel reason preserved, got %q", updated.CancelReason)
	}
	if len(events.published) != 1 {
		t.Errorf("expected 1 cancel event, got %d", len(events.published))
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := &mockReservationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return &model.Reservation{
				ID:      "res-1",
				OwnerID: "user-1",
				Status:  model.StatusCancelled,
			}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, nil, nil)

	err := svc.Cancel(context.Background(), memberUser(), "res-1", "")
	if code := appErrCode(t, err); code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, code)
	}
}

func TestCancel_MemberInsideLeadTime(t *testing.T) {
	soon := time.Now().Add(30 * time.Minute)
	repo := &mockReservationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return &model.Reservation{
				ID:          "res-1",
				CourtID:     "court-1",
				OwnerID:     "user-1",
				Date:        soon.Format("2006-01-02"),
				StartTime:   soon.Format("15:04"),
				DurationMin: 60,
				Status:      model.StatusConfirmed,
			}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, nil, nil)

	err := svc.Cancel(context.Background(), memberUser(), "res-1", "")
	if code := appErrCode(t, err); code != apperrors.CodeForbidden {
		t.Errorf("expected code %s, got %s", apperrors.CodeForbidden, code)
	}
}

func TestAvailability_CappedByNextReservation(t *testing.T) {
	date := futureDate(t)
	repo := &mockReservationRepository{
		findByCourtAndDateFunc: func(ctx context.Context, courtID, d string, limit int, offset int64) ([]*model.Reservation, error) {
			return []*model.Reservation{
				{ID: "next", CourtID: "court-1", Date: date, StartTime: "11:00", DurationMin: 60, Status: model.StatusConfirmed},
			}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, nil, nil)

	options, err := svc.Availability(context.Background(), "court-1", date, 10*60, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("expected 2 options (30 and 60 min), got %d", len(options))
	}
	if options[0].Minutes != 30 || options[1].Minutes != 60 {
		t.Errorf("unexpected durations: %d, %d", options[0].Minutes, options[1].Minutes)
	}
}

func TestAvailability_MissingParams(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &mockSlotLockRepository{}, nil, nil)

	_, err := svc.Availability(context.Background(), "", "2030-01-01", 600, "")
	if code := appErrCode(t, err); code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, code)
	}
}

func TestQuote_UsesCourtRate(t *testing.T) {
	courts := &stubCourtGetter{court: &model.Court{
		ID:         "court-1",
		Sport:      model.SportPadel,
		HourlyRate: 2500,
	}}
	svc := newTestService(&mockReservationRepository{}, &mockSlotLockRepository{}, courts, nil)

	breakdown, err := svc.Quote(context.Background(), QuoteArgs{
		CourtID:     "court-1",
		Date:        "2030-06-04", // Tuesday
		StartTime:   "10:00",
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if breakdown.Total != 2500 {
		t.Errorf("expected court rate quote 2500, got %d", breakdown.Total)
	}
}

func TestGetAll_ParallelCountAndList(t *testing.T) {
	repo := &mockReservationRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
			time.Sleep(5 * time.Millisecond)
			return []*model.Reservation{{ID: "res-1"}}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, nil, nil)

	for i := 0; i < 10; i++ {
		reservations, count, err := svc.GetAll(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: expected count 42, got %d", i, count)
		}
		if len(reservations) != 1 {
			t.Errorf("iteration %d: expected 1 reservation, got %d", i, len(reservations))
		}
	}
}
