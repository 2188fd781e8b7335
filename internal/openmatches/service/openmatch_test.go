package service

import (
	"context"
	"io"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	openmatcheserrors "chedoparti/internal/openmatches/errors"
	"chedoparti/internal/openmatches/validator"
	"chedoparti/pkg/config"
	mongotx "chedoparti/pkg/db/mongo"
	apperrors "chedoparti/pkg/errors"
	"chedoparti/pkg/kafka"
	"chedoparti/pkg/logger"
	"chedoparti/pkg/model"
	"chedoparti/pkg/sealer"
)

type mockOpenMatchRepository struct {
	createFunc   func(ctx context.Context, match *model.OpenMatch) error
	findByIDFunc func(ctx context.Context, id string) (*model.OpenMatch, error)
	findAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.OpenMatch, error)
	findOpenFunc func(ctx context.Context, sport string, limit int, offset int64) ([]*model.OpenMatch, error)
	updateFunc   func(ctx context.Context, id string, match *model.OpenMatch) (*mongo.UpdateResult, error)
	countFunc    func(ctx context.Context) (int64, error)
}

func (m *mockOpenMatchRepository) Create(ctx context.Context, match *model.OpenMatch) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, match)
	}
	return nil
}

func (m *mockOpenMatchRepository) FindByID(ctx context.Context, id string) (*model.OpenMatch, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, openmatcheserrors.ErrNotFound
}

func (m *mockOpenMatchRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.OpenMatch, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.OpenMatch{}, nil
}

func (m *mockOpenMatchRepository) FindOpen(ctx context.Context, sport string, limit int, offset int64) ([]*model.OpenMatch, error) {
	if m.findOpenFunc != nil {
		return m.findOpenFunc(ctx, sport, limit, offset)
	}
	return []*model.OpenMatch{}, nil
}

func (m *mockOpenMatchRepository) Update(ctx context.Context, id string, match *model.OpenMatch) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, match)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockOpenMatchRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockOpenMatchRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func newTestService(repo *mockOpenMatchRepository, events EventPublisher) OpenMatchService {
	log := logger.New(logger.Config{Output: io.Discard})
	cfg := &config.Config{Log: log}
	slotSealer, err := sealer.New("")
	if err != nil {
		panic(err)
	}
	return NewOpenMatchService(repo, validator.NewOpenMatchValidator(log), cfg, slotSealer, events)
}

func hostUser() model.User {
	return model.User{ID: "user-1", Name: "Dana", Role: model.RoleMember, Member: true}
}

func draftMatch() *model.OpenMatch {
	return &model.OpenMatch{
		CourtID:     "court-1",
		Sport:       model.SportPadel,
		Date:        "2030-06-04",
		StartTime:   "19:00",
		DurationMin: 90,
		Capacity:    4,
	}
}

func storedMatch() *model.OpenMatch {
	return &model.OpenMatch{
		ID:            "match-1",
		SlotToken:     "token",
		CourtID:       "court-1",
		Sport:         model.SportPadel,
		Date:          "2030-06-04",
		StartTime:     "19:00",
		DurationMin:   90,
		OrganizerID:   "user-1",
		OrganizerName: "Dana",
		Capacity:      3,
		Players:       map[string]string{"Dana": ""},
		Status:        model.MatchOpen,
	}
}

func TestCreate_SealsTokenAndSeatsOrganizer(t *testing.T) {
	var created *model.OpenMatch
	repo := &mockOpenMatchRepository{
		createFunc: func(ctx context.Context, match *model.OpenMatch) error {
			created = match
			return nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, events)

	if err := svc.Create(context.Background(), hostUser(), draftMatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected repository Create to be called")
	}
	if created.SlotToken == "" {
		t.Error("expected a sealed slot token")
	}
	if created.OrganizerID != "user-1" {
		t.Errorf("expected organizer user-1, got %q", created.OrganizerID)
	}
	if _, ok := created.Players["Dana"]; !ok {
		t.Error("organizer must hold a roster spot")
	}
	if created.Status != model.MatchOpen {
		t.Errorf("expected status open, got %q", created.Status)
	}
	if len(events.published) != 1 {
		t.Errorf("expected 1 created event, got %d", len(events.published))
	}
}

func TestCreate_GuestForbidden(t *testing.T) {
	svc := newTestService(&mockOpenMatchRepository{}, nil)

	err := svc.Create(context.Background(), model.User{ID: "g", Role: model.RoleGuest}, draftMatch())
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeForbidden {
		t.Errorf("expected code %s, got %s", apperrors.CodeForbidden, apperrors.AsAppError(err).Code)
	}
}

func TestJoin_AddsPlayer(t *testing.T) {
	match := storedMatch()
	var updated *model.OpenMatch
	repo := &mockOpenMatchRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.OpenMatch, error) {
			return match, nil
		},
		updateFunc: func(ctx context.Context, id string, m *model.OpenMatch) (*mongo.UpdateResult, error) {
			updated = m
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, events)

	result, err := svc.Join(context.Background(), "match-1", "Omer", "0501234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected repository Update to be called")
	}
	if _, ok := result.Players["Omer"]; !ok {
		t.Error("expected Omer on the roster")
	}
	if result.Players["Omer"] != "+972501234567" {
		t.Errorf("expected E.164 phone, got %q", result.Players["Omer"])
	}
	if result.Status != model.MatchOpen {
		t.Errorf("expected match to stay open, got %q", result.Status)
	}
	if len(events.published) != 1 {
		t.Errorf("expected 1 joined event, got %d", len(events.published))
	}
}

func TestJoin_LastSpotFlipsToFull(t *testing.T) {
	match := storedMatch()
	match.Players = map[string]string{"Dana": "", "Omer": ""}
	repo := &mockOpenMatchRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.OpenMatch, error) {
			return match, nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, events)

	result, err := svc.Join(context.Background(), "match-1", "Noa", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != model.MatchFull {
		t.Errorf("expected status full, got %q", result.Status)
	}
	// player_joined plus full
	if len(events.published) != 2 {
		t.Errorf("expected 2 events, got %d", len(events.published))
	}
}

func TestJoin_DuplicatePlayer(t *testing.T) {
	repo := &mockOpenMatchRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.OpenMatch, error) {
			return storedMatch(), nil
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Join(context.Background(), "match-1", "Dana", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}

func TestJoin_FullMatchRejected(t *testing.T) {
	match := storedMatch()
	match.Status = model.MatchFull
	match.Players = map[string]string{"Dana": "", "Omer": "", "Noa": ""}
	repo := &mockOpenMatchRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.OpenMatch, error) {
			return match, nil
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Join(context.Background(), "match-1", "Gal", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}

func TestLeave_ReopensFullMatch(t *testing.T) {
	match := storedMatch()
	match.Status = model.MatchFull
	match.Players = map[string]string{"Dana": "", "Omer": "", "Noa": ""}
	repo := &mockOpenMatchRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.OpenMatch, error) {
			return match, nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, events)

	result, err := svc.Leave(context.Background(), "match-1", "Omer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != model.MatchOpen {
		t.Errorf("expected match to reopen, got %q", result.Status)
	}
	if _, ok := result.Players["Omer"]; ok {
		t.Error("expected Omer removed from roster")
	}
}

func TestLeave_OrganizerCannotLeave(t *testing.T) {
	repo := &mockOpenMatchRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.OpenMatch, error) {
			return storedMatch(), nil
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Leave(context.Background(), "match-1", "Dana")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}

func TestCancel_OnlyOrganizerOrAdmin(t *testing.T) {
	repo := &mockOpenMatchRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.OpenMatch, error) {
			return storedMatch(), nil
		},
	}
	svc := newTestService(repo, nil)

	stranger := model.User{ID: "user-9", Role: model.RoleMember}
	err := svc.Cancel(context.Background(), stranger, "match-1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeForbidden {
		t.Errorf("expected code %s, got %s", apperrors.CodeForbidden, apperrors.AsAppError(err).Code)
	}

	admin := model.User{ID: "admin-1", Role: model.RoleAdmin}
	if err := svc.Cancel(context.Background(), admin, "match-1"); err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
}
