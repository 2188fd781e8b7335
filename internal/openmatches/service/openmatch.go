package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	openmatcheserrors "chedoparti/internal/openmatches/errors"
	"chedoparti/internal/openmatches/repository"
	"chedoparti/internal/openmatches/validator"
	"chedoparti/pkg/config"
	apperrors "chedoparti/pkg/errors"
	"chedoparti/pkg/kafka"
	"chedoparti/pkg/model"
	"chedoparti/pkg/sanitizer"
	"chedoparti/pkg/sealer"
)

// EventPublisher emits open match lifecycle events. A nil publisher disables
// eventing.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type OpenMatchService interface {
	Create(ctx context.Context, user model.User, match *model.OpenMatch) error
	GetByID(ctx context.Context, id string) (*model.OpenMatch, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.OpenMatch, int64, error)
	ListOpen(ctx context.Context, sport string, limit int, offset int64) ([]*model.OpenMatch, error)
	Join(ctx context.Context, id, playerName, phone string) (*model.OpenMatch, error)
	Leave(ctx context.Context, id, playerName string) (*model.OpenMatch, error)
	Cancel(ctx context.Context, user model.User, id string) error
}

type openMatchService struct {
	repo      repository.OpenMatchRepository
	validator *validator.OpenMatchValidator
	cfg       *config.Config
	sealer    *sealer.Sealer
	events    EventPublisher
}

func NewOpenMatchService(
	repo repository.OpenMatchRepository,
	validator *validator.OpenMatchValidator,
	cfg *config.Config,
	slotSealer *sealer.Sealer,
	events EventPublisher,
) OpenMatchService {
	return &openMatchService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		sealer:    slotSealer,
		events:    events,
	}
}

func (s *openMatchService) Create(ctx context.Context, user model.User, match *model.OpenMatch) error {
	if user.Role == model.RoleGuest {
		return apperrors.Forbidden("Guests may not host open matches")
	}

	s.sanitize(match)
	s.applyDefaults(user, match)

	token, err := s.sealer.SealSlot(match.CourtID, match.Date, match.StartTime)
	if err != nil {
		return apperrors.Internal("Failed to seal slot token", err)
	}
	match.SlotToken = token

	if err := s.validator.Validate(match); err != nil {
		s.cfg.Log.Warn("Open match validation failed",
			"court_id", match.CourtID,
			"organizer_id", match.OrganizerID,
			"error", err,
		)
		return apperrors.Validation("Open match validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, match); err != nil {
		s.cfg.Log.Error("Failed to create open match",
			"court_id", match.CourtID,
			"organizer_id", match.OrganizerID,
			"error", err,
		)
		return apperrors.Internal("Failed to create open match", err)
	}

	s.cfg.Log.Info("Open match created successfully",
		"id", match.ID,
		"court_id", match.CourtID,
		"date", match.Date,
		"capacity", match.Capacity,
	)
	s.publishEvent(ctx, kafka.EventOpenMatchCreated, match, "")
	return nil
}

func (s *openMatchService) GetByID(ctx context.Context, id string) (*model.OpenMatch, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Open match ID cannot be empty")
	}

	match, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, openmatcheserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Open match", id)
		}
		if errors.Is(err, openmatcheserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid open match ID format")
		}
		s.cfg.Log.Error("Failed to get open match by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve open match", err)
	}

	return match, nil
}

func (s *openMatchService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.OpenMatch, int64, error) {
	var count int64
	var matches []*model.OpenMatch
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count open matches", "error", err)
			errCount = apperrors.Internal("Failed to count open matches", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		matches, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list open matches",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve open matches", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return matches, count, nil
}

func (s *openMatchService) ListOpen(ctx context.Context, sport string, limit int, offset int64) ([]*model.OpenMatch, error) {
	matches, err := s.repo.FindOpen(ctx, sport, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list open matches", "sport", sport, "error", err)
		return nil, apperrors.Internal("Failed to retrieve open matches", err)
	}
	return matches, nil
}

// Join adds a player to the roster inside a transaction so concurrent joins
// cannot overfill a match. Filling the last spot flips the match to full.
func (s *openMatchService) Join(ctx context.Context, id, playerName, phone string) (*model.OpenMatch, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Open match ID cannot be empty")
	}

	playerName = sanitizer.NormalizeName(playerName)
	if len(playerName) < 2 {
		return nil, apperrors.InvalidInput("Player name must be at least 2 characters")
	}
	phone = sanitizer.NormalizePhone(phone)

	var joined *model.OpenMatch
	becameFull := false
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		match, err := s.getForUpdate(sessCtx, id)
		if err != nil {
			return err
		}

		if match.Status != model.MatchOpen {
			return apperrors.Conflict(fmt.Sprintf("Open match is %s", match.Status))
		}
		if _, ok := match.Players[playerName]; ok {
			return apperrors.Conflict(fmt.Sprintf("Player %q already joined", playerName))
		}
		if match.SpotsLeft() == 0 {
			return apperrors.Conflict("Open match has no spots left")
		}

		if match.Players == nil {
			match.Players = map[string]string{}
		}
		match.Players[playerName] = phone
		if match.SpotsLeft() == 0 {
			match.Status = model.MatchFull
			becameFull = true
		}

		if _, err := s.repo.Update(sessCtx, id, match); err != nil {
			return apperrors.Internal("Failed to update open match", err)
		}
		joined = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Player joined open match",
		"id", id,
		"player", playerName,
		"spots_left", joined.SpotsLeft(),
	)
	s.publishEvent(ctx, kafka.EventOpenMatchPlayerJoined, joined, playerName)
	if becameFull {
		s.publishEvent(ctx, kafka.EventOpenMatchFull, joined, "")
	}
	return joined, nil
}

// Leave removes a player. A full match reopens when a spot frees up.
func (s *openMatchService) Leave(ctx context.Context, id, playerName string) (*model.OpenMatch, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Open match ID cannot be empty")
	}

	playerName = sanitizer.NormalizeName(playerName)

	var left *model.OpenMatch
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		match, err := s.getForUpdate(sessCtx, id)
		if err != nil {
			return err
		}

		if match.Status == model.MatchCancelled {
			return apperrors.Conflict("Open match is cancelled")
		}
		if _, ok := match.Players[playerName]; !ok {
			return apperrors.NotFoundWithID("Player", playerName)
		}
		if playerName == match.OrganizerName {
			return apperrors.Conflict("The organizer cannot leave their own match")
		}

		delete(match.Players, playerName)
		if match.Status == model.MatchFull {
			match.Status = model.MatchOpen
		}

		if _, err := s.repo.Update(sessCtx, id, match); err != nil {
			return apperrors.Internal("Failed to update open match", err)
		}
		left = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Player left open match", "id", id, "player", playerName)
	s.publishEvent(ctx, kafka.EventOpenMatchPlayerLeft, left, playerName)
	return left, nil
}

func (s *openMatchService) Cancel(ctx context.Context, user model.User, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Open match ID cannot be empty")
	}

	match, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if match.Status == model.MatchCancelled {
		return apperrors.Conflict("Open match is already cancelled")
	}
	if user.Role != model.RoleAdmin && user.ID != match.OrganizerID {
		return apperrors.Forbidden("Only the organizer or an admin may cancel an open match")
	}

	match.Status = model.MatchCancelled
	if _, err := s.repo.Update(ctx, id, match); err != nil {
		s.cfg.Log.Error("Failed to cancel open match", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel open match", err)
	}

	s.cfg.Log.Info("Open match cancelled", "id", id, "cancelled_by", user.ID)
	s.publishEvent(ctx, kafka.EventOpenMatchCancelled, match, "")
	return nil
}

func (s *openMatchService) getForUpdate(ctx context.Context, id string) (*model.OpenMatch, error) {
	match, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, openmatcheserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Open match", id)
		}
		if errors.Is(err, openmatcheserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid open match ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve open match", err)
	}
	return match, nil
}

func (s *openMatchService) sanitize(match *model.OpenMatch) {
	match.OrganizerName = sanitizer.NormalizeName(match.OrganizerName)
	match.Notes = sanitizer.NormalizeNotes(match.Notes)
	match.Players = sanitizer.NormalizePlayersMap(match.Players)
}

func (s *openMatchService) applyDefaults(user model.User, match *model.OpenMatch) {
	if match.Status == "" {
		match.Status = model.MatchOpen
	}
	if match.OrganizerID == "" {
		match.OrganizerID = user.ID
	}
	if match.OrganizerName == "" {
		match.OrganizerName = user.Name
	}
	if match.Players == nil {
		match.Players = map[string]string{}
	}
	// The organizer always holds a spot on their own roster.
	if _, ok := match.Players[match.OrganizerName]; !ok && match.OrganizerName != "" {
		match.Players[match.OrganizerName] = ""
	}
}

func (s *openMatchService) publishEvent(ctx context.Context, eventType string, match *model.OpenMatch, playerName string) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(match.ID).
		WithEventType(eventType).
		WithSource("openmatches").
		WithValue(kafka.OpenMatchEvent{
			MatchID:    match.ID,
			CourtID:    match.CourtID,
			HostID:     match.OrganizerID,
			Date:       match.Date,
			StartTime:  match.StartTime,
			Capacity:   match.Capacity,
			SpotsLeft:  match.SpotsLeft(),
			PlayerName: playerName,
			Status:     match.Status,
			OccurredAt: time.Now().UTC(),
		}).
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish open match event",
			"event_type", eventType,
			"match_id", match.ID,
			"error", err,
		)
	}
}
