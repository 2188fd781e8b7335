package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	reservationserrors "chedoparti/internal/reservations/errors"
	"chedoparti/internal/reservations/repository"
	"chedoparti/internal/reservations/validator"
	"chedoparti/pkg/availability"
	"chedoparti/pkg/config"
	apperrors "chedoparti/pkg/errors"
	"chedoparti/pkg/kafka"
	"chedoparti/pkg/model"
	"chedoparti/pkg/pricing"
	"chedoparti/pkg/rules"
	"chedoparti/pkg/sanitizer"
	"chedoparti/pkg/timeslot"
)

// CourtGetter resolves a court so quotes can use its hourly rate. The
// reservations service reaches the courts service through this; tests plug
// in a stub.
type CourtGetter interface {
	GetCourt(ctx context.Context, id string) (*model.Court, error)
}

// EventPublisher emits reservation lifecycle events. A nil publisher
// disables eventing, which single-service deployments use.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// QuoteArgs is a pricing request before any reservation exists.
type QuoteArgs struct {
	CourtID     string `json:"court_id,omitempty"`
	Sport       string `json:"sport,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	DurationMin int    `json:"duration_min"`
	Member      bool   `json:"member"`
}

type ReservationService interface {
	Create(ctx context.Context, user model.User, reservation *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
	Update(ctx context.Context, user model.User, id string, updates *model.ReservationUpdate) error
	Cancel(ctx context.Context, user model.User, id string, reason string) error
	SearchByCourt(ctx context.Context, courtID, date string, limit int, offset int64) ([]*model.Reservation, int64, error)
	Availability(ctx context.Context, courtID, date string, startMin int, excludeID string) ([]availability.DurationOption, error)
	Quote(ctx context.Context, args QuoteArgs) (pricing.Breakdown, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.ReservationValidator
	cfg       *config.Config
	calc      *pricing.Calculator
	courts    CourtGetter
	events    EventPublisher
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.ReservationValidator,
	cfg *config.Config,
	courts CourtGetter,
	events EventPublisher,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		cfg:       cfg,
		calc:      pricing.New(cfg.Pricing),
		courts:    courts,
		events:    events,
	}
}

func (s *reservationService) Create(ctx context.Context, user model.User, reservation *model.Reservation) error {
	s.applyDefaults(user, reservation)
	s.sanitize(reservation)

	if !rules.CanCreate(user.Role, reservation.Type) {
		return apperrors.Forbidden(fmt.Sprintf(
			"Role %s may not create %s reservations", user.Role, reservation.Type,
		))
	}

	now := time.Now()
	if problems := rules.ValidateDraft(reservation, now, rules.DraftOptions{AllowPast: user.Role == model.RoleAdmin}); len(problems) > 0 {
		return apperrors.Validation("Reservation validation failed", toDetails(problems))
	}
	if err := s.validate(reservation); err != nil {
		return err
	}

	s.priceReservation(ctx, reservation)

	// Acquire advisory lock to prevent race conditions on the same slot
	lockID, err := s.acquireSlotLock(ctx, reservation.CourtID, reservation.Date, reservation.StartTime)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, reservation); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return err
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"court_id", reservation.CourtID,
		"date", reservation.Date,
		"start_time", reservation.StartTime,
		"owner_id", reservation.OwnerID,
	)
	s.publishEvent(ctx, kafka.EventReservationCreated, reservation)
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) Update(ctx context.Context, user model.User, id string, updates *model.ReservationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	if !rules.CanEdit(user, existing, now) {
		return apperrors.Forbidden("You may not modify this reservation")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if problems := rules.ValidateDraft(merged, now, rules.DraftOptions{AllowPast: user.Role == model.RoleAdmin}); len(problems) > 0 {
		return apperrors.Validation("Reservation validation failed", toDetails(problems))
	}
	if err := s.validate(merged); err != nil {
		return err
	}

	if slotChanged(existing, merged) {
		s.priceReservation(ctx, merged)
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	s.publishEvent(ctx, kafka.EventReservationUpdated, merged)
	return nil
}

// Cancel is a soft delete: the reservation stays in the collection with a
// cancelled status and releases its slot.
func (s *reservationService) Cancel(ctx context.Context, user model.User, id string, reason string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.Terminal() {
		return apperrors.Conflict(fmt.Sprintf("Reservation is already %s", existing.Status))
	}
	if !rules.CanCancel(user, existing, time.Now()) {
		return apperrors.Forbidden("You may not cancel this reservation")
	}

	existing.Status = model.StatusCancelled
	existing.CancelledBy = user.ID
	existing.CancelReason = sanitizer.NormalizeNotes(reason)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.repo.Update(sessCtx, id, existing); err != nil {
			return apperrors.Internal("Failed to cancel reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to cancel reservation", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Reservation cancelled", "id", id, "cancelled_by", user.ID)
	s.publishEvent(ctx, kafka.EventReservationCancelled, existing)
	return nil
}

func (s *reservationService) SearchByCourt(ctx context.Context, courtID, date string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if courtID == "" {
		return nil, 0, apperrors.InvalidInput("court_id is required")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByCourtAndDate(ctx, courtID, date)
		if err != nil {
			s.cfg.Log.Error("Failed to count reservations by search",
				"court_id", courtID,
				"date", date,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count reservations", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		reservations, err = s.repo.FindByCourtAndDate(ctx, courtID, date, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search reservations",
				"court_id", courtID,
				"date", date,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search reservations", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

// Availability lists which of the offered durations fit at startMin on the
// court and date. An empty list is a valid answer.
func (s *reservationService) Availability(ctx context.Context, courtID, date string, startMin int, excludeID string) ([]availability.DurationOption, error) {
	if courtID == "" || date == "" {
		return nil, apperrors.InvalidInput("court_id and date are required")
	}
	if startMin < 0 || startMin >= 24*60 {
		return nil, apperrors.InvalidInput("start must be a time of day")
	}

	existing, err := s.dayReservations(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	return availability.AvailableDurations(courtID, date, startMin, existing, excludeID), nil
}

func (s *reservationService) Quote(ctx context.Context, args QuoteArgs) (pricing.Breakdown, error) {
	req := pricing.Request{
		Sport:       args.Sport,
		Date:        args.Date,
		StartMin:    timeslot.ClockToMinutes(args.StartTime),
		DurationMin: args.DurationMin,
		Member:      args.Member,
	}

	if args.CourtID != "" && s.courts != nil {
		court, err := s.courts.GetCourt(ctx, args.CourtID)
		if err != nil {
			s.cfg.Log.Warn("Quote falling back to sport rate, court lookup failed",
				"court_id", args.CourtID,
				"error", err,
			)
		} else {
			req.Court = court
		}
	}

	return s.calc.Quote(req), nil
}

// --- Helpers ---

func (s *reservationService) sanitize(r *model.Reservation) {
	r.Notes = sanitizer.NormalizeNotes(r.Notes)
}

func (s *reservationService) applyDefaults(user model.User, r *model.Reservation) {
	if r.Status == "" {
		r.Status = model.StatusPending
	}
	if r.Type == "" {
		r.Type = model.TypeNormal
	}
	if r.OwnerID == "" {
		r.OwnerID = user.ID
	}
	if r.OwnerID == user.ID {
		r.OwnerIsMember = user.Member
	}
}

func (s *reservationService) mergeUpdates(existing *model.Reservation, updates *model.ReservationUpdate) *model.Reservation {
	merged := *existing

	if updates.CourtID != "" {
		merged.CourtID = updates.CourtID
	}
	if updates.Date != "" {
		merged.Date = updates.Date
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.DurationMin != nil {
		merged.DurationMin = *updates.DurationMin
	}
	if updates.Type != "" {
		merged.Type = updates.Type
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.Players != nil {
		merged.Players = *updates.Players
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}

func slotChanged(a, b *model.Reservation) bool {
	return a.CourtID != b.CourtID ||
		a.Date != b.Date ||
		a.StartTime != b.StartTime ||
		a.DurationMin != b.DurationMin
}

func (s *reservationService) validate(reservation *model.Reservation) error {
	if err := s.validator.Validate(reservation); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// priceReservation attaches a quote to the reservation. A failed court
// lookup degrades to the sport or default rate rather than blocking the
// booking.
func (s *reservationService) priceReservation(ctx context.Context, r *model.Reservation) {
	breakdown, err := s.Quote(ctx, QuoteArgs{
		CourtID:     r.CourtID,
		Date:        r.Date,
		StartTime:   r.StartTime,
		DurationMin: r.DurationMin,
		Member:      r.OwnerIsMember,
	})
	if err != nil || breakdown.Incomplete {
		return
	}
	r.Price = breakdown.Total
}

func (s *reservationService) dayReservations(ctx context.Context, courtID, date string) ([]model.Reservation, error) {
	// A single court cannot hold more than 48 half-hour slots per day, so
	// one page always covers the full schedule.
	const maxPerDay = 100
	existing, err := s.repo.FindByCourtAndDate(ctx, courtID, date, maxPerDay, 0)
	if err != nil {
		return nil, apperrors.Internal("Failed to load existing reservations", err)
	}

	out := make([]model.Reservation, 0, len(existing))
	for _, r := range existing {
		out = append(out, *r)
	}
	return out, nil
}

func (s *reservationService) verifyAvailability(ctx context.Context, r *model.Reservation) error {
	existing, err := s.dayReservations(ctx, r.CourtID, r.Date)
	if err != nil {
		return err
	}

	start := timeslot.ClockToMinutes(r.StartTime)
	result := availability.CheckConflict(availability.Candidate{
		CourtID:   r.CourtID,
		Date:      r.Date,
		StartMin:  start,
		EndMin:    start + r.DurationMin,
		ExcludeID: r.ID,
	}, existing)

	if result.HasConflict {
		first := result.Conflicts[0]
		end := timeslot.ClockToMinutes(first.StartTime) + first.DurationMin
		return apperrors.Conflict(fmt.Sprintf(
			"Time slot overlaps an existing reservation (%s - %s)",
			first.StartTime, timeslot.MinutesToClock(end),
		))
	}
	return nil
}

func (s *reservationService) publishEvent(ctx context.Context, eventType string, r *model.Reservation) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(r.ID).
		WithEventType(eventType).
		WithSource("reservations").
		WithValue(kafka.ReservationEvent{
			ReservationID: r.ID,
			CourtID:       r.CourtID,
			InstitutionID: r.InstitutionID,
			OwnerID:       r.OwnerID,
			Date:          r.Date,
			StartTime:     r.StartTime,
			DurationMin:   r.DurationMin,
			Type:          r.Type,
			Status:        r.Status,
			Price:         r.Price,
			CancelledBy:   r.CancelledBy,
			CancelReason:  r.CancelReason,
			OccurredAt:    time.Now().UTC(),
		}).
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", r.ID,
			"error", err,
		)
	}
}

func toDetails(problems map[string]string) map[string]any {
	details := make(map[string]any, len(problems))
	for field, message := range problems {
		details[field] = message
	}
	return details
}

// acquireSlotLock creates an advisory lock so two requests cannot book the
// same slot concurrently. Returns the lock ID, or a conflict error when the
// slot is already being booked.
func (s *reservationService) acquireSlotLock(ctx context.Context, courtID, date, startTime string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s_%s", courtID, date, startTime)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *reservationService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
