package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	courtserrors "chedoparti/internal/courts/errors"
	"chedoparti/internal/courts/repository"
	"chedoparti/internal/courts/validator"
	"chedoparti/pkg/config"
	apperrors "chedoparti/pkg/errors"
	"chedoparti/pkg/model"
	"chedoparti/pkg/pricing"
	"chedoparti/pkg/sanitizer"
)

type CourtService interface {
	Create(ctx context.Context, court *model.Court) error
	GetByID(ctx context.Context, id string) (*model.Court, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Court, int64, error)
	Update(ctx context.Context, id string, updates *model.CourtUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, institutionID, sport string) ([]*model.Court, error)
	PricingConfig() pricing.Config
}

type courtService struct {
	repo      repository.CourtRepository
	validator *validator.CourtValidator
	cfg       *config.Config
}

func NewCourtService(
	repo repository.CourtRepository,
	validator *validator.CourtValidator,
	cfg *config.Config,
) CourtService {
	return &courtService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *courtService) Create(ctx context.Context, court *model.Court) error {
	s.sanitize(court)
	court.Active = true

	if err := s.validator.Validate(court); err != nil {
		s.cfg.Log.Warn("Court validation failed",
			"name", court.Name,
			"institution_id", court.InstitutionID,
			"error", err,
		)
		return apperrors.Validation("Court validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, court); err != nil {
		s.cfg.Log.Error("Failed to create court",
			"name", court.Name,
			"institution_id", court.InstitutionID,
			"error", err,
		)
		return apperrors.Internal("Failed to create court", err)
	}

	s.cfg.Log.Info("Court created successfully",
		"id", court.ID,
		"name", court.Name,
		"sport", court.Sport,
		"institution_id", court.InstitutionID,
	)

	return nil
}

func (s *courtService) GetByID(ctx context.Context, id string) (*model.Court, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Court ID cannot be empty")
	}

	court, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, courtserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Court", id)
		}
		if errors.Is(err, courtserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid court ID format")
		}
		s.cfg.Log.Error("Failed to get court by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve court", err)
	}

	return court, nil
}

func (s *courtService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Court, int64, error) {
	var count int64
	var courts []*model.Court
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count courts", "error", err)
			errCount = apperrors.Internal("Failed to count courts", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		courts, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all courts",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve courts", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return courts, count, nil
}

func (s *courtService) Update(ctx context.Context, id string, updates *model.CourtUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Court update validation failed", "id", id, "error", err)
		return apperrors.Validation("Court validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	merged := s.mergeCourtUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return apperrors.Validation("Court validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update court", "id", id, "error", err)
		return apperrors.Internal("Failed to update court", err)
	}

	s.cfg.Log.Info("Court updated successfully", "id", id, "name", merged.Name)
	return nil
}

func (s *courtService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, courtserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Court", id)
		}
		if errors.Is(err, courtserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid court ID format")
		}
		s.cfg.Log.Error("Failed to delete court", "id", id, "error", err)
		return apperrors.Internal("Failed to delete court", err)
	}

	s.cfg.Log.Info("Court deleted successfully", "id", id)
	return nil
}

func (s *courtService) Search(ctx context.Context, institutionID, sport string) ([]*model.Court, error) {
	if institutionID == "" && sport == "" {
		return nil, apperrors.InvalidInput("At least one of 'institution_id' or 'sport' must be provided")
	}

	courts, err := s.repo.Search(ctx, institutionID, sport)
	if err != nil {
		s.cfg.Log.Error("Failed to search courts",
			"institution_id", institutionID,
			"sport", sport,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to search courts", err)
	}

	s.cfg.Log.Debug("Court search completed",
		"institution_id", institutionID,
		"sport", sport,
		"results_count", len(courts),
	)

	return courts, nil
}

func (s *courtService) sanitize(court *model.Court) {
	court.Name = sanitizer.NormalizeName(court.Name)
	court.Sport = strings.ToLower(sanitizer.TrimAndNormalize(court.Sport))
}

func (s *courtService) mergeCourtUpdates(existing *model.Court, updates *model.CourtUpdate) *model.Court {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Sport != "" {
		merged.Sport = updates.Sport
	}
	if updates.HourlyRate != nil {
		merged.HourlyRate = *updates.HourlyRate
	}
	if updates.Indoor != nil {
		merged.Indoor = *updates.Indoor
	}
	if updates.Lighting != nil {
		merged.Lighting = *updates.Lighting
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	return &merged
}

// PricingConfig exposes the active rate table so booking clients can render
// price previews without a round trip per slot.
func (s *courtService) PricingConfig() pricing.Config {
	return s.cfg.Pricing
}
