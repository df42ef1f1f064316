package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/ecowatch/pollution-api/internal/model"
	"github.com/ecowatch/pollution-api/internal/repository"
	"github.com/ecowatch/pollution-api/internal/validation"
)

var (
	ErrTitleRequired        = errors.New("nom cannot be empty")
	ErrTitleInvalid         = errors.New("nom contains invalid characters or is too long (max 255 characters)")
	ErrLocationInvalid      = errors.New("lieu contains invalid characters or is too long (max 255 characters)")
	ErrPollutionTypeInvalid = errors.New("typePollution contains invalid characters (max 100 characters)")
	ErrLatitudeOutOfRange   = errors.New("latitude must be between -90 and 90 degrees")
	ErrLongitudeOutOfRange  = errors.New("longitude must be between -180 and 180 degrees")
	ErrImageURLInvalid      = errors.New("imageUrl must be a valid HTTP or HTTPS URL (max 500 characters)")
	ErrDescriptionTooLong   = errors.New("description is too long (max 2000 characters)")
	ErrTitleFilterInvalid   = errors.New("search parameter contains invalid characters")
	ErrInvalidPollutionID   = errors.New("id must be a positive integer")
	ErrPollutionNotFound    = errors.New("pollution not found")
)

// PollutionService handles pollution report business logic: field validation
// followed by a single persistence call.
type PollutionService struct {
	repo *repository.PollutionRepository
}

// NewPollutionService creates a new PollutionService.
func NewPollutionService(repo *repository.PollutionRepository) *PollutionService {
	return &PollutionService{repo: repo}
}

// validateReport checks every supplied field against its pattern, in the
// fixed order nom, lieu, typePollution, latitude, longitude, imageUrl,
// description. The first violation wins. Absent fields pass; requiredness
// is enforced by the caller.
func validateReport(req model.PollutionRequest) error {
	if req.Nom != nil && !validation.Optional(validation.Title, *req.Nom) {
		return ErrTitleInvalid
	}
	if req.Lieu != nil && !validation.Optional(validation.Location, *req.Lieu) {
		return ErrLocationInvalid
	}
	if req.TypePollution != nil && !validation.Optional(validation.PollutionType, *req.TypePollution) {
		return ErrPollutionTypeInvalid
	}
	if req.Latitude != nil && !validation.Optional(validation.Latitude, string(*req.Latitude)) {
		return ErrLatitudeOutOfRange
	}
	if req.Longitude != nil && !validation.Optional(validation.Longitude, string(*req.Longitude)) {
		return ErrLongitudeOutOfRange
	}
	if req.ImageURL != nil && !validation.Optional(validation.ImageURL, *req.ImageURL) {
		return ErrImageURLInvalid
	}
	if req.Description != nil && !validation.DescriptionOK(*req.Description) {
		return ErrDescriptionTooLong
	}
	return nil
}

// parseID validates and converts a path id. The pattern only admits digit
// strings, so oversized values are the sole ParseInt failure mode.
func parseID(id string) (int64, error) {
	if !validation.Required(validation.PollutionID, id) {
		return 0, ErrInvalidPollutionID
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, ErrInvalidPollutionID
	}
	return n, nil
}

// Create validates and persists a new pollution report, returning the stored
// record with its assigned ID.
func (s *PollutionService) Create(ctx context.Context, req model.PollutionRequest) (*model.Pollution, error) {
	if req.Nom == nil || *req.Nom == "" {
		return nil, ErrTitleRequired
	}
	if err := validateReport(req); err != nil {
		return nil, err
	}

	p := &model.Pollution{
		Nom:             *req.Nom,
		Lieu:            req.Lieu,
		DateObservation: req.DateObservation,
		TypePollution:   req.TypePollution,
		Description:     req.Description,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ImageURL:        req.ImageURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// List returns all pollution reports, optionally filtered by a
// case-insensitive substring match on the title.
func (s *PollutionService) List(ctx context.Context, nom string) ([]model.Pollution, error) {
	if !validation.Optional(validation.Title, nom) {
		return nil, ErrTitleFilterInvalid
	}

	reports, err := s.repo.List(ctx, nom)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []model.Pollution{}
	}
	return reports, nil
}

// GetByID returns a single pollution report.
func (s *PollutionService) GetByID(ctx context.Context, id string) (*model.Pollution, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, n)
	if err != nil {
		if errors.Is(err, repository.ErrPollutionNotFound) {
			return nil, ErrPollutionNotFound
		}
		return nil, err
	}

	return p, nil
}

// Update validates the supplied fields and applies a partial update. It
// reports false when no row changed, which covers both a missing record and
// an empty request body.
func (s *PollutionService) Update(ctx context.Context, id string, req model.PollutionRequest) (bool, error) {
	n, err := parseID(id)
	if err != nil {
		return false, err
	}
	if err := validateReport(req); err != nil {
		return false, err
	}

	affected, err := s.repo.Update(ctx, n, req)
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// Delete removes a pollution report. It reports false when no row matched.
func (s *PollutionService) Delete(ctx context.Context, id string) (bool, error) {
	n, err := parseID(id)
	if err != nil {
		return false, err
	}

	affected, err := s.repo.Delete(ctx, n)
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// DeleteAll removes every pollution report and returns the count removed.
func (s *PollutionService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}
