// Package service manages learning spaces, the parents every component must
// reference.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"uims/internal/space/models"
	"uims/pkg/domain"
	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/sentinel"
	"uims/pkg/platform/validation"
	"uims/pkg/requestcontext"
)

const maxNameLength = 200

type Store interface {
	Create(ctx context.Context, space *models.LearningSpace) error
	FindActive(ctx context.Context, id domain.SpaceID) (*models.LearningSpace, error)
	Exists(ctx context.Context, id domain.SpaceID) (bool, error)
	MarkDeleted(ctx context.Context, id domain.SpaceID) error
}

// Service orchestrates learning space management.
type Service struct {
	spaces Store
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(spaces Store, opts ...Option) *Service {
	s := &Service{spaces: spaces, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest carries the raw fields of a new learning space.
type CreateRequest struct {
	FloorID  int64
	Name     string
	Capacity int
}

// Create validates req and stores a new learning space.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.LearningSpace, error) {
	var c validation.Collector
	if req.FloorID < 1 {
		c.Fail("floor_id", "must be a positive id")
	}
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		c.Fail("name", "is required")
	case utf8.RuneCountInString(name) > maxNameLength:
		c.Fail("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	capacity, err := domain.NewCapacity(req.Capacity)
	c.Add("capacity", err)
	if err := c.Err(); err != nil {
		return nil, err
	}

	space := &models.LearningSpace{
		FloorID:   domain.FloorID(req.FloorID),
		Name:      name,
		Capacity:  capacity,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	if err := s.spaces.Create(ctx, space); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to create learning space")
	}
	s.logger.InfoContext(ctx, "learning space created",
		"space_id", space.ID,
		"floor_id", space.FloorID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return space, nil
}

// Get returns the live learning space with id.
func (s *Service) Get(ctx context.Context, id domain.SpaceID) (*models.LearningSpace, error) {
	space, err := s.spaces.FindActive(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("learning space %d not found", id))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to load learning space")
	}
	return space, nil
}

// Exists reports whether a live learning space with id exists.
func (s *Service) Exists(ctx context.Context, id domain.SpaceID) (bool, error) {
	ok, err := s.spaces.Exists(ctx, id)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to check learning space")
	}
	return ok, nil
}

// Delete soft-deletes the space. It returns false when the space is absent or
// already deleted. Components already in the space are left as they are; new
// components can no longer be added to it.
func (s *Service) Delete(ctx context.Context, id domain.SpaceID) (bool, error) {
	err := s.spaces.MarkDeleted(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to delete learning space")
	}
	s.logger.InfoContext(ctx, "learning space deleted",
		"space_id", id,
		"request_id", requestcontext.RequestID(ctx),
	)
	return true, nil
}
