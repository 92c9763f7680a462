// Package service implements the component repository operations. Each
// mutation runs in one unit of work together with its audit record, so a
// component never changes without a matching entry in its history.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"uims/internal/component/audit"
	"uims/internal/component/mapper"
	"uims/internal/component/metrics"
	"uims/internal/component/models"
	"uims/internal/component/store"
	"uims/pkg/domain"
	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/pagination"
	"uims/pkg/platform/sentinel"
	"uims/pkg/requestcontext"
)

// Transactor runs fn as one atomic unit of work. Stores called with the ctx
// passed to fn join it.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ComponentStore interface {
	Create(ctx context.Context, spaceID domain.SpaceID, draft models.Draft) (models.Component, error)
	FindActive(ctx context.Context, id domain.ComponentID) (models.Component, error)
	Update(ctx context.Context, c models.Component) error
	MarkDeleted(ctx context.Context, id domain.ComponentID) error
	List(ctx context.Context, f store.Filter, page pagination.Page) (pagination.Result[models.Component], error)
}

type AuditStore interface {
	AppendAudit(ctx context.Context, record models.AuditRecord) error
	ListAudit(ctx context.Context, id domain.ComponentID) ([]models.AuditRecord, error)
}

// SpaceChecker reports whether a learning space exists and is not deleted.
type SpaceChecker interface {
	Exists(ctx context.Context, id domain.SpaceID) (bool, error)
}

// Service is the component repository.
type Service struct {
	tx         Transactor
	components ComponentStore
	audit      AuditStore
	recorder   *audit.Recorder
	spaces     SpaceChecker
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(tx Transactor, components ComponentStore, auditStore AuditStore, spaces SpaceChecker, opts ...Option) *Service {
	s := &Service{
		tx:         tx,
		components: components,
		audit:      auditStore,
		recorder:   audit.NewRecorder(auditStore),
		spaces:     spaces,
		logger:     slog.Default(),
		tracer:     otel.Tracer("uims/component"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates in and creates it in spaceID. The space must exist and not be
// deleted. The component and its Created record are written together.
func (s *Service) Add(ctx context.Context, spaceID domain.SpaceID, in models.ComponentInput) (_ *models.Component, err error) {
	ctx, done := s.begin(ctx, "add", in.Kind(), attribute.Int64("space.id", int64(spaceID)))
	defer func() { done(err) }()

	draft, err := mapper.Parse(in)
	if err != nil {
		return nil, err
	}

	var created models.Component
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireSpace(ctx, spaceID); err != nil {
			return err
		}
		c, err := s.components.Create(ctx, spaceID, draft)
		if err != nil {
			return err
		}
		if _, err := s.recorder.Record(ctx, c, models.ActionCreated); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, translate(err, fmt.Sprintf("learning space %d not found", spaceID))
	}

	s.auditCommitted(models.ActionCreated)
	s.logger.InfoContext(ctx, "component created",
		"component_id", created.ID,
		"display_id", created.DisplayID,
		"space_id", spaceID,
		"kind", created.Kind(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &created, nil
}

// GetByID returns the component with id. Deleted components are reported as
// not found.
func (s *Service) GetByID(ctx context.Context, id domain.ComponentID) (_ *models.Component, err error) {
	ctx, done := s.begin(ctx, "get", "", attribute.Int64("component.id", int64(id)))
	defer func() { done(err) }()

	c, err := s.components.FindActive(ctx, id)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("component %d not found", id))
	}
	return &c, nil
}

// ListBySpace returns one page of the live components in spaceID whose display
// id contains search, ignoring case. An unknown space yields an empty page.
func (s *Service) ListBySpace(ctx context.Context, spaceID domain.SpaceID, pageSize, pageIndex int, search string) (_ pagination.Result[models.Component], err error) {
	ctx, done := s.begin(ctx, "list_by_space", "", attribute.Int64("space.id", int64(spaceID)))
	defer func() { done(err) }()

	page, err := pagination.NewPage(pageSize, pageIndex)
	if err != nil {
		return pagination.Result[models.Component]{}, err
	}
	res, err := s.components.List(ctx, store.Filter{SpaceID: &spaceID, Search: search}, page)
	if err != nil {
		return pagination.Result[models.Component]{}, translate(err, "components not found")
	}
	return res, nil
}

// ListAll returns one page of the live components across every space.
func (s *Service) ListAll(ctx context.Context, pageSize, pageIndex int) (_ []models.Component, err error) {
	ctx, done := s.begin(ctx, "list_all", "")
	defer func() { done(err) }()

	page, err := pagination.NewPage(pageSize, pageIndex)
	if err != nil {
		return nil, err
	}
	res, err := s.components.List(ctx, store.Filter{}, page)
	if err != nil {
		return nil, translate(err, "components not found")
	}
	return res.Items, nil
}

// Update replaces every mutable field of component id in spaceID with in.
// The variant cannot change: a payload of another kind is a TypeMismatch and
// nothing is written.
func (s *Service) Update(ctx context.Context, spaceID domain.SpaceID, id domain.ComponentID, in models.ComponentInput) (_ bool, err error) {
	ctx, done := s.begin(ctx, "update", in.Kind(),
		attribute.Int64("space.id", int64(spaceID)),
		attribute.Int64("component.id", int64(id)),
	)
	defer func() { done(err) }()

	draft, err := mapper.Parse(in)
	if err != nil {
		return false, err
	}

	var updated models.Component
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.components.FindActive(ctx, id)
		if err != nil {
			return err
		}
		if current.SpaceID != spaceID {
			return fmt.Errorf("component %d is not in learning space %d: %w", id, spaceID, sentinel.ErrNotFound)
		}
		if current.Kind() != draft.Kind() {
			return dErrors.New(dErrors.CodeTypeMismatch,
				fmt.Sprintf("component %d is a %s and cannot be updated with %s fields", id, current.Kind(), draft.Kind()))
		}

		next := draft.ApplyTo(current)
		if err := s.components.Update(ctx, next); err != nil {
			return err
		}
		if _, err := s.recorder.Record(ctx, next, models.ActionUpdated); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return false, translate(err, fmt.Sprintf("component %d not found in learning space %d", id, spaceID))
	}

	s.auditCommitted(models.ActionUpdated)
	s.logger.InfoContext(ctx, "component updated",
		"component_id", updated.ID,
		"display_id", updated.DisplayID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return true, nil
}

// Delete soft-deletes component id. It returns false, without error, when the
// component is absent or already deleted.
func (s *Service) Delete(ctx context.Context, id domain.ComponentID) (_ bool, err error) {
	ctx, done := s.begin(ctx, "delete", "", attribute.Int64("component.id", int64(id)))
	defer func() { done(err) }()

	deleted := false
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.components.FindActive(ctx, id)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.components.MarkDeleted(ctx, id); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return err
		}
		current.IsDeleted = true
		if _, err := s.recorder.Record(ctx, current, models.ActionDeleted); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, translate(err, fmt.Sprintf("component %d not found", id))
	}

	if deleted {
		s.auditCommitted(models.ActionDeleted)
		s.logger.InfoContext(ctx, "component deleted",
			"component_id", id,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return deleted, nil
}

// History returns every audit record of component id, oldest first. It works
// for deleted components; NotFound means no record was ever written.
func (s *Service) History(ctx context.Context, id domain.ComponentID) (_ []models.AuditRecord, err error) {
	ctx, done := s.begin(ctx, "history", "", attribute.Int64("component.id", int64(id)))
	defer func() { done(err) }()

	records, err := s.audit.ListAudit(ctx, id)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("component %d not found", id))
	}
	if len(records) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("no history for component %d", id))
	}
	return records, nil
}

func (s *Service) requireSpace(ctx context.Context, spaceID domain.SpaceID) error {
	ok, err := s.spaces.Exists(ctx, spaceID)
	if err != nil {
		return fmt.Errorf("check learning space %d: %w", spaceID, err)
	}
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("learning space %d not found", spaceID))
	}
	return nil
}

// begin opens a span for op and returns the function that closes it and
// records the outcome.
func (s *Service) begin(ctx context.Context, op string, kind models.Kind, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	attrs = append(attrs, attribute.String("component.operation", op))
	if kind != "" {
		attrs = append(attrs, attribute.String("component.kind", string(kind)))
	}
	ctx, span := s.tracer.Start(ctx, "component."+op, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		defer span.End()
		if s.metrics != nil {
			s.metrics.ObserveOperation(op, kind, err, start)
		}
		if err == nil {
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))

		switch dErrors.CodeOf(err) {
		case dErrors.CodeCorruptData:
			s.logger.ErrorContext(ctx, "corrupt component data",
				"operation", op,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		case dErrors.CodeStorageFailure, dErrors.CodeTimeout:
			s.logger.ErrorContext(ctx, "component storage failure",
				"operation", op,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
}

func (s *Service) auditCommitted(action models.Action) {
	if s.metrics != nil {
		s.metrics.IncrementAuditRecord(action)
	}
}

// translate maps store errors onto domain codes. Errors that already carry a
// code pass through; a missing row becomes NotFound with notFoundMsg; anything
// else is a StorageFailure.
func translate(err error, notFoundMsg string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeStorageFailure, "component storage failure")
}
