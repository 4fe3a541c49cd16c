package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	bookingserrors "reservations/internal/bookings/errors"
	"reservations/internal/bookings/events"
	"reservations/internal/bookings/metrics"
	"reservations/internal/bookings/repository"
	"reservations/internal/bookings/validator"
	"reservations/pkg/config"
	apperrors "reservations/pkg/errors"
	"reservations/pkg/middleware"
	"reservations/pkg/model"
	"reservations/pkg/sanitizer"
)

var errInvalidUpdate = errors.New("invalid booking update")

type BookingService interface {
	List(ctx context.Context) ([]*model.Booking, error)
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	Update(ctx context.Context, id int64, update *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id int64) (*model.DeleteConfirmation, error)
}

// bookingService keeps every (date, time) slot held by at most one booking.
// mu serialises the check-then-write of each mutation; reads share it so
// they never see a half-applied change.
type bookingService struct {
	mu        sync.RWMutex
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	metrics   *metrics.Metrics
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	m *metrics.Metrics,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
	}
}

func (s *bookingService) List(ctx context.Context) ([]*model.Booking, error) {
	s.mu.RLock()
	bookings, err := s.repo.FindAll(ctx)
	s.mu.RUnlock()

	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		s.metrics.Observe(metrics.OpList, metrics.ResultError)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	s.metrics.Observe(metrics.OpList, metrics.ResultSuccess)
	s.metrics.SetStored(int64(len(bookings)))
	return bookings, nil
}

func (s *bookingService) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	s.mu.RLock()
	booking, err := s.repo.FindByID(ctx, id)
	s.mu.RUnlock()

	if err != nil {
		return nil, s.fail(metrics.OpGet, id, err)
	}

	s.metrics.Observe(metrics.OpGet, metrics.ResultSuccess)
	return booking, nil
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	candidate := s.prepare(booking)
	if err := s.validator.Validate(candidate); err != nil {
		return nil, s.invalid(metrics.OpCreate, candidate.ID, err)
	}

	stored, err := s.create(ctx, candidate)
	if err != nil {
		return nil, s.fail(metrics.OpCreate, candidate.ID, err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", stored.ID,
		"date", stored.Date,
		"time", stored.Time,
		"guests", stored.Guests,
	)
	s.metrics.Observe(metrics.OpCreate, metrics.ResultSuccess)
	s.publish(ctx, events.TypeBookingCreated, stored.ID, stored)
	return stored, nil
}

func (s *bookingService) create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSlotFree(ctx, booking.Slot(), nil); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByID(ctx, booking.ID)
	switch {
	case err == nil && s.cfg.UniqueBookingIDs:
		return nil, bookingserrors.ErrDuplicateID
	case err == nil:
		s.cfg.Log.Warn("Creating booking with an id already in use", "id", booking.ID)
	case !errors.Is(err, bookingserrors.ErrNotFound):
		return nil, err
	}

	stored := booking.Clone()
	if err := s.repo.Create(ctx, stored); err != nil {
		return nil, err
	}
	s.refreshStored(ctx)
	return stored, nil
}

func (s *bookingService) Update(ctx context.Context, id int64, update *model.BookingUpdate) (*model.Booking, error) {
	updated, err := s.update(ctx, id, update)
	if errors.Is(err, errInvalidUpdate) {
		return nil, s.invalid(metrics.OpUpdate, id, err)
	}
	if err != nil {
		return nil, s.fail(metrics.OpUpdate, id, err)
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", id,
		"date", updated.Date,
		"time", updated.Time,
		"guests", updated.Guests,
	)
	s.metrics.Observe(metrics.OpUpdate, metrics.ResultSuccess)
	s.publish(ctx, events.TypeBookingUpdated, id, updated)
	return updated, nil
}

func (s *bookingService) update(ctx context.Context, id int64, update *model.BookingUpdate) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// An absent id is reported as not found whatever the update carries.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidUpdate, err)
	}

	// Records sharing the target id never block it, so a booking may keep its own slot.
	ownID := func(b *model.Booking) bool { return b.ID == id }
	if err := s.checkSlotFree(ctx, update.Slot(), ownID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, update)
}

func (s *bookingService) Delete(ctx context.Context, id int64) (*model.DeleteConfirmation, error) {
	s.mu.Lock()
	err := s.repo.Delete(ctx, id)
	if err == nil {
		s.refreshStored(ctx)
	}
	s.mu.Unlock()

	if err != nil {
		return nil, s.fail(metrics.OpDelete, id, err)
	}

	confirmation := model.NewDeleteConfirmation(id)
	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.metrics.Observe(metrics.OpDelete, metrics.ResultSuccess)
	s.publish(ctx, events.TypeBookingDeleted, id, confirmation)
	return confirmation, nil
}

// --- Helpers ---

// checkSlotFree returns ErrSlotConflict when a booking other than those
// matched by skip occupies slot. Callers hold s.mu.
func (s *bookingService) checkSlotFree(ctx context.Context, slot model.Slot, skip func(*model.Booking) bool) error {
	occupants, err := s.repo.FindBySlot(ctx, slot)
	if err != nil {
		return err
	}
	for _, b := range occupants {
		if skip != nil && skip(b) {
			continue
		}
		return fmt.Errorf("%w: %s held by booking %d", bookingserrors.ErrSlotConflict, slot, b.ID)
	}
	return nil
}

// prepare returns the record to store. The caller's booking is never
// modified; the name is only rewritten when normalisation is enabled.
func (s *bookingService) prepare(b *model.Booking) *model.Booking {
	candidate := b.Clone()
	if s.cfg.NormalizeNames {
		candidate.Name = sanitizer.NormalizeName(candidate.Name)
	}
	return candidate
}

// refreshStored expects s.mu to be held.
func (s *bookingService) refreshStored(ctx context.Context) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Warn("Failed to count bookings", "error", err)
		return
	}
	s.metrics.SetStored(n)
}

func (s *bookingService) publish(ctx context.Context, eventType string, id int64, payload any) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:          eventType,
		BookingID:     id,
		CorrelationID: middleware.RequestIDFromContext(ctx),
		Payload:       payload,
	})
	if err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"id", id,
			"error", err,
		)
	}
}

func (s *bookingService) invalid(op string, id int64, err error) error {
	s.cfg.Log.Warn("Booking validation failed", "operation", op, "id", id, "error", err)
	s.metrics.Observe(op, metrics.ResultInvalid)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Booking validation failed", verrs.Details())
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

// fail maps repository and domain errors onto AppErrors, keeping the
// sentinel reachable through errors.Is.
func (s *bookingService) fail(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		s.metrics.Observe(op, metrics.ResultNotFound)
		return apperrors.NotFoundWithID("Booking", id, err)

	case errors.Is(err, bookingserrors.ErrSlotConflict):
		s.cfg.Log.Warn("Booking slot conflict", "operation", op, "id", id, "error", err)
		s.metrics.Observe(op, metrics.ResultConflict)
		return apperrors.SlotConflict("Time slot already booked", err)

	case errors.Is(err, bookingserrors.ErrDuplicateID):
		s.cfg.Log.Warn("Booking id already in use", "operation", op, "id", id)
		s.metrics.Observe(op, metrics.ResultConflict)
		return apperrors.Conflict(fmt.Sprintf("Booking %d already exists", id), err)

	default:
		s.cfg.Log.Error("Booking operation failed", "operation", op, "id", id, "error", err)
		s.metrics.Observe(op, metrics.ResultError)
		return apperrors.Internal(fmt.Sprintf("Failed to %s booking", op), err)
	}
}
