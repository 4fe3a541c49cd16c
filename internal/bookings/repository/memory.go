package repository

import (
	"context"
	"slices"
	"sync"

	bookingserrors "reservations/internal/bookings/errors"
	"reservations/pkg/model"
)

type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings []*model.Booking
}

// NewMemoryBookingRepository returns an empty process-lifetime store.
func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{}
}

func (r *memoryBookingRepository) FindAll(_ context.Context) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Booking, len(r.bookings))
	for i, b := range r.bookings {
		out[i] = b.Clone()
	}
	return out, nil
}

func (r *memoryBookingRepository) FindByID(_ context.Context, id int64) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, bookingserrors.ErrNotFound
	}
	return r.bookings[i].Clone(), nil
}

func (r *memoryBookingRepository) FindBySlot(_ context.Context, slot model.Slot) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Booking
	for _, b := range r.bookings {
		if b.Slot() == slot {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

func (r *memoryBookingRepository) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = append(r.bookings, booking.Clone())
	return nil
}

func (r *memoryBookingRepository) Update(_ context.Context, id int64, update *model.BookingUpdate) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, bookingserrors.ErrNotFound
	}
	r.bookings[i].Apply(update)
	return r.bookings[i].Clone(), nil
}

func (r *memoryBookingRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return bookingserrors.ErrNotFound
	}
	r.bookings = slices.Delete(r.bookings, i, i+1)
	return nil
}

func (r *memoryBookingRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}

func (r *memoryBookingRepository) Ping(_ context.Context) error {
	return nil
}

// indexOf expects r.mu to be held.
func (r *memoryBookingRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.bookings, func(b *model.Booking) bool {
		return b.ID == id
	})
}
