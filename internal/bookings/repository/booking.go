package repository

import (
	"context"

	"reservations/pkg/contracts"
	"reservations/pkg/model"
)

// BookingRepository stores bookings in insertion order. Lookups and
// mutations by id act on the first matching record, since ids are not
// guaranteed unique. Returned bookings are detached copies.
type BookingRepository interface {
	FindAll(ctx context.Context) ([]*model.Booking, error)
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindBySlot(ctx context.Context, slot model.Slot) ([]*model.Booking, error)
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, id int64, update *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	contracts.Pinger
}
