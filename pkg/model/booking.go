package model

import "fmt"

// Booking is stored exactly as submitted. Time is an opaque token compared
// byte for byte.
type Booking struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Date   Date   `json:"date"`
	Time   string `json:"time" validate:"required,slot_time"`
	Guests int    `json:"guests"`
}

// Slot is the (date, time) pair a booking occupies.
type Slot struct {
	Date Date
	Time string
}

func (b *Booking) Slot() Slot {
	return Slot{Date: b.Date, Time: b.Time}
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s", s.Date, s.Time)
}

// BookingUpdate carries the fields an update may change. ID and Name are immutable.
type BookingUpdate struct {
	Date   Date   `json:"date"`
	Time   string `json:"time" validate:"required,slot_time"`
	Guests int    `json:"guests"`
}

func (u *BookingUpdate) Slot() Slot {
	return Slot{Date: u.Date, Time: u.Time}
}

type DeleteConfirmation struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func NewDeleteConfirmation(id int64) *DeleteConfirmation {
	return &DeleteConfirmation{
		ID:      id,
		Message: fmt.Sprintf("Booking %d deleted successfully", id),
	}
}

// Clone returns a copy detached from the stored record.
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}

// Apply overwrites the mutable fields of b with the update.
func (b *Booking) Apply(u *BookingUpdate) {
	b.Date = u.Date
	b.Time = u.Time
	b.Guests = u.Guests
}
