package data

import (
	"encoding/json"
	"io"
	"time"
)

type ReservationStatus string

const (
	Confirmed ReservationStatus = "Confirmed"
	Cancelled ReservationStatus = "Cancelled"
)

// Reservation is a confirmed commitment of Quantity rooms across the
// half-open stay window [CheckIn, CheckOut).
type Reservation struct {
	ID         string            `json:"id"`
	RoomTypeID string            `json:"room_type_id"`
	CheckIn    time.Time         `json:"check_in_date"`
	CheckOut   time.Time         `json:"check_out_date"`
	Quantity   int               `json:"quantity"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

type Reservations []*Reservation

// Covers reports whether the stay window includes the given date.
// Checkout day is not a night spent, so it is excluded.
func (r *Reservation) Covers(date time.Time) bool {
	d := Day(date)
	return !d.Before(Day(r.CheckIn)) && d.Before(Day(r.CheckOut))
}

// Nights is the number of date records the stay touches.
func (r *Reservation) Nights() int {
	return int(Day(r.CheckOut).Sub(Day(r.CheckIn)).Hours() / 24)
}

type ReservationCreate struct {
	RoomTypeID string    `json:"room_type_id" validate:"required"`
	CheckIn    time.Time `json:"check_in_date"`
	CheckOut   time.Time `json:"check_out_date"`
	Quantity   int       `json:"quantity" validate:"gte=0"`
}

// BookingSnapshot is the read-only view pushed to the notification
// collaborator after a successful reservation.
type BookingSnapshot struct {
	ReservationID string       `json:"reservation_id"`
	RoomTypeID    string       `json:"room_type_id"`
	RoomTypeName  string       `json:"room_type_name"`
	CheckIn       time.Time    `json:"check_in_date"`
	CheckOut      time.Time    `json:"check_out_date"`
	Quantity      int          `json:"quantity"`
	PricePerNight []NightPrice `json:"price_per_night"`
}

func (o *Reservation) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *ReservationCreate) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o Reservations) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}
