package data

import (
	"encoding/json"
	"io"
	"time"
)

// AvailabilityRecord is the per-day inventory snapshot for one room type,
// keyed by (room_type_id, date). Dates are UTC midnight.
type AvailabilityRecord struct {
	RoomTypeID  string    `json:"room_type_id"`
	Date        time.Time `json:"date"`
	TotalRooms  int       `json:"total_rooms"`
	BookedRooms int       `json:"booked_rooms"`
	Price       float64   `json:"price"`
	Open        bool      `json:"open"`
	// Stored is false while the record is only synthesized from the
	// room type's defaults and has never been written.
	Stored bool `json:"-"`
}

// FreeRooms is zero when the date is closed, regardless of counts.
func (a *AvailabilityRecord) FreeRooms() int {
	if !a.Open {
		return 0
	}
	return a.TotalRooms - a.BookedRooms
}

type AvailabilityRecords []*AvailabilityRecord

type ResetBookingsMode string

const (
	ResetNone ResetBookingsMode = ""
	ResetZero ResetBookingsMode = "Zero"
	ResetFull ResetBookingsMode = "Full"
)

// BulkEdit carries the fields an administrator wants merged into every
// record of a date range. Nil pointers leave the field untouched.
type BulkEdit struct {
	TotalRooms    *int              `json:"total_rooms,omitempty"`
	Price         *float64          `json:"price,omitempty"`
	Open          *bool             `json:"open,omitempty"`
	ResetBookings ResetBookingsMode `json:"reset_bookings,omitempty"`
}

type CheckAvailability struct {
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Quantity     int       `json:"quantity" validate:"gte=0"`
}

type NightPrice struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

type AvailabilityCheck struct {
	RoomTypeID    string       `json:"room_type_id"`
	Bookable      bool         `json:"bookable"`
	Nights        int          `json:"nights"`
	PricePerNight []NightPrice `json:"price_per_night"`
	BlockedDates  []time.Time  `json:"blocked_dates"`
}

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

func (a *AvailabilityRecord) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(a)
}

func (a *AvailabilityRecord) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(a)
}

func (a AvailabilityRecords) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(a)
}

func (b *BulkEdit) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(b)
}

func (c *CheckAvailability) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(c)
}

func (c *AvailabilityCheck) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(c)
}
