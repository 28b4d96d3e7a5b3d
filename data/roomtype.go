package data

import (
	"encoding/json"
	"io"
	"time"
)

type ApprovalStatus string

const (
	Pending  ApprovalStatus = "Pending"
	Approved ApprovalStatus = "Approved"
	Rejected ApprovalStatus = "Rejected"
)

// RoomType is a bookable category within a hotel with its own base price
// and room count. Per-date overrides live in AvailabilityRecord.
type RoomType struct {
	ID             string          `bson:"_id,omitempty" json:"id"`
	HotelID        string          `bson:"hotel_id" json:"hotel_id"`
	Name           string          `bson:"room_type_name" json:"room_type_name" validate:"required"`
	BasePrice      float64         `bson:"base_price" json:"base_price" validate:"gte=0"`
	BaseTotalRooms int             `bson:"base_total_rooms" json:"base_total_rooms" validate:"gte=0"`
	MaxOccupancy   int             `bson:"max_occupancy" json:"max_occupancy" validate:"gte=1"`
	Amenities      map[string]bool `bson:"amenities" json:"amenities"`
	Status         ApprovalStatus  `bson:"status" json:"status"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
}

type RoomTypes []*RoomType

type Hotel struct {
	ID        string         `bson:"_id,omitempty" json:"id"`
	OwnerID   string         `bson:"owner_id" json:"owner_id"`
	Name      string         `bson:"hotel_name" json:"hotel_name" validate:"required"`
	Location  string         `bson:"hotel_location" json:"hotel_location"`
	Status    ApprovalStatus `bson:"status" json:"status"`
	RoomTypes RoomTypes      `bson:"room_types" json:"room_types" validate:"required,min=1,dive"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}

func (o *Hotel) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Hotel) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o *RoomType) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *RoomType) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o *RoomTypes) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}
