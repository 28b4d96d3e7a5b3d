package services

import (
	"context"
	"time"

	"inventory-service/data"
)

type ReservationService interface {
	Reserve(ctx context.Context, request *data.ReservationCreate) (*data.Reservation, error)
	Cancel(ctx context.Context, reservationID string) error
	GetByRoomType(ctx context.Context, roomTypeID string) (data.Reservations, error)
	CoveringDate(ctx context.Context, roomTypeID string, date time.Time) (data.Reservations, error)
}
