package services

import (
	"context"
	"time"

	"inventory-service/data"
)

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, roomTypeID string, checkIn time.Time, checkOut time.Time, quantity int) (*data.AvailabilityCheck, error)
	GetCalendar(ctx context.Context, roomTypeID string, start time.Time, end time.Time) (data.AvailabilityRecords, error)
}
