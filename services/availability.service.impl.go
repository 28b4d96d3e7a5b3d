package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inventory-service/cache"
	"inventory-service/data"
	"inventory-service/domain"
	"inventory-service/repository"
)

// AvailabilityServiceImpl answers range queries with snapshot reads only.
// It never takes the room lock: a result may be stale by the time the
// caller reserves, and Reserve re-validates under the lock anyway.
type AvailabilityServiceImpl struct {
	inventory *repository.Inventory
	cache     *cache.AvailabilityCache
	Tracer    trace.Tracer
}

func NewAvailabilityServiceImpl(inventory *repository.Inventory, availabilityCache *cache.AvailabilityCache, tracer trace.Tracer) AvailabilityService {
	return &AvailabilityServiceImpl{
		inventory: inventory,
		cache:     availabilityCache,
		Tracer:    tracer,
	}
}

func (s *AvailabilityServiceImpl) readRange(ctx context.Context, roomTypeID string, start, end time.Time) (data.AvailabilityRecords, error) {
	if s.cache != nil {
		if records, err := s.cache.GetRange(ctx, roomTypeID, start, end); err == nil {
			return records, nil
		}
	}

	records, err := s.inventory.GetRange(ctx, roomTypeID, start, end)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.PostRange(ctx, roomTypeID, start, end, records)
	}
	return records, nil
}

// CheckAvailability iterates every date in [checkIn, checkOut); a 2-night
// stay covers exactly 2 date records. The stay is bookable only when every
// covered date is open and has enough free rooms, but every failing date
// is still reported so the UI can surface it.
func (s *AvailabilityServiceImpl) CheckAvailability(ctx context.Context, roomTypeID string, checkIn time.Time, checkOut time.Time, quantity int) (*data.AvailabilityCheck, error) {
	ctx, span := s.Tracer.Start(ctx, "AvailabilityService.CheckAvailability")
	defer span.End()

	checkInDay := data.Day(checkIn)
	checkOutDay := data.Day(checkOut)
	if !checkOutDay.After(checkInDay) {
		span.SetStatus(codes.Error, "invalid date range")
		return nil, domain.ErrInvalidRange()
	}
	if quantity <= 0 {
		quantity = 1
	}

	records, err := s.readRange(ctx, roomTypeID, checkInDay, checkOutDay)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	check := &data.AvailabilityCheck{
		RoomTypeID: roomTypeID,
		Bookable:   true,
		Nights:     len(records),
	}
	for _, record := range records {
		check.PricePerNight = append(check.PricePerNight, data.NightPrice{
			Date:  record.Date,
			Price: record.Price,
		})
		if !record.Open || record.FreeRooms() < quantity {
			check.Bookable = false
			check.BlockedDates = append(check.BlockedDates, record.Date)
		}
	}
	return check, nil
}

func (s *AvailabilityServiceImpl) GetCalendar(ctx context.Context, roomTypeID string, start time.Time, end time.Time) (data.AvailabilityRecords, error) {
	ctx, span := s.Tracer.Start(ctx, "AvailabilityService.GetCalendar")
	defer span.End()

	records, err := s.readRange(ctx, roomTypeID, data.Day(start), data.Day(end))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return records, nil
}
