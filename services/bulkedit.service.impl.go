package services

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inventory-service/cache"
	"inventory-service/data"
	"inventory-service/domain"
	"inventory-service/lock"
	"inventory-service/repository"
)

// BulkEditServiceImpl applies an administrator's calendar-wide change
// across a date range. The merge is idempotent: applying the same edit
// twice leaves the same state as applying it once.
type BulkEditServiceImpl struct {
	inventory *repository.Inventory
	locks     *lock.RoomLocks
	cache     *cache.AvailabilityCache
	logger    *log.Logger
	Tracer    trace.Tracer
}

func NewBulkEditServiceImpl(inventory *repository.Inventory, locks *lock.RoomLocks, availabilityCache *cache.AvailabilityCache, logger *log.Logger, tracer trace.Tracer) BulkEditService {
	return &BulkEditServiceImpl{
		inventory: inventory,
		locks:     locks,
		cache:     availabilityCache,
		logger:    logger,
		Tracer:    tracer,
	}
}

func (s *BulkEditServiceImpl) ApplyBulkEdit(ctx context.Context, roomTypeID string, start time.Time, end time.Time, edit *data.BulkEdit) (int, error) {
	ctx, span := s.Tracer.Start(ctx, "BulkEditService.ApplyBulkEdit")
	defer span.End()

	startDay := data.Day(start)
	endDay := data.Day(end)
	if !endDay.After(startDay) {
		span.SetStatus(codes.Error, "invalid date range")
		return 0, domain.ErrInvalidRange()
	}

	if edit.TotalRooms != nil && *edit.TotalRooms < 0 {
		return 0, domain.ErrMalformedRecord()
	}
	if edit.Price != nil && *edit.Price < 0 {
		return 0, domain.ErrMalformedRecord()
	}

	if err := s.locks.Acquire(ctx, roomTypeID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	defer s.locks.Release(roomTypeID)

	records, err := s.inventory.GetRange(ctx, roomTypeID, startDay, endDay)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	touched := 0
	for _, record := range records {
		if edit.TotalRooms != nil {
			record.TotalRooms = *edit.TotalRooms
		}
		if edit.Price != nil {
			record.Price = *edit.Price
		}
		if edit.Open != nil {
			record.Open = *edit.Open
		}
		switch edit.ResetBookings {
		case data.ResetZero:
			record.BookedRooms = 0
		case data.ResetFull:
			record.BookedRooms = record.TotalRooms
		}
		// Shrinking total below booked would leave negative free rooms.
		if record.BookedRooms > record.TotalRooms {
			record.BookedRooms = record.TotalRooms
		}

		if err := s.inventory.Put(ctx, record); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return touched, err
		}
		touched++
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRoomType(ctx, roomTypeID); err != nil {
			s.logger.Println(err)
		}
	}
	return touched, nil
}

// PutRecord is the admin's single-date overwrite. It still runs inside
// the room lock so it cannot interleave with a reservation in flight.
func (s *BulkEditServiceImpl) PutRecord(ctx context.Context, record *data.AvailabilityRecord) error {
	ctx, span := s.Tracer.Start(ctx, "BulkEditService.PutRecord")
	defer span.End()

	if err := s.locks.Acquire(ctx, record.RoomTypeID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer s.locks.Release(record.RoomTypeID)

	if err := s.inventory.Put(ctx, record); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRoomType(ctx, record.RoomTypeID); err != nil {
			s.logger.Println(err)
		}
	}
	return nil
}
