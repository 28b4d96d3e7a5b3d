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
	"inventory-service/notifier"
	"inventory-service/repository"
)

// ReservationServiceImpl is the only writer that decrements free rooms.
// Every mutation runs inside the room type's exclusive section, so the
// check-then-decrement cycle over a whole stay window is atomic: either
// every covered date is decremented or none are.
type ReservationServiceImpl struct {
	inventory    *repository.Inventory
	reservations repository.ReservationStore
	catalog      repository.CatalogStore
	locks        *lock.RoomLocks
	cache        *cache.AvailabilityCache
	notifier     *notifier.Notifier
	logger       *log.Logger
	Tracer       trace.Tracer
}

func NewReservationServiceImpl(
	inventory *repository.Inventory,
	reservations repository.ReservationStore,
	catalog repository.CatalogStore,
	locks *lock.RoomLocks,
	availabilityCache *cache.AvailabilityCache,
	bookingNotifier *notifier.Notifier,
	logger *log.Logger,
	tracer trace.Tracer,
) ReservationService {
	return &ReservationServiceImpl{
		inventory:    inventory,
		reservations: reservations,
		catalog:      catalog,
		locks:        locks,
		cache:        availabilityCache,
		notifier:     bookingNotifier,
		logger:       logger,
		Tracer:       tracer,
	}
}

func (s *ReservationServiceImpl) invalidate(ctx context.Context, roomTypeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRoomType(ctx, roomTypeID); err != nil {
		s.logger.Println(err)
	}
}

// restore writes back the pre-reservation records after a storage failure
// partway through a stay window, so partial decrements never become
// observable.
func (s *ReservationServiceImpl) restore(ctx context.Context, priors data.AvailabilityRecords) {
	for _, prior := range priors {
		if err := s.inventory.Put(ctx, prior); err != nil {
			s.logger.Println("Error restoring availability record:", err)
		}
	}
}

func (s *ReservationServiceImpl) Reserve(ctx context.Context, request *data.ReservationCreate) (*data.Reservation, error) {
	ctx, span := s.Tracer.Start(ctx, "ReservationService.Reserve")
	defer span.End()

	checkIn := data.Day(request.CheckIn)
	checkOut := data.Day(request.CheckOut)
	if !checkOut.After(checkIn) {
		span.SetStatus(codes.Error, "invalid date range")
		return nil, domain.ErrInvalidRange()
	}

	quantity := request.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	if err := s.locks.Acquire(ctx, request.RoomTypeID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer s.locks.Release(request.RoomTypeID)

	// Re-check under the lock: a CheckAvailability result the caller saw
	// moments ago may already be stale.
	records, err := s.inventory.GetRange(ctx, request.RoomTypeID, checkIn, checkOut)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	for _, record := range records {
		if !record.Open || record.FreeRooms() < quantity {
			span.SetStatus(codes.Error, "overbooked")
			return nil, domain.ErrOverbooked()
		}
	}

	var priors data.AvailabilityRecords
	for _, record := range records {
		prior := *record
		record.BookedRooms += quantity
		if err := s.inventory.Put(ctx, record); err != nil {
			span.SetStatus(codes.Error, err.Error())
			s.restore(ctx, priors)
			return nil, err
		}
		priors = append(priors, &prior)
	}

	reservation := &data.Reservation{
		RoomTypeID: request.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Quantity:   quantity,
		Status:     data.Confirmed,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.reservations.Insert(ctx, reservation); err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.restore(ctx, priors)
		return nil, err
	}

	s.invalidate(ctx, request.RoomTypeID)
	s.notify(reservation, records)

	return reservation, nil
}

func (s *ReservationServiceImpl) notify(reservation *data.Reservation, records data.AvailabilityRecords) {
	if s.notifier == nil {
		return
	}

	snapshot := &data.BookingSnapshot{
		ReservationID: reservation.ID,
		RoomTypeID:    reservation.RoomTypeID,
		CheckIn:       reservation.CheckIn,
		CheckOut:      reservation.CheckOut,
		Quantity:      reservation.Quantity,
	}
	if roomType, err := s.catalog.GetRoomType(context.Background(), reservation.RoomTypeID); err == nil {
		snapshot.RoomTypeName = roomType.Name
	}
	for _, record := range records {
		snapshot.PricePerNight = append(snapshot.PricePerNight, data.NightPrice{
			Date:  record.Date,
			Price: record.Price,
		})
	}

	go s.notifier.BookingConfirmed(context.Background(), snapshot)
}

// Cancel restores booked counts for every covered date and marks the
// reservation cancelled. Cancelling anything not currently confirmed is
// a no-op reported as success.
func (s *ReservationServiceImpl) Cancel(ctx context.Context, reservationID string) error {
	ctx, span := s.Tracer.Start(ctx, "ReservationService.Cancel")
	defer span.End()

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if reservation.Status != data.Confirmed {
		return nil
	}

	if err := s.locks.Acquire(ctx, reservation.RoomTypeID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer s.locks.Release(reservation.RoomTypeID)

	// Re-read under the lock: a concurrent cancel may have won the
	// section and already restored the counts.
	reservation, err = s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if reservation.Status != data.Confirmed {
		return nil
	}

	records, err := s.inventory.GetRange(ctx, reservation.RoomTypeID, reservation.CheckIn, reservation.CheckOut)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	for _, record := range records {
		record.BookedRooms -= reservation.Quantity
		// An admin may have reset counts underneath us; never go negative.
		if record.BookedRooms < 0 {
			record.BookedRooms = 0
		}
		if err := s.inventory.Put(ctx, record); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	if err := s.reservations.UpdateStatus(ctx, reservationID, data.Cancelled); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	s.invalidate(ctx, reservation.RoomTypeID)
	return nil
}

func (s *ReservationServiceImpl) GetByRoomType(ctx context.Context, roomTypeID string) (data.Reservations, error) {
	ctx, span := s.Tracer.Start(ctx, "ReservationService.GetByRoomType")
	defer span.End()

	reservations, err := s.reservations.GetByRoomType(ctx, roomTypeID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationServiceImpl) CoveringDate(ctx context.Context, roomTypeID string, date time.Time) (data.Reservations, error) {
	ctx, span := s.Tracer.Start(ctx, "ReservationService.CoveringDate")
	defer span.End()

	reservations, err := s.reservations.CoveringDate(ctx, roomTypeID, date)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return reservations, nil
}
