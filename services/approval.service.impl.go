package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inventory-service/data"
	"inventory-service/domain"
	"inventory-service/lock"
	"inventory-service/repository"
)

// ApprovalServiceImpl gates when inventory records come into existence.
// A submitted hotel sits in Pending with no materialized records; only
// Approved room types are visible to the availability and booking paths.
// Status transitions run inside an exclusive section keyed by hotel ID.
type ApprovalServiceImpl struct {
	catalog   repository.CatalogStore
	inventory *repository.Inventory
	locks     *lock.RoomLocks
	Tracer    trace.Tracer
}

func NewApprovalServiceImpl(catalog repository.CatalogStore, inventory *repository.Inventory, locks *lock.RoomLocks, tracer trace.Tracer) ApprovalService {
	return &ApprovalServiceImpl{
		catalog:   catalog,
		inventory: inventory,
		locks:     locks,
		Tracer:    tracer,
	}
}

func (s *ApprovalServiceImpl) Submit(ctx context.Context, hotel *data.Hotel) (*data.Hotel, error) {
	ctx, span := s.Tracer.Start(ctx, "ApprovalService.Submit")
	defer span.End()

	now := time.Now().UTC()
	hotel.ID = uuid.NewString()
	hotel.Status = data.Pending
	hotel.CreatedAt = now

	if err := s.catalog.InsertHotel(ctx, hotel); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	for _, roomType := range hotel.RoomTypes {
		roomType.ID = uuid.NewString()
		roomType.HotelID = hotel.ID
		roomType.Status = data.Pending
		roomType.CreatedAt = now

		if err := s.catalog.InsertRoomType(ctx, roomType); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	return hotel, nil
}

// transition moves a pending hotel and its room types to the target
// status. Anything other than pending -> approved/rejected is illegal.
// The status check and the writes run inside the hotel's exclusive
// section, so concurrent transitions serialize and exactly one wins.
func (s *ApprovalServiceImpl) transition(ctx context.Context, span trace.Span, hotelID string, status data.ApprovalStatus) error {
	if err := s.locks.Acquire(ctx, hotelID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer s.locks.Release(hotelID)

	hotel, err := s.catalog.GetHotel(ctx, hotelID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if hotel.Status != data.Pending {
		span.SetStatus(codes.Error, "illegal approval transition")
		return domain.ErrInvalidTransition()
	}

	if err := s.catalog.UpdateHotelStatus(ctx, hotelID, status); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	roomTypes, err := s.catalog.GetRoomTypesByHotel(ctx, hotelID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	for _, roomType := range roomTypes {
		if err := s.catalog.UpdateRoomTypeStatus(ctx, roomType.ID, status); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	return nil
}

// Approve is the point at which the inventory starts synthesizing default
// records for the hotel's room types. Records stay lazy: nothing is
// persisted until the first write.
func (s *ApprovalServiceImpl) Approve(ctx context.Context, hotelID string) error {
	ctx, span := s.Tracer.Start(ctx, "ApprovalService.Approve")
	defer span.End()

	return s.transition(ctx, span, hotelID, data.Approved)
}

func (s *ApprovalServiceImpl) Reject(ctx context.Context, hotelID string) error {
	ctx, span := s.Tracer.Start(ctx, "ApprovalService.Reject")
	defer span.End()

	return s.transition(ctx, span, hotelID, data.Rejected)
}

// Delete removes an approved hotel, its room types and every stored
// availability record. Reservations are kept for audit.
func (s *ApprovalServiceImpl) Delete(ctx context.Context, hotelID string) error {
	ctx, span := s.Tracer.Start(ctx, "ApprovalService.Delete")
	defer span.End()

	if err := s.locks.Acquire(ctx, hotelID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer s.locks.Release(hotelID)

	hotel, err := s.catalog.GetHotel(ctx, hotelID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if hotel.Status != data.Approved {
		span.SetStatus(codes.Error, "illegal approval transition")
		return domain.ErrInvalidTransition()
	}

	roomTypes, err := s.catalog.GetRoomTypesByHotel(ctx, hotelID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	for _, roomType := range roomTypes {
		// Flip status before purging so booking paths stop seeing the
		// room type and cannot re-materialize records mid-deletion.
		if err := s.catalog.UpdateRoomTypeStatus(ctx, roomType.ID, data.Rejected); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		// The room type's own section drains any in-flight reservation
		// write before the records go away.
		if err := s.locks.Acquire(ctx, roomType.ID); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		err := s.inventory.PurgeRoomType(ctx, roomType.ID)
		s.locks.Release(roomType.ID)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if err := s.catalog.DeleteRoomType(ctx, roomType.ID); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	if err := s.catalog.DeleteHotel(ctx, hotelID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s *ApprovalServiceImpl) GetHotel(ctx context.Context, hotelID string) (*data.Hotel, error) {
	ctx, span := s.Tracer.Start(ctx, "ApprovalService.GetHotel")
	defer span.End()

	hotel, err := s.catalog.GetHotel(ctx, hotelID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	roomTypes, err := s.catalog.GetRoomTypesByHotel(ctx, hotelID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	hotel.RoomTypes = roomTypes
	return hotel, nil
}

// UpdateRoomType is the one explicit edit path for room type
// configuration. Identity and approval status cannot be changed here.
func (s *ApprovalServiceImpl) UpdateRoomType(ctx context.Context, roomType *data.RoomType) (*data.RoomType, error) {
	ctx, span := s.Tracer.Start(ctx, "ApprovalService.UpdateRoomType")
	defer span.End()

	existing, err := s.catalog.GetRoomType(ctx, roomType.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if roomType.BasePrice < 0 || roomType.BaseTotalRooms < 0 {
		return nil, domain.ErrMalformedRecord()
	}

	roomType.HotelID = existing.HotelID
	roomType.Status = existing.Status
	roomType.CreatedAt = existing.CreatedAt

	if err := s.catalog.UpdateRoomType(ctx, roomType); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return roomType, nil
}
