package repository

import (
	"context"
	"log"
	"time"

	"inventory-service/data"
	"inventory-service/domain"
)

// InventoryBackend is the raw keyed storage under the Inventory facade.
// Find returns nil without error when no row was ever written for the key;
// FindRange returns only stored rows, ascending by date.
type InventoryBackend interface {
	Find(ctx context.Context, roomTypeID string, date time.Time) (*data.AvailabilityRecord, error)
	Save(ctx context.Context, record *data.AvailabilityRecord) error
	FindRange(ctx context.Context, roomTypeID string, start time.Time, end time.Time) (data.AvailabilityRecords, error)
	DeleteByRoomType(ctx context.Context, roomTypeID string) error
}

// Inventory is the source of truth for per-date availability. Records are
// lazily materialized: a date nobody ever wrote is synthesized from the
// room type's defaults and only persisted on first Put.
type Inventory struct {
	backend InventoryBackend
	catalog CatalogStore
	logger  *log.Logger
}

func NewInventory(backend InventoryBackend, catalog CatalogStore, logger *log.Logger) *Inventory {
	return &Inventory{
		backend: backend,
		catalog: catalog,
		logger:  logger,
	}
}

// approvedRoomType hides room types that are pending, rejected or deleted.
func (inv *Inventory) approvedRoomType(ctx context.Context, roomTypeID string) (*data.RoomType, error) {
	roomType, err := inv.catalog.GetRoomType(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	if roomType.Status != data.Approved {
		return nil, domain.ErrRoomTypeNotFound()
	}
	return roomType, nil
}

func synthesize(roomType *data.RoomType, date time.Time) *data.AvailabilityRecord {
	return &data.AvailabilityRecord{
		RoomTypeID:  roomType.ID,
		Date:        data.Day(date),
		TotalRooms:  roomType.BaseTotalRooms,
		BookedRooms: 0,
		Price:       roomType.BasePrice,
		Open:        true,
		Stored:      false,
	}
}

func (inv *Inventory) Get(ctx context.Context, roomTypeID string, date time.Time) (*data.AvailabilityRecord, error) {
	roomType, err := inv.approvedRoomType(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}

	record, err := inv.backend.Find(ctx, roomTypeID, data.Day(date))
	if err != nil {
		inv.logger.Println(err)
		return nil, err
	}
	if record == nil {
		return synthesize(roomType, date), nil
	}
	return record, nil
}

// Put persists a record, overwriting any stored row for the same key.
// The only validation here is type-level sanity: negative counts or a
// negative price are rejected as malformed. Whether booked exceeds total
// is the caller's policy, not the repository's.
func (inv *Inventory) Put(ctx context.Context, record *data.AvailabilityRecord) error {
	if record.TotalRooms < 0 || record.BookedRooms < 0 || record.Price < 0 {
		return domain.ErrMalformedRecord()
	}

	if _, err := inv.approvedRoomType(ctx, record.RoomTypeID); err != nil {
		return err
	}

	record.Date = data.Day(record.Date)
	record.Stored = true

	if err := inv.backend.Save(ctx, record); err != nil {
		inv.logger.Println(err)
		return err
	}
	return nil
}

// GetRange returns one record per date in [start, end), synthesizing gaps
// between stored rows so a year-long calendar stays cheap to represent.
func (inv *Inventory) GetRange(ctx context.Context, roomTypeID string, start time.Time, end time.Time) (data.AvailabilityRecords, error) {
	startDay := data.Day(start)
	endDay := data.Day(end)
	if !endDay.After(startDay) {
		return nil, domain.ErrInvalidRange()
	}

	roomType, err := inv.approvedRoomType(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}

	stored, err := inv.backend.FindRange(ctx, roomTypeID, startDay, endDay)
	if err != nil {
		inv.logger.Println(err)
		return nil, err
	}

	byDate := make(map[time.Time]*data.AvailabilityRecord, len(stored))
	for _, record := range stored {
		byDate[record.Date] = record
	}

	var records data.AvailabilityRecords
	for d := startDay; d.Before(endDay); d = d.AddDate(0, 0, 1) {
		if record, ok := byDate[d]; ok {
			records = append(records, record)
			continue
		}
		records = append(records, synthesize(roomType, d))
	}
	return records, nil
}

// PurgeRoomType removes every stored record for a room type. Used when an
// approved room type is deleted; bypasses the approval check on purpose.
func (inv *Inventory) PurgeRoomType(ctx context.Context, roomTypeID string) error {
	if err := inv.backend.DeleteByRoomType(ctx, roomTypeID); err != nil {
		inv.logger.Println(err)
		return err
	}
	return nil
}
