package repository

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"inventory-service/data"
	"inventory-service/domain"
)

func testInventory(t *testing.T) (*Inventory, *InMemoryCatalog) {
	t.Helper()

	catalog := NewInMemoryCatalog()
	backend := NewInMemoryInventory()
	logger := log.New(os.Stdout, "[inventory-test] ", log.LstdFlags)
	return NewInventory(backend, catalog, logger), catalog
}

func approvedRoomType(t *testing.T, catalog *InMemoryCatalog, id string, totalRooms int, price float64) {
	t.Helper()

	err := catalog.InsertRoomType(context.Background(), &data.RoomType{
		ID:             id,
		HotelID:        "hotel-1",
		Name:           "Deluxe Room",
		BasePrice:      price,
		BaseTotalRooms: totalRooms,
		MaxOccupancy:   2,
		Status:         data.Approved,
	})
	if err != nil {
		t.Fatalf("insert room type: %v", err)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGet_SynthesizesDefaults(t *testing.T) {
	inventory, catalog := testInventory(t)
	approvedRoomType(t, catalog, "rt-1", 2, 120)

	record, err := inventory.Get(context.Background(), "rt-1", date(2024, 12, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.TotalRooms != 2 {
		t.Errorf("expected total rooms 2, got %d", record.TotalRooms)
	}
	if record.BookedRooms != 0 {
		t.Errorf("expected booked rooms 0, got %d", record.BookedRooms)
	}
	if record.Price != 120 {
		t.Errorf("expected price 120, got %f", record.Price)
	}
	if !record.Open {
		t.Error("expected synthesized record to be open")
	}
	if record.Stored {
		t.Error("synthesized record must not be marked stored")
	}
}

func TestGet_UnknownRoomType(t *testing.T) {
	inventory, _ := testInventory(t)

	_, err := inventory.Get(context.Background(), "missing", date(2024, 12, 25))
	if !errors.Is(err, domain.ErrRoomTypeNotFound()) {
		t.Errorf("expected room type not found, got %v", err)
	}
}

func TestGet_PendingRoomTypeIsInvisible(t *testing.T) {
	inventory, catalog := testInventory(t)
	catalog.InsertRoomType(context.Background(), &data.RoomType{
		ID:             "rt-pending",
		BaseTotalRooms: 2,
		Status:         data.Pending,
	})

	_, err := inventory.Get(context.Background(), "rt-pending", date(2024, 12, 25))
	if !errors.Is(err, domain.ErrRoomTypeNotFound()) {
		t.Errorf("expected room type not found for pending room type, got %v", err)
	}
}

func TestPut_MaterializesRecord(t *testing.T) {
	inventory, catalog := testInventory(t)
	approvedRoomType(t, catalog, "rt-1", 2, 120)

	record := &data.AvailabilityRecord{
		RoomTypeID:  "rt-1",
		Date:        date(2024, 12, 25),
		TotalRooms:  5,
		BookedRooms: 1,
		Price:       200,
		Open:        true,
	}
	if err := inventory.Put(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := inventory.Get(context.Background(), "rt-1", date(2024, 12, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Stored {
		t.Error("expected record to be stored after put")
	}
	if got.TotalRooms != 5 || got.BookedRooms != 1 || got.Price != 200 {
		t.Errorf("stored record mismatch: %+v", got)
	}
}

func TestPut_RejectsNegativeCounts(t *testing.T) {
	inventory, catalog := testInventory(t)
	approvedRoomType(t, catalog, "rt-1", 2, 120)

	tests := []struct {
		name   string
		record data.AvailabilityRecord
	}{
		{"negative total", data.AvailabilityRecord{RoomTypeID: "rt-1", Date: date(2024, 12, 25), TotalRooms: -1}},
		{"negative booked", data.AvailabilityRecord{RoomTypeID: "rt-1", Date: date(2024, 12, 25), BookedRooms: -1}},
		{"negative price", data.AvailabilityRecord{RoomTypeID: "rt-1", Date: date(2024, 12, 25), Price: -1}},
	}
	for _, tt := range tests {
		record := tt.record
		if err := inventory.Put(context.Background(), &record); !errors.Is(err, domain.ErrMalformedRecord()) {
			t.Errorf("%s: expected malformed record error, got %v", tt.name, err)
		}
	}
}

func TestGetRange_SynthesizesGaps(t *testing.T) {
	inventory, catalog := testInventory(t)
	approvedRoomType(t, catalog, "rt-1", 2, 120)

	// materialize only the middle date
	err := inventory.Put(context.Background(), &data.AvailabilityRecord{
		RoomTypeID: "rt-1",
		Date:       date(2024, 12, 21),
		TotalRooms: 9,
		Price:      300,
		Open:       true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := inventory.GetRange(context.Background(), "rt-1", date(2024, 12, 20), date(2024, 12, 23))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Stored || !records[1].Stored || records[2].Stored {
		t.Error("expected only the middle record to be stored")
	}
	if records[1].TotalRooms != 9 {
		t.Errorf("expected stored total rooms 9, got %d", records[1].TotalRooms)
	}
	for i, record := range records {
		want := date(2024, 12, 20+i)
		if !record.Date.Equal(want) {
			t.Errorf("record %d: expected date %v, got %v", i, want, record.Date)
		}
	}
}

func TestGetRange_EmptyWindowRejected(t *testing.T) {
	inventory, catalog := testInventory(t)
	approvedRoomType(t, catalog, "rt-1", 2, 120)

	_, err := inventory.GetRange(context.Background(), "rt-1", date(2024, 1, 5), date(2024, 1, 5))
	if !errors.Is(err, domain.ErrInvalidRange()) {
		t.Errorf("expected invalid range error, got %v", err)
	}
}

func TestPurgeRoomType_RemovesStoredRecords(t *testing.T) {
	inventory, catalog := testInventory(t)
	approvedRoomType(t, catalog, "rt-1", 2, 120)

	err := inventory.Put(context.Background(), &data.AvailabilityRecord{
		RoomTypeID: "rt-1",
		Date:       date(2024, 12, 25),
		TotalRooms: 7,
		Open:       true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := inventory.PurgeRoomType(context.Background(), "rt-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, err := inventory.Get(context.Background(), "rt-1", date(2024, 12, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Stored {
		t.Error("expected purged record to fall back to synthesized defaults")
	}
	if record.TotalRooms != 2 {
		t.Errorf("expected default total rooms 2, got %d", record.TotalRooms)
	}
}
