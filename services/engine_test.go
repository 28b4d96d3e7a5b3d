package services

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"

	"inventory-service/data"
	"inventory-service/lock"
	"inventory-service/repository"
)

type testEngine struct {
	catalog      *repository.InMemoryCatalog
	inventory    *repository.Inventory
	reservations *repository.InMemoryReservations
	locks        *lock.RoomLocks

	availability AvailabilityService
	reservation  ReservationService
	bulkEdit     BulkEditService
	approval     ApprovalService
}

func newTestEngine(t *testing.T, lockWait time.Duration) *testEngine {
	t.Helper()

	catalog := repository.NewInMemoryCatalog()
	backend := repository.NewInMemoryInventory()
	reservations := repository.NewInMemoryReservations()
	logger := log.New(os.Stdout, "[engine-test] ", log.LstdFlags)
	tracer := trace.NewNoopTracerProvider().Tracer("test")

	inventory := repository.NewInventory(backend, catalog, logger)
	locks := lock.NewRoomLocks(lockWait)

	return &testEngine{
		catalog:      catalog,
		inventory:    inventory,
		reservations: reservations,
		locks:        locks,
		availability: NewAvailabilityServiceImpl(inventory, nil, tracer),
		reservation:  NewReservationServiceImpl(inventory, reservations, catalog, locks, nil, nil, logger, tracer),
		bulkEdit:     NewBulkEditServiceImpl(inventory, locks, nil, logger, tracer),
		approval:     NewApprovalServiceImpl(catalog, inventory, locks, tracer),
	}
}

func (e *testEngine) addRoomType(t *testing.T, id string, totalRooms int, price float64) {
	t.Helper()

	err := e.catalog.InsertRoomType(context.Background(), &data.RoomType{
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

func (e *testEngine) bookedOn(t *testing.T, roomTypeID string, day time.Time) int {
	t.Helper()

	record, err := e.inventory.Get(context.Background(), roomTypeID, day)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	return record.BookedRooms
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
