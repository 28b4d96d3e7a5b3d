package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-service/data"
	"inventory-service/domain"
)

func TestCheckAvailability_TwoNightStayCoversTwoDates(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	check, err := engine.availability.CheckAvailability(context.Background(), "rt-1",
		date(2024, 12, 24), date(2024, 12, 26), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.Bookable {
		t.Error("expected stay to be bookable")
	}
	if check.Nights != 2 {
		t.Errorf("expected 2 nights, got %d", check.Nights)
	}
	if len(check.PricePerNight) != 2 {
		t.Fatalf("expected 2 night prices, got %d", len(check.PricePerNight))
	}
	if len(check.BlockedDates) != 0 {
		t.Errorf("expected no blocked dates, got %v", check.BlockedDates)
	}
}

func TestCheckAvailability_PricesVaryByDate(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	price := 250.0
	_, err := engine.bulkEdit.ApplyBulkEdit(context.Background(), "rt-1",
		date(2024, 12, 25), date(2024, 12, 26), &data.BulkEdit{Price: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check, err := engine.availability.CheckAvailability(context.Background(), "rt-1",
		date(2024, 12, 24), date(2024, 12, 26), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.PricePerNight[0].Price != 120 {
		t.Errorf("expected base price 120 for first night, got %f", check.PricePerNight[0].Price)
	}
	if check.PricePerNight[1].Price != 250 {
		t.Errorf("expected edited price 250 for second night, got %f", check.PricePerNight[1].Price)
	}
}

func TestCheckAvailability_ReportsEveryBlockedDate(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	open := false
	_, err := engine.bulkEdit.ApplyBulkEdit(context.Background(), "rt-1",
		date(2024, 12, 20), date(2024, 12, 22), &data.BulkEdit{Open: &open})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check, err := engine.availability.CheckAvailability(context.Background(), "rt-1",
		date(2024, 12, 19), date(2024, 12, 23), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Bookable {
		t.Error("expected stay over closed dates to be unbookable")
	}
	if len(check.BlockedDates) != 2 {
		t.Fatalf("expected 2 blocked dates, got %d", len(check.BlockedDates))
	}
	if !check.BlockedDates[0].Equal(date(2024, 12, 20)) || !check.BlockedDates[1].Equal(date(2024, 12, 21)) {
		t.Errorf("unexpected blocked dates: %v", check.BlockedDates)
	}
}

func TestCheckAvailability_ClosedRangeUnbookableRegardlessOfCounts(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 50, 120)

	open := false
	_, err := engine.bulkEdit.ApplyBulkEdit(context.Background(), "rt-1",
		date(2024, 12, 20), date(2024, 12, 27), &data.BulkEdit{Open: &open})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check, err := engine.availability.CheckAvailability(context.Background(), "rt-1",
		date(2024, 12, 22), date(2024, 12, 24), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Bookable {
		t.Error("closed dates must never be bookable, even with free rooms")
	}
}

func TestCheckAvailability_QuantityAgainstFreeRooms(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	_, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 25),
		CheckOut:   date(2024, 12, 26),
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check, err := engine.availability.CheckAvailability(context.Background(), "rt-1",
		date(2024, 12, 25), date(2024, 12, 26), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Bookable {
		t.Error("expected 2 rooms to be unavailable with only 1 free")
	}

	single, err := engine.availability.CheckAvailability(context.Background(), "rt-1",
		date(2024, 12, 25), date(2024, 12, 26), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !single.Bookable {
		t.Error("expected 1 room to still be available")
	}
}

func TestCheckAvailability_EmptyWindowRejected(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	_, err := engine.availability.CheckAvailability(context.Background(), "rt-1",
		date(2024, 1, 5), date(2024, 1, 5), 1)
	if !errors.Is(err, domain.ErrInvalidRange()) {
		t.Errorf("expected invalid range error, got %v", err)
	}
}

func TestGetCalendar_ReturnsFullRange(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	records, err := engine.availability.GetCalendar(context.Background(), "rt-1",
		date(2024, 12, 1), date(2024, 12, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 30 {
		t.Errorf("expected 30 records, got %d", len(records))
	}
}
