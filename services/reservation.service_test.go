package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"inventory-service/data"
	"inventory-service/domain"
)

func TestReserve_DecrementsEveryCoveredDate(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	reservation, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 24),
		CheckOut:   date(2024, 12, 26),
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != data.Confirmed {
		t.Errorf("expected confirmed status, got %s", reservation.Status)
	}
	if reservation.Nights() != 2 {
		t.Errorf("expected 2 nights, got %d", reservation.Nights())
	}

	// a 2-night stay covers the check-in night and the next, not checkout
	if got := engine.bookedOn(t, "rt-1", date(2024, 12, 24)); got != 1 {
		t.Errorf("expected 1 booked on check-in date, got %d", got)
	}
	if got := engine.bookedOn(t, "rt-1", date(2024, 12, 25)); got != 1 {
		t.Errorf("expected 1 booked on second night, got %d", got)
	}
	if got := engine.bookedOn(t, "rt-1", date(2024, 12, 26)); got != 0 {
		t.Errorf("checkout date must stay untouched, got %d booked", got)
	}
}

func TestReserve_ZeroNightStayRejected(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	_, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 1, 5),
		CheckOut:   date(2024, 1, 5),
		Quantity:   1,
	})
	if !errors.Is(err, domain.ErrInvalidRange()) {
		t.Fatalf("expected invalid range error, got %v", err)
	}

	if got := engine.bookedOn(t, "rt-1", date(2024, 1, 5)); got != 0 {
		t.Errorf("zero-night stay must write nothing, got %d booked", got)
	}
}

func TestReserve_OverbookedLeavesCountsUnchanged(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	// close the middle date so a 3-night stay cannot be satisfied
	open := false
	_, err := engine.bulkEdit.ApplyBulkEdit(context.Background(), "rt-1",
		date(2024, 12, 21), date(2024, 12, 22), &data.BulkEdit{Open: &open})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 20),
		CheckOut:   date(2024, 12, 23),
		Quantity:   1,
	})
	if !errors.Is(err, domain.ErrOverbooked()) {
		t.Fatalf("expected overbooked error, got %v", err)
	}

	for day := 20; day < 23; day++ {
		if got := engine.bookedOn(t, "rt-1", date(2024, 12, day)); got != 0 {
			t.Errorf("dec %d: expected 0 booked after failed reserve, got %d", day, got)
		}
	}
}

func TestReserve_QuantityDefaultsToOne(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	reservation, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 24),
		CheckOut:   date(2024, 12, 25),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Quantity != 1 {
		t.Errorf("expected quantity default 1, got %d", reservation.Quantity)
	}
}

func TestReserve_ConcurrentForLastRoom(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	// take one of the two rooms so exactly one room remains
	_, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 25),
		CheckOut:   date(2024, 12, 26),
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
				RoomTypeID: "rt-1",
				CheckIn:    date(2024, 12, 25),
				CheckOut:   date(2024, 12, 26),
				Quantity:   1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, overbooked := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrOverbooked()):
			overbooked++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || overbooked != 1 {
		t.Errorf("expected exactly one success and one overbooked, got %d/%d", succeeded, overbooked)
	}
	if got := engine.bookedOn(t, "rt-1", date(2024, 12, 25)); got != 2 {
		t.Errorf("expected 2 booked after both calls complete, got %d", got)
	}
}

func TestReserve_NoOverbookingUnderLoad(t *testing.T) {
	engine := newTestEngine(t, 5*time.Second)
	engine.addRoomType(t, "rt-1", 3, 120)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
				RoomTypeID: "rt-1",
				CheckIn:    date(2024, 12, 24),
				CheckOut:   date(2024, 12, 27),
				Quantity:   1,
			})
		}()
	}
	wg.Wait()

	confirmed, err := engine.reservations.GetByRoomType(context.Background(), "rt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for day := 24; day < 27; day++ {
		covered := 0
		for _, reservation := range confirmed {
			if reservation.Status == data.Confirmed && reservation.Covers(date(2024, 12, day)) {
				covered += reservation.Quantity
			}
		}
		if covered > 3 {
			t.Errorf("dec %d: confirmed quantity %d exceeds total rooms 3", day, covered)
		}
		if got := engine.bookedOn(t, "rt-1", date(2024, 12, day)); got != covered {
			t.Errorf("dec %d: booked count %d does not match confirmed reservations %d", day, got, covered)
		}
	}
}

func TestCancel_RestoresCounts(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	reservation, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 24),
		CheckOut:   date(2024, 12, 26),
		Quantity:   2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := engine.reservation.Cancel(context.Background(), reservation.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for day := 24; day < 26; day++ {
		if got := engine.bookedOn(t, "rt-1", date(2024, 12, day)); got != 0 {
			t.Errorf("dec %d: expected booked restored to 0, got %d", day, got)
		}
	}

	got, err := engine.reservations.GetByID(context.Background(), reservation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != data.Cancelled {
		t.Errorf("expected cancelled status, got %s", got.Status)
	}
}

func TestCancel_ConcurrentDoubleCancelDecrementsOnce(t *testing.T) {
	engine := newTestEngine(t, 2*time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	first, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 25),
		CheckOut:   date(2024, 12, 26),
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 25),
		CheckOut:   date(2024, 12, 26),
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Hold the section so both cancels read Confirmed before either
	// enters, then let them race for the lock.
	if err := engine.locks.Acquire(context.Background(), "rt-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := engine.reservation.Cancel(context.Background(), first.ID); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	engine.locks.Release("rt-1")
	wg.Wait()

	if got := engine.bookedOn(t, "rt-1", date(2024, 12, 25)); got != 1 {
		t.Errorf("double cancel must decrement once: expected 1 booked, got %d", got)
	}
	remaining, err := engine.reservations.GetByID(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining.Status != data.Confirmed {
		t.Errorf("untouched reservation must stay confirmed, got %s", remaining.Status)
	}
}

func TestCancel_IsIdempotent(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	reservation, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 24),
		CheckOut:   date(2024, 12, 25),
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := engine.reservation.Cancel(context.Background(), reservation.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// second cancel is a no-op reported as success
	if err := engine.reservation.Cancel(context.Background(), reservation.ID); err != nil {
		t.Fatalf("expected idempotent cancel, got %v", err)
	}

	if got := engine.bookedOn(t, "rt-1", date(2024, 12, 24)); got != 0 {
		t.Errorf("double cancel must not drive counts below zero, got %d", got)
	}
}

func TestCancel_UnknownReservation(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 2, 120)

	err := engine.reservation.Cancel(context.Background(), "missing")
	if !errors.Is(err, domain.ErrReservationNotFound()) {
		t.Errorf("expected reservation not found, got %v", err)
	}
}

func TestReserve_BusyWhenLockHeld(t *testing.T) {
	engine := newTestEngine(t, 50*time.Millisecond)
	engine.addRoomType(t, "rt-1", 2, 120)

	if err := engine.locks.Acquire(context.Background(), "rt-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer engine.locks.Release("rt-1")

	_, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 24),
		CheckOut:   date(2024, 12, 25),
		Quantity:   1,
	})
	if !errors.Is(err, domain.ErrBusy()) {
		t.Errorf("expected busy error while lock is held, got %v", err)
	}
}

func TestCoveringDate_FindsStays(t *testing.T) {
	engine := newTestEngine(t, time.Second)
	engine.addRoomType(t, "rt-1", 5, 120)

	_, err := engine.reservation.Reserve(context.Background(), &data.ReservationCreate{
		RoomTypeID: "rt-1",
		CheckIn:    date(2024, 12, 20),
		CheckOut:   date(2024, 12, 23),
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	covering, err := engine.reservation.CoveringDate(context.Background(), "rt-1", date(2024, 12, 21))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(covering) != 1 {
		t.Fatalf("expected 1 covering reservation, got %d", len(covering))
	}

	none, err := engine.reservation.CoveringDate(context.Background(), "rt-1", date(2024, 12, 23))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("checkout date must not be covered, got %d reservations", len(none))
	}
}
