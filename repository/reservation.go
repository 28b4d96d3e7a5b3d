package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"inventory-service/data"
	"inventory-service/domain"
)

// ReservationStore is the indexed set of reservations, sufficient to
// answer "what reservations cover this date" for cancellation and audit.
type ReservationStore interface {
	Insert(ctx context.Context, reservation *data.Reservation) error
	GetByID(ctx context.Context, reservationID string) (*data.Reservation, error)
	GetByRoomType(ctx context.Context, roomTypeID string) (data.Reservations, error)
	CoveringDate(ctx context.Context, roomTypeID string, date time.Time) (data.Reservations, error)
	UpdateStatus(ctx context.Context, reservationID string, status data.ReservationStatus) error
}

type InMemoryReservations struct {
	mu           sync.RWMutex
	reservations map[string]*data.Reservation
	byRoomType   map[string][]string
}

func NewInMemoryReservations() *InMemoryReservations {
	return &InMemoryReservations{
		reservations: make(map[string]*data.Reservation),
		byRoomType:   make(map[string][]string),
	}
}

func copyReservation(reservation *data.Reservation) *data.Reservation {
	clone := *reservation
	return &clone
}

func (m *InMemoryReservations) Insert(_ context.Context, reservation *data.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	m.reservations[reservation.ID] = copyReservation(reservation)
	m.byRoomType[reservation.RoomTypeID] = append(m.byRoomType[reservation.RoomTypeID], reservation.ID)
	return nil
}

func (m *InMemoryReservations) GetByID(_ context.Context, reservationID string) (*data.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reservation, ok := m.reservations[reservationID]
	if !ok {
		return nil, domain.ErrReservationNotFound()
	}
	return copyReservation(reservation), nil
}

func (m *InMemoryReservations) GetByRoomType(_ context.Context, roomTypeID string) (data.Reservations, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var reservations data.Reservations
	for _, id := range m.byRoomType[roomTypeID] {
		reservations = append(reservations, copyReservation(m.reservations[id]))
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CheckIn.Before(reservations[j].CheckIn)
	})
	return reservations, nil
}

func (m *InMemoryReservations) CoveringDate(_ context.Context, roomTypeID string, date time.Time) (data.Reservations, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var reservations data.Reservations
	for _, id := range m.byRoomType[roomTypeID] {
		reservation := m.reservations[id]
		if reservation.Covers(date) {
			reservations = append(reservations, copyReservation(reservation))
		}
	}
	return reservations, nil
}

func (m *InMemoryReservations) UpdateStatus(_ context.Context, reservationID string, status data.ReservationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	reservation, ok := m.reservations[reservationID]
	if !ok {
		return domain.ErrReservationNotFound()
	}
	reservation.Status = status
	return nil
}
