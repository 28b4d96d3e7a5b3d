package lock

import (
	"context"
	"sync"
	"time"

	"inventory-service/domain"
)

// RoomLocks serializes every mutation of a room type's records through a
// per-room-type exclusive section. Different room types never contend.
// Acquisition waits at most `wait`, then fails with Busy so an admin bulk
// edit can never starve booking traffic indefinitely.
type RoomLocks struct {
	mu       sync.Mutex
	sections map[string]chan struct{}
	wait     time.Duration
}

func NewRoomLocks(wait time.Duration) *RoomLocks {
	return &RoomLocks{
		sections: make(map[string]chan struct{}),
		wait:     wait,
	}
}

func (l *RoomLocks) section(roomTypeID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	section, ok := l.sections[roomTypeID]
	if !ok {
		section = make(chan struct{}, 1)
		l.sections[roomTypeID] = section
	}
	return section
}

// Acquire enters the room type's exclusive section, honoring both the
// bounded wait and the caller's context deadline.
func (l *RoomLocks) Acquire(ctx context.Context, roomTypeID string) error {
	section := l.section(roomTypeID)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case section <- struct{}{}:
		return nil
	case <-timer.C:
		return domain.ErrBusy()
	case <-ctx.Done():
		return domain.ErrBusy()
	}
}

// Release leaves the section. Must only be called after a successful Acquire.
func (l *RoomLocks) Release(roomTypeID string) {
	<-l.section(roomTypeID)
}
