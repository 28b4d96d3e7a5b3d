package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"inventory-service/data"
)

// InMemoryInventory keeps the sparse (room type, date) map in process
// memory. Default backend for tests and single-node deployments.
type InMemoryInventory struct {
	mu      sync.RWMutex
	records map[string]map[string]*data.AvailabilityRecord
}

func NewInMemoryInventory() *InMemoryInventory {
	return &InMemoryInventory{
		records: make(map[string]map[string]*data.AvailabilityRecord),
	}
}

const dayKeyLayout = "2006-01-02"

func copyRecord(record *data.AvailabilityRecord) *data.AvailabilityRecord {
	clone := *record
	return &clone
}

func (m *InMemoryInventory) Find(_ context.Context, roomTypeID string, date time.Time) (*data.AvailabilityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byDate, ok := m.records[roomTypeID]
	if !ok {
		return nil, nil
	}
	record, ok := byDate[data.Day(date).Format(dayKeyLayout)]
	if !ok {
		return nil, nil
	}
	return copyRecord(record), nil
}

func (m *InMemoryInventory) Save(_ context.Context, record *data.AvailabilityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byDate, ok := m.records[record.RoomTypeID]
	if !ok {
		byDate = make(map[string]*data.AvailabilityRecord)
		m.records[record.RoomTypeID] = byDate
	}
	byDate[data.Day(record.Date).Format(dayKeyLayout)] = copyRecord(record)
	return nil
}

func (m *InMemoryInventory) FindRange(_ context.Context, roomTypeID string, start time.Time, end time.Time) (data.AvailabilityRecords, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byDate, ok := m.records[roomTypeID]
	if !ok {
		return nil, nil
	}

	var records data.AvailabilityRecords
	for _, record := range byDate {
		if record.Date.Before(start) || !record.Date.Before(end) {
			continue
		}
		records = append(records, copyRecord(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func (m *InMemoryInventory) DeleteByRoomType(_ context.Context, roomTypeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, roomTypeID)
	return nil
}
