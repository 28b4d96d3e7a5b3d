package repository

import (
	"context"
	"sync"

	"inventory-service/data"
	"inventory-service/domain"
)

// CatalogStore holds hotels and their room types together with the
// approval status that gates when inventory records begin to exist.
type CatalogStore interface {
	InsertHotel(ctx context.Context, hotel *data.Hotel) error
	GetHotel(ctx context.Context, hotelID string) (*data.Hotel, error)
	UpdateHotelStatus(ctx context.Context, hotelID string, status data.ApprovalStatus) error
	DeleteHotel(ctx context.Context, hotelID string) error

	InsertRoomType(ctx context.Context, roomType *data.RoomType) error
	GetRoomType(ctx context.Context, roomTypeID string) (*data.RoomType, error)
	GetRoomTypesByHotel(ctx context.Context, hotelID string) (data.RoomTypes, error)
	UpdateRoomType(ctx context.Context, roomType *data.RoomType) error
	UpdateRoomTypeStatus(ctx context.Context, roomTypeID string, status data.ApprovalStatus) error
	DeleteRoomType(ctx context.Context, roomTypeID string) error
}

type InMemoryCatalog struct {
	mu        sync.RWMutex
	hotels    map[string]*data.Hotel
	roomTypes map[string]*data.RoomType
}

func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		hotels:    make(map[string]*data.Hotel),
		roomTypes: make(map[string]*data.RoomType),
	}
}

func copyHotel(hotel *data.Hotel) *data.Hotel {
	clone := *hotel
	clone.RoomTypes = nil
	return &clone
}

func copyRoomType(roomType *data.RoomType) *data.RoomType {
	clone := *roomType
	return &clone
}

func (c *InMemoryCatalog) InsertHotel(_ context.Context, hotel *data.Hotel) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hotels[hotel.ID] = copyHotel(hotel)
	return nil
}

func (c *InMemoryCatalog) GetHotel(_ context.Context, hotelID string) (*data.Hotel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hotel, ok := c.hotels[hotelID]
	if !ok {
		return nil, domain.ErrHotelNotFound()
	}
	return copyHotel(hotel), nil
}

func (c *InMemoryCatalog) UpdateHotelStatus(_ context.Context, hotelID string, status data.ApprovalStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	hotel, ok := c.hotels[hotelID]
	if !ok {
		return domain.ErrHotelNotFound()
	}
	hotel.Status = status
	return nil
}

func (c *InMemoryCatalog) DeleteHotel(_ context.Context, hotelID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.hotels[hotelID]; !ok {
		return domain.ErrHotelNotFound()
	}
	delete(c.hotels, hotelID)
	return nil
}

func (c *InMemoryCatalog) InsertRoomType(_ context.Context, roomType *data.RoomType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.roomTypes[roomType.ID] = copyRoomType(roomType)
	return nil
}

func (c *InMemoryCatalog) GetRoomType(_ context.Context, roomTypeID string) (*data.RoomType, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	roomType, ok := c.roomTypes[roomTypeID]
	if !ok {
		return nil, domain.ErrRoomTypeNotFound()
	}
	return copyRoomType(roomType), nil
}

func (c *InMemoryCatalog) GetRoomTypesByHotel(_ context.Context, hotelID string) (data.RoomTypes, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var roomTypes data.RoomTypes
	for _, roomType := range c.roomTypes {
		if roomType.HotelID == hotelID {
			roomTypes = append(roomTypes, copyRoomType(roomType))
		}
	}
	return roomTypes, nil
}

func (c *InMemoryCatalog) UpdateRoomType(_ context.Context, roomType *data.RoomType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.roomTypes[roomType.ID]; !ok {
		return domain.ErrRoomTypeNotFound()
	}
	c.roomTypes[roomType.ID] = copyRoomType(roomType)
	return nil
}

func (c *InMemoryCatalog) UpdateRoomTypeStatus(_ context.Context, roomTypeID string, status data.ApprovalStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	roomType, ok := c.roomTypes[roomTypeID]
	if !ok {
		return domain.ErrRoomTypeNotFound()
	}
	roomType.Status = status
	return nil
}

func (c *InMemoryCatalog) DeleteRoomType(_ context.Context, roomTypeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.roomTypes[roomTypeID]; !ok {
		return domain.ErrRoomTypeNotFound()
	}
	delete(c.roomTypes, roomTypeID)
	return nil
}
