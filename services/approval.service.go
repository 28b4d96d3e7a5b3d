package services

import (
	"context"

	"inventory-service/data"
)

type ApprovalService interface {
	Submit(ctx context.Context, hotel *data.Hotel) (*data.Hotel, error)
	Approve(ctx context.Context, hotelID string) error
	Reject(ctx context.Context, hotelID string) error
	Delete(ctx context.Context, hotelID string) error
	GetHotel(ctx context.Context, hotelID string) (*data.Hotel, error)
	UpdateRoomType(ctx context.Context, roomType *data.RoomType) (*data.RoomType, error)
}
