package repository

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"inventory-service/data"
	"inventory-service/domain"
)

// CatalogRepo keeps hotels and room types in MongoDB collections.
type CatalogRepo struct {
	hotels    *mongo.Collection
	roomTypes *mongo.Collection
	logger    *log.Logger
}

func NewCatalogRepo(db *mongo.Database, logger *log.Logger) *CatalogRepo {
	return &CatalogRepo{
		hotels:    db.Collection("hotels"),
		roomTypes: db.Collection("room_types"),
		logger:    logger,
	}
}

func (cr *CatalogRepo) InsertHotel(ctx context.Context, hotel *data.Hotel) error {
	stored := *hotel
	stored.RoomTypes = nil
	_, err := cr.hotels.InsertOne(ctx, &stored)
	if err != nil {
		cr.logger.Println(err)
		return err
	}
	return nil
}

func (cr *CatalogRepo) GetHotel(ctx context.Context, hotelID string) (*data.Hotel, error) {
	filter := bson.M{"_id": hotelID}

	var hotel data.Hotel
	err := cr.hotels.FindOne(ctx, filter).Decode(&hotel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrHotelNotFound()
	}
	if err != nil {
		cr.logger.Println(err)
		return nil, err
	}
	return &hotel, nil
}

func (cr *CatalogRepo) UpdateHotelStatus(ctx context.Context, hotelID string, status data.ApprovalStatus) error {
	filter := bson.M{"_id": hotelID}
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := cr.hotels.UpdateOne(ctx, filter, update)
	if err != nil {
		cr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrHotelNotFound()
	}
	return nil
}

func (cr *CatalogRepo) DeleteHotel(ctx context.Context, hotelID string) error {
	result, err := cr.hotels.DeleteOne(ctx, bson.M{"_id": hotelID})
	if err != nil {
		cr.logger.Println(err)
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrHotelNotFound()
	}
	return nil
}

func (cr *CatalogRepo) InsertRoomType(ctx context.Context, roomType *data.RoomType) error {
	_, err := cr.roomTypes.InsertOne(ctx, roomType)
	if err != nil {
		cr.logger.Println(err)
		return err
	}
	return nil
}

func (cr *CatalogRepo) GetRoomType(ctx context.Context, roomTypeID string) (*data.RoomType, error) {
	filter := bson.M{"_id": roomTypeID}

	var roomType data.RoomType
	err := cr.roomTypes.FindOne(ctx, filter).Decode(&roomType)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRoomTypeNotFound()
	}
	if err != nil {
		cr.logger.Println(err)
		return nil, err
	}
	return &roomType, nil
}

func (cr *CatalogRepo) GetRoomTypesByHotel(ctx context.Context, hotelID string) (data.RoomTypes, error) {
	filter := bson.M{"hotel_id": hotelID}

	cursor, err := cr.roomTypes.Find(ctx, filter)
	if err != nil {
		cr.logger.Println(err)
		return nil, err
	}

	var roomTypes data.RoomTypes
	if err = cursor.All(ctx, &roomTypes); err != nil {
		cr.logger.Println(err)
		return nil, err
	}
	return roomTypes, nil
}

func (cr *CatalogRepo) UpdateRoomType(ctx context.Context, roomType *data.RoomType) error {
	filter := bson.M{"_id": roomType.ID}

	result, err := cr.roomTypes.ReplaceOne(ctx, filter, roomType)
	if err != nil {
		cr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrRoomTypeNotFound()
	}
	return nil
}

func (cr *CatalogRepo) UpdateRoomTypeStatus(ctx context.Context, roomTypeID string, status data.ApprovalStatus) error {
	filter := bson.M{"_id": roomTypeID}
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := cr.roomTypes.UpdateOne(ctx, filter, update)
	if err != nil {
		cr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrRoomTypeNotFound()
	}
	return nil
}

func (cr *CatalogRepo) DeleteRoomType(ctx context.Context, roomTypeID string) error {
	result, err := cr.roomTypes.DeleteOne(ctx, bson.M{"_id": roomTypeID})
	if err != nil {
		cr.logger.Println(err)
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrRoomTypeNotFound()
	}
	return nil
}
