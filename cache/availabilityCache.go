package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inventory-service/data"
)

const (
	cacheRange   = "availability:%s:%s:%s"
	cacheByRoom  = "availability:%s:*"
	rangeKeyDate = "2006-01-02"
)

// AvailabilityCache keeps recent range lookups in Redis so the read path
// stays off the store. Writers invalidate the whole room type; a stale hit
// is acceptable because reserve re-validates under the room lock anyway.
type AvailabilityCache struct {
	cli    *redis.Client
	logger *log.Logger
	Tracer trace.Tracer
}

// Construct Redis client
func New(address string, logger *log.Logger, tracer trace.Tracer) *AvailabilityCache {
	client := redis.NewClient(&redis.Options{
		Addr: address,
	})

	return &AvailabilityCache{
		cli:    client,
		logger: logger,
		Tracer: tracer,
	}
}

func (ac *AvailabilityCache) Ping() {
	val, _ := ac.cli.Ping().Result()
	ac.logger.Println(val)
}

func (ac *AvailabilityCache) PostRange(ctx context.Context, roomTypeID string, start, end time.Time, records data.AvailabilityRecords) error {
	_, span := ac.Tracer.Start(ctx, "AvailabilityCache.PostRange")
	defer span.End()

	key := constructRangeKey(roomTypeID, start, end)

	encoded, err := json.Marshal(records)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = ac.cli.Set(key, encoded, 30*time.Second).Err()
	if err != nil {
		span.SetStatus(codes.Error, "Error setting range in Redis: "+err.Error())
		return err
	}
	return nil
}

func (ac *AvailabilityCache) GetRange(ctx context.Context, roomTypeID string, start, end time.Time) (data.AvailabilityRecords, error) {
	_, span := ac.Tracer.Start(ctx, "AvailabilityCache.GetRange")
	defer span.End()

	key := constructRangeKey(roomTypeID, start, end)
	encoded, err := ac.cli.Get(key).Bytes()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var records data.AvailabilityRecords
	if err := json.Unmarshal(encoded, &records); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	ac.logger.Println("Availability cache hit")
	return records, nil
}

// InvalidateRoomType drops every cached range for the room type. Called
// after any write so readers never see counts older than the last edit
// for longer than one round trip.
func (ac *AvailabilityCache) InvalidateRoomType(ctx context.Context, roomTypeID string) error {
	_, span := ac.Tracer.Start(ctx, "AvailabilityCache.InvalidateRoomType")
	defer span.End()

	keys, err := ac.cli.Keys(fmt.Sprintf(cacheByRoom, roomTypeID)).Result()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	err = ac.cli.Del(keys...).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Helper function to construct range cache key
func constructRangeKey(roomTypeID string, start, end time.Time) string {
	return fmt.Sprintf(cacheRange, roomTypeID, start.Format(rangeKeyDate), end.Format(rangeKeyDate))
}
