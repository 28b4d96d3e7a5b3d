package services

import (
	"context"
	"time"

	"inventory-service/data"
)

type BulkEditService interface {
	ApplyBulkEdit(ctx context.Context, roomTypeID string, start time.Time, end time.Time, edit *data.BulkEdit) (int, error)
	PutRecord(ctx context.Context, record *data.AvailabilityRecord) error
}
