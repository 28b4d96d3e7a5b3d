package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inventory-service/data"
	error2 "inventory-service/error"
	"inventory-service/services"
)

type InventoryHandler struct {
	bulkEditService services.BulkEditService
	logger          *log.Logger
	Tracer          trace.Tracer
}

func NewInventoryHandler(bulkEditService services.BulkEditService, lg *log.Logger, tr trace.Tracer) InventoryHandler {
	return InventoryHandler{
		bulkEditService: bulkEditService,
		logger:          lg,
		Tracer:          tr,
	}
}

// ApplyBulkEdit merges the posted fields into every record of
// [start, end). Dates outside the declared range are never touched.
func (s *InventoryHandler) ApplyBulkEdit(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "InventoryHandler.ApplyBulkEdit")
	defer span.End()

	vars := mux.Vars(h)
	roomTypeID := vars["roomTypeId"]

	start, err := time.Parse("2006-01-02", h.URL.Query().Get("start"))
	if err != nil {
		error2.ReturnJSONError(rw, "Invalid start date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", h.URL.Query().Get("end"))
	if err != nil {
		error2.ReturnJSONError(rw, "Invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	edit, ok := h.Context().Value(KeyProduct{}).(*data.BulkEdit)
	if !ok {
		error2.ReturnJSONError(rw, "Bulk edit payload not found in context", http.StatusBadRequest)
		return
	}

	touched, err := s.bulkEditService.ApplyBulkEdit(ctx, roomTypeID, start, end, edit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	fmt.Fprintf(rw, `{"dates_touched": %d}`, touched)
}

// PutRecord overwrites a single date's record with the posted body.
func (s *InventoryHandler) PutRecord(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "InventoryHandler.PutRecord")
	defer span.End()

	vars := mux.Vars(h)
	roomTypeID := vars["roomTypeId"]

	date, err := time.Parse("2006-01-02", vars["date"])
	if err != nil {
		error2.ReturnJSONError(rw, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	record := &data.AvailabilityRecord{}
	if err := record.FromJSON(h.Body); err != nil {
		error2.ReturnJSONError(rw, "Unable to decode json", http.StatusBadRequest)
		s.logger.Println(err)
		return
	}
	record.RoomTypeID = roomTypeID
	record.Date = date

	if err := s.bulkEditService.PutRecord(ctx, record); err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	if err := record.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

// OpenNext is the admin quick action "open the next N days": opens every
// date and releases the rooms that were held by the closure.
func (s *InventoryHandler) OpenNext(rw http.ResponseWriter, h *http.Request) {
	s.quickAction(rw, h, true)
}

// CloseNext closes the next N days, holding every room so the dates show
// zero free rooms everywhere.
func (s *InventoryHandler) CloseNext(rw http.ResponseWriter, h *http.Request) {
	s.quickAction(rw, h, false)
}

func (s *InventoryHandler) quickAction(rw http.ResponseWriter, h *http.Request, open bool) {
	ctx, span := s.Tracer.Start(h.Context(), "InventoryHandler.quickAction")
	defer span.End()

	vars := mux.Vars(h)
	roomTypeID := vars["roomTypeId"]

	days, err := strconv.Atoi(vars["days"])
	if err != nil || days < 1 {
		error2.ReturnJSONError(rw, "Invalid day count", http.StatusBadRequest)
		return
	}

	start := data.Day(time.Now())
	end := start.AddDate(0, 0, days)

	edit := &data.BulkEdit{Open: &open}
	if open {
		edit.ResetBookings = data.ResetZero
	} else {
		edit.ResetBookings = data.ResetFull
	}

	touched, err := s.bulkEditService.ApplyBulkEdit(ctx, roomTypeID, start, end, edit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	fmt.Fprintf(rw, `{"dates_touched": %d}`, touched)
}

func (s *InventoryHandler) MiddlewareBulkEditDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		edit := &data.BulkEdit{}
		err := edit.FromJSON(h.Body)
		if err != nil {
			http.Error(rw, "Unable to decode json", http.StatusBadRequest)
			s.logger.Println(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyProduct{}, edit)
		h = h.WithContext(ctx)
		next.ServeHTTP(rw, h)
	})
}
