package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inventory-service/data"
	error2 "inventory-service/error"
	"inventory-service/services"
	"inventory-service/utils"
)

type KeyProduct struct{}

type AvailabilityHandler struct {
	availabilityService services.AvailabilityService
	logger              *log.Logger
	Tracer              trace.Tracer
}

func NewAvailabilityHandler(availabilityService services.AvailabilityService, lg *log.Logger, tr trace.Tracer) AvailabilityHandler {
	return AvailabilityHandler{
		availabilityService: availabilityService,
		logger:              lg,
		Tracer:              tr,
	}
}

// CheckAvailability answers "is this room type bookable for this stay
// window, at what price per night, with which dates blocked".
func (s *AvailabilityHandler) CheckAvailability(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "AvailabilityHandler.CheckAvailability")
	defer span.End()

	vars := mux.Vars(h)
	roomTypeID := vars["roomTypeId"]

	request, ok := h.Context().Value(KeyProduct{}).(*data.CheckAvailability)
	if !ok {
		error2.ReturnJSONError(rw, "Check availability payload not found in context", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateRequest(request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnJSONError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	check, err := s.availabilityService.CheckAvailability(ctx, roomTypeID, request.CheckInDate, request.CheckOutDate, request.Quantity)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	if err := check.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

// GetCalendar returns one availability record per date in [start, end),
// synthesized gaps included, for the admin calendar view.
func (s *AvailabilityHandler) GetCalendar(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "AvailabilityHandler.GetCalendar")
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

	records, err := s.availabilityService.GetCalendar(ctx, roomTypeID, start, end)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	if err := records.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

func (s *AvailabilityHandler) MiddlewareCheckAvailabilityDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		request := &data.CheckAvailability{}
		err := request.FromJSON(h.Body)
		if err != nil {
			http.Error(rw, "Unable to decode json", http.StatusBadRequest)
			s.logger.Println(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyProduct{}, request)
		h = h.WithContext(ctx)
		next.ServeHTTP(rw, h)
	})
}

func (s *AvailabilityHandler) MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		s.logger.Println("Method [", h.Method, "] - Hit path :", h.URL.Path)

		rw.Header().Add("Content-Type", "application/json")

		next.ServeHTTP(rw, h)
	})
}
