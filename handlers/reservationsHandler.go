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

type ReservationsHandler struct {
	reservationService services.ReservationService
	logger             *log.Logger
	Tracer             trace.Tracer
}

func NewReservationsHandler(reservationService services.ReservationService, lg *log.Logger, tr trace.Tracer) *ReservationsHandler {
	return &ReservationsHandler{
		reservationService: reservationService,
		logger:             lg,
		Tracer:             tr,
	}
}

// CreateReservation books a stay window atomically. On Overbooked nothing
// was written; on Busy the caller may retry with backoff.
func (s *ReservationsHandler) CreateReservation(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ReservationsHandler.CreateReservation")
	defer span.End()

	request, ok := h.Context().Value(KeyProduct{}).(*data.ReservationCreate)
	if !ok {
		error2.ReturnJSONError(rw, "Reservation payload not found in context", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateRequest(request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnJSONError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	reservation, err := s.reservationService.Reserve(ctx, request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	if err := reservation.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

// CancelReservation is idempotent: cancelling an already cancelled
// reservation reports success without touching any counts.
func (s *ReservationsHandler) CancelReservation(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ReservationsHandler.CancelReservation")
	defer span.End()

	vars := mux.Vars(h)
	reservationID := vars["id"]

	if err := s.reservationService.Cancel(ctx, reservationID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
}

func (s *ReservationsHandler) GetReservationsByRoomType(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ReservationsHandler.GetReservationsByRoomType")
	defer span.End()

	vars := mux.Vars(h)
	roomTypeID := vars["roomTypeId"]

	reservations, err := s.reservationService.GetByRoomType(ctx, roomTypeID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	if err := reservations.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

// GetReservationsCoveringDate answers "what reservations cover this date"
// for cancellation and audit.
func (s *ReservationsHandler) GetReservationsCoveringDate(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ReservationsHandler.GetReservationsCoveringDate")
	defer span.End()

	vars := mux.Vars(h)
	roomTypeID := vars["roomTypeId"]

	date, err := time.Parse("2006-01-02", vars["date"])
	if err != nil {
		error2.ReturnJSONError(rw, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	reservations, err := s.reservationService.CoveringDate(ctx, roomTypeID, date)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	if err := reservations.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

func (s *ReservationsHandler) MiddlewareReservationDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		request := &data.ReservationCreate{}
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
