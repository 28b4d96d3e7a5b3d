package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inventory-service/data"
	error2 "inventory-service/error"
	"inventory-service/services"
	"inventory-service/utils"
)

type ApprovalHandler struct {
	approvalService services.ApprovalService
	logger          *log.Logger
	Tracer          trace.Tracer
}

func NewApprovalHandler(approvalService services.ApprovalService, lg *log.Logger, tr trace.Tracer) ApprovalHandler {
	return ApprovalHandler{
		approvalService: approvalService,
		logger:          lg,
		Tracer:          tr,
	}
}

// SubmitHotel registers a hotel and its room types in pending state.
// No inventory records exist until the submission is approved.
func (s *ApprovalHandler) SubmitHotel(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ApprovalHandler.SubmitHotel")
	defer span.End()

	hotel, ok := h.Context().Value(KeyProduct{}).(*data.Hotel)
	if !ok {
		error2.ReturnJSONError(rw, "Hotel payload not found in context", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateRequest(hotel); err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnJSONError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	submitted, err := s.approvalService.Submit(ctx, hotel)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	if err := submitted.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

func (s *ApprovalHandler) ApproveHotel(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ApprovalHandler.ApproveHotel")
	defer span.End()

	vars := mux.Vars(h)
	if err := s.approvalService.Approve(ctx, vars["id"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}
	rw.WriteHeader(http.StatusOK)
}

func (s *ApprovalHandler) RejectHotel(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ApprovalHandler.RejectHotel")
	defer span.End()

	vars := mux.Vars(h)
	if err := s.approvalService.Reject(ctx, vars["id"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}
	rw.WriteHeader(http.StatusOK)
}

func (s *ApprovalHandler) DeleteHotel(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ApprovalHandler.DeleteHotel")
	defer span.End()

	vars := mux.Vars(h)
	if err := s.approvalService.Delete(ctx, vars["id"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}
	rw.WriteHeader(http.StatusOK)
}

func (s *ApprovalHandler) GetHotel(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ApprovalHandler.GetHotel")
	defer span.End()

	vars := mux.Vars(h)
	hotel, err := s.approvalService.GetHotel(ctx, vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	if err := hotel.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

// UpdateRoomType edits a room type's configuration. Changing base values
// only affects dates that never had a stored record.
func (s *ApprovalHandler) UpdateRoomType(rw http.ResponseWriter, h *http.Request) {
	ctx, span := s.Tracer.Start(h.Context(), "ApprovalHandler.UpdateRoomType")
	defer span.End()

	vars := mux.Vars(h)

	roomType := &data.RoomType{}
	if err := roomType.FromJSON(h.Body); err != nil {
		error2.ReturnJSONError(rw, "Unable to decode json", http.StatusBadRequest)
		s.logger.Println(err)
		return
	}
	roomType.ID = vars["id"]

	updated, err := s.approvalService.UpdateRoomType(ctx, roomType)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		error2.ReturnEngineError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	if err := updated.ToJSON(rw); err != nil {
		s.logger.Println("Unable to convert to json :", err)
	}
}

func (s *ApprovalHandler) MiddlewareHotelDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		hotel := &data.Hotel{}
		err := hotel.FromJSON(h.Body)
		if err != nil {
			http.Error(rw, "Unable to decode json", http.StatusBadRequest)
			s.logger.Println(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyProduct{}, hotel)
		h = h.WithContext(ctx)
		next.ServeHTTP(rw, h)
	})
}
