package error

import (
	"encoding/json"
	"errors"
	"net/http"

	"inventory-service/domain"
)

type ErrorMessage struct {
	Error string `json:"error"`
}

func ReturnJSONError(rw http.ResponseWriter, errorMessage string, statusCode int) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)

	errorResponse := ErrorMessage{Error: errorMessage}
	jsonResponse, err := json.Marshal(errorResponse)
	if err != nil {
		http.Error(rw, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rw.Write(jsonResponse)
}

// StatusForError maps engine error kinds onto HTTP status codes.
// Busy is the only one a caller should retry unchanged.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRange()):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOverbooked()):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMalformedRecord()):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTransition()):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBusy()):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrRoomTypeNotFound()),
		errors.Is(err, domain.ErrHotelNotFound()),
		errors.Is(err, domain.ErrReservationNotFound()):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ReturnEngineError writes the error with its mapped status code.
func ReturnEngineError(rw http.ResponseWriter, err error) {
	ReturnJSONError(rw, err.Error(), StatusForError(err))
}
