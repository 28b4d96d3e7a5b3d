package domain

import "errors"

var (
	errInvalidRange        error = errors.New("check-out date must be after check-in date")
	errOverbooked          error = errors.New("not enough free rooms for at least one requested date")
	errMalformedRecord     error = errors.New("availability record has negative room counts")
	errInvalidTransition   error = errors.New("illegal approval transition")
	errBusy                error = errors.New("room type is busy, try again")
	errRoomTypeNotFound    error = errors.New("room type not found")
	errHotelNotFound       error = errors.New("hotel not found")
	errReservationNotFound error = errors.New("reservation not found")
)

// specific errors that may occur during the program
type InventoryError struct {
	Message string
}

func (e InventoryError) Error() string {
	return e.Message
}

func ErrInvalidRange() error {
	return errInvalidRange
}

func ErrOverbooked() error {
	return errOverbooked
}

func ErrMalformedRecord() error {
	return errMalformedRecord
}

func ErrInvalidTransition() error {
	return errInvalidTransition
}

func ErrBusy() error {
	return errBusy
}

func ErrRoomTypeNotFound() error {
	return errRoomTypeNotFound
}

func ErrHotelNotFound() error {
	return errHotelNotFound
}

func ErrReservationNotFound() error {
	return errReservationNotFound
}
