package services

import "errors"

// Domain errors. Controllers map these onto HTTP statuses at the boundary;
// nothing below the controllers knows about status codes.
var (
	ErrInvalidDateRange  = errors.New("check-in date must be before check-out date")
	ErrRoomNotFound      = errors.New("room not found")
	ErrCategoryNotFound  = errors.New("room category not found")
	ErrGuestNotFound     = errors.New("guest not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrRoomAlreadyBooked = errors.New("room is already booked for the requested dates")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrValidation        = errors.New("validation failed")
)
