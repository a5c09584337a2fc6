package controllers

import (
	"net/http"

	"hotelx-backend/services"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// GET /api/bookings
func (c *BookingController) ListBookings(ctx *gin.Context) {
	bookings, err := c.BookingSvc.ListBookings()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, bookings)
}

// GET /api/bookings/:id
func (c *BookingController) GetBooking(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	booking, err := c.BookingSvc.GetBooking(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, booking)
}

// POST /api/bookings
func (c *BookingController) CreateBooking(ctx *gin.Context) {
	var req services.BookingCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := c.BookingSvc.CreateBooking(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, booking)
}

// PATCH /api/bookings/:id
func (c *BookingController) UpdateBooking(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req services.BookingUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := c.BookingSvc.UpdateBooking(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, booking)
}

// DELETE /api/bookings/:id
func (c *BookingController) DeleteBooking(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.BookingSvc.DeleteBooking(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
