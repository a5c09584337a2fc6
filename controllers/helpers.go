package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotelx-backend/gateway"
	"hotelx-backend/services"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseDate accepts "2006-01-02" or RFC3339 and normalizes to midnight UTC.
func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", v)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseID reads the :id path param. On failure it writes the 400 response
// and returns false.
func parseID(ctx *gin.Context) (uint, bool) {
	idStr := strings.TrimSpace(ctx.Param("id"))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrPaymentNotFound):
		utils.JSONError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRoomAlreadyBooked):
		utils.JSONError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidMethod),
		errors.Is(err, services.ErrValidation):
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, gateway.ErrGatewayDeclined):
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, err.Error())
	}
}
