package controllers

import (
	"net/http"

	"hotelx-backend/services"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

// GET /api/guests
func (c *GuestController) ListGuests(ctx *gin.Context) {
	guests, err := c.GuestSvc.ListGuests()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guests)
}

// GET /api/guests/:id
func (c *GuestController) GetGuest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	guest, err := c.GuestSvc.GetGuest(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest)
}

// POST /api/guests
//
// Re-posting an email that already exists returns the existing guest with
// 200 instead of 201.
func (c *GuestController) CreateGuest(ctx *gin.Context) {
	var req services.GuestCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	guest, created, err := c.GuestSvc.CreateGuest(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.JSONSuccess(ctx, status, guest)
}

// PATCH /api/guests/:id
func (c *GuestController) UpdateGuest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req services.GuestUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	guest, err := c.GuestSvc.UpdateGuest(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest)
}

// DELETE /api/guests/:id
func (c *GuestController) DeleteGuest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.GuestSvc.DeleteGuest(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
