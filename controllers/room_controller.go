package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"hotelx-backend/services"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc         *services.RoomService
	AvailabilitySvc *services.AvailabilityService
}

func NewRoomController(roomSvc *services.RoomService, availabilitySvc *services.AvailabilityService) *RoomController {
	return &RoomController{
		RoomSvc:         roomSvc,
		AvailabilitySvc: availabilitySvc,
	}
}

// GET /api/rooms
func (c *RoomController) ListRooms(ctx *gin.Context) {
	rooms, err := c.RoomSvc.ListRooms()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, rooms)
}

// GET /api/rooms/available?checkIn=2026-09-01&checkOut=2026-09-05&categoryId=2
func (c *RoomController) GetAvailableRooms(ctx *gin.Context) {
	checkIn, err := parseDate(ctx.Query("checkIn"))
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "checkIn: "+err.Error())
		return
	}
	checkOut, err := parseDate(ctx.Query("checkOut"))
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "checkOut: "+err.Error())
		return
	}

	var categoryID *uint
	if q := strings.TrimSpace(ctx.Query("categoryId")); q != "" {
		id, err := strconv.ParseUint(q, 10, 32)
		if err != nil || id == 0 {
			utils.JSONError(ctx, http.StatusBadRequest, "invalid categoryId")
			return
		}
		v := uint(id)
		categoryID = &v
	}

	rooms, err := c.AvailabilitySvc.FindAvailableRooms(checkIn, checkOut, categoryID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (c *RoomController) GetRoom(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	room, err := c.RoomSvc.GetRoom(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, room)
}

// POST /api/rooms
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req services.RoomCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	room, err := c.RoomSvc.CreateRoom(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, room)
}

// PATCH /api/rooms/:id
func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req services.RoomUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	room, err := c.RoomSvc.UpdateRoom(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, room)
}

// DELETE /api/rooms/:id
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.RoomSvc.DeleteRoom(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
