package controllers

import (
	"net/http"

	"hotelx-backend/services"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsSvc *services.StatsService
}

func NewStatsController(svc *services.StatsService) *StatsController {
	return &StatsController{StatsSvc: svc}
}

// GET /api/stats
func (c *StatsController) GetStats(ctx *gin.Context) {
	stats, err := c.StatsSvc.GetStats()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, stats)
}
