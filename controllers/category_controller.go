package controllers

import (
	"net/http"

	"hotelx-backend/services"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategorySvc *services.CategoryService
}

func NewCategoryController(svc *services.CategoryService) *CategoryController {
	return &CategoryController{CategorySvc: svc}
}

// GET /api/categories
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.CategorySvc.ListCategories()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, categories)
}

// GET /api/categories/:id
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	category, err := c.CategorySvc.GetCategory(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, category)
}

// POST /api/categories
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req services.CategoryCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	category, err := c.CategorySvc.CreateCategory(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, category)
}

// PATCH /api/categories/:id
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req services.CategoryUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	category, err := c.CategorySvc.UpdateCategory(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, category)
}

// DELETE /api/categories/:id
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.CategorySvc.DeleteCategory(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
