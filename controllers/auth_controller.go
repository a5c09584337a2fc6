package controllers

import (
	"errors"
	"net/http"
	"strings"

	"hotelx-backend/middleware"
	"hotelx-backend/storage"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	Store storage.Store
}

func NewAuthController(store storage.Store) *AuthController {
	return &AuthController{Store: store}
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var payload loginPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "username and password required")
		return
	}

	username := strings.TrimSpace(payload.Username)
	user, err := c.Store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.JSONError(ctx, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.JSONError(ctx, http.StatusInternalServerError, "login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		utils.JSONError(ctx, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username)
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.JSONSuccess(ctx, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
		},
	})
}
