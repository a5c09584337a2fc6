package controllers

import (
	"io"
	"net/http"

	"hotelx-backend/logger"
	"hotelx-backend/services"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// GET /api/payments
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	payments, err := c.PaymentSvc.ListPayments()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, payments)
}

// GET /api/payments/:id
func (c *PaymentController) GetPayment(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	payment, err := c.PaymentSvc.GetPayment(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, payment)
}

// POST /api/payments
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req services.PaymentCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := c.PaymentSvc.CreatePayment(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, payment)
}

// PATCH /api/payments/:id
func (c *PaymentController) UpdatePayment(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req services.PaymentUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := c.PaymentSvc.UpdatePayment(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, payment)
}

// POST /api/payments/process
//
// Runs the charge (or invoice) against the gateway. Declines still record a
// failed payment row before the error response goes out.
func (c *PaymentController) ProcessPayment(ctx *gin.Context) {
	var req services.ProcessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := c.PaymentSvc.ProcessPayment(ctx.Request.Context(), req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, payment)
}

// POST /api/payments/webhook
//
// Gateway callback. Always responds 200 on handled events, including
// notifications for transactions this system never issued.
func (c *PaymentController) HandleWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "failed to read body")
		return
	}
	callbackToken := ctx.GetHeader("X-Callback-Token")

	if err := c.PaymentSvc.HandleWebhook(body, callbackToken); err != nil {
		logger.ErrorLogger.Errorf("webhook processing failed: %v", err)
		utils.JSONError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"received": true})
}
