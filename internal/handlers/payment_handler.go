package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/services"
)

type PaymentHandler struct {
	paymentService  *services.PaymentService
	ministerService *services.MinisterService
}

func NewPaymentHandler(paymentService *services.PaymentService, ministerService *services.MinisterService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, ministerService: ministerService}
}

type CreatePaymentRequest struct {
	Name   string      `form:"name" json:"name"`
	Class  string      `form:"class" json:"class"`
	Stream string      `form:"stream" json:"stream"`
	House  string      `form:"house" json:"house"`
	Type   string      `form:"type" json:"type"`
	Term   string      `form:"term" json:"term"`
	Amount json.Number `form:"amount" json:"amount" swaggertype:"number"`
	Date   string      `form:"date" json:"date"`
}

type SettleBalanceRequest struct {
	Amount json.Number `form:"amount" json:"amount" swaggertype:"number"`
}

type CreateMinisterPaymentRequest struct {
	Name   string      `form:"name" json:"name"`
	Type   string      `form:"type" json:"type"`
	Amount json.Number `form:"amount" json:"amount" swaggertype:"number"`
	Date   string      `form:"date" json:"date"`
}

// @Summary List Payments
// @Description List member payments, optionally by name and date
// @Tags Payments
// @Produce json
// @Param name query string false "Member name"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page, 0 for all" default(0)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// @Summary Add Payment
// @Description Record a member payment against the fixed price of its type
// @Tags Payments
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body CreatePaymentRequest true "Payment"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.paymentService.Add(c.Request.Context(), middleware.GetIdentity(c), services.PaymentInput{
		Name:   req.Name,
		Class:  req.Class,
		Stream: req.Stream,
		House:  req.House,
		Type:   req.Type,
		Term:   req.Term,
		Amount: amount,
		Date:   req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}

// @Summary Settle Payment Balance
// @Description Pay towards the outstanding balance of a payment; overpayment is capped
// @Tags Payments
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body SettleBalanceRequest true "Amount"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{id}/balance [post]
func (h *PaymentHandler) SettleBalance(c *gin.Context) {
	var req SettleBalanceRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.paymentService.SettleBalance(c.Request.Context(), middleware.GetIdentity(c), c.Param("id"), amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}

// @Summary List Minister Payments
// @Tags Minister Payments
// @Produce json
// @Param name query string false "Minister name"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /minister_payments [get]
func (h *PaymentHandler) MinisterIndex(c *gin.Context) {
	payments, err := h.ministerService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ministerPayments": payments})
}

// @Summary Add Minister Payment
// @Tags Minister Payments
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body CreateMinisterPaymentRequest true "Minister payment"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /minister_payments [post]
func (h *PaymentHandler) MinisterCreate(c *gin.Context) {
	var req CreateMinisterPaymentRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.ministerService.Add(c.Request.Context(), middleware.GetIdentity(c), services.MinisterPaymentInput{
		Name:   req.Name,
		Type:   req.Type,
		Amount: amount,
		Date:   req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}

// @Summary Settle Minister Balance
// @Tags Minister Payments
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Minister payment ID"
// @Param request body SettleBalanceRequest true "Amount"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /minister_payments/{id}/balance [post]
func (h *PaymentHandler) MinisterSettleBalance(c *gin.Context) {
	var req SettleBalanceRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.ministerService.SettleBalance(c.Request.Context(), middleware.GetIdentity(c), c.Param("id"), amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}
