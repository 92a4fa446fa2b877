package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/services"
)

type SavingHandler struct {
	savingService *services.SavingService
}

func NewSavingHandler(savingService *services.SavingService) *SavingHandler {
	return &SavingHandler{savingService: savingService}
}

type CreateSavingRequest struct {
	Name      string      `form:"name" json:"name"`
	Amount    json.Number `form:"amount" json:"amount" swaggertype:"number"`
	Date      string      `form:"date" json:"date"`
	Scheduled string      `form:"withdraw_date" json:"withdraw_date"`
}

type WithdrawRequest struct {
	Name   string      `form:"name" json:"name"`
	Amount json.Number `form:"amount" json:"amount" swaggertype:"number"`
	Date   string      `form:"date" json:"date"`
}

// @Summary List Savings
// @Tags Savings
// @Produce json
// @Param name query string false "Saver name"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /savings [get]
func (h *SavingHandler) Index(c *gin.Context) {
	savings, err := h.savingService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings": savings})
}

// @Summary Add Saving
// @Description Open a saving on the tier matching its amount
// @Tags Savings
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body CreateSavingRequest true "Saving"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /savings [post]
func (h *SavingHandler) Create(c *gin.Context) {
	var req CreateSavingRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.savingService.Add(c.Request.Context(), middleware.GetIdentity(c), services.SavingInput{
		Name:      req.Name,
		Amount:    amount,
		Date:      req.Date,
		Scheduled: req.Scheduled,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}

// @Summary Withdraw Saving
// @Description Pay out of the saver's active saving
// @Tags Savings
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body WithdrawRequest true "Withdrawal"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /savings/withdraw [post]
func (h *SavingHandler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.savingService.Withdraw(c.Request.Context(), middleware.GetIdentity(c), services.WithdrawalInput{
		Name:   req.Name,
		Amount: amount,
		Date:   req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}
