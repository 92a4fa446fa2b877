package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/services"
)

type CashbookHandler struct {
	expenditureService *services.ExpenditureService
	incomeService      *services.IncomeService
}

func NewCashbookHandler(expenditureService *services.ExpenditureService, incomeService *services.IncomeService) *CashbookHandler {
	return &CashbookHandler{expenditureService: expenditureService, incomeService: incomeService}
}

type CreateExpenditureRequest struct {
	Description string      `form:"desc" json:"desc"`
	Amount      json.Number `form:"amount" json:"amount" swaggertype:"number"`
	Date        string      `form:"date" json:"date"`
}

type CreateIncomeRequest struct {
	Source string      `form:"source" json:"source"`
	Amount json.Number `form:"amount" json:"amount" swaggertype:"number"`
	Date   string      `form:"date" json:"date"`
}

// @Summary List Expenditures
// @Tags Cashbook
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenditures [get]
func (h *CashbookHandler) Expenditures(c *gin.Context) {
	expenditures, err := h.expenditureService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenditures": expenditures})
}

// @Summary Add Expenditure
// @Tags Cashbook
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body CreateExpenditureRequest true "Expenditure"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /expenditures [post]
func (h *CashbookHandler) CreateExpenditure(c *gin.Context) {
	var req CreateExpenditureRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.expenditureService.Add(c.Request.Context(), middleware.GetIdentity(c), req.Description, amount, req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}

// @Summary List Incomes
// @Tags Cashbook
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /incomes [get]
func (h *CashbookHandler) Incomes(c *gin.Context) {
	incomes, err := h.incomeService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"incomes": incomes})
}

// @Summary Add Income
// @Tags Cashbook
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body CreateIncomeRequest true "Income"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /incomes [post]
func (h *CashbookHandler) CreateIncome(c *gin.Context) {
	var req CreateIncomeRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.incomeService.Add(c.Request.Context(), middleware.GetIdentity(c), req.Source, amount, req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}
