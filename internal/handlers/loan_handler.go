package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/services"
)

type LoanHandler struct {
	loanService *services.LoanService
}

func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

type CreateLoanRequest struct {
	ID       string      `form:"id" json:"id"`
	Name     string      `form:"name" json:"name"`
	Amount   json.Number `form:"amount" json:"amount" swaggertype:"number"`
	Interest json.Number `form:"interest" json:"interest" swaggertype:"number"`
	DueDate  string      `form:"due_date" json:"due_date"`
	Date     string      `form:"date" json:"date"`
}

type RepayLoanRequest struct {
	LoanID string      `form:"loan_id" json:"loan_id"`
	Name   string      `form:"name" json:"name"`
	Amount json.Number `form:"amount" json:"amount" swaggertype:"number"`
	Date   string      `form:"date" json:"date"`
}

// @Summary List Loans
// @Tags Loans
// @Produce json
// @Param name query string false "Borrower name"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /loans [get]
func (h *LoanHandler) Index(c *gin.Context) {
	loans, err := h.loanService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans})
}

// @Summary Add Loan
// @Description Disburse a loan. Interest is a percentage and defaults to 10.
// @Tags Loans
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body CreateLoanRequest true "Loan"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
	var req CreateLoanRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	interest, err := parseOptionalAmount(req.Interest)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.loanService.Add(c.Request.Context(), middleware.GetIdentity(c), services.LoanInput{
		ID:          req.ID,
		Name:        req.Name,
		Amount:      amount,
		InterestPct: interest,
		DueDate:     req.DueDate,
		Date:        req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}

// @Summary Repay Loan
// @Description Apply a repayment; late repayments first add the penalty
// @Tags Loans
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body RepayLoanRequest true "Repayment"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /loans/repay [post]
func (h *LoanHandler) Repay(c *gin.Context) {
	var req RepayLoanRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.loanService.Repay(c.Request.Context(), middleware.GetIdentity(c), services.RepaymentInput{
		LoanID: req.LoanID,
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

// @Summary List Repayments
// @Tags Loans
// @Produce json
// @Param name query string false "Borrower name"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /repayments [get]
func (h *LoanHandler) Repayments(c *gin.Context) {
	repayments, err := h.loanService.Repayments(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repayments": repayments})
}
