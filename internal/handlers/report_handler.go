package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// @Summary Dashboard
// @Description Totals, open loans, net balance and the per-house chart
// @Tags Reports
// @Produce json
// @Success 200 {object} services.Dashboard
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Show(c *gin.Context) {
	dashboard, err := h.dashboardService.Get(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

type ReportHandler struct {
	exportService *services.ExportService
}

func NewReportHandler(exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{exportService: exportService}
}

type ReceiptPDFRequest struct {
	Receipt string      `form:"receipt" json:"receipt"`
	Amount  json.Number `form:"amount" json:"amount" swaggertype:"number"`
}

// @Summary Ledger Workbook
// @Description Download every table as an XLSX workbook
// @Tags Reports
// @Produce application/octet-stream
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/workbook [get]
func (h *ReportHandler) Workbook(c *gin.Context) {
	data, filename, err := h.exportService.Workbook(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Cashbook CSV
// @Description Download money in and out in date order with a running balance
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/cashbook [get]
func (h *ReportHandler) CashbookCSV(c *gin.Context) {
	data, filename, err := h.exportService.CashbookCSV(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, filename, "text/csv", data)
}

// @Summary Receipt PDF
// @Description Print a receipt text as PDF; a given amount is also written in words
// @Tags Reports
// @Accept json,x-www-form-urlencoded
// @Produce application/pdf
// @Param request body ReceiptPDFRequest true "Receipt"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /receipts/pdf [post]
func (h *ReportHandler) ReceiptPDF(c *gin.Context) {
	var req ReceiptPDFRequest
	if !bindForm(c, &req) {
		return
	}
	amount, err := parseOptionalAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := h.exportService.ReceiptPDF(req.Receipt, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, filename, "application/pdf", data)
}

