package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/middleware"
)

// Register mounts every API route on v1. Everything but health and login needs a role session.
func (h *Handlers) Register(v1 *gin.RouterGroup, jwtSecret string) {
	v1.GET("/health", h.Health.Index)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtSecret, h.Auth.authService))
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/auth/session", h.Auth.Session)
		protected.GET("/dashboard", h.Dashboard.Show)

		protected.GET("/payments", h.Payment.Index)
		protected.POST("/payments", h.Payment.Create)
		protected.POST("/payments/:id/balance", h.Payment.SettleBalance)
		protected.GET("/minister_payments", h.Payment.MinisterIndex)
		protected.POST("/minister_payments", h.Payment.MinisterCreate)
		protected.POST("/minister_payments/:id/balance", h.Payment.MinisterSettleBalance)

		protected.GET("/expenditures", h.Cashbook.Expenditures)
		protected.POST("/expenditures", h.Cashbook.CreateExpenditure)
		protected.GET("/incomes", h.Cashbook.Incomes)
		protected.POST("/incomes", h.Cashbook.CreateIncome)

		protected.GET("/loans", h.Loan.Index)
		protected.POST("/loans", h.Loan.Create)
		protected.POST("/loans/repay", h.Loan.Repay)
		protected.GET("/repayments", h.Loan.Repayments)

		protected.GET("/savings", h.Saving.Index)
		protected.POST("/savings", h.Saving.Create)
		protected.POST("/savings/withdraw", h.Saving.Withdraw)

		protected.GET("/attendance", h.Roster.Attendance)
		protected.POST("/attendance", h.Roster.MarkAttendance)
		protected.GET("/duties", h.Roster.Duties)
		protected.POST("/duties", h.Roster.AssignDuty)
		protected.GET("/students", h.Roster.Students)
		protected.POST("/students", h.Roster.RegisterStudent)
		protected.GET("/messages", h.Roster.Messages)
		protected.POST("/messages", h.Roster.SendMessage)

		protected.POST("/finance_pin", middleware.RequireRole(access.RoleFinance), h.Admin.SetFinancePin)
		protected.POST("/finance_pin/override", h.Admin.OverrideFinancePin)
		protected.POST("/clear_all", middleware.RequireRole(access.RoleFinance), h.Admin.ClearAll)
		protected.GET("/export", h.Admin.Export)
		protected.POST("/import", h.Admin.Import)
		protected.GET("/backups", h.Admin.Backups)

		protected.GET("/export/workbook", h.Report.Workbook)
		protected.GET("/export/cashbook", h.Report.CashbookCSV)
		protected.POST("/receipts/pdf", h.Report.ReceiptPDF)
	}
}
