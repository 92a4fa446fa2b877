package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/sjperalta/cabinet-api/internal/services"
	"github.com/sjperalta/cabinet-api/internal/storage"
	"github.com/sjperalta/cabinet-api/pkg/logger"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Payment   *PaymentHandler
	Cashbook  *CashbookHandler
	Loan      *LoanHandler
	Saving    *SavingHandler
	Roster    *RosterHandler
	Admin     *AdminHandler
	Report    *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, store *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Auth:      NewAuthHandler(svcs.Auth),
		Dashboard: NewDashboardHandler(svcs.Dashboard),
		Payment:   NewPaymentHandler(svcs.Payment, svcs.Minister),
		Cashbook:  NewCashbookHandler(svcs.Expenditure, svcs.Income),
		Loan:      NewLoanHandler(svcs.Loan),
		Saving:    NewSavingHandler(svcs.Saving),
		Roster:    NewRosterHandler(svcs.Attendance, svcs.Roster),
		Admin:     NewAdminHandler(svcs.Security, svcs.Snapshot, store),
		Report:    NewReportHandler(svcs.Export),
	}
}

// respondError maps a service error to its status. Anything that is not a
// ledger error is reported to Sentry and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	var (
		validation *services.ValidationError
		missing    *services.NotFoundError
		denied     *services.AuthorizationError
		conflict   *services.StateConflictError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.As(err, &denied):
		c.JSON(http.StatusUnauthorized, gin.H{"error": denied.Message})
	case errors.As(err, &missing):
		c.JSON(http.StatusNotFound, gin.H{"error": missing.Message})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message})
	default:
		logger.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func respondReceipt(c *gin.Context, receipt *services.Receipt) {
	c.JSON(http.StatusOK, gin.H{
		"receipt":   receipt.Text(),
		"reference": receipt.Reference,
		"lines":     receipt.Lines,
	})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// listQuery reads the name/date filters and optional pagination shared by every listing
func listQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Name = c.Query("name")
	query.Date = c.Query("date")
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "0"))
	return query
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
