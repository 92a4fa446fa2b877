package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/services"
	"github.com/sjperalta/cabinet-api/internal/storage"
)

// AdminHandler serves the finance PIN and whole-ledger operations
type AdminHandler struct {
	securityService *services.SecurityService
	snapshotService *services.SnapshotService
	storage         *storage.LocalStorage
}

func NewAdminHandler(securityService *services.SecurityService, snapshotService *services.SnapshotService, storage *storage.LocalStorage) *AdminHandler {
	return &AdminHandler{securityService: securityService, snapshotService: snapshotService, storage: storage}
}

type SetFinancePinRequest struct {
	CurrentPin string `form:"current_pin" json:"current_pin"`
	NewPin     string `form:"new_pin" json:"new_pin"`
}

type OverrideFinancePinRequest struct {
	Role    string `form:"role" json:"role"`
	RolePin string `form:"role_pin" json:"role_pin"`
	NewPin  string `form:"new_pin" json:"new_pin"`
}

type ClearAllRequest struct {
	FinancePin string `form:"finance_pin" json:"finance_pin"`
}

// @Summary Set Finance PIN
// @Description Finance sets or changes the PIN that guards destructive operations
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body SetFinancePinRequest true "PINs"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /finance_pin [post]
func (h *AdminHandler) SetFinancePin(c *gin.Context) {
	var req SetFinancePinRequest
	if !bindForm(c, &req) {
		return
	}
	if err := h.securityService.SetFinancePin(c.Request.Context(), middleware.GetIdentity(c), req.CurrentPin, req.NewPin); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Finance PIN updated")
}

// @Summary Override Finance PIN
// @Description Patron or President replace the finance PIN by re-entering their own PIN
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body OverrideFinancePinRequest true "Override"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /finance_pin/override [post]
func (h *AdminHandler) OverrideFinancePin(c *gin.Context) {
	var req OverrideFinancePinRequest
	if !bindForm(c, &req) {
		return
	}
	err := h.securityService.OverrideFinancePin(c.Request.Context(), middleware.GetIdentity(c), req.Role, req.RolePin, req.NewPin)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Finance PIN overridden")
}

// @Summary Clear All Data
// @Description Delete every record and zero the totals. Requires the finance PIN.
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ClearAllRequest true "Finance PIN"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /clear_all [post]
func (h *AdminHandler) ClearAll(c *gin.Context) {
	var req ClearAllRequest
	if !bindForm(c, &req) {
		return
	}
	if err := h.snapshotService.ClearAll(c.Request.Context(), middleware.GetIdentity(c), req.FinancePin); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "All data cleared")
}

// @Summary Export Ledger
// @Description Download every table and the totals as one JSON document
// @Tags Admin
// @Produce json
// @Success 200 {object} models.Snapshot
// @Security BearerAuth
// @Router /export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	snap, err := h.snapshotService.Export(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, h.snapshotService.ExportFilename(), "application/json", data)
}

// @Summary Import Ledger
// @Description Replace the whole ledger with an export. Send a multipart "file" or the JSON itself, optionally under "snapshot".
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Param file formData file false "Export file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /import [post]
func (h *AdminHandler) Import(c *gin.Context) {
	data, err := h.importPayload(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var snap models.Snapshot
	if err := unmarshalNestedOrFlat(data, "snapshot", &snap); err != nil {
		respondError(c, &services.ValidationError{Message: "Invalid import file"})
		return
	}

	if err := h.snapshotService.Import(c.Request.Context(), middleware.GetIdentity(c), &snap); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Data imported")
}

func (h *AdminHandler) importPayload(c *gin.Context) ([]byte, error) {
	limit := storage.MaxFileSize()

	if file, err := c.FormFile("file"); err == nil {
		if file.Size > limit {
			return nil, &services.ValidationError{Message: "Import file is too large"}
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	if c.Request.Body == nil {
		return nil, &services.ValidationError{Message: "No data to import"}
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &services.ValidationError{Message: "Import file is too large"}
	}
	if len(data) == 0 {
		return nil, &services.ValidationError{Message: "No data to import"}
	}
	return data, nil
}

// @Summary List Backups
// @Description Archived exports, newest first
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /backups [get]
func (h *AdminHandler) Backups(c *gin.Context) {
	if !middleware.GetIdentity(c).Authenticated() {
		respondError(c, &services.AuthorizationError{Message: "Not logged in"})
		return
	}
	backups, err := h.storage.Backups()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": backups})
}
