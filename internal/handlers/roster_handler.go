package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/services"
)

type RosterHandler struct {
	attendanceService *services.AttendanceService
	rosterService     *services.RosterService
}

func NewRosterHandler(attendanceService *services.AttendanceService, rosterService *services.RosterService) *RosterHandler {
	return &RosterHandler{attendanceService: attendanceService, rosterService: rosterService}
}

type AttendanceRequest struct {
	Name         string `form:"name" json:"name"`
	Role         string `form:"role" json:"role"`
	Date         string `form:"date" json:"date"`
	Time         string `form:"time" json:"time"`
	MeetingStart string `form:"meeting_start" json:"meeting_start"`
}

type DutyRequest struct {
	Name string `form:"name" json:"name"`
	Role string `form:"role" json:"role"`
	Task string `form:"task" json:"task"`
	Week string `form:"week" json:"week"`
}

type StudentRequest struct {
	Name   string `form:"name" json:"name"`
	Class  string `form:"class" json:"class"`
	Stream string `form:"stream" json:"stream"`
	House  string `form:"house" json:"house"`
	Date   string `form:"date" json:"date"`
}

type MessageRequest struct {
	To      string `form:"to" json:"to"`
	Content string `form:"content" json:"content"`
}

// @Summary Mark Attendance
// @Description Record a meeting check-in; late arrivals are fined
// @Tags Roster
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body AttendanceRequest true "Check-in"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /attendance [post]
func (h *RosterHandler) MarkAttendance(c *gin.Context) {
	var req AttendanceRequest
	if !bindForm(c, &req) {
		return
	}

	receipt, err := h.attendanceService.Mark(c.Request.Context(), middleware.GetIdentity(c), services.AttendanceInput{
		Name:         req.Name,
		Role:         req.Role,
		Date:         req.Date,
		Time:         req.Time,
		MeetingStart: req.MeetingStart,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}

// @Summary List Attendance
// @Tags Roster
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /attendance [get]
func (h *RosterHandler) Attendance(c *gin.Context) {
	records, err := h.attendanceService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}

// @Summary Assign Duty
// @Tags Roster
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body DutyRequest true "Duty"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /duties [post]
func (h *RosterHandler) AssignDuty(c *gin.Context) {
	var req DutyRequest
	if !bindForm(c, &req) {
		return
	}

	duty, err := h.rosterService.AssignDuty(c.Request.Context(), middleware.GetIdentity(c), services.DutyInput{
		Name: req.Name,
		Role: req.Role,
		Task: req.Task,
		Week: req.Week,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Duty assigned", "duty": duty})
}

// @Summary List Duties
// @Tags Roster
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /duties [get]
func (h *RosterHandler) Duties(c *gin.Context) {
	duties, err := h.rosterService.Duties(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"duties": duties})
}

// @Summary Register Student
// @Tags Roster
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body StudentRequest true "Student"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /students [post]
func (h *RosterHandler) RegisterStudent(c *gin.Context) {
	var req StudentRequest
	if !bindForm(c, &req) {
		return
	}

	receipt, err := h.rosterService.RegisterStudent(c.Request.Context(), middleware.GetIdentity(c), services.StudentInput{
		Name:   req.Name,
		Class:  req.Class,
		Stream: req.Stream,
		House:  req.House,
		Date:   req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondReceipt(c, receipt)
}

// @Summary List Students
// @Tags Roster
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /students [get]
func (h *RosterHandler) Students(c *gin.Context) {
	students, err := h.rosterService.Students(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// @Summary Send Message
// @Description Leave a message for a role; the sender is the session role
// @Tags Roster
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body MessageRequest true "Message"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /messages [post]
func (h *RosterHandler) SendMessage(c *gin.Context) {
	var req MessageRequest
	if !bindForm(c, &req) {
		return
	}

	message, err := h.rosterService.SendMessage(c.Request.Context(), middleware.GetIdentity(c), req.To, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message sent", "data": message})
}

// @Summary List Messages
// @Description Messages addressed to a role, defaulting to the session role
// @Tags Roster
// @Produce json
// @Param to query string false "Recipient role"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /messages [get]
func (h *RosterHandler) Messages(c *gin.Context) {
	to := c.DefaultQuery("to", middleware.GetIdentity(c).Role)
	messages, err := h.rosterService.Messages(c.Request.Context(), to, listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
