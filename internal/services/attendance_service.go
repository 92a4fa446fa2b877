package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/sjperalta/cabinet-api/internal/rules"
)

const opMarkAttendance = "mark_attendance"

// AttendanceInput carries a meeting check-in. Time defaults to now and
// MeetingStart to the configured start.
type AttendanceInput struct {
	Name         string
	Role         string
	Date         string
	Time         string
	MeetingStart string
}

// AttendanceService marks attendance and books late fines
type AttendanceService struct {
	*Ledger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(ledger *Ledger) *AttendanceService {
	return &AttendanceService{Ledger: ledger}
}

// Mark records a check-in. A late check-in also books its fine as income.
func (s *AttendanceService) Mark(ctx context.Context, id access.Identity, in AttendanceInput) (receipt *Receipt, err error) {
	defer s.track(opMarkAttendance, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	if !required(in.Name, in.Role) {
		return nil, invalid("Fill attendance fields")
	}
	date, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}
	checkIn := strings.TrimSpace(in.Time)
	if checkIn == "" {
		checkIn = s.clock()
	}

	late, fine, err := s.rules.Attendance(checkIn, strings.TrimSpace(in.MeetingStart))
	if err != nil {
		if errors.Is(err, rules.ErrInvalidClock) {
			return nil, invalid("Invalid time: use HH:MM")
		}
		return nil, err
	}

	attendance := &models.Attendance{
		ID:     models.NewID(models.TagAttendance),
		Name:   in.Name,
		Role:   in.Role,
		Date:   date,
		Time:   checkIn,
		Status: models.AttendancePresent,
		Fine:   decimal.Zero,
	}
	if late {
		attendance.Status = models.AttendanceLate
		attendance.Fine = fine
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Roster.CreateAttendance(ctx, attendance); err != nil {
			return err
		}
		if !attendance.Fine.IsPositive() {
			return nil
		}
		if err := r.Cashbook.CreateIncome(ctx, &models.Income{
			ID:     models.NewID(models.TagIncome),
			Source: fmt.Sprintf("Late fine: %s", attendance.Name),
			Amount: attendance.Fine,
			Date:   date,
			Time:   checkIn,
		}); err != nil {
			return err
		}
		return r.State.AddCollected(ctx, attendance.Fine)
	})
	if err != nil {
		return nil, err
	}

	book := ""
	if attendance.Fine.IsPositive() {
		book = BookCollected
	}
	s.committed(ctx, opMarkAttendance, id, attendance.ID, book, attendance.Fine)

	return newReceipt("Attendance Receipt", attendance.ID).
		add("Name", attendance.Name).
		add("Role", attendance.Role).
		add("Date", attendance.Date).
		add("Time", attendance.Time).
		add("Status", attendance.Status).
		add("Fine", FormatMoney(attendance.Fine)).
		add("Timestamp", s.stamp()), nil
}

// List returns attendance records matching query
func (s *AttendanceService) List(ctx context.Context, query *repository.ListQuery) ([]models.Attendance, error) {
	return s.repos.Roster.ListAttendance(ctx, query)
}
