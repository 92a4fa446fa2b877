package repository

import (
	"context"

	"github.com/sjperalta/cabinet-api/internal/models"

	"gorm.io/gorm"
)

// RosterRepository defines data access for attendance, duties, students and messages
type RosterRepository interface {
	CreateAttendance(ctx context.Context, attendance *models.Attendance) error
	CreateDuty(ctx context.Context, duty *models.Duty) error
	CreateStudent(ctx context.Context, student *models.Student) error
	CreateMessage(ctx context.Context, message *models.Message) error

	ListAttendance(ctx context.Context, query *ListQuery) ([]models.Attendance, error)
	ListDuties(ctx context.Context, query *ListQuery) ([]models.Duty, error)
	ListStudents(ctx context.Context, query *ListQuery) ([]models.Student, error)
	ListMessages(ctx context.Context, to string, query *ListQuery) ([]models.Message, error)
}

type rosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a new roster repository
func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) error {
	return createRecord(ctx, r.db, attendance)
}

func (r *rosterRepository) CreateDuty(ctx context.Context, duty *models.Duty) error {
	return createRecord(ctx, r.db, duty)
}

func (r *rosterRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	return createRecord(ctx, r.db, student)
}

func (r *rosterRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return createRecord(ctx, r.db, message)
}

func (r *rosterRepository) ListAttendance(ctx context.Context, query *ListQuery) ([]models.Attendance, error) {
	return listRecords[models.Attendance](ctx, r.db, query, "name", "date ASC, time ASC, id ASC")
}

func (r *rosterRepository) ListDuties(ctx context.Context, query *ListQuery) ([]models.Duty, error) {
	return listRecords[models.Duty](ctx, r.db, query, "name", "week ASC, id ASC")
}

func (r *rosterRepository) ListStudents(ctx context.Context, query *ListQuery) ([]models.Student, error) {
	return listRecords[models.Student](ctx, r.db, query, "name", "name ASC, id ASC")
}

// ListMessages returns messages, optionally only those addressed to one role
func (r *rosterRepository) ListMessages(ctx context.Context, to string, query *ListQuery) ([]models.Message, error) {
	db := r.db
	if to != "" {
		db = db.Where("to_user = ?", to)
	}
	return listRecords[models.Message](ctx, db, query, "from_user", "date ASC, time ASC, id ASC")
}
