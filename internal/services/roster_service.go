package services

import (
	"context"
	"time"

	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
)

const (
	opAssignDuty      = "assign_duty"
	opRegisterStudent = "register_student"
	opSendMessage     = "send_message"
)

// DutyInput carries a weekly duty assignment
type DutyInput struct {
	Name string
	Role string
	Task string
	Week string
}

// StudentInput carries a student registration
type StudentInput struct {
	Name   string
	Class  string
	Stream string
	House  string
	Date   string
}

// RosterService keeps duties, students and messages. None of these touch the totals.
type RosterService struct {
	*Ledger
}

// NewRosterService creates a new roster service
func NewRosterService(ledger *Ledger) *RosterService {
	return &RosterService{Ledger: ledger}
}

// AssignDuty records a duty for the given week
func (s *RosterService) AssignDuty(ctx context.Context, id access.Identity, in DutyInput) (duty *models.Duty, err error) {
	defer s.track(opAssignDuty, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	if !required(in.Name, in.Role, in.Task, in.Week) {
		return nil, invalid("Fill duty fields")
	}

	duty = &models.Duty{
		ID:   models.NewID(models.TagDuty),
		Name: in.Name,
		Role: in.Role,
		Task: in.Task,
		Week: in.Week,
	}
	if err := s.repos.Roster.CreateDuty(ctx, duty); err != nil {
		return nil, err
	}
	s.committed(ctx, opAssignDuty, id, duty.ID, "", zero)
	return duty, nil
}

// RegisterStudent records a new club member
func (s *RosterService) RegisterStudent(ctx context.Context, id access.Identity, in StudentInput) (receipt *Receipt, err error) {
	defer s.track(opRegisterStudent, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	if !required(in.Name, in.Class, in.Stream, in.House) {
		return nil, invalid("Fill student fields")
	}
	date, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:     models.NewID(models.TagStudent),
		Name:   in.Name,
		Class:  in.Class,
		Stream: in.Stream,
		House:  in.House,
		Date:   date,
	}
	if err := s.repos.Roster.CreateStudent(ctx, student); err != nil {
		return nil, err
	}
	s.committed(ctx, opRegisterStudent, id, student.ID, "", zero)

	return newReceipt("Student Registration", student.ID).
		add("Name", student.Name).
		add("Class", student.Class).
		add("Stream", student.Stream).
		add("House", student.House).
		add("Date", student.Date), nil
}

// SendMessage leaves a message from the caller's role to another role
func (s *RosterService) SendMessage(ctx context.Context, id access.Identity, to, content string) (message *models.Message, err error) {
	defer s.track(opSendMessage, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	if !required(to, content) {
		return nil, invalid("Fill message fields")
	}

	message = &models.Message{
		ID:      models.NewID(models.TagMessage),
		From:    id.Role,
		To:      to,
		Content: content,
		Date:    s.today(),
		Time:    s.clock(),
	}
	if err := s.repos.Roster.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	s.committed(ctx, opSendMessage, id, message.ID, "", zero)
	return message, nil
}

// Duties returns duties matching query
func (s *RosterService) Duties(ctx context.Context, query *repository.ListQuery) ([]models.Duty, error) {
	return s.repos.Roster.ListDuties(ctx, query)
}

// Students returns students matching query
func (s *RosterService) Students(ctx context.Context, query *repository.ListQuery) ([]models.Student, error) {
	return s.repos.Roster.ListStudents(ctx, query)
}

// Messages returns messages addressed to role to, or every message when to is empty
func (s *RosterService) Messages(ctx context.Context, to string, query *repository.ListQuery) ([]models.Message, error) {
	return s.repos.Roster.ListMessages(ctx, to, query)
}
