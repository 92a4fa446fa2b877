package models

import (
	"github.com/shopspring/decimal"
)

// Attendance status constants
const (
	AttendancePresent = "Present"
	AttendanceLate    = "Late"
)

// Attendance records a check-in at a cabinet meeting
type Attendance struct {
	ID     string          `gorm:"primaryKey;size:64" json:"id"`
	Name   string          `gorm:"not null;index" json:"name"`
	Role   string          `gorm:"not null" json:"role"`
	Date   string          `gorm:"size:10;index" json:"date"`
	Time   string          `gorm:"size:5" json:"time"`
	Status string          `gorm:"size:16;not null" json:"status"`
	Fine   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"fine"`
}

// TableName specifies the table name for Attendance
func (Attendance) TableName() string {
	return "attendance"
}

// Duty is a weekly task assigned to a cabinet member
type Duty struct {
	ID   string `gorm:"primaryKey;size:64" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Role string `gorm:"not null" json:"role"`
	Task string `gorm:"not null" json:"task"`
	Week string `gorm:"not null" json:"week"`
}

// TableName specifies the table name for Duty
func (Duty) TableName() string {
	return "duties"
}

// Student is a registered club member
type Student struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	Name   string `gorm:"not null;index" json:"name"`
	Class  string `gorm:"column:cls" json:"cls"`
	Stream string `json:"stream"`
	House  string `json:"house"`
	Date   string `gorm:"size:10" json:"date"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}

// Message is an internal note between roles
type Message struct {
	ID      string `gorm:"primaryKey;size:64" json:"id"`
	From    string `gorm:"column:from_user;not null" json:"from_user"`
	To      string `gorm:"column:to_user;not null;index" json:"to_user"`
	Content string `gorm:"type:text;not null" json:"content"`
	Date    string `gorm:"size:10" json:"date"`
	Time    string `gorm:"size:5" json:"time"`
	Read    Flag   `gorm:"not null" json:"read"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}
