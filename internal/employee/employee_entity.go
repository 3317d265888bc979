package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeCode   string          `gorm:"size:32;not null;uniqueIndex:uq_employee_code"`
	Name           string          `gorm:"size:255;not null"`
	Email          string          `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	PasswordHash   *string         `gorm:"size:255"`
	DepartmentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	DesignationID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Salary         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status         string          `gorm:"size:16;not null;default:active;index"`
	JoiningDate    time.Time       `gorm:"type:date;not null"`
	FaceEnrolledAt *time.Time

	DepartmentName   string `gorm:"->;-:migration"`
	DesignationTitle string `gorm:"->;-:migration"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
