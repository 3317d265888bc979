package department

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Department struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:uq_department_name"`
	Code        string    `gorm:"size:32;not null;uniqueIndex:uq_department_code"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"size:16;not null;default:active;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}
