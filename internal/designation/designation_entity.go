package designation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Designation struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title          string          `gorm:"size:255;not null;uniqueIndex:uq_designation_title_department"`
	DepartmentID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_designation_title_department"`
	DepartmentName string          `gorm:"->;-:migration"`
	BaseSalary     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Level          int             `gorm:"not null;default:1;check:chk_designation_level,level BETWEEN 1 AND 10"`
	Status         string          `gorm:"size:16;not null;default:active;index"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}
