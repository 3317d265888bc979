package feedback

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindChat   = "chat"
	KindReview = "review"
)

type Feedback struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	Kind       string    `gorm:"column:kind;type:varchar(16);not null"`
	Message    string    `gorm:"column:message;type:text;not null;default:''"`
	BotReply   string    `gorm:"column:bot_reply;type:text;not null;default:''"`
	Rating     *int      `gorm:"column:rating;check:rating BETWEEN 1 AND 5"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

func (Feedback) TableName() string {
	return "employee_feedback"
}
