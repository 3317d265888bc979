package app

import (
	"context"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/compensation"
	"go-hrms/internal/department"
	"go-hrms/internal/designation"
	"go-hrms/internal/employee"
	"go-hrms/internal/feedback"
	"go-hrms/internal/leave"
	"go-hrms/internal/payroll"

	"gorm.io/gorm"
)

// Tables written with raw SQL rather than through a gorm model.
var rawSchema = []string{
	`CREATE TABLE IF NOT EXISTS counters (
		counter_type VARCHAR(64) PRIMARY KEY,
		last_value   BIGINT NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id             UUID PRIMARY KEY,
		request_id     VARCHAR(64),
		aggregate_type VARCHAR(64) NOT NULL,
		aggregate_id   UUID NOT NULL,
		event_type     VARCHAR(64) NOT NULL,
		topic          VARCHAR(128) NOT NULL,
		payload        JSONB NOT NULL,
		status         VARCHAR(16) NOT NULL DEFAULT 'pending',
		retry_count    INT NOT NULL DEFAULT 0,
		next_retry_at  TIMESTAMPTZ,
		error_message  VARCHAR(500),
		processed_at   TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
		ON outbox_events (status, created_at)`,
}

// Migrate brings the schema up to date. Parents come before children so
// foreign keys resolve.
func Migrate(ctx context.Context, db *gorm.DB) error {
	conn := db.WithContext(ctx)
	if err := conn.AutoMigrate(
		&auth.Admin{},
		&department.Department{},
		&designation.Designation{},
		&employee.Employee{},
		&compensation.Policy{},
		&compensation.Deduction{},
		&attendance.Attendance{},
		&leave.LeaveType{},
		&leave.LeaveRequest{},
		&leave.LeaveBalance{},
		&payroll.Payroll{},
		&payroll.PayrollComponent{},
		&feedback.Feedback{},
	); err != nil {
		return err
	}

	for _, stmt := range rawSchema {
		if err := conn.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
