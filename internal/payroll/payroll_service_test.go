package payroll_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/compensation"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	kafkamock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	employee    *payroll.EmployeeSnapshot
	employeeErr error
	createErr   error
	created     *payroll.Payroll
	rows        []payroll.Payroll
	lastQuery   payroll.Query
	byID        map[uuid.UUID]*payroll.Payroll
}

func (f *fakePayrollRepository) WithTx(*sql.Tx) payroll.Repository { return f }

func (f *fakePayrollRepository) FindEmployee(_ context.Context, id uuid.UUID) (*payroll.EmployeeSnapshot, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	if f.employee == nil || f.employee.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.employee, nil
}

func (f *fakePayrollRepository) Create(_ context.Context, p *payroll.Payroll) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = p
	return nil
}

func (f *fakePayrollRepository) FindAll(_ context.Context, q payroll.Query) ([]payroll.Payroll, error) {
	f.lastQuery = q
	return f.rows, nil
}

func (f *fakePayrollRepository) FindByID(_ context.Context, id uuid.UUID) (*payroll.Payroll, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type attendanceFunc func(ctx context.Context, q attendance.Query) ([]attendance.Attendance, error)

func (f attendanceFunc) FindAll(ctx context.Context, q attendance.Query) ([]attendance.Attendance, error) {
	return f(ctx, q)
}

type staticPolicy struct {
	policy *compensation.Policy
	err    error
}

func (s staticPolicy) LoadPolicy(context.Context) (*compensation.Policy, error) {
	return s.policy, s.err
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func floatPtr(v float64) *float64 { return &v }

func presentDays(employeeID uuid.UUID, start time.Time, n int, status string) []attendance.Attendance {
	rows := make([]attendance.Attendance, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, attendance.Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeID,
			AttendanceDate: start.AddDate(0, 0, i),
			Status:         status,
		})
	}
	return rows
}

func TestPayrollService_Generate(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	actorID := uuid.New()

	activeEmployee := func(salary, designation string) *payroll.EmployeeSnapshot {
		return &payroll.EmployeeSnapshot{
			ID:                    employeeID,
			Name:                  "Asha Rao",
			EmployeeCode:          "EMP-0007",
			Status:                "active",
			Salary:                decimal.RequireFromString(salary),
			DesignationBaseSalary: decimal.RequireFromString(designation),
		}
	}

	t.Run("computes the payslip and queues the event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		expectTx(t, mock, true)

		ctrl := gomock.NewController(t)
		outbox := kafkamock.NewMockOutboxRepository(ctrl)

		var queued kafka.OutboxEvent
		outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
		outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e kafka.OutboxEvent) error {
				queued = e
				return nil
			})

		repo := &fakePayrollRepository{employee: activeEmployee("30000", "0")}
		var seen attendance.Query
		attendanceSrc := attendanceFunc(func(_ context.Context, q attendance.Query) ([]attendance.Attendance, error) {
			seen = q
			return presentDays(employeeID, q.From, 30, attendance.StatusPresent), nil
		})
		policy := staticPolicy{policy: &compensation.Policy{
			Key:            compensation.PolicyKey,
			TaxRatePercent: decimal.NewFromInt(5),
			Deductions: []compensation.Deduction{
				{Label: "Welfare fund", Type: compensation.DeductionFixed, Value: decimal.NewFromInt(100)},
			},
		}}

		svc := payroll.NewService(db, repo, attendanceSrc, policy, outbox)
		resp, err := svc.Generate(ctx, actorID.String(), payroll.GeneratePayrollRequest{
			EmployeeID:    employeeID.String(),
			Month:         "2026-06",
			OvertimeHours: floatPtr(10),
			OvertimeRate:  floatPtr(200),
			HolidayPay:    floatPtr(500),
		})

		require.NoError(t, err)
		assert.Equal(t, 30780.0, resp.FinalSalary)
		assert.Equal(t, 32500.0, resp.GrossSalary)
		assert.Equal(t, 1620.0, resp.TaxAmount)
		assert.Equal(t, 30, resp.PresentDays)
		assert.Zero(t, resp.AbsentDays)
		assert.Equal(t, "2026-06", resp.Month)
		require.NotNil(t, resp.GeneratedBy)
		assert.Equal(t, actorID.String(), *resp.GeneratedBy)

		assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), seen.From)
		assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), seen.To)

		require.NotNil(t, repo.created)
		require.Len(t, repo.created.Components, 2)
		assert.Equal(t, payroll.ComponentDeduction, repo.created.Components[0].Type)
		assert.Equal(t, payroll.ComponentTax, repo.created.Components[1].Type)

		assert.Equal(t, events.PayrollGeneratedTopic, queued.Topic)
		var payload events.PayrollGeneratedEvent
		require.NoError(t, json.Unmarshal(queued.Payload, &payload))
		assert.Equal(t, "30780.00", payload.FinalSalary)
		assert.Equal(t, repo.created.ID.String(), payload.PayrollID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to designation base and prorates", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		expectTx(t, mock, true)

		repo := &fakePayrollRepository{employee: activeEmployee("0", "31000")}
		attendanceSrc := attendanceFunc(func(_ context.Context, q attendance.Query) ([]attendance.Attendance, error) {
			rows := presentDays(employeeID, q.From, 29, attendance.StatusPresent)
			rows[0].OvertimeHours = decimal.NewFromInt(2)
			rows = append(rows, attendance.Attendance{EmployeeID: employeeID, Status: attendance.StatusHalfDay})
			return rows, nil
		})
		policy := staticPolicy{policy: &compensation.Policy{ProrateAttendance: true}}

		svc := payroll.NewService(db, repo, attendanceSrc, policy, nil)
		resp, err := svc.Generate(ctx, actorID.String(), payroll.GeneratePayrollRequest{
			EmployeeID: employeeID.String(),
			Month:      "2026-07",
		})

		require.NoError(t, err)
		assert.Equal(t, 31000.0, resp.BaseSalary)
		assert.Equal(t, 1, resp.AbsentDays)
		assert.Equal(t, 29500.0, resp.ProratedBase)
		assert.Equal(t, 187.5, resp.OvertimeRate)
		assert.Equal(t, 375.0, resp.OvertimePay)
		assert.Equal(t, 29875.0, resp.FinalSalary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate month conflicts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		expectTx(t, mock, false)

		ctrl := gomock.NewController(t)
		outbox := kafkamock.NewMockOutboxRepository(ctrl)

		repo := &fakePayrollRepository{
			employee:  activeEmployee("1000", "0"),
			createErr: &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_employee_month"},
		}
		noAttendance := attendanceFunc(func(context.Context, attendance.Query) ([]attendance.Attendance, error) {
			return nil, nil
		})

		svc := payroll.NewService(db, repo, noAttendance, staticPolicy{policy: &compensation.Policy{}}, outbox)
		_, err = svc.Generate(ctx, actorID.String(), payroll.GeneratePayrollRequest{
			EmployeeID: employeeID.String(),
			Month:      "2026-06",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects bad input before touching storage", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &fakePayrollRepository{employee: activeEmployee("1000", "0")}
		svc := payroll.NewService(db, repo, nil, nil, nil)

		cases := []struct {
			name string
			req  payroll.GeneratePayrollRequest
			want error
		}{
			{"month", payroll.GeneratePayrollRequest{EmployeeID: employeeID.String(), Month: "2026-6"}, payrollerrors.ErrInvalidMonth},
			{"employee id", payroll.GeneratePayrollRequest{EmployeeID: "nope", Month: "2026-06"}, payrollerrors.ErrInvalidEmployeeID},
			{"negative overtime", payroll.GeneratePayrollRequest{EmployeeID: employeeID.String(), Month: "2026-06", OvertimeHours: floatPtr(-1)}, payrollerrors.ErrInvalidMoneyValue},
			{"blank adjustment", payroll.GeneratePayrollRequest{EmployeeID: employeeID.String(), Month: "2026-06", Adjustments: []payroll.AdjustmentInput{{Label: " ", Amount: 5}}}, payrollerrors.ErrInvalidAdjustment},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Generate(ctx, actorID.String(), tc.req)
				assert.ErrorIs(t, err, tc.want)
			})
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inactive or missing employee", func(t *testing.T) {
		inactive := activeEmployee("1000", "0")
		inactive.Status = "inactive"

		for _, repo := range []*fakePayrollRepository{{employee: inactive}, {}} {
			svc := payroll.NewService(nil, repo, nil, nil, nil)
			_, err := svc.Generate(ctx, actorID.String(), payroll.GeneratePayrollRequest{
				EmployeeID: employeeID.String(),
				Month:      "2026-06",
			})
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployee)
		}
	})

	t.Run("attendance failure bubbles up", func(t *testing.T) {
		boom := errors.New("db down")
		repo := &fakePayrollRepository{employee: activeEmployee("1000", "0")}
		failing := attendanceFunc(func(context.Context, attendance.Query) ([]attendance.Attendance, error) {
			return nil, boom
		})

		svc := payroll.NewService(nil, repo, failing, nil, nil)
		_, err := svc.Generate(ctx, actorID.String(), payroll.GeneratePayrollRequest{
			EmployeeID: employeeID.String(),
			Month:      "2026-06",
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestPayrollService_Reads(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	employeeID := uuid.New()
	stored := &payroll.Payroll{
		ID:           id,
		EmployeeID:   employeeID,
		EmployeeName: "Asha Rao",
		EmployeeCode: "EMP-0007",
		Month:        "2026-06",
		BaseSalary:   decimal.NewFromInt(30000),
		ProratedBase: decimal.NewFromInt(30000),
		GrossSalary:  decimal.NewFromInt(30000),
		TaxAmount:    decimal.NewFromInt(1500),
		FinalSalary:  decimal.NewFromInt(28500),
		Components: []payroll.PayrollComponent{
			{Type: payroll.ComponentTax, Name: "Income tax", Amount: decimal.NewFromInt(1500)},
		},
	}
	repo := &fakePayrollRepository{
		byID: map[uuid.UUID]*payroll.Payroll{id: stored},
		rows: []payroll.Payroll{*stored},
	}
	svc := payroll.NewService(nil, repo, nil, nil, nil)

	t.Run("get by id", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, 28500.0, resp.FinalSalary)
		assert.Len(t, resp.Components, 1)

		_, err = svc.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)

		_, err = svc.GetByID(ctx, "bad")
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})

	t.Run("list filters", func(t *testing.T) {
		_, err := svc.List(ctx, payroll.ListFilter{EmployeeID: employeeID.String(), Month: "2026-06"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{employeeID}, repo.lastQuery.EmployeeIDs)
		assert.Equal(t, "2026-06", repo.lastQuery.Month)

		_, err = svc.List(ctx, payroll.ListFilter{Month: "June"})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
	})

	t.Run("list for employees with empty scope", func(t *testing.T) {
		resp, err := svc.ListForEmployees(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("payslip is a pdf", func(t *testing.T) {
		doc, err := svc.Payslip(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", doc.ContentType)
		assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF")))
		assert.Contains(t, doc.Filename, "2026-06")
	})

	t.Run("export writes one row per payroll", func(t *testing.T) {
		doc, err := svc.Export(ctx, "2026-06")
		require.NoError(t, err)
		assert.Equal(t, "2026-06", repo.lastQuery.Month)

		book, err := excelize.OpenReader(bytes.NewReader(doc.Body))
		require.NoError(t, err)
		defer book.Close()

		rows, err := book.GetRows("Payroll 2026-06")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Employee code", rows[0][0])
		assert.Equal(t, "EMP-0007", rows[1][0])
		assert.Equal(t, "28500", rows[1][len(rows[1])-1])
	})

	t.Run("export needs a month", func(t *testing.T) {
		_, err := svc.Export(ctx, "")
		assert.ErrorIs(t, err, payrollerrors.ErrMonthRequired)

		_, err = svc.Export(ctx, "2026-13")
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
	})
}
