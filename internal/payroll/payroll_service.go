package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/compensation"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/money"
	"go-hrms/internal/shared/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttendanceSource is satisfied by attendance.Repository.
type AttendanceSource interface {
	FindAll(ctx context.Context, q attendance.Query) ([]attendance.Attendance, error)
}

// PolicySource is satisfied by compensation.Service.
type PolicySource interface {
	LoadPolicy(ctx context.Context) (*compensation.Policy, error)
}

// Document is a rendered file ready to stream to the client.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Service interface {
	Generate(ctx context.Context, actorID string, req GeneratePayrollRequest) (PayrollResponse, error)
	List(ctx context.Context, filter ListFilter) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	ListForEmployees(ctx context.Context, ids []uuid.UUID) ([]PayrollResponse, error)
	Payslip(ctx context.Context, id string) (Document, error)
	Export(ctx context.Context, month string) (Document, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	attendance AttendanceSource
	policy     PolicySource
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	attendanceSource AttendanceSource,
	policySource PolicySource,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		attendance: attendanceSource,
		policy:     policySource,
		outbox:     outbox,
		logger:     l,
		now:        time.Now,
	}
}

func (s *service) Generate(ctx context.Context, actorID string, req GeneratePayrollRequest) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	month, err := period.ParseMonth(strings.TrimSpace(req.Month))
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidMonth
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	input, err := overridesFromRequest(req)
	if err != nil {
		return PayrollResponse{}, err
	}

	emp, err := s.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrInvalidEmployee
		}
		s.logger.Error("load employee failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	if emp.Status != "active" {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployee
	}

	records, err := s.attendance.FindAll(ctx, attendance.Query{
		EmployeeIDs: []uuid.UUID{employeeID},
		From:        month.Start,
		To:          month.End,
	})
	if err != nil {
		s.logger.Error("load attendance failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	policy, err := s.policy.LoadPolicy(ctx)
	if err != nil {
		return PayrollResponse{}, err
	}

	input.BaseSalary = emp.Salary
	if input.BaseSalary.IsZero() {
		input.BaseSalary = emp.DesignationBaseSalary
	}
	input.DaysInMonth = month.Days()
	input.Attendance = tally(records)
	input.Rules = rulesFromPolicy(policy)

	result := Calculate(input)
	p := newPayroll(employeeID, month.Key, input.Attendance, result)
	if actor, err := uuid.Parse(actorID); err == nil {
		p.GeneratedBy = &actor
	}
	p.EmployeeName = emp.Name
	p.EmployeeCode = emp.EmployeeCode

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		if apperror.UniqueConstraint(err) == "uq_payroll_employee_month" {
			return PayrollResponse{}, payrollerrors.ErrPayrollExists
		}
		s.logger.Error("create payroll failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	if s.outbox != nil {
		generatedBy := ""
		if p.GeneratedBy != nil {
			generatedBy = p.GeneratedBy.String()
		}
		event, err := kafka.NewPendingEvent(rid, "payroll", p.ID.String(), events.EventPayrollGenerated,
			events.PayrollGeneratedTopic, events.PayrollGeneratedEvent{
				EventType:   events.EventPayrollGenerated,
				RequestID:   rid,
				PayrollID:   p.ID.String(),
				EmployeeID:  employeeID.String(),
				Month:       month.Key,
				FinalSalary: p.FinalSalary.StringFixed(2),
				GeneratedBy: generatedBy,
				OccurredAt:  s.now().UTC(),
			})
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return PayrollResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("payroll outbox persist failed",
				zap.String("payroll_id", p.ID.String()),
				zap.Error(err),
			)
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll generated",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID.String()),
		zap.String("month", month.Key),
		zap.String("final_salary", p.FinalSalary.StringFixed(2)),
	)
	return mapToResponse(*p), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]PayrollResponse, error) {
	q := Query{}
	if filter.EmployeeID != "" {
		id, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			return nil, payrollerrors.ErrInvalidEmployeeID
		}
		q.EmployeeIDs = []uuid.UUID{id}
	}
	if filter.Month != "" {
		m, err := period.ParseMonth(filter.Month)
		if err != nil {
			return nil, payrollerrors.ErrInvalidMonth
		}
		q.Month = m.Key
	}

	rows, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) ListForEmployees(ctx context.Context, ids []uuid.UUID) ([]PayrollResponse, error) {
	if len(ids) == 0 {
		return []PayrollResponse{}, nil
	}
	rows, err := s.repo.FindAll(ctx, Query{EmployeeIDs: ids})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Payslip(ctx context.Context, id string) (Document, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return Document{}, err
	}
	body, err := renderPayslip(*p)
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return Document{}, err
	}
	return Document{
		Filename:    "payslip-" + p.Month + "-" + p.EmployeeID.String() + ".pdf",
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

func (s *service) Export(ctx context.Context, month string) (Document, error) {
	if strings.TrimSpace(month) == "" {
		return Document{}, payrollerrors.ErrMonthRequired
	}
	m, err := period.ParseMonth(month)
	if err != nil {
		return Document{}, payrollerrors.ErrInvalidMonth
	}

	rows, err := s.repo.FindAll(ctx, Query{Month: m.Key})
	if err != nil {
		return Document{}, err
	}
	body, err := renderRegister(m.Key, rows)
	if err != nil {
		s.logger.Error("render payroll register failed", zap.String("month", m.Key), zap.Error(err))
		return Document{}, err
	}
	return Document{
		Filename:    "payroll-register-" + m.Key + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Body:        body,
	}, nil
}

func (s *service) find(ctx context.Context, id string) (*Payroll, error) {
	payrollID, err := uuid.Parse(id)
	if err != nil {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	p, err := s.repo.FindByID(ctx, payrollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}
	return p, nil
}

func overridesFromRequest(req GeneratePayrollRequest) (Input, error) {
	var in Input
	nonNegative := func(v *float64) (*decimal.Decimal, error) {
		if v == nil {
			return nil, nil
		}
		if !money.IsFinite(*v) || *v < 0 {
			return nil, payrollerrors.ErrInvalidMoneyValue
		}
		d := decimal.NewFromFloat(*v)
		return &d, nil
	}

	var err error
	if in.OvertimeHours, err = nonNegative(req.OvertimeHours); err != nil {
		return Input{}, err
	}
	if in.OvertimeRate, err = nonNegative(req.OvertimeRate); err != nil {
		return Input{}, err
	}
	holiday, err := nonNegative(req.HolidayPay)
	if err != nil {
		return Input{}, err
	}
	if holiday != nil {
		in.HolidayPay = *holiday
	}

	for _, a := range req.Adjustments {
		label := strings.TrimSpace(a.Label)
		if label == "" || !money.IsFinite(a.Amount) {
			return Input{}, payrollerrors.ErrInvalidAdjustment
		}
		in.Adjustments = append(in.Adjustments, Adjustment{Label: label, Amount: decimal.NewFromFloat(a.Amount)})
	}
	return in, nil
}

// tally counts a holiday once even when the row is also marked present.
func tally(records []attendance.Attendance) AttendanceTally {
	var t AttendanceTally
	for _, r := range records {
		t.OvertimeHours = t.OvertimeHours.Add(r.OvertimeHours)
		if r.CountsAsHoliday() {
			t.Holiday++
			continue
		}
		switch r.Status {
		case attendance.StatusPresent:
			t.Present++
		case attendance.StatusHalfDay:
			t.HalfDay++
		}
	}
	return t
}

func rulesFromPolicy(p *compensation.Policy) Rules {
	if p == nil {
		return Rules{}
	}
	rules := Rules{
		TaxRatePercent:    p.TaxRatePercent,
		ProrateAttendance: p.ProrateAttendance,
	}
	for _, d := range p.Deductions {
		rules.Deductions = append(rules.Deductions, DeductionRule{
			Label:   d.Label,
			Percent: d.Type == compensation.DeductionPercent,
			Value:   d.Value,
		})
	}
	return rules
}

func newPayroll(employeeID uuid.UUID, month string, t AttendanceTally, r Result) *Payroll {
	p := &Payroll{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		Month:            month,
		BaseSalary:       r.BaseSalary,
		ProratedBase:     r.ProratedBase,
		PresentDays:      t.Present,
		AbsentDays:       r.AbsentDays,
		HalfDays:         t.HalfDay,
		HolidayDays:      t.Holiday,
		OvertimeHours:    r.OvertimeHours,
		OvertimeRate:     r.OvertimeRate,
		OvertimePay:      r.OvertimePay,
		HolidayPay:       r.HolidayPay,
		AdjustmentsTotal: r.AdjustmentsTotal,
		GrossSalary:      r.Gross,
		DeductionsTotal:  r.DeductionsTotal,
		TaxRatePercent:   r.TaxRatePercent,
		TaxAmount:        r.TaxAmount,
		FinalSalary:      r.FinalSalary,
	}

	add := func(kind, name string, amount decimal.Decimal) {
		p.Components = append(p.Components, PayrollComponent{
			ID:        uuid.New(),
			PayrollID: p.ID,
			Type:      kind,
			Name:      name,
			Amount:    amount,
			Position:  len(p.Components),
		})
	}
	for _, a := range r.Adjustments {
		add(ComponentAdjustment, a.Label, a.Amount)
	}
	for _, d := range r.Deductions {
		add(ComponentDeduction, d.Label, d.Amount)
	}
	if !r.TaxAmount.IsZero() {
		add(ComponentTax, "Income tax", r.TaxAmount)
	}
	return p
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:               p.ID.String(),
		EmployeeID:       p.EmployeeID.String(),
		EmployeeName:     p.EmployeeName,
		EmployeeCode:     p.EmployeeCode,
		Month:            p.Month,
		BaseSalary:       money.Float(p.BaseSalary),
		ProratedBase:     money.Float(p.ProratedBase),
		PresentDays:      p.PresentDays,
		AbsentDays:       p.AbsentDays,
		HalfDays:         p.HalfDays,
		HolidayDays:      p.HolidayDays,
		OvertimeHours:    money.Float(p.OvertimeHours),
		OvertimeRate:     money.Float(p.OvertimeRate),
		OvertimePay:      money.Float(p.OvertimePay),
		HolidayPay:       money.Float(p.HolidayPay),
		AdjustmentsTotal: money.Float(p.AdjustmentsTotal),
		GrossSalary:      money.Float(p.GrossSalary),
		DeductionsTotal:  money.Float(p.DeductionsTotal),
		TaxRatePercent:   money.Float(p.TaxRatePercent),
		TaxAmount:        money.Float(p.TaxAmount),
		FinalSalary:      money.Float(p.FinalSalary),
		CreatedAt:        p.CreatedAt,
	}
	if p.GeneratedBy != nil {
		v := p.GeneratedBy.String()
		resp.GeneratedBy = &v
	}
	for _, c := range p.Components {
		resp.Components = append(resp.Components, ComponentResponse{
			Type:   c.Type,
			Name:   c.Name,
			Amount: money.Float(c.Amount),
		})
	}
	return resp
}

func mapToListResponse(rows []Payroll) []PayrollResponse {
	out := make([]PayrollResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, mapToResponse(p))
	}
	return out
}
