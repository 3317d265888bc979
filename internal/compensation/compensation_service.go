package compensation

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	compensationerrors "go-hrms/internal/compensation/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ModePercent = "percent"
	ModeFixed   = "fixed"
)

const (
	reasonMissingID    = "employee id is required"
	reasonMalformedID  = "employee id is malformed"
	reasonNotNumeric   = "salary must be numeric"
	reasonNotFinite    = "salary must be a finite number"
	reasonNegative     = "salary must not be negative"
	reasonUpdateFailed = "update failed"
)

type Service interface {
	GetPolicy(ctx context.Context) (PolicyResponse, error)
	LoadPolicy(ctx context.Context) (*Policy, error)
	UpdatePolicy(ctx context.Context, actorID string, req UpdatePolicyRequest) (PolicyResponse, error)
	AssignSalaries(ctx context.Context, req AssignSalariesRequest) (AssignSalariesResponse, error)
	ReviseSalaries(ctx context.Context, req ReviseSalariesRequest) (ReviseSalariesResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("compensation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compensation.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetPolicy(ctx context.Context) (PolicyResponse, error) {
	p, err := s.LoadPolicy(ctx)
	if err != nil {
		return PolicyResponse{}, err
	}
	return mapPolicyToResponse(*p), nil
}

// LoadPolicy returns the global policy, creating it on first read.
func (s *service) LoadPolicy(ctx context.Context) (*Policy, error) {
	if err := s.repo.EnsurePolicy(ctx); err != nil {
		s.logger.Error("ensure compensation policy failed", zap.Error(err))
		return nil, err
	}
	p, err := s.repo.FindPolicy(ctx)
	if err != nil {
		s.logger.Error("load compensation policy failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) UpdatePolicy(ctx context.Context, actorID string, req UpdatePolicyRequest) (PolicyResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	p := &Policy{
		Key:               PolicyKey,
		TaxRatePercent:    normalizeTax(req.TaxRatePercent),
		ProrateAttendance: req.ProrateAttendance,
		Deductions:        normalizeDeductions(req.Deductions),
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		p.UpdatedBy = &actor
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update policy begin tx failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.SavePolicy(ctx, p); err != nil {
		s.logger.Error("save policy failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	if err := qtx.ReplaceDeductions(ctx, p.Deductions); err != nil {
		s.logger.Error("replace deductions failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	saved, err := qtx.FindPolicy(ctx)
	if err != nil {
		return PolicyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update policy commit failed", zap.Error(err))
		return PolicyResponse{}, err
	}

	s.logger.Info("compensation policy updated",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.Int("deductions", len(saved.Deductions)),
	)
	return mapPolicyToResponse(*saved), nil
}

type validAssignment struct {
	id     uuid.UUID
	salary decimal.Decimal
}

func (s *service) AssignSalaries(ctx context.Context, req AssignSalariesRequest) (AssignSalariesResponse, error) {
	if len(req.Assignments) == 0 {
		return AssignSalariesResponse{}, compensationerrors.ErrAssignmentsRequired
	}

	resp := AssignSalariesResponse{
		Requested:       len(req.Assignments),
		RejectedEntries: []RejectedEntry{},
		Failed:          []FailedEntry{},
	}
	valid := make([]validAssignment, 0, len(req.Assignments))

	for i, a := range req.Assignments {
		rawID := strings.TrimSpace(a.EmployeeID)
		if rawID == "" {
			rawID = strings.TrimSpace(a.ID)
		}
		if rawID == "" {
			resp.RejectedEntries = append(resp.RejectedEntries, RejectedEntry{Index: i, Reason: reasonMissingID})
			continue
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			resp.RejectedEntries = append(resp.RejectedEntries, RejectedEntry{Index: i, EmployeeID: rawID, Reason: reasonMalformedID})
			continue
		}
		salary, reason := parseSalary(a.Salary)
		if reason != "" {
			resp.RejectedEntries = append(resp.RejectedEntries, RejectedEntry{Index: i, EmployeeID: rawID, Reason: reason})
			continue
		}
		valid = append(valid, validAssignment{id: id, salary: salary})
	}

	resp.Valid = len(valid)
	resp.Rejected = len(resp.RejectedEntries)

	if len(valid) == 0 {
		s.logger.Warn("assign salaries rejected, nothing valid", zap.Int("requested", resp.Requested))
		return resp, apperror.WithDetails(compensationerrors.ErrNoValidAssignments, resp.RejectedEntries)
	}

	// Each row commits on its own; a failure does not undo earlier rows.
	for _, v := range valid {
		n, err := s.repo.UpdateSalary(ctx, v.id, v.salary)
		if err != nil {
			s.logger.Warn("assign salary failed", zap.String("employee_id", v.id.String()), zap.Error(err))
			resp.Failed = append(resp.Failed, FailedEntry{EmployeeID: v.id.String(), Reason: reasonUpdateFailed})
			continue
		}
		resp.ModifiedCount += n
	}

	s.logger.Info("assign salaries done",
		zap.Int("requested", resp.Requested),
		zap.Int("valid", resp.Valid),
		zap.Int64("modified", resp.ModifiedCount),
		zap.Int("failed", len(resp.Failed)),
	)
	return resp, nil
}

func (s *service) ReviseSalaries(ctx context.Context, req ReviseSalariesRequest) (ReviseSalariesResponse, error) {
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = ModePercent
	}
	if mode != ModePercent && mode != ModeFixed {
		return ReviseSalariesResponse{}, compensationerrors.ErrInvalidRevisionMode
	}
	if !money.IsFinite(req.Value) {
		return ReviseSalariesResponse{}, compensationerrors.ErrInvalidRevisionValue
	}

	resp := ReviseSalariesResponse{
		Mode:        mode,
		Value:       req.Value,
		RejectedIDs: []string{},
		Failed:      []FailedEntry{},
	}

	ids := make([]uuid.UUID, 0, len(req.EmployeeIDs))
	for _, raw := range req.EmployeeIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			resp.RejectedIDs = append(resp.RejectedIDs, raw)
			continue
		}
		ids = append(ids, id)
	}
	// Every supplied id was malformed; do not widen to the whole company.
	if len(req.EmployeeIDs) > 0 && len(ids) == 0 {
		return resp, apperror.WithDetails(compensationerrors.ErrNoEmployeesInScope, resp.RejectedIDs)
	}

	employees, err := s.repo.FindActiveSalaries(ctx, ids)
	if err != nil {
		s.logger.Error("load revision scope failed", zap.Error(err))
		return ReviseSalariesResponse{}, err
	}
	if len(employees) == 0 {
		return resp, compensationerrors.ErrNoEmployeesInScope
	}
	resp.Matched = len(employees)

	value := decimal.NewFromFloat(req.Value)
	for _, e := range employees {
		next := Revise(mode, e.Salary, value)
		n, err := s.repo.UpdateSalary(ctx, e.ID, next)
		if err != nil {
			s.logger.Warn("revise salary failed", zap.String("employee_id", e.ID.String()), zap.Error(err))
			resp.Failed = append(resp.Failed, FailedEntry{EmployeeID: e.ID.String(), Reason: reasonUpdateFailed})
			continue
		}
		resp.ModifiedCount += n
	}

	s.logger.Info("revise salaries done",
		zap.String("mode", mode),
		zap.Float64("value", req.Value),
		zap.Int("matched", resp.Matched),
		zap.Int64("modified", resp.ModifiedCount),
	)
	return resp, nil
}

// Revise applies one revision step. The result never goes below zero.
func Revise(mode string, current, value decimal.Decimal) decimal.Decimal {
	var next decimal.Decimal
	if mode == ModeFixed {
		next = current.Add(value)
	} else {
		next = current.Add(money.Percent(current, value))
	}
	return money.Round2(money.ClampZero(next))
}

func parseSalary(v any) (decimal.Decimal, string) {
	var d decimal.Decimal
	switch t := v.(type) {
	case nil:
		return d, reasonNotNumeric
	case float64:
		if !money.IsFinite(t) {
			return d, reasonNotFinite
		}
		d = decimal.NewFromFloat(t)
	case json.Number:
		parsed, err := decimal.NewFromString(t.String())
		if err != nil {
			return d, reasonNotNumeric
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return d, reasonNotNumeric
		}
		d = parsed
	default:
		return d, reasonNotNumeric
	}
	if d.IsNegative() {
		return d, reasonNegative
	}
	return money.Round2(d), ""
}

func normalizeTax(v float64) decimal.Decimal {
	if !money.IsFinite(v) {
		return decimal.Zero
	}
	return money.Round2(money.ClampZero(decimal.NewFromFloat(v)))
}

// normalizeDeductions trims labels, coerces unknown types to percent and
// clamps values. Entries without a label or with a non-finite value are dropped.
func normalizeDeductions(in []DeductionInput) []Deduction {
	out := make([]Deduction, 0, len(in))
	for _, d := range in {
		label := strings.TrimSpace(d.Label)
		if label == "" || !money.IsFinite(d.Value) {
			continue
		}
		kind := DeductionPercent
		if strings.ToLower(strings.TrimSpace(d.Type)) == DeductionFixed {
			kind = DeductionFixed
		}
		out = append(out, Deduction{
			ID:        uuid.New(),
			PolicyKey: PolicyKey,
			Position:  len(out),
			Label:     label,
			Type:      kind,
			Value:     money.Round2(money.ClampZero(decimal.NewFromFloat(d.Value))),
		})
	}
	return out
}

func mapPolicyToResponse(p Policy) PolicyResponse {
	resp := PolicyResponse{
		Key:               p.Key,
		TaxRatePercent:    money.Float(p.TaxRatePercent),
		ProrateAttendance: p.ProrateAttendance,
		Deductions:        make([]DeductionResponse, len(p.Deductions)),
		UpdatedAt:         p.UpdatedAt,
	}
	for i, d := range p.Deductions {
		resp.Deductions[i] = DeductionResponse{Label: d.Label, Type: d.Type, Value: money.Float(d.Value)}
	}
	if p.UpdatedBy != nil {
		v := p.UpdatedBy.String()
		resp.UpdatedBy = &v
	}
	return resp
}
