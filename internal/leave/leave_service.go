package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/period"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	UpdateType(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	DeactivateType(ctx context.Context, id string) error

	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	Review(ctx context.Context, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveResponse, error)
	ListForEmployees(ctx context.Context, ids []uuid.UUID) ([]LeaveResponse, error)
	Balances(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	InitializeBalances(ctx context.Context, employeeID string) (int, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if req.MaxDaysPerYear < 0 {
		return LeaveTypeResponse{}, leaveerrors.ErrInvalidMaxDays
	}

	t := &LeaveType{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		MaxDaysPerYear: req.MaxDaysPerYear,
		IsActive:       true,
	}
	if err := s.repo.CreateType(ctx, t); err != nil {
		s.logger.Warn("create leave type failed", zap.String("name", t.Name), zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave type success", zap.String("leave_type_id", t.ID.String()))
	return mapTypeToResponse(*t), nil
}

func (s *service) ListTypes(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindTypes(ctx, true)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		res[i] = mapTypeToResponse(t)
	}
	return res, nil
}

func (s *service) UpdateType(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if req.MaxDaysPerYear < 0 {
		return LeaveTypeResponse{}, leaveerrors.ErrInvalidMaxDays
	}
	t, err := s.findType(ctx, s.repo, id)
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	t.Name = strings.TrimSpace(req.Name)
	t.MaxDaysPerYear = req.MaxDaysPerYear
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateType(ctx, t); err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapTypeToResponse(*t), nil
}

func (s *service) DeactivateType(ctx context.Context, id string) error {
	t, err := s.findType(ctx, s.repo, id)
	if err != nil {
		return err
	}
	t.IsActive = false
	if err := s.repo.UpdateType(ctx, t); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("leave type deactivated", zap.String("leave_type_id", id))
	return nil
}

func (s *service) Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	start, err := period.ParseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := period.ParseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	leaveType, err := s.findType(ctx, qtx, req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !leaveType.IsActive {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}

	overlap, err := qtx.HasOverlap(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("apply leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		LeaveTypeID:   leaveType.ID,
		StartDate:     start,
		EndDate:       end,
		TotalDays:     period.InclusiveDays(start, end),
		Status:        StatusPending,
		Reason:        strings.TrimSpace(req.Reason),
		LeaveTypeName: leaveType.Name,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.Int("total_days", l.TotalDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) Review(ctx context.Context, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review leave rejected, already reviewed",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	if req.Status == StatusApproved {
		if err := s.reserveBalance(ctx, qtx, l); err != nil {
			return LeaveResponse{}, err
		}
	}

	now := time.Now().UTC()
	l.Status = req.Status
	l.ReviewedAt = &now
	if actor, err := uuid.Parse(actorID); err == nil {
		l.ReviewedBy = &actor
	}
	if err := qtx.MarkReviewed(ctx, l); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
		}
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

// reserveBalance creates the balance row on first use and charges the
// request against it.
func (s *service) reserveBalance(ctx context.Context, qtx Repository, l *LeaveRequest) error {
	balance, err := qtx.FindBalance(ctx, l.EmployeeID, l.LeaveTypeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		leaveType, typeErr := qtx.FindTypeByID(ctx, l.LeaveTypeID)
		if typeErr != nil {
			return mapRepositoryError(typeErr)
		}
		if _, err := qtx.CreateBalanceIfMissing(ctx, &LeaveBalance{
			ID:          uuid.New(),
			EmployeeID:  l.EmployeeID,
			LeaveTypeID: l.LeaveTypeID,
			Allocated:   leaveType.MaxDaysPerYear,
		}); err != nil {
			return err
		}
		balance, err = qtx.FindBalance(ctx, l.EmployeeID, l.LeaveTypeID)
	}
	if err != nil {
		s.logger.Error("load leave balance failed", zap.Error(err))
		return err
	}

	if balance.Remaining() < l.TotalDays {
		s.logger.Warn("insufficient leave balance",
			zap.String("employee_id", l.EmployeeID.String()),
			zap.Int("remaining", balance.Remaining()),
			zap.Int("requested", l.TotalDays),
		)
		return leaveerrors.ErrInsufficientBalance
	}

	return qtx.IncrementUsed(ctx, l.EmployeeID, l.LeaveTypeID, l.TotalDays)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]LeaveResponse, error) {
	var ids []uuid.UUID
	if filter.EmployeeID != "" {
		id, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			return nil, leaveerrors.ErrInvalidEmployeeID
		}
		ids = []uuid.UUID{id}
	}

	rows, err := s.repo.FindAll(ctx, filter.Status, ids)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListForEmployees(ctx context.Context, ids []uuid.UUID) ([]LeaveResponse, error) {
	if len(ids) == 0 {
		return []LeaveResponse{}, nil
	}
	rows, err := s.repo.FindAll(ctx, "", ids)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// Balances merges stored rows with the active types that have none yet,
// which report their full allocation.
func (s *service) Balances(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	stored, err := s.repo.FindBalances(ctx, id)
	if err != nil {
		return nil, err
	}
	types, err := s.repo.FindTypes(ctx, true)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(stored))
	res := make([]BalanceResponse, 0, len(stored)+len(types))
	for _, b := range stored {
		seen[b.LeaveTypeID] = true
		res = append(res, BalanceResponse{
			LeaveTypeID:   b.LeaveTypeID.String(),
			LeaveTypeName: b.LeaveTypeName,
			Allocated:     b.Allocated,
			Used:          b.Used,
			Remaining:     b.Remaining(),
		})
	}
	for _, t := range types {
		if seen[t.ID] {
			continue
		}
		res = append(res, BalanceResponse{
			LeaveTypeID:   t.ID.String(),
			LeaveTypeName: t.Name,
			Allocated:     t.MaxDaysPerYear,
			Remaining:     t.MaxDaysPerYear,
		})
	}
	return res, nil
}

func (s *service) InitializeBalances(ctx context.Context, employeeID string) (int, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return 0, leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	types, err := qtx.FindTypes(ctx, true)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, t := range types {
		ok, err := qtx.CreateBalanceIfMissing(ctx, &LeaveBalance{
			ID:          uuid.New(),
			EmployeeID:  id,
			LeaveTypeID: t.ID,
			Allocated:   t.MaxDaysPerYear,
		})
		if err != nil {
			return 0, err
		}
		if ok {
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

func (s *service) findType(ctx context.Context, repo Repository, id string) (*LeaveType, error) {
	typeID, err := uuid.Parse(id)
	if err != nil {
		return nil, leaveerrors.ErrInvalidLeaveTypeID
	}
	t, err := repo.FindTypeByID(ctx, typeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return t, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveTypeNotFound
	}
	if apperror.UniqueConstraint(err) == "uq_leave_type_name" {
		return leaveerrors.ErrLeaveTypeExists
	}
	return err
}

func mapTypeToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:             t.ID.String(),
		Name:           t.Name,
		MaxDaysPerYear: t.MaxDaysPerYear,
		IsActive:       t.IsActive,
	}
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		EmployeeName:  l.EmployeeName,
		LeaveTypeID:   l.LeaveTypeID.String(),
		LeaveTypeName: l.LeaveTypeName,
		StartDate:     l.StartDate.Format(period.DateLayout),
		EndDate:       l.EndDate.Format(period.DateLayout),
		TotalDays:     l.TotalDays,
		Status:        l.Status,
		Reason:        l.Reason,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveResponse {
	res := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		res[i] = mapToResponse(l)
	}
	return res
}
