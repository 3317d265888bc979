package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/money"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsTTL         = time.Hour
	dateLayout         = "2006-01-02"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("department_id", req.DepartmentID),
		zap.String("designation_id", req.DesignationID),
	)

	if !money.IsFinite(req.Salary) || req.Salary < 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}
	joiningDate, err := parseJoiningDate(req.JoiningDate)
	if err != nil {
		s.logger.Warn("create employee invalid joining_date", zap.String("joining_date", req.JoiningDate))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := ensurePlacement(ctx, qtx, req.DepartmentID, req.DesignationID); err != nil {
		s.logger.Warn("create employee placement rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.EmployeeCode)
	if err != nil {
		s.logger.Error("create employee generate code failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:            uuid.New(),
		EmployeeCode:  fmt.Sprintf("EMP-%04d", seq),
		Name:          strings.TrimSpace(req.Name),
		Email:         normalizeEmail(req.Email),
		DepartmentID:  uuid.MustParse(req.DepartmentID),
		DesignationID: uuid.MustParse(req.DesignationID),
		Salary:        money.Round2(decimal.NewFromFloat(req.Salary)),
		Status:        StatusActive,
		JoiningDate:   joiningDate,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Warn("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewPendingEvent(rid, "employee", empl.ID.String(), events.EventEmployeeCreated,
			events.EmployeeLifecycleTopic, events.EmployeeCreatedEvent{
				EventType:    events.EventEmployeeCreated,
				RequestID:    rid,
				EmployeeID:   empl.ID.String(),
				EmployeeCode: empl.EmployeeCode,
				Email:        empl.Email,
				OccurredAt:   time.Now().UTC(),
			})
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("q", filter.Q), zap.String("status", filter.Status))
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(items), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Form pickers open in bursts; concurrent misses share one query.
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		items, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(items))
		for i, e := range items {
			resp[i] = EmployeeOptionResponse{ID: e.ID.String(), Name: e.Name, EmployeeCode: e.EmployeeCode}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if !money.IsFinite(req.Salary) || req.Salary < 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.DepartmentID != empl.DepartmentID.String() || req.DesignationID != empl.DesignationID.String() {
		if err := ensurePlacement(ctx, qtx, req.DepartmentID, req.DesignationID); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if req.JoiningDate != "" {
		joiningDate, err := parseJoiningDate(req.JoiningDate)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.JoiningDate = joiningDate
	}

	empl.Name = strings.TrimSpace(req.Name)
	empl.Email = normalizeEmail(req.Email)
	empl.DepartmentID = uuid.MustParse(req.DepartmentID)
	empl.DesignationID = uuid.MustParse(req.DesignationID)
	empl.Salary = money.Round2(decimal.NewFromFloat(req.Salary))
	if req.Status != "" {
		empl.Status = req.Status
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Warn("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Deactivate is a soft delete; payroll and leave history keep their owner.
func (s *service) Deactivate(ctx context.Context, id string) error {
	s.logger.Debug("deactivate employee requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	empl.Status = StatusInactive
	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("deactivate employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("deactivate employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func ensurePlacement(ctx context.Context, repo Repository, departmentID, designationID string) error {
	ok, err := repo.IsDepartmentActive(ctx, departmentID)
	if err != nil {
		return err
	}
	if !ok {
		return employeeerrors.ErrInvalidDepartment
	}

	ok, err = repo.IsDesignationActive(ctx, designationID)
	if err != nil {
		return err
	}
	if !ok {
		return employeeerrors.ErrInvalidDesignation
	}
	return nil
}

func parseJoiningDate(v string) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidJoiningDate
	}
	return t, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               empl.ID.String(),
		EmployeeCode:     empl.EmployeeCode,
		Name:             empl.Name,
		Email:            empl.Email,
		DepartmentID:     empl.DepartmentID.String(),
		DepartmentName:   empl.DepartmentName,
		DesignationID:    empl.DesignationID.String(),
		DesignationTitle: empl.DesignationTitle,
		Salary:           money.Float(empl.Salary),
		Status:           empl.Status,
		JoiningDate:      empl.JoiningDate.Format(dateLayout),
		FaceEnrolledAt:   empl.FaceEnrolledAt,
	}
}

func mapToListResponse(items []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(items))
	for i, e := range items {
		res[i] = mapToResponse(e)
	}
	return res
}
