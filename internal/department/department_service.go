package department

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, q string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create department requested", zap.String("request_id", rid), zap.String("name", req.Name))

	name, code := normalize(req.Name, req.Code)
	if name == "" || code == "" {
		return DepartmentResponse{}, apperror.RequiredField("Name and code")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		Name:        name,
		Code:        code,
		Description: strings.TrimSpace(req.Description),
		Status:      StatusActive,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Warn("create department persist failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("create department success", zap.String("request_id", rid), zap.String("department_id", dept.ID.String()))
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, q string) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx, q)
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("update department requested", zap.String("department_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	name, code := normalize(req.Name, req.Code)
	if name == "" || code == "" {
		return DepartmentResponse{}, apperror.RequiredField("Name and code")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if req.Status == StatusInactive && dept.Status != StatusInactive {
		if err := ensureNoEmployees(ctx, qtx, id); err != nil {
			return DepartmentResponse{}, err
		}
	}

	dept.Name = name
	dept.Code = code
	dept.Description = strings.TrimSpace(req.Description)
	if req.Status != "" {
		dept.Status = req.Status
	}

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Warn("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("update department success", zap.String("department_id", id))
	return mapToResponse(*dept), nil
}

// Deactivate is a soft delete: the row stays for historical references.
func (s *service) Deactivate(ctx context.Context, id string) error {
	s.logger.Debug("deactivate department requested", zap.String("department_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := ensureNoEmployees(ctx, qtx, id); err != nil {
		s.logger.Warn("deactivate department blocked", zap.String("department_id", id))
		return err
	}

	dept.Status = StatusInactive
	if err := qtx.Update(ctx, dept); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate department commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("deactivate department success", zap.String("department_id", id))
	return nil
}

func ensureNoEmployees(ctx context.Context, repo Repository, id string) error {
	count, err := repo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return departmenterrors.ErrDepartmentHasEmployees
	}
	return nil
}

func normalize(name, code string) (string, string) {
	return strings.TrimSpace(name), strings.ToUpper(strings.TrimSpace(code))
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	switch apperror.UniqueConstraint(err) {
	case "uq_department_name":
		return departmenterrors.ErrDepartmentNameExists
	case "uq_department_code":
		return departmenterrors.ErrDepartmentCodeExists
	}
	return err
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID.String(),
		Name:        dept.Name,
		Code:        dept.Code,
		Description: dept.Description,
		Status:      dept.Status,
		CreatedAt:   dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   dept.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
