package designation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	designationerrors "go-hrms/internal/designation/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/money"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DesignationAllKey = "designations:all"
	cacheTTL          = 30 * time.Minute
)

//go:generate mockgen -source=designation_service.go -destination=mock/designation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]DesignationResponse, error)
	GetByID(ctx context.Context, id string) (DesignationResponse, error)
	Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("designation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("designation.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create designation requested",
		zap.String("request_id", rid),
		zap.String("title", req.Title),
		zap.String("department_id", req.DepartmentID),
	)

	if !money.IsFinite(req.BaseSalary) || req.BaseSalary < 0 {
		return DesignationResponse{}, designationerrors.ErrInvalidBaseSalary
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return DesignationResponse{}, apperror.RequiredField("Title")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create designation begin tx failed", zap.Error(err))
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active, err := qtx.IsDepartmentActive(ctx, req.DepartmentID)
	if err != nil {
		return DesignationResponse{}, err
	}
	if !active {
		s.logger.Warn("create designation department inactive", zap.String("department_id", req.DepartmentID))
		return DesignationResponse{}, designationerrors.ErrDepartmentInactive
	}

	d := &Designation{
		ID:           uuid.New(),
		Title:        title,
		DepartmentID: uuid.MustParse(req.DepartmentID),
		BaseSalary:   money.Round2(decimal.NewFromFloat(req.BaseSalary)),
		Level:        req.Level,
		Status:       StatusActive,
	}

	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Warn("create designation persist failed", zap.Error(err))
		return DesignationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create designation commit failed", zap.Error(err))
		return DesignationResponse{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("create designation success", zap.String("request_id", rid), zap.String("designation_id", d.ID.String()))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]DesignationResponse, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Q))
	out := make([]DesignationResponse, 0, len(all))
	for _, d := range all {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.DepartmentID != "" && d.DepartmentID != filter.DepartmentID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(d.Title), q) && !strings.Contains(strings.ToLower(d.DepartmentName), q) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// loadAll reads through the Redis cache; concurrent misses share one query.
func (s *service) loadAll(ctx context.Context) ([]DesignationResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DesignationAllKey).Result(); err == nil {
			var resp []DesignationResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DesignationAllKey, func() (interface{}, error) {
		items, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get all designations failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(items)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, DesignationAllKey, jsonData, cacheTTL).Err(); err != nil {
					s.logger.Warn("cache designations failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DesignationResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DesignationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, designationerrors.ErrInvalidDesignationID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DesignationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	s.logger.Debug("update designation requested", zap.String("designation_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, designationerrors.ErrInvalidDesignationID
	}
	if !money.IsFinite(req.BaseSalary) || req.BaseSalary < 0 {
		return DesignationResponse{}, designationerrors.ErrInvalidBaseSalary
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update designation begin tx failed", zap.Error(err))
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DesignationResponse{}, mapRepositoryError(err)
	}

	if req.DepartmentID != d.DepartmentID.String() {
		active, err := qtx.IsDepartmentActive(ctx, req.DepartmentID)
		if err != nil {
			return DesignationResponse{}, err
		}
		if !active {
			return DesignationResponse{}, designationerrors.ErrDepartmentInactive
		}
	}

	if req.Status == StatusInactive && d.Status != StatusInactive {
		if err := ensureUnused(ctx, qtx, id); err != nil {
			return DesignationResponse{}, err
		}
	}

	d.Title = strings.TrimSpace(req.Title)
	d.DepartmentID = uuid.MustParse(req.DepartmentID)
	d.BaseSalary = money.Round2(decimal.NewFromFloat(req.BaseSalary))
	d.Level = req.Level
	if req.Status != "" {
		d.Status = req.Status
	}

	if err := qtx.Update(ctx, d); err != nil {
		s.logger.Warn("update designation persist failed", zap.Error(err))
		return DesignationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update designation commit failed", zap.Error(err))
		return DesignationResponse{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("update designation success", zap.String("designation_id", id))
	return mapToResponse(*d), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return designationerrors.ErrInvalidDesignationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate designation begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := ensureUnused(ctx, qtx, id); err != nil {
		s.logger.Warn("deactivate designation blocked", zap.String("designation_id", id))
		return err
	}

	d.Status = StatusInactive
	if err := qtx.Update(ctx, d); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate designation commit failed", zap.Error(err))
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("deactivate designation success", zap.String("designation_id", id))
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DesignationAllKey).Err(); err != nil {
		s.logger.Error("failed to invalidate designation cache",
			zap.String("key", DesignationAllKey),
			zap.Error(err),
		)
	}
}

func ensureUnused(ctx context.Context, repo Repository, id string) error {
	count, err := repo.CountActiveEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return designationerrors.ErrDesignationInUse
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return designationerrors.ErrDesignationNotFound
	}
	if apperror.UniqueConstraint(err) == "uq_designation_title_department" {
		return designationerrors.ErrDesignationExists
	}
	return err
}

func mapToResponse(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:             d.ID.String(),
		Title:          d.Title,
		DepartmentID:   d.DepartmentID.String(),
		DepartmentName: d.DepartmentName,
		BaseSalary:     money.Float(d.BaseSalary),
		Level:          d.Level,
		Status:         d.Status,
	}
}

func mapToListResponse(items []Designation) []DesignationResponse {
	res := make([]DesignationResponse, len(items))
	for i, d := range items {
		res[i] = mapToResponse(d)
	}
	return res
}
