package employeeauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/auth"
	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	employeeautherrors "go-hrms/internal/employeeauth/errors"
	"go-hrms/internal/face"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is assigned on first login to employees created without one.
const DefaultPassword = "ChangeMe123"

const minPasswordLength = 8

// EmployeeStore is the slice of employee.Repository this package needs.
type EmployeeStore interface {
	FindByEmail(ctx context.Context, email string) (*employee.Employee, error)
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	MarkFaceEnrolled(ctx context.Context, id string, at time.Time) error
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, employeeID string) (ProfileResponse, error)
	ChangePassword(ctx context.Context, employeeID string, req ChangePasswordRequest) error
	EnrollFace(ctx context.Context, employeeID string, req EnrollFaceRequest) (ProfileResponse, error)
}

type service struct {
	store  EmployeeStore
	tokens *auth.TokenIssuer
	faces  face.Client
	cost   int
	now    func() time.Time
	logger *zap.Logger
}

func NewService(store EmployeeStore, tokens *auth.TokenIssuer, faces face.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeeauth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeeauth.service")
	}
	return &service{
		store:  store,
		tokens: tokens,
		faces:  faces,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	empl, err := s.store.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, employeeautherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if !empl.IsActive() {
		return LoginResponse{}, employeeautherrors.ErrInvalidCredentials
	}

	hash, err := s.ensurePassword(ctx, empl)
	if err != nil {
		return LoginResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return LoginResponse{}, employeeautherrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(empl.ID.String(), domain.RoleEmployee, map[string]string{
		"email":         empl.Email,
		"employee_code": empl.EmployeeCode,
		"name":          empl.Name,
	})
	if err != nil {
		return LoginResponse{}, err
	}

	s.logger.Info("employee logged in",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", empl.ID.String()),
	)
	return LoginResponse{Token: token, ExpiresAt: expiresAt, Employee: toProfile(*empl)}, nil
}

// ensurePassword stores the default hash for employees that never had one.
func (s *service) ensurePassword(ctx context.Context, empl *employee.Employee) (string, error) {
	if empl.PasswordHash != nil && *empl.PasswordHash != "" {
		return *empl.PasswordHash, nil
	}
	raw, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), s.cost)
	if err != nil {
		return "", err
	}
	hash := string(raw)
	if err := s.store.UpdatePassword(ctx, empl.ID.String(), hash); err != nil {
		return "", err
	}
	empl.PasswordHash = &hash
	s.logger.Info("default password assigned", zap.String("employee_id", empl.ID.String()))
	return hash, nil
}

func (s *service) Me(ctx context.Context, employeeID string) (ProfileResponse, error) {
	empl, err := s.find(ctx, employeeID)
	if err != nil {
		return ProfileResponse{}, err
	}
	return toProfile(*empl), nil
}

func (s *service) ChangePassword(ctx context.Context, employeeID string, req ChangePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return employeeautherrors.ErrPasswordTooShort
	}
	empl, err := s.find(ctx, employeeID)
	if err != nil {
		return err
	}
	current, err := s.ensurePassword(ctx, empl)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(current), []byte(req.CurrentPassword)); err != nil {
		return employeeautherrors.ErrCurrentPasswordIncorrect
	}

	raw, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, empl.ID.String(), string(raw))
}

func (s *service) EnrollFace(ctx context.Context, employeeID string, req EnrollFaceRequest) (ProfileResponse, error) {
	empl, err := s.find(ctx, employeeID)
	if err != nil {
		return ProfileResponse{}, err
	}
	if err := s.faces.Enroll(ctx, empl.ID.String(), req.Images); err != nil {
		return ProfileResponse{}, err
	}

	at := s.now().UTC()
	if err := s.store.MarkFaceEnrolled(ctx, empl.ID.String(), at); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, employeeautherrors.ErrEmployeeNotFound
		}
		return ProfileResponse{}, err
	}
	empl.FaceEnrolledAt = &at
	return toProfile(*empl), nil
}

func (s *service) find(ctx context.Context, id string) (*employee.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeautherrors.ErrEmployeeNotFound
	}
	empl, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeautherrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return empl, nil
}
