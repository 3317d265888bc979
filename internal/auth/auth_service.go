package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/domain"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AdminResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, adminID string) (AdminResponse, error)
	ChangePassword(ctx context.Context, adminID string, req ChangePasswordRequest) error
	ListAdmins(ctx context.Context) ([]AdminResponse, error)
	GetAdmin(ctx context.Context, id string) (AdminResponse, error)
	UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) (AdminResponse, error)
	DeleteAdmin(ctx context.Context, actorID, id string) error
	SeedSuperadmin(ctx context.Context, email, password, name string) (bool, error)
}

type service struct {
	repo   Repository
	tokens *TokenIssuer
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, tokens *TokenIssuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tokens: tokens, logger: l, now: time.Now}
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AdminResponse, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleSuperadmin
	}
	if !domain.IsAdminRole(role) {
		return AdminResponse{}, autherrors.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AdminResponse{}, err
	}

	admin := &Admin{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if apperror.IsUniqueViolation(err) {
			return AdminResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("create admin failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return AdminResponse{}, err
	}

	s.logger.Info("admin registered", zap.String("admin_id", admin.ID.String()), zap.String("role", role))
	return mapToResponse(*admin), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	admin, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if !admin.IsActive {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.repo.TouchLastLogin(ctx, admin.ID, now); err != nil {
		s.logger.Warn("update last login failed", zap.String("admin_id", admin.ID.String()), zap.Error(err))
	} else {
		admin.LastLoginAt = &now
	}

	token, expiresAt, err := s.tokens.Issue(admin.ID.String(), admin.Role, nil)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Token: token, ExpiresAt: expiresAt, Admin: mapToResponse(*admin)}, nil
}

func (s *service) Me(ctx context.Context, adminID string) (AdminResponse, error) {
	admin, err := s.find(ctx, adminID)
	if err != nil {
		return AdminResponse{}, err
	}
	return mapToResponse(*admin), nil
}

func (s *service) ChangePassword(ctx context.Context, adminID string, req ChangePasswordRequest) error {
	admin, err := s.find(ctx, adminID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrCurrentPasswordIncorrect
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, admin.ID, string(hash))
}

func (s *service) ListAdmins(ctx context.Context) ([]AdminResponse, error) {
	admins, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AdminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, mapToResponse(a))
	}
	return out, nil
}

func (s *service) GetAdmin(ctx context.Context, id string) (AdminResponse, error) {
	return s.Me(ctx, id)
}

func (s *service) UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) (AdminResponse, error) {
	admin, err := s.find(ctx, id)
	if err != nil {
		return AdminResponse{}, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		admin.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if !domain.IsAdminRole(*req.Role) {
			return AdminResponse{}, autherrors.ErrInvalidRole
		}
		admin.Role = *req.Role
	}
	if req.IsActive != nil {
		admin.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		return AdminResponse{}, err
	}
	return mapToResponse(*admin), nil
}

func (s *service) DeleteAdmin(ctx context.Context, actorID, id string) error {
	target, err := uuid.Parse(id)
	if err != nil {
		return autherrors.ErrAdminNotFound
	}
	if actorID == target.String() {
		return autherrors.ErrCannotDeleteSelf
	}
	if err := s.repo.Delete(ctx, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrAdminNotFound
		}
		return err
	}
	s.logger.Info("admin deleted", zap.String("admin_id", id), zap.String("actor_id", actorID))
	return nil
}

// SeedSuperadmin creates the bootstrap account when no superadmin exists.
// It reports whether an account was created.
func (s *service) SeedSuperadmin(ctx context.Context, email, password, name string) (bool, error) {
	if normalizeEmail(email) == "" || password == "" {
		return false, nil
	}
	count, err := s.repo.CountByRole(ctx, domain.RoleSuperadmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.Register(ctx, RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     domain.RoleSuperadmin,
	}); err != nil {
		if errors.Is(err, autherrors.ErrEmailAlreadyRegistered) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) find(ctx context.Context, id string) (*Admin, error) {
	adminID, err := uuid.Parse(id)
	if err != nil {
		return nil, autherrors.ErrAdminNotFound
	}
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func mapToResponse(a Admin) AdminResponse {
	return AdminResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}
