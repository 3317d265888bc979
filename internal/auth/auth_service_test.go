package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type memAdminRepo struct {
	byID      map[uuid.UUID]*auth.Admin
	touched   map[uuid.UUID]time.Time
	createErr error
}

func newMemAdminRepo(admins ...*auth.Admin) *memAdminRepo {
	r := &memAdminRepo{byID: map[uuid.UUID]*auth.Admin{}, touched: map[uuid.UUID]time.Time{}}
	for _, a := range admins {
		r.byID[a.ID] = a
	}
	return r
}

func (r *memAdminRepo) Create(_ context.Context, a *auth.Admin) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_admin_email"}
		}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *memAdminRepo) FindByEmail(_ context.Context, email string) (*auth.Admin, error) {
	for _, a := range r.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*auth.Admin, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *memAdminRepo) FindAll(context.Context) ([]auth.Admin, error) {
	out := make([]auth.Admin, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memAdminRepo) Update(_ context.Context, a *auth.Admin) error {
	r.byID[a.ID] = a
	return nil
}

func (r *memAdminRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.byID[id].PasswordHash = hash
	return nil
}

func (r *memAdminRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.touched[id] = at
	return nil
}

func (r *memAdminRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memAdminRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, a := range r.byID {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	active := &auth.Admin{ID: uuid.New(), Email: "hr@acme.test", PasswordHash: hashed(t, "s3cret-pass"), Role: "hr", IsActive: true}
	disabled := &auth.Admin{ID: uuid.New(), Email: "old@acme.test", PasswordHash: hashed(t, "s3cret-pass"), Role: "hr"}
	repo := newMemAdminRepo(active, disabled)
	svc := auth.NewService(repo, auth.NewTokenIssuer(testSecret, time.Hour))

	t.Run("issues a token with role and stamps last login", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "  HR@acme.test ", Password: "s3cret-pass"})
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, active.ID.String(), claims["user_id"])
		assert.Equal(t, "hr", claims["role"])
		assert.Contains(t, repo.touched, active.ID)
		assert.NotNil(t, resp.Admin.LastLoginAt)
	})

	t.Run("rejects wrong password, unknown and inactive accounts", func(t *testing.T) {
		for _, req := range []auth.LoginRequest{
			{Email: "hr@acme.test", Password: "nope"},
			{Email: "ghost@acme.test", Password: "s3cret-pass"},
			{Email: "old@acme.test", Password: "s3cret-pass"},
		} {
			_, err := svc.Login(ctx, req)
			assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials, req.Email)
		}
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	repo := newMemAdminRepo()
	svc := auth.NewService(repo, auth.NewTokenIssuer(testSecret, time.Hour))

	resp, err := svc.Register(ctx, auth.RegisterRequest{Name: "Mira", Email: "Mira@Acme.test", Password: "longenough", Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, "mira@acme.test", resp.Email)
	assert.Equal(t, "manager", resp.Role)

	_, err = svc.Register(ctx, auth.RegisterRequest{Name: "Dup", Email: "mira@acme.test", Password: "longenough"})
	assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)

	_, err = svc.Register(ctx, auth.RegisterRequest{Name: "X", Email: "x@acme.test", Password: "longenough", Role: "employee"})
	assert.ErrorIs(t, err, autherrors.ErrInvalidRole)

	boom := errors.New("db down")
	repo.createErr = boom
	_, err = svc.Register(ctx, auth.RegisterRequest{Name: "Y", Email: "y@acme.test", Password: "longenough"})
	assert.ErrorIs(t, err, boom)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	admin := &auth.Admin{ID: uuid.New(), Email: "a@acme.test", PasswordHash: hashed(t, "old-password"), Role: "superadmin", IsActive: true}
	repo := newMemAdminRepo(admin)
	svc := auth.NewService(repo, auth.NewTokenIssuer(testSecret, time.Hour))

	err := svc.ChangePassword(ctx, admin.ID.String(), auth.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-password"})
	assert.ErrorIs(t, err, autherrors.ErrCurrentPasswordIncorrect)

	require.NoError(t, svc.ChangePassword(ctx, admin.ID.String(), auth.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.byID[admin.ID].PasswordHash), []byte("new-password")))
}

func TestAuthService_AdminManagement(t *testing.T) {
	ctx := context.Background()
	self := &auth.Admin{ID: uuid.New(), Email: "root@acme.test", Role: "superadmin", IsActive: true}
	other := &auth.Admin{ID: uuid.New(), Email: "hr@acme.test", Role: "hr", IsActive: true}
	repo := newMemAdminRepo(self, other)
	svc := auth.NewService(repo, auth.NewTokenIssuer(testSecret, time.Hour))

	t.Run("update role and status", func(t *testing.T) {
		role := "manager"
		inactive := false
		resp, err := svc.UpdateAdmin(ctx, other.ID.String(), auth.UpdateAdminRequest{Role: &role, IsActive: &inactive})
		require.NoError(t, err)
		assert.Equal(t, "manager", resp.Role)
		assert.False(t, resp.IsActive)

		bad := "owner"
		_, err = svc.UpdateAdmin(ctx, other.ID.String(), auth.UpdateAdminRequest{Role: &bad})
		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("cannot delete yourself", func(t *testing.T) {
		err := svc.DeleteAdmin(ctx, self.ID.String(), self.ID.String())
		assert.ErrorIs(t, err, autherrors.ErrCannotDeleteSelf)
		assert.Contains(t, repo.byID, self.ID)
	})

	t.Run("delete another admin", func(t *testing.T) {
		require.NoError(t, svc.DeleteAdmin(ctx, self.ID.String(), other.ID.String()))
		assert.ErrorIs(t, svc.DeleteAdmin(ctx, self.ID.String(), other.ID.String()), autherrors.ErrAdminNotFound)
	})

	t.Run("get missing admin", func(t *testing.T) {
		_, err := svc.GetAdmin(ctx, uuid.NewString())
		assert.ErrorIs(t, err, autherrors.ErrAdminNotFound)
	})
}

func TestAuthService_SeedSuperadmin(t *testing.T) {
	ctx := context.Background()
	repo := newMemAdminRepo()
	svc := auth.NewService(repo, auth.NewTokenIssuer(testSecret, time.Hour))

	created, err := svc.SeedSuperadmin(ctx, "", "pw", "Root")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.SeedSuperadmin(ctx, "root@acme.test", "bootstrap-pass", "Root")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedSuperadmin(ctx, "root2@acme.test", "bootstrap-pass", "Root")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.byID, 1)
}
