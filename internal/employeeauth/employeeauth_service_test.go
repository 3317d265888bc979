package employeeauth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/auth"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeeauth"
	employeeautherrors "go-hrms/internal/employeeauth/errors"
	faceerrors "go-hrms/internal/face/errors"
	facemock "go-hrms/internal/face/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "employee-secret"

type fakeStore struct {
	employees map[string]*employee.Employee
	passwords map[string]string
	enrolled  map[string]time.Time
}

func newFakeStore(list ...*employee.Employee) *fakeStore {
	s := &fakeStore{
		employees: map[string]*employee.Employee{},
		passwords: map[string]string{},
		enrolled:  map[string]time.Time{},
	}
	for _, e := range list {
		s.employees[e.ID.String()] = e
	}
	return s
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	for _, e := range s.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	e, ok := s.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (s *fakeStore) UpdatePassword(_ context.Context, id, hash string) error {
	s.passwords[id] = hash
	return nil
}

func (s *fakeStore) MarkFaceEnrolled(_ context.Context, id string, at time.Time) error {
	s.enrolled[id] = at
	return nil
}

func newEmployee(email, status string, password *string) *employee.Employee {
	return &employee.Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP-0007",
		Name:         "Rina Putri",
		Email:        email,
		Status:       status,
		PasswordHash: password,
		JoiningDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func hashOf(t *testing.T, pw string) *string {
	t.Helper()
	raw, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(raw)
	return &h
}

func TestEmployeeAuth_Login(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenIssuer(testSecret, time.Hour)

	t.Run("token carries the employee identity", func(t *testing.T) {
		empl := newEmployee("rina@acme.test", employee.StatusActive, hashOf(t, "rina-password"))
		svc := employeeauth.NewService(newFakeStore(empl), tokens, nil)

		resp, err := svc.Login(ctx, employeeauth.LoginRequest{Email: " Rina@ACME.test", Password: "rina-password"})
		require.NoError(t, err)
		assert.Equal(t, "EMP-0007", resp.Employee.EmployeeCode)
		assert.Equal(t, "2024-02-01", resp.Employee.JoiningDate)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, empl.ID.String(), claims["user_id"])
		assert.Equal(t, "employee", claims["role"])
		assert.Equal(t, "rina@acme.test", claims["email"])
		assert.Equal(t, "EMP-0007", claims["employee_code"])
		assert.Equal(t, "Rina Putri", claims["name"])
	})

	t.Run("first login assigns the default password", func(t *testing.T) {
		empl := newEmployee("new@acme.test", employee.StatusActive, nil)
		store := newFakeStore(empl)
		svc := employeeauth.NewService(store, tokens, nil)

		_, err := svc.Login(ctx, employeeauth.LoginRequest{Email: "new@acme.test", Password: employeeauth.DefaultPassword})
		require.NoError(t, err)

		saved, ok := store.passwords[empl.ID.String()]
		require.True(t, ok)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved), []byte(employeeauth.DefaultPassword)))
	})

	t.Run("rejections", func(t *testing.T) {
		active := newEmployee("a@acme.test", employee.StatusActive, hashOf(t, "right-password"))
		inactive := newEmployee("b@acme.test", employee.StatusInactive, hashOf(t, "right-password"))
		svc := employeeauth.NewService(newFakeStore(active, inactive), tokens, nil)

		tests := []employeeauth.LoginRequest{
			{Email: "a@acme.test", Password: "wrong"},
			{Email: "b@acme.test", Password: "right-password"},
			{Email: "c@acme.test", Password: "right-password"},
		}
		for _, req := range tests {
			_, err := svc.Login(ctx, req)
			assert.ErrorIs(t, err, employeeautherrors.ErrInvalidCredentials, req.Email)
		}
	})
}

func TestEmployeeAuth_ChangePassword(t *testing.T) {
	ctx := context.Background()
	empl := newEmployee("rina@acme.test", employee.StatusActive, hashOf(t, "old-password"))
	store := newFakeStore(empl)
	svc := employeeauth.NewService(store, auth.NewTokenIssuer(testSecret, time.Hour), nil)
	id := empl.ID.String()

	err := svc.ChangePassword(ctx, id, employeeauth.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"})
	assert.ErrorIs(t, err, employeeautherrors.ErrPasswordTooShort)

	err = svc.ChangePassword(ctx, id, employeeauth.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "brand-new-pass"})
	assert.ErrorIs(t, err, employeeautherrors.ErrCurrentPasswordIncorrect)

	require.NoError(t, svc.ChangePassword(ctx, id, employeeauth.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "brand-new-pass"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.passwords[id]), []byte("brand-new-pass")))

	err = svc.ChangePassword(ctx, "not-a-uuid", employeeauth.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "brand-new-pass"})
	assert.ErrorIs(t, err, employeeautherrors.ErrEmployeeNotFound)
}

func TestEmployeeAuth_EnrollFace(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	faces := facemock.NewMockClient(ctrl)

	empl := newEmployee("rina@acme.test", employee.StatusActive, nil)
	store := newFakeStore(empl)
	svc := employeeauth.NewService(store, auth.NewTokenIssuer(testSecret, time.Hour), faces)
	id := empl.ID.String()

	t.Run("stamps enrollment", func(t *testing.T) {
		faces.EXPECT().Enroll(gomock.Any(), id, []string{"img"}).Return(nil)

		resp, err := svc.EnrollFace(ctx, id, employeeauth.EnrollFaceRequest{Images: []string{"img"}})
		require.NoError(t, err)
		require.NotNil(t, resp.FaceEnrolledAt)
		assert.Contains(t, store.enrolled, id)
	})

	t.Run("face service errors pass through", func(t *testing.T) {
		delete(store.enrolled, id)
		faces.EXPECT().Enroll(gomock.Any(), id, []string{"a", "b"}).Return(faceerrors.ErrInvalidImageCount)

		_, err := svc.EnrollFace(ctx, id, employeeauth.EnrollFaceRequest{Images: []string{"a", "b"}})
		assert.True(t, errors.Is(err, faceerrors.ErrInvalidImageCount))
		assert.NotContains(t, store.enrolled, id)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.EnrollFace(ctx, uuid.NewString(), employeeauth.EnrollFaceRequest{Images: []string{"img"}})
		assert.ErrorIs(t, err, employeeautherrors.ErrEmployeeNotFound)
	})
}
