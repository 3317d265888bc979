package department_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hrms/internal/department"
	departmenterrors "go-hrms/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	createFn         func(ctx context.Context, dept *department.Department) error
	findAllFn        func(ctx context.Context, q string) ([]department.Department, error)
	findByIDFn       func(ctx context.Context, id string) (*department.Department, error)
	updateFn         func(ctx context.Context, dept *department.Department) error
	countEmployeesFn func(ctx context.Context, id string) (int64, error)
}

func (f *fakeDepartmentRepository) WithTx(*sql.Tx) department.Repository { return f }

func (f *fakeDepartmentRepository) Create(ctx context.Context, dept *department.Department) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, dept)
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context, q string) ([]department.Department, error) {
	if f.findAllFn == nil {
		return nil, nil
	}
	return f.findAllFn(ctx, q)
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, dept *department.Department) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, dept)
}

func (f *fakeDepartmentRepository) CountEmployees(ctx context.Context, id string) (int64, error) {
	if f.countEmployeesFn == nil {
		return 0, nil
	}
	return f.countEmployeesFn(ctx, id)
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes code", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeDepartmentRepository{
			createFn: func(_ context.Context, dept *department.Department) error {
				assert.Equal(t, "Engineering", dept.Name)
				assert.Equal(t, "ENG", dept.Code)
				assert.Equal(t, department.StatusActive, dept.Status)
				return nil
			},
		}
		svc := department.NewService(db, repo)

		expectTx(t, mock, true)
		resp, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: " Engineering ", Code: "eng"})

		assert.NoError(t, err)
		assert.Equal(t, "ENG", resp.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeDepartmentRepository{
			createFn: func(context.Context, *department.Department) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_department_name"}
			},
		}
		svc := department.NewService(db, repo)

		expectTx(t, mock, false)
		_, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "HR", Code: "HR"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate code maps to conflict", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeDepartmentRepository{
			createFn: func(context.Context, *department.Department) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_department_code"}
			},
		}
		svc := department.NewService(db, repo)

		expectTx(t, mock, false)
		_, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Human Resources", Code: "HR"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentCodeExists)
	})
}

func TestDepartmentService_Deactivate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("blocked while employees are assigned", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeDepartmentRepository{
			findByIDFn: func(context.Context, string) (*department.Department, error) {
				return &department.Department{ID: id, Status: department.StatusActive}, nil
			},
			countEmployeesFn: func(context.Context, string) (int64, error) { return 2, nil },
			updateFn: func(context.Context, *department.Department) error {
				t.Fatal("update must not be called")
				return nil
			},
		}
		svc := department.NewService(db, repo)

		expectTx(t, mock, false)
		err := svc.Deactivate(ctx, id.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentHasEmployees)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success sets inactive", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		var saved *department.Department
		repo := &fakeDepartmentRepository{
			findByIDFn: func(context.Context, string) (*department.Department, error) {
				return &department.Department{ID: id, Status: department.StatusActive}, nil
			},
			updateFn: func(_ context.Context, d *department.Department) error {
				saved = d
				return nil
			},
		}
		svc := department.NewService(db, repo)

		expectTx(t, mock, true)
		err := svc.Deactivate(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, department.StatusInactive, saved.Status)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		svc := department.NewService(db, &fakeDepartmentRepository{})

		expectTx(t, mock, false)
		err := svc.Deactivate(ctx, id.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		err := department.NewService(db, &fakeDepartmentRepository{}).Deactivate(ctx, "nope")
		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})
}

func TestDepartmentService_GetAll(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	t.Run("passes search term", func(t *testing.T) {
		repo := &fakeDepartmentRepository{
			findAllFn: func(_ context.Context, q string) ([]department.Department, error) {
				assert.Equal(t, "fin", q)
				return []department.Department{{ID: uuid.New(), Name: "Finance", Code: "FIN"}}, nil
			},
		}

		resp, err := department.NewService(db, repo).GetAll(context.Background(), "fin")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Finance", resp[0].Name)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &fakeDepartmentRepository{
			findAllFn: func(context.Context, string) ([]department.Department, error) {
				return nil, errors.New("db down")
			},
		}

		_, err := department.NewService(db, repo).GetAll(context.Background(), "")
		assert.Error(t, err)
	})
}
