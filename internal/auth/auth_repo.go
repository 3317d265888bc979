package auth

import (
	"context"
	"time"

	"go-hrms/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Admin) error
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	FindAll(ctx context.Context) ([]Admin, error)
	Update(ctx context.Context, a *Admin) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Admin) error {
	return database.Conn(ctx, r.db, nil).Create(a).Error
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	err := database.Conn(ctx, r.db, nil).First(&a, "email = ?", email).Error
	return &a, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	var a Admin
	err := database.Conn(ctx, r.db, nil).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context) ([]Admin, error) {
	var admins []Admin
	err := database.Conn(ctx, r.db, nil).Order("created_at ASC").Find(&admins).Error
	return admins, err
}

func (r *repository) Update(ctx context.Context, a *Admin) error {
	return database.Conn(ctx, r.db, nil).
		Model(a).
		Select("name", "role", "is_active", "updated_at").
		Updates(a).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return database.Conn(ctx, r.db, nil).
		Model(&Admin{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now().UTC()}).Error
}

func (r *repository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return database.Conn(ctx, r.db, nil).
		Model(&Admin{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := database.Conn(ctx, r.db, nil).Delete(&Admin{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db, nil).Model(&Admin{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
