package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"boxoffice/internal/shared/errs"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListNonAdmin(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateLoyalty(ctx context.Context, id uuid.UUID, loyalty Loyalty) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Internal("failed to load user", err)
	}
	return &user, nil
}

func (r *repository) ListNonAdmin(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("role <> ?", RoleAdmin).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, errs.Internal("failed to list users", err)
	}
	return users, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&User{})
	if result.Error != nil {
		return errs.Internal("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}

func (r *repository) UpdateLoyalty(ctx context.Context, id uuid.UUID, loyalty Loyalty) error {
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"loyalty_is_member":     loyalty.IsMember,
			"loyalty_booking_count": loyalty.BookingCount,
		})
	if result.Error != nil {
		return errs.Internal("failed to update loyalty", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}
