package repository

import (
	"context"

	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	model "task-track-system.com/task-track-system/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

// ListVisibleTo scopes the user directory by role: superadmins see
// everyone, admins see other admins plus their own employees, and
// employees see only themselves.
func (r *UserRepository) ListVisibleTo(ctx context.Context, viewer *model.User) ([]model.User, error) {
	q := r.db.WithContext(ctx).Order("username asc")

	switch viewer.Role {
	case constants.RoleSuperAdmin:
	case constants.RoleAdmin:
		q = q.Where("role = ? OR manager_id = ?", constants.RoleAdmin, viewer.ID)
	default:
		q = q.Where("id = ?", viewer.ID)
	}

	var users []model.User
	err := q.Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":      user.Username,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"role":          user.Role,
			"is_active":     user.IsActive,
			"manager_id":    user.ManagerID,
		}).Error
}
