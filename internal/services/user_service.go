package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/auth"
	"task-track-system.com/task-track-system/internal/constants"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

type CreateUserRequest struct {
	Username  string
	Email     string
	Password  string
	Role      constants.Role
	ManagerID *string
}

// CreateUser persists a user and applies the post-create defaulting
// hook explicitly: the very first user becomes a superadmin, everyone
// else defaults to employee. There is no implicit signal dispatch.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
		ManagerID:    req.ManagerID,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.applyPostCreateDefaults(ctx, user); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUserAs is the administrative creation path: only privileged
// actors may add users.
func (s *UserService) CreateUserAs(ctx context.Context, actorID string, req CreateUserRequest) (*model.User, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	if !actor.Role.Privileged() {
		return nil, apperrors.ErrForbidden
	}
	return s.CreateUser(ctx, req)
}

func (s *UserService) applyPostCreateDefaults(ctx context.Context, user *model.User) error {
	if user.Role != "" {
		if !user.Role.Valid() {
			user.Role = constants.RoleEmployee
		}
		return nil
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		user.Role = constants.RoleSuperAdmin
	} else {
		user.Role = constants.RoleEmployee
	}
	return nil
}

type UpdateUserRequest struct {
	Username  *string
	Email     *string
	Password  *string
	Role      *constants.Role
	IsActive  *bool
	ManagerID *string
}

func (s *UserService) UpdateUser(ctx context.Context, actorID, userID string, req UpdateUserRequest) (*model.User, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	if !actor.Role.Privileged() && actor.ID != userID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		if !actor.Role.Privileged() {
			return nil, apperrors.ErrForbidden
		}
		if req.Role.Valid() {
			user.Role = *req.Role
		}
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.ManagerID != nil {
		user.ManagerID = req.ManagerID
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, viewerID string) ([]model.User, error) {
	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return s.users.ListVisibleTo(ctx, viewer)
}

// Authenticate checks email + password and returns the user. Unknown
// emails, bad passwords and disabled accounts all map to the same
// credentials error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
