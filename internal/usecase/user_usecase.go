package usecase

import (
	"context"
	"time"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/repository"
	"civicport/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	FullName  string
	Phone     string
	AvatarURL string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update profile", err)
	}
	return user, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context, actorID string, limit, offset int) ([]*entity.User, int64, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, 0, errors.Unauthorized("Unknown account", err)
	}
	if actor.Role != entity.RoleAdmin {
		return nil, 0, errors.Forbidden("Only admins can list users", nil)
	}
	return uc.userRepo.List(ctx, limit, offset)
}

func (uc *UserUseCase) UpdateRole(ctx context.Context, actorID, targetID, role string) (*entity.User, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, errors.Unauthorized("Unknown account", err)
	}
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only admins can change roles", nil)
	}
	if !entity.ValidRole(role) {
		return nil, errors.BadRequest("Invalid role", nil)
	}

	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if err := uc.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, errors.Internal("Failed to update role", err)
	}

	target.Role = role
	return target, nil
}
