package service

import (
	"context"
	"fmt"

	"healthy-backend/internal/domain"
)

type UserPage struct {
	Total int64         `json:"total"`
	Items []domain.User `json:"items"`
}

// UserService backs the admin user-management endpoints.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, offset, limit int) (*UserPage, error) {
	items, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if items == nil {
		items = []domain.User{}
	}
	return &UserPage{Total: total, Items: items}, nil
}

func (s *UserService) Delete(ctx context.Context, id uint64) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
