// Package profile serves sanitized account views for "who am I" lookups.
// It sits outside the session core: the auth service delegates to it and
// credential material never appears in a View.
package profile

import (
	"context"
	"errors"

	"blog-platform/backend/internal/user/domain"
)

// ErrNotFound is returned when the requested user no longer exists.
var ErrNotFound = errors.New("user not found")

// RoleView is the role part of a sanitized profile.
type RoleView struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// View is a sanitized account view: no password hash, no refresh state.
type View struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	IsActive  bool     `json:"isActive"`
	Role      RoleView `json:"role"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// UserGetter is the minimal user lookup needed by the profile service.
type UserGetter interface {
	GetByID(ctx context.Context, id string, includeRefreshHash bool) (*domain.User, error)
}

// Service resolves sanitized profiles by user id.
type Service struct {
	users UserGetter
}

// NewService returns a profile Service backed by the given user store.
func NewService(users UserGetter) *Service {
	return &Service{users: users}
}

// GetSanitizedProfile returns the profile view for id, or ErrNotFound if the
// user no longer exists.
func (s *Service) GetSanitizedProfile(ctx context.Context, id string) (*View, error) {
	u, err := s.users.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return &View{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsActive: u.IsActive,
		Role: RoleView{
			ID:   u.Role.ID,
			Code: string(u.Role.Code),
			Name: u.Role.Name,
		},
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt: u.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}, nil
}
