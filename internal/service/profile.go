package service

import (
	"context"
	"strings"

	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

type ProfileService struct {
	users UserStore
}

func NewProfileService(users UserStore) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial profile update for the caller's own identity.
// Email and password are not mutable here.
func (s *ProfileService) Update(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.User, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validateName(trimmed); err != nil {
			return nil, err
		}
		req.Name = &trimmed
	}
	if req.Bio != nil {
		trimmed := strings.TrimSpace(*req.Bio)
		if err := validateBio(trimmed); err != nil {
			return nil, err
		}
		req.Bio = &trimmed
	}

	user, err := s.users.UpdateUserProfile(ctx, userID, req.Name, req.Bio)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
