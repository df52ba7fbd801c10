package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/pkg/auth"
)

// UserService handles profile reads and updates. Self-only access is
// enforced by the controller before these are called.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Get returns a user's profile.
func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// ProfileUpdate carries the editable profile fields. Empty fields are
// left untouched.
type ProfileUpdate struct {
	Name     string
	Phone    string
	Location string
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (models.User, error) {
	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.User{}, ErrNotFound
			}
			return models.User{}, err
		}
	}
	return s.Get(ctx, id)
}

// ChangePassword verifies the current password and replaces it.
// Returns ErrInvalidCredentials when the current password is wrong.
func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	if !auth.CheckPassword(user.Password, current) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.UpdateFields(ctx, id, bson.M{"password": hash})
}
