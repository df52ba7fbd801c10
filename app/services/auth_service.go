package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/pkg/auth"
)

// UserStore is the persistence surface the auth and user services need.
// *repositories.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) error
}

// AuthService handles registration, login, and token verification.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Location string
	UserType models.UserType
}

// Register creates an account and returns it with a signed token.
// Returns ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Phone:    in.Phone,
		Location: in.Location,
		UserType: in.UserType,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// The unique email index closes the lookup/insert race.
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, string(user.UserType))
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown email and wrong password both map to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, string(user.UserType))
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Verify resolves the user behind a validated token's subject id.
func (s *AuthService) Verify(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
