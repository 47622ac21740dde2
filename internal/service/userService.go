package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/campusbook/venue-booking/internal/auth"
	repository "github.com/campusbook/venue-booking/internal/database/postgres"
	"github.com/campusbook/venue-booking/internal/entity"
)

type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	sessions *auth.SessionStore
}

func NewUserService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	sessions *auth.SessionStore,
) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		sessions: sessions,
	}
}

func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return user, nil
}

// Login verifies credentials and issues a session token. Lookup failure
// and password mismatch collapse into the same error so the response does
// not reveal which one happened.
func (s *userService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, entity.ErrUserNotFound) {
		return nil, entity.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, entity.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, claims.ID, user.ID, s.tokens.Expiration()); err != nil {
		return nil, err
	}

	logrus.WithField("user_id", user.ID).Info("User logged in")

	return &LoginResult{Token: token, User: user}, nil
}

func (s *userService) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.Revoke(ctx, tokenID)
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Email = req.Email

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, entity.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logrus.WithField("email", email).Info("Administrator account created")
	return nil
}
