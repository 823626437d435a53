package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of password.
func (s *Service) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	user, err := s.CreatePasswordUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	s.log.Infof("User registered: %s", user.Username)
	return s.authResponse(user)
}

// CreatePasswordUser stores a new user that signs in with password.
func (s *Service) CreatePasswordUser(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if taken, err := s.userExists(ctx, username, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUserExists
	}

	hashed, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: &hashed,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// A concurrent registration can win between the check and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		// Unknown users cost one bcrypt comparison too.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		return nil, err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return s.authResponse(user)
}

// CurrentUser returns the profile of userID.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.FindUserByID(ctx, userID)
}

func (s *Service) userExists(ctx context.Context, username, email string) (bool, error) {
	if _, err := s.repo.FindUserByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	return false, nil
}

func (s *Service) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-password"), s.bcryptCost)
	})
	return s.dummy
}

func (s *Service) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}
