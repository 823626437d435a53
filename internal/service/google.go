package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/repository"
	"github.com/Dan9191/finance-tracker/internal/utils"
	"github.com/google/uuid"
)

// StateMaxAge bounds how long a Google sign-in may take.
const StateMaxAge = 10 * time.Minute

// GoogleAuthURL returns the consent page URL with a signed state.
func (s *Service) GoogleAuthURL() (string, error) {
	if s.google == nil {
		return "", ErrNotConfigured
	}
	state, err := utils.GenerateState(s.config.StateSecret, s.now())
	if err != nil {
		return "", err
	}
	return s.google.AuthCodeURL(state), nil
}

// GoogleCallback completes sign-in: it verifies state, exchanges code, and
// finds, links or creates the local user.
func (s *Service) GoogleCallback(ctx context.Context, code, state string) (*models.AuthResponse, error) {
	if s.google == nil {
		return nil, ErrNotConfigured
	}
	if err := utils.VerifyState(s.config.StateSecret, state, s.now(), StateMaxAge); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing code", ErrInvalidState)
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google exchange failed: %w", err)
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	profile.Picture = NormalizePictureURL(profile.Picture)

	user, err := s.findOrCreateGoogleUser(ctx, *profile)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := s.repo.TouchLastLogin(ctx, user.ID, at); err != nil {
		return nil, err
	}
	user.LastLogin = &at

	s.log.WithField("user_id", user.ID).Info("User signed in with Google")
	return s.authResponse(user)
}

func (s *Service) findOrCreateGoogleUser(ctx context.Context, profile models.GoogleProfile) (*models.User, error) {
	user, err := s.repo.FindUserByGoogleID(ctx, profile.Subject)
	if err == nil {
		if err := s.repo.LinkGoogleIdentity(ctx, user.ID, profile); err != nil {
			return nil, err
		}
		return s.repo.FindUserByID(ctx, user.ID)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user, err = s.repo.FindUserByEmail(ctx, profile.Email)
	if err == nil {
		if err := s.repo.LinkGoogleIdentity(ctx, user.ID, profile); err != nil {
			return nil, err
		}
		s.log.WithField("user_id", user.ID).Info("Linked Google identity to existing user")
		return s.repo.FindUserByID(ctx, user.ID)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	username, err := s.availableUsername(ctx, usernameFromEmail(profile.Email))
	if err != nil {
		return nil, err
	}
	subject, name, picture := profile.Subject, profile.Name, profile.Picture
	user = &models.User{
		Username:      username,
		Email:         profile.Email,
		GoogleID:      &subject,
		GoogleName:    &name,
		GooglePicture: &picture,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		// Another callback for the same account may have created it first.
		if existing, findErr := s.repo.FindUserByGoogleID(ctx, profile.Subject); findErr == nil {
			return existing, nil
		}
		return nil, ErrUserExists
	}
	s.log.Infof("User registered with Google: %s", user.Username)
	return s.repo.FindUserByID(ctx, user.ID)
}

func (s *Service) availableUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 0; i < 5; i++ {
		_, err := s.repo.FindUserByUsername(ctx, candidate)
		if errors.Is(err, repository.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = base + "-" + uuid.NewString()[:6]
	}
	return "", fmt.Errorf("could not find a free username for %q", base)
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "user"
	}
	return local
}

// NormalizePictureURL forces an https scheme onto picture URLs that lack one.
func NormalizePictureURL(picture string) string {
	if picture == "" || strings.Contains(picture, "://") {
		return picture
	}
	return "https://" + strings.TrimPrefix(picture, "//")
}
