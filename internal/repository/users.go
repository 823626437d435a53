package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

const userColumns = "id, username, password, email, google_id, google_name, google_picture, last_login, created_at"

// CreateUser creates a new user in the database. A taken username, email or
// Google id yields ErrDuplicate.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = newID()
	user.CreatedAt = now()
	_, err := r.exec(ctx, `
		INSERT INTO users (id, username, password, email, google_id, google_name, google_picture, last_login, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, nullableText(user.PasswordHash), user.Email,
		nullableText(user.GoogleID), nullableText(user.GoogleName), nullableText(user.GooglePicture),
		nullTime(user.LastLogin), user.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to create user: %w", ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findUser(ctx, "id", id)
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findUser(ctx, "username", username)
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, "email", email)
}

// FindUserByGoogleID retrieves a user by Google subject id
func (r *Repository) FindUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return r.findUser(ctx, "google_id", googleID)
}

func (r *Repository) findUser(ctx context.Context, col, value string) (*models.User, error) {
	row := r.queryRow(ctx, "SELECT "+userColumns+" FROM users WHERE "+col+" = ?", value)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// LinkGoogleIdentity stores the Google profile on an existing user.
func (r *Repository) LinkGoogleIdentity(ctx context.Context, userID string, profile models.GoogleProfile) error {
	res, err := r.exec(ctx,
		"UPDATE users SET google_id = ?, google_name = ?, google_picture = ? WHERE id = ?",
		profile.Subject, nullableText(&profile.Name), nullableText(&profile.Picture), userID)
	if err != nil {
		return fmt.Errorf("failed to link google identity: %w", err)
	}
	return requireAffected(res)
}

// TouchLastLogin records a successful sign-in.
func (r *Repository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	res, err := r.exec(ctx, "UPDATE users SET last_login = ? WHERE id = ?", at.UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return requireAffected(res)
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var (
		u                         models.User
		password, googleID        sql.NullString
		googleName, googlePicture sql.NullString
		lastLogin                 sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Username, &password, &u.Email, &googleID, &googleName, &googlePicture, &lastLogin, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.PasswordHash = stringValue(password)
	u.GoogleID = stringValue(googleID)
	u.GoogleName = stringValue(googleName)
	u.GooglePicture = stringValue(googlePicture)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return &u, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
