package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const goalColumns = "id, user_id, description, target_amount, current_amount, target_date, created_at"

// GoalRepository persists savings goals. Every call is scoped to one user.
type GoalRepository struct {
	store
}

// List returns every goal owned by userID, nearest deadline first.
func (r *GoalRepository) List(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := r.query(ctx, "SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY target_date, id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

// Get returns the goal id if userID owns it.
func (r *GoalRepository) Get(ctx context.Context, userID, id string) (*models.Goal, error) {
	row := r.queryRow(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ? AND user_id = ?", id, userID)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// Create inserts a new goal owned by userID.
func (r *GoalRepository) Create(ctx context.Context, userID string, in models.GoalInput) (*models.Goal, error) {
	goal := &models.Goal{
		ID:            newID(),
		UserID:        userID,
		Description:   in.Description,
		TargetAmount:  floatOr(in.TargetAmount, 0),
		CurrentAmount: floatOr(in.CurrentAmount, 0),
		CreatedAt:     now(),
	}
	if in.TargetDate != nil {
		goal.TargetDate = *in.TargetDate
	}
	_, err := r.exec(ctx, `
		INSERT INTO goals (id, user_id, description, target_amount, current_amount, target_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, userID, goal.Description, decimalText(goal.TargetAmount),
		decimalText(goal.CurrentAmount), goal.TargetDate.Time, goal.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// Update applies the non-nil fields of p to the goal id owned by userID.
func (r *GoalRepository) Update(ctx context.Context, userID, id string, p models.GoalPatch) (*models.Goal, error) {
	set := &updateSet{}
	set.setString("description", p.Description)
	set.setDecimal("target_amount", p.TargetAmount)
	set.setDecimal("current_amount", p.CurrentAmount)
	if p.TargetDate != nil {
		set.set("target_date", p.TargetDate.Time)
	}
	if err := r.updateOwned(ctx, "goals", id, userID, set); err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

// Delete removes the goal id owned by userID.
func (r *GoalRepository) Delete(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "goals", id, userID)
}

// DueBetween returns unfinished goals of all users whose target date lies in
// [from, to], joined with the owner's contact details.
func (r *GoalRepository) DueBetween(ctx context.Context, from, to time.Time) ([]models.GoalReminder, error) {
	rows, err := r.query(ctx, `
		SELECT g.id, g.user_id, g.description, g.target_amount, g.current_amount, g.target_date, g.created_at,
			u.email, u.username
		FROM goals g
		JOIN users u ON u.id = g.user_id
		WHERE g.target_date >= ? AND g.target_date <= ?
		ORDER BY g.target_date, g.id`,
		models.NewDate(from.Year(), from.Month(), from.Day()).Time,
		models.NewDate(to.Year(), to.Month(), to.Day()).Time)
	if err != nil {
		return nil, fmt.Errorf("failed to list due goals: %w", err)
	}
	defer rows.Close()

	var reminders []models.GoalReminder
	for rows.Next() {
		var (
			rem          models.GoalReminder
			target, curr decimal.Decimal
			targetDate   time.Time
		)
		g := &rem.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Description, &target, &curr, &targetDate, &g.CreatedAt, &rem.Email, &rem.Username); err != nil {
			return nil, fmt.Errorf("failed to scan due goal: %w", err)
		}
		g.TargetAmount = decimalFloat(target)
		g.CurrentAmount = decimalFloat(curr)
		g.TargetDate = models.NewDate(targetDate.Year(), targetDate.Month(), targetDate.Day())
		if g.Remaining() > 0 {
			reminders = append(reminders, rem)
		}
	}
	return reminders, rows.Err()
}

func scanGoal(row interface{ Scan(...any) error }) (*models.Goal, error) {
	var (
		g            models.Goal
		target, curr decimal.Decimal
		targetDate   time.Time
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.Description, &target, &curr, &targetDate, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.TargetAmount = decimalFloat(target)
	g.CurrentAmount = decimalFloat(curr)
	g.TargetDate = models.NewDate(targetDate.Year(), targetDate.Month(), targetDate.Day())
	return &g, nil
}
