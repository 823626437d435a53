package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const liabilityColumns = "id, user_id, description, type, amount, interest_rate, notes, created_at"

// LiabilityRepository persists liabilities. Every call is scoped to one user.
type LiabilityRepository struct {
	store
}

// List returns every liability owned by userID, newest first.
func (r *LiabilityRepository) List(ctx context.Context, userID string) ([]models.Liability, error) {
	rows, err := r.query(ctx, "SELECT "+liabilityColumns+" FROM liabilities WHERE user_id = ? ORDER BY created_at DESC, id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	defer rows.Close()

	liabilities := []models.Liability{}
	for rows.Next() {
		liability, err := scanLiability(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan liability: %w", err)
		}
		liabilities = append(liabilities, *liability)
	}
	return liabilities, rows.Err()
}

// Get returns the liability id if userID owns it.
func (r *LiabilityRepository) Get(ctx context.Context, userID, id string) (*models.Liability, error) {
	row := r.queryRow(ctx, "SELECT "+liabilityColumns+" FROM liabilities WHERE id = ? AND user_id = ?", id, userID)
	liability, err := scanLiability(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get liability: %w", err)
	}
	return liability, nil
}

// Create inserts a new liability owned by userID.
func (r *LiabilityRepository) Create(ctx context.Context, userID string, in models.LiabilityInput) (*models.Liability, error) {
	liability := &models.Liability{
		ID:           newID(),
		UserID:       userID,
		Description:  in.Description,
		Type:         in.Type,
		Amount:       floatOr(in.Amount, 0),
		InterestRate: floatOr(in.InterestRate, 0),
		Notes:        stringValue(nullableText(in.Notes)),
		CreatedAt:    now(),
	}
	_, err := r.exec(ctx, `
		INSERT INTO liabilities (id, user_id, description, type, amount, interest_rate, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		liability.ID, userID, liability.Description, liability.Type, decimalText(liability.Amount),
		decimalText(liability.InterestRate), nullableText(liability.Notes), liability.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create liability: %w", err)
	}
	return liability, nil
}

// Update applies the non-nil fields of p to the liability id owned by userID.
func (r *LiabilityRepository) Update(ctx context.Context, userID, id string, p models.LiabilityPatch) (*models.Liability, error) {
	set := &updateSet{}
	set.setString("description", p.Description)
	set.setString("type", p.Type)
	set.setDecimal("amount", p.Amount)
	set.setDecimal("interest_rate", p.InterestRate)
	set.setNotes("notes", p.Notes)
	if err := r.updateOwned(ctx, "liabilities", id, userID, set); err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

// Delete removes the liability id owned by userID.
func (r *LiabilityRepository) Delete(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "liabilities", id, userID)
}

func scanLiability(row interface{ Scan(...any) error }) (*models.Liability, error) {
	var (
		l            models.Liability
		amount, rate decimal.Decimal
		notes        sql.NullString
	)
	if err := row.Scan(&l.ID, &l.UserID, &l.Description, &l.Type, &amount, &rate, &notes, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.Amount = decimalFloat(amount)
	l.InterestRate = decimalFloat(rate)
	l.Notes = stringValue(notes)
	return &l, nil
}
