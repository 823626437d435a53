package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const incomeColumns = "id, user_id, source, category, amount, type, frequency, notes, created_at"

// IncomeRepository persists incomes. Every call is scoped to one user.
type IncomeRepository struct {
	store
}

// List returns every income owned by userID, newest first.
func (r *IncomeRepository) List(ctx context.Context, userID string) ([]models.Income, error) {
	rows, err := r.query(ctx, "SELECT "+incomeColumns+" FROM incomes WHERE user_id = ? ORDER BY created_at DESC, id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, *income)
	}
	return incomes, rows.Err()
}

// Get returns the income id if userID owns it.
func (r *IncomeRepository) Get(ctx context.Context, userID, id string) (*models.Income, error) {
	row := r.queryRow(ctx, "SELECT "+incomeColumns+" FROM incomes WHERE id = ? AND user_id = ?", id, userID)
	income, err := scanIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return income, nil
}

// Create inserts a new income owned by userID.
func (r *IncomeRepository) Create(ctx context.Context, userID string, in models.IncomeInput) (*models.Income, error) {
	income := &models.Income{
		ID:        newID(),
		UserID:    userID,
		Source:    in.Source,
		Category:  in.Category,
		Amount:    floatOr(in.Amount, 0),
		Type:      in.Type,
		Frequency: in.Frequency,
		Notes:     stringValue(nullableText(in.Notes)),
		CreatedAt: now(),
	}
	_, err := r.exec(ctx, `
		INSERT INTO incomes (id, user_id, source, category, amount, type, frequency, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		income.ID, userID, income.Source, income.Category, decimalText(income.Amount),
		income.Type, income.Frequency, nullableText(income.Notes), income.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return income, nil
}

// Update applies the non-nil fields of p to the income id owned by userID.
func (r *IncomeRepository) Update(ctx context.Context, userID, id string, p models.IncomePatch) (*models.Income, error) {
	set := &updateSet{}
	set.setString("source", p.Source)
	set.setString("category", p.Category)
	set.setDecimal("amount", p.Amount)
	set.setString("type", p.Type)
	set.setString("frequency", p.Frequency)
	set.setNotes("notes", p.Notes)
	if err := r.updateOwned(ctx, "incomes", id, userID, set); err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

// Delete removes the income id owned by userID.
func (r *IncomeRepository) Delete(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "incomes", id, userID)
}

func scanIncome(row interface{ Scan(...any) error }) (*models.Income, error) {
	var (
		i      models.Income
		amount decimal.Decimal
		notes  sql.NullString
	)
	if err := row.Scan(&i.ID, &i.UserID, &i.Source, &i.Category, &amount, &i.Type, &i.Frequency, &notes, &i.CreatedAt); err != nil {
		return nil, err
	}
	i.Amount = decimalFloat(amount)
	i.Notes = stringValue(notes)
	return &i, nil
}
