package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const expenseColumns = "id, user_id, category, amount, description, date, notes, created_at"

// ExpenseRepository persists expenses. Every call is scoped to one user.
type ExpenseRepository struct {
	store
}

// List returns every expense owned by userID, latest date first.
func (r *ExpenseRepository) List(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := r.query(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? ORDER BY date DESC, created_at DESC, id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

// Get returns the expense id if userID owns it.
func (r *ExpenseRepository) Get(ctx context.Context, userID, id string) (*models.Expense, error) {
	row := r.queryRow(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ? AND user_id = ?", id, userID)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// Create inserts a new expense owned by userID.
func (r *ExpenseRepository) Create(ctx context.Context, userID string, in models.ExpenseInput) (*models.Expense, error) {
	expense := &models.Expense{
		ID:          newID(),
		UserID:      userID,
		Category:    in.Category,
		Amount:      floatOr(in.Amount, 0),
		Description: in.Description,
		Notes:       stringValue(nullableText(in.Notes)),
		CreatedAt:   now(),
	}
	if in.Date != nil {
		expense.Date = in.Date.UTC()
	} else {
		expense.Date = expense.CreatedAt
	}
	_, err := r.exec(ctx, `
		INSERT INTO expenses (id, user_id, category, amount, description, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, userID, expense.Category, decimalText(expense.Amount), expense.Description,
		expense.Date, nullableText(expense.Notes), expense.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

// Update applies the non-nil fields of p to the expense id owned by userID.
func (r *ExpenseRepository) Update(ctx context.Context, userID, id string, p models.ExpensePatch) (*models.Expense, error) {
	set := &updateSet{}
	set.setString("category", p.Category)
	set.setDecimal("amount", p.Amount)
	set.setString("description", p.Description)
	if p.Date != nil {
		set.set("date", p.Date.UTC())
	}
	set.setNotes("notes", p.Notes)
	if err := r.updateOwned(ctx, "expenses", id, userID, set); err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

// Delete removes the expense id owned by userID.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "expenses", id, userID)
}

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var (
		e      models.Expense
		amount decimal.Decimal
		notes  sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Category, &amount, &e.Description, &e.Date, &notes, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Amount = decimalFloat(amount)
	e.Notes = stringValue(notes)
	return &e, nil
}
