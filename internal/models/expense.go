package models

import "time"

// Expense is a single spending event.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExpenseInput struct {
	ID          string     `json:"id,omitempty"`
	Category    string     `json:"category" validate:"required,max=100"`
	Amount      *float64   `json:"amount" validate:"required,gte=0"`
	Description string     `json:"description" validate:"required,max=255"`
	Date        *Timestamp `json:"date" validate:"required"`
	Notes       *string    `json:"notes,omitempty" validate:"omitnil,max=1000"`
}

func (in ExpenseInput) RecordID() string { return in.ID }

func (in ExpenseInput) AsPatch() ExpensePatch {
	return ExpensePatch{
		Category:    &in.Category,
		Amount:      in.Amount,
		Description: &in.Description,
		Date:        in.Date,
		Notes:       in.Notes,
	}
}

type ExpensePatch struct {
	Category    *string    `json:"category" validate:"omitnil,min=1,max=100"`
	Amount      *float64   `json:"amount" validate:"omitnil,gte=0"`
	Description *string    `json:"description" validate:"omitnil,min=1,max=255"`
	Date        *Timestamp `json:"date"`
	Notes       *string    `json:"notes" validate:"omitnil,max=1000"`
}
