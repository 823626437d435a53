package models

import "time"

// Income is a recurring or one-time source of money.
type Income struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Source    string    `json:"source"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Frequency string    `json:"frequency"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsPassive reports whether the income arrives without active work.
func (i Income) IsPassive() bool {
	return i.Type == "passive"
}

// IncomeInput is a validated create or sync element.
type IncomeInput struct {
	ID        string   `json:"id,omitempty"`
	Source    string   `json:"source" validate:"required,max=255"`
	Category  string   `json:"category" validate:"required,max=100"`
	Amount    *float64 `json:"amount" validate:"required,gte=0"`
	Type      string   `json:"type" validate:"required,oneof=active passive"`
	Frequency string   `json:"frequency" validate:"required,oneof=monthly bi-weekly weekly annually one-time"`
	Notes     *string  `json:"notes,omitempty" validate:"omitnil,max=1000"`
}

func (in IncomeInput) RecordID() string { return in.ID }

func (in IncomeInput) AsPatch() IncomePatch {
	return IncomePatch{
		Source:    &in.Source,
		Category:  &in.Category,
		Amount:    in.Amount,
		Type:      &in.Type,
		Frequency: &in.Frequency,
		Notes:     in.Notes,
	}
}

// IncomePatch carries the fields of a partial update; nil leaves a field unchanged.
type IncomePatch struct {
	Source    *string  `json:"source" validate:"omitnil,min=1,max=255"`
	Category  *string  `json:"category" validate:"omitnil,min=1,max=100"`
	Amount    *float64 `json:"amount" validate:"omitnil,gte=0"`
	Type      *string  `json:"type" validate:"omitnil,oneof=active passive"`
	Frequency *string  `json:"frequency" validate:"omitnil,oneof=monthly bi-weekly weekly annually one-time"`
	Notes     *string  `json:"notes" validate:"omitnil,max=1000"`
}
