package models

import "time"

// Liability is a debt. InterestRate is an annual percentage.
type Liability struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	InterestRate float64   `json:"interestRate"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

type LiabilityInput struct {
	ID           string   `json:"id,omitempty"`
	Description  string   `json:"description" validate:"required,max=255"`
	Type         string   `json:"type" validate:"required,max=100"`
	Amount       *float64 `json:"amount" validate:"required,gte=0"`
	InterestRate *float64 `json:"interestRate,omitempty" validate:"omitnil,gte=0"`
	Notes        *string  `json:"notes,omitempty" validate:"omitnil,max=1000"`
}

func (in LiabilityInput) RecordID() string { return in.ID }

func (in LiabilityInput) AsPatch() LiabilityPatch {
	return LiabilityPatch{
		Description:  &in.Description,
		Type:         &in.Type,
		Amount:       in.Amount,
		InterestRate: in.InterestRate,
		Notes:        in.Notes,
	}
}

type LiabilityPatch struct {
	Description  *string  `json:"description" validate:"omitnil,min=1,max=255"`
	Type         *string  `json:"type" validate:"omitnil,min=1,max=100"`
	Amount       *float64 `json:"amount" validate:"omitnil,gte=0"`
	InterestRate *float64 `json:"interestRate" validate:"omitnil,gte=0"`
	Notes        *string  `json:"notes" validate:"omitnil,max=1000"`
}
