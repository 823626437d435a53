package models

import "time"

// Asset is something the user owns, optionally producing income.
type Asset struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Value           float64   `json:"value"`
	IncomeGenerated float64   `json:"incomeGenerated"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
}

type AssetInput struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name" validate:"required,max=255"`
	Category        string   `json:"category" validate:"required,max=100"`
	Value           *float64 `json:"value" validate:"required,gte=0"`
	IncomeGenerated *float64 `json:"incomeGenerated,omitempty" validate:"omitnil,gte=0"`
	Notes           *string  `json:"notes,omitempty" validate:"omitnil,max=1000"`
}

func (in AssetInput) RecordID() string { return in.ID }

func (in AssetInput) AsPatch() AssetPatch {
	return AssetPatch{
		Name:            &in.Name,
		Category:        &in.Category,
		Value:           in.Value,
		IncomeGenerated: in.IncomeGenerated,
		Notes:           in.Notes,
	}
}

type AssetPatch struct {
	Name            *string  `json:"name" validate:"omitnil,min=1,max=255"`
	Category        *string  `json:"category" validate:"omitnil,min=1,max=100"`
	Value           *float64 `json:"value" validate:"omitnil,gte=0"`
	IncomeGenerated *float64 `json:"incomeGenerated" validate:"omitnil,gte=0"`
	Notes           *string  `json:"notes" validate:"omitnil,max=1000"`
}
