package models

import "time"

// Goal is a savings target with a deadline.
type Goal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Description   string    `json:"description"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    Date      `json:"targetDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Remaining is the amount still to save; never negative.
func (g Goal) Remaining() float64 {
	if g.CurrentAmount >= g.TargetAmount {
		return 0
	}
	return g.TargetAmount - g.CurrentAmount
}

type GoalInput struct {
	ID            string   `json:"id,omitempty"`
	Description   string   `json:"description" validate:"required,max=255"`
	TargetAmount  *float64 `json:"targetAmount" validate:"required,gte=0"`
	CurrentAmount *float64 `json:"currentAmount,omitempty" validate:"omitnil,gte=0"`
	TargetDate    *Date    `json:"targetDate" validate:"required"`
}

func (in GoalInput) RecordID() string { return in.ID }

func (in GoalInput) AsPatch() GoalPatch {
	return GoalPatch{
		Description:   &in.Description,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    in.TargetDate,
	}
}

type GoalPatch struct {
	Description   *string  `json:"description" validate:"omitnil,min=1,max=255"`
	TargetAmount  *float64 `json:"targetAmount" validate:"omitnil,gte=0"`
	CurrentAmount *float64 `json:"currentAmount" validate:"omitnil,gte=0"`
	TargetDate    *Date    `json:"targetDate"`
}

// GoalReminder pairs a goal nearing its deadline with its owner's contact.
type GoalReminder struct {
	Goal     Goal
	Email    string
	Username string
}
