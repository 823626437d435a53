package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/advice"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

const chatSystemPrompt = "You are a helpful personal finance assistant. Give concise, practical advice " +
	"based on the user's financial data. Do not recommend specific securities. " +
	"If the data is incomplete, say what is missing."

// Summary computes the financial summary of userID.
func (s *Service) Summary(ctx context.Context, userID string) (models.Summary, error) {
	rec, err := s.LoadRecords(ctx, userID)
	if err != nil {
		return models.Summary{}, err
	}
	return advice.Summarize(rec), nil
}

// Assist answers query with the rule-based advice generator.
func (s *Service) Assist(ctx context.Context, userID, query string) (string, error) {
	rec, err := s.LoadRecords(ctx, userID)
	if err != nil {
		return "", err
	}
	in := advice.Input{
		Query:   query,
		Summary: advice.Summarize(rec),
		Records: rec,
		Now:     s.now(),
	}
	rule := advice.Select(query)
	s.log.WithFields(logrus.Fields{"user_id": userID, "rule": rule.Name}).Debug("Generated advice")
	return rule.Render(in), nil
}

// Chat forwards message to the language model with the user's summary as context.
func (s *Service) Chat(ctx context.Context, userID, message string) (string, error) {
	if s.llm == nil {
		return "", ErrNotConfigured
	}
	rec, err := s.LoadRecords(ctx, userID)
	if err != nil {
		return "", err
	}
	system := chatSystemPrompt + "\n\n" + FinancialContext(advice.Summarize(rec), rec)
	reply, err := s.llm.Complete(ctx, system, message)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return reply, nil
}

// FinancialContext renders the summary embedded into chat prompts.
func FinancialContext(sum models.Summary, rec models.Records) string {
	var b strings.Builder
	b.WriteString("User's financial data:\n")
	fmt.Fprintf(&b, "- Total income: $%.2f (passive: $%.2f, %.1f%%)\n", sum.TotalIncome, sum.PassiveIncome, sum.PassiveIncomeRatio)
	fmt.Fprintf(&b, "- Total expenses: $%.2f\n", sum.TotalExpenses)
	fmt.Fprintf(&b, "- Monthly cash flow: $%.2f\n", sum.CashFlow)
	fmt.Fprintf(&b, "- Total assets: $%.2f (%d items)\n", sum.TotalAssets, len(rec.Assets))
	fmt.Fprintf(&b, "- Total liabilities: $%.2f (%d debts)\n", sum.TotalLiabilities, len(rec.Liabilities))
	fmt.Fprintf(&b, "- Net worth: $%.2f\n", sum.NetWorth)
	if sum.LargestExpenseCategory != "" {
		fmt.Fprintf(&b, "- Largest expense category: %s ($%.2f)\n", sum.LargestExpenseCategory, sum.LargestExpenseAmount)
	}
	for _, g := range rec.Goals {
		fmt.Fprintf(&b, "- Goal: %s, $%.2f of $%.2f by %s\n", g.Description, g.CurrentAmount, g.TargetAmount, g.TargetDate)
	}
	return b.String()
}
