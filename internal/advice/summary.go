package advice

import "github.com/Dan9191/finance-tracker/internal/models"

// Summarize aggregates the user's records.
func Summarize(rec models.Records) models.Summary {
	var s models.Summary
	for _, i := range rec.Incomes {
		s.TotalIncome += i.Amount
		if i.IsPassive() {
			s.PassiveIncome += i.Amount
		}
	}
	if s.TotalIncome > 0 {
		s.PassiveIncomeRatio = s.PassiveIncome / s.TotalIncome * 100
	}

	byCategory := make(map[string]float64)
	var order []string
	for _, e := range rec.Expenses {
		s.TotalExpenses += e.Amount
		if _, seen := byCategory[e.Category]; !seen {
			order = append(order, e.Category)
		}
		byCategory[e.Category] += e.Amount
	}
	for _, c := range order {
		if s.LargestExpenseCategory == "" || byCategory[c] > s.LargestExpenseAmount {
			s.LargestExpenseCategory = c
			s.LargestExpenseAmount = byCategory[c]
		}
	}
	s.CashFlow = s.TotalIncome - s.TotalExpenses

	for _, a := range rec.Assets {
		s.TotalAssets += a.Value
		s.AssetIncome += a.IncomeGenerated
	}
	for _, l := range rec.Liabilities {
		s.TotalLiabilities += l.Amount
	}
	s.NetWorth = s.TotalAssets - s.TotalLiabilities
	return s
}
