package advice

import (
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func sampleRecords() models.Records {
	return models.Records{
		Incomes: []models.Income{
			{Source: "Salary", Category: "Job", Amount: 5000, Type: "active"},
			{Source: "Rent", Category: "Property", Amount: 1000, Type: "passive"},
		},
		Expenses: []models.Expense{
			{Category: "Food", Amount: 600},
			{Category: "Rent", Amount: 1500},
			{Category: "Food", Amount: 1000},
		},
		Assets: []models.Asset{
			{Name: "Flat", Category: "Real Estate", Value: 200000, IncomeGenerated: 1000},
		},
		Liabilities: []models.Liability{
			{Description: "Mortgage", Type: "loan", Amount: 150000, InterestRate: 4},
			{Description: "Car loan", Type: "loan", Amount: 8000, InterestRate: 5},
		},
		Goals: []models.Goal{
			{Description: "Vacation", TargetAmount: 3000, CurrentAmount: 600, TargetDate: models.NewDate(2024, 7, 15)},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())

	assert.Equal(t, 6000.0, s.TotalIncome)
	assert.Equal(t, 1000.0, s.PassiveIncome)
	assert.InDelta(t, 16.666, s.PassiveIncomeRatio, 0.01)
	assert.Equal(t, 3100.0, s.TotalExpenses)
	assert.Equal(t, 2900.0, s.CashFlow)
	assert.Equal(t, "Food", s.LargestExpenseCategory)
	assert.Equal(t, 1600.0, s.LargestExpenseAmount)
	assert.Equal(t, 200000.0, s.TotalAssets)
	assert.Equal(t, 158000.0, s.TotalLiabilities)
	assert.Equal(t, 42000.0, s.NetWorth)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(models.Records{})
	assert.Zero(t, s.PassiveIncomeRatio)
	assert.Empty(t, s.LargestExpenseCategory)
}

func TestSelectPriority(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"How can I reduce my expenses?", "expense-reduction"},
		{"REDUCE SPENDING please", "expense-reduction"},
		{"reduce expense and increase assets to reach my goal and pay off liability", "expense-reduction"},
		{"How do I increase my assets?", "asset-growth"},
		{"increase assets to reach my goal", "asset-growth"},
		{"Help me pay off my liabilities", "debt-reduction"},
		{"reduce liability", "debt-reduction"},
		{"Will I reach my savings target?", "goal-achievement"},
		{"goal progress", "goal-achievement"},
		{"increase income", "general-overview"},
		{"hello", "general-overview"},
		{"", "general-overview"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.query).Name)
		})
	}
}

func generate(query string, rec models.Records) string {
	return Generate(Input{Query: query, Summary: Summarize(rec), Records: rec, Now: now})
}

func TestExpenseReductionBranches(t *testing.T) {
	rec := sampleRecords()
	out := generate("reduce expenses", rec)
	assert.Contains(t, out, "Your largest expense category is Food at $1600.00.")
	assert.Contains(t, out, "planning meals")
	assert.Contains(t, out, "free up $160.00")

	rec.Expenses = []models.Expense{{Category: "Gym", Amount: 9000}}
	out = generate("reduce spending", rec)
	assert.Contains(t, out, "Set a monthly cap for Gym")
	assert.Contains(t, out, "spending $3000.00 more than you earn")

	rec.Expenses = nil
	assert.Contains(t, generate("reduce expenses", rec), "haven't recorded any expenses")
}

func TestAssetGrowthBranches(t *testing.T) {
	rec := sampleRecords()
	out := generate("increase assets", rec)
	assert.Contains(t, out, "Your assets are worth $200000.00 and generate $1000.00 in income (a 0.5% yield).")
	assert.Contains(t, out, "index funds")
	assert.Contains(t, out, "small business")
	assert.NotContains(t, out, "REITs")

	rec.Assets = append(rec.Assets,
		models.Asset{Name: "ETF", Category: "Stocks", Value: 1000},
		models.Asset{Name: "Shop", Category: "Business", Value: 1000})
	assert.Contains(t, generate("increase assets", rec), "rebalancing")

	rec.Assets = nil
	assert.Contains(t, generate("increase assets", rec), "positive cash flow of $2900.00")
}

func TestDebtReductionBranches(t *testing.T) {
	rec := sampleRecords()
	out := generate("pay off liabilities", rec)
	assert.Contains(t, out, "snowball")
	assert.Contains(t, out, "pay off Car loan ($8000.00) first")

	rec.Liabilities = append(rec.Liabilities, models.Liability{Description: "Visa", Amount: 2000, InterestRate: 22.5})
	out = generate("pay off liabilities", rec)
	assert.Contains(t, out, "avalanche")
	assert.Contains(t, out, "toward Visa first (22.50% interest")

	rec.Liabilities = nil
	assert.Contains(t, generate("reduce liability", rec), "debt-free")
}

func TestGoalAchievementBranches(t *testing.T) {
	rec := sampleRecords()
	out := generate("reach my goal", rec)
	assert.Contains(t, out, "To reach \"Vacation\" by 2024-07-15 you need to save $400.00 per month for 6 months.")
	assert.Contains(t, out, "cash flow covers this")

	rec.Goals = []models.Goal{
		{Description: "House", TargetAmount: 60000, TargetDate: models.NewDate(2029, 1, 15)},
		{Description: "Done", TargetAmount: 100, CurrentAmount: 100, TargetDate: models.NewDate(2024, 3, 1)},
		{Description: "Old", TargetAmount: 100, TargetDate: models.NewDate(2023, 3, 1)},
	}
	out = generate("goal", rec)
	assert.Contains(t, out, "\"House\" is 60 months away; saving $1000.00 per month")
	assert.Contains(t, out, "already reached \"Done\"")
	assert.Contains(t, out, "target date for \"Old\" (2023-03-01) has passed")

	rec.Goals = []models.Goal{{Description: "Car", TargetAmount: 10000, TargetDate: models.NewDate(2024, 3, 15)}}
	assert.Contains(t, generate("goal", rec), "more than your current cash flow")

	rec.Goals = nil
	assert.Contains(t, generate("goal", rec), "haven't set any financial goals")
}

func TestGeneralOverview(t *testing.T) {
	out := generate("what's up", sampleRecords())
	assert.Contains(t, out, "Income: $6000.00 from 2 sources, $1000.00 of it passive (16.7%).")
	assert.Contains(t, out, "Net worth: $42000.00.")
	assert.Contains(t, out, "Goals: 1 active.")
	assert.Contains(t, out, "Less than 20% of your income is passive")
}

func TestMonthsUntil(t *testing.T) {
	assert.Equal(t, 6, monthsUntil(now, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, monthsUntil(now, time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, monthsUntil(now, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$12.50", money(12.5))
	assert.Equal(t, "-$3.00", money(-3))
}
