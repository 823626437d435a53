package models

// Summary is the aggregate view of a user's finances used by advice.
type Summary struct {
	TotalIncome            float64 `json:"totalIncome"`
	PassiveIncome          float64 `json:"passiveIncome"`
	PassiveIncomeRatio     float64 `json:"passiveIncomeRatio"` // PassiveIncome / TotalIncome * 100
	TotalExpenses          float64 `json:"totalExpenses"`
	CashFlow               float64 `json:"cashFlow"`
	TotalAssets            float64 `json:"totalAssets"`
	AssetIncome            float64 `json:"assetIncome"`
	TotalLiabilities       float64 `json:"totalLiabilities"`
	NetWorth               float64 `json:"netWorth"`
	LargestExpenseCategory string  `json:"largestExpenseCategory"`
	LargestExpenseAmount   float64 `json:"largestExpenseAmount"`
}

// Records holds every financial record a user owns.
type Records struct {
	Incomes     []Income
	Expenses    []Expense
	Assets      []Asset
	Liabilities []Liability
	Goals       []Goal
}

// AssistRequest is the body of POST /ai/assist.
type AssistRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
}

// ChatRequest is the body of POST /ai/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// AdviceResponse carries generated advice text.
type AdviceResponse struct {
	Response string `json:"response"`
}
