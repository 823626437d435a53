// Package advice turns a free-text question and a financial summary into
// templated guidance. Generate is a pure function of its inputs.
package advice

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// HighInterestRate is the annual percentage above which a debt counts as high interest.
const HighInterestRate = 7.0

// Input is everything a template may read.
type Input struct {
	Query   string
	Summary models.Summary
	Records models.Records
	Now     time.Time
}

// Rule pairs a query predicate with the template it selects.
type Rule struct {
	Name    string
	Matches func(q string) bool
	Render  func(in Input) string
}

// Rules are evaluated in order; the first match wins.
var Rules = []Rule{
	{
		Name:    "expense-reduction",
		Matches: func(q string) bool { return has(q, "reduce") && hasAny(q, "expense", "spending") },
		Render:  expenseReduction,
	},
	{
		Name:    "asset-growth",
		Matches: func(q string) bool { return has(q, "increase") && has(q, "asset") },
		Render:  assetGrowth,
	},
	{
		Name:    "debt-reduction",
		Matches: func(q string) bool { return hasAny(q, "reduce", "pay off") && hasAny(q, "liability", "liabilities") },
		Render:  debtReduction,
	},
	{
		Name:    "goal-achievement",
		Matches: func(q string) bool { return hasAny(q, "goal", "reach") },
		Render:  goalAchievement,
	},
}

// Fallback renders when no rule matches.
var Fallback = Rule{Name: "general-overview", Render: generalOverview}

// Select returns the rule chosen for query.
func Select(query string) Rule {
	q := strings.ToLower(query)
	for _, r := range Rules {
		if r.Matches(q) {
			return r
		}
	}
	return Fallback
}

// Generate returns the advice text for in.
func Generate(in Input) string {
	return Select(in.Query).Render(in)
}

func has(q, word string) bool { return strings.Contains(q, word) }

func hasAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func expenseReduction(in Input) string {
	s := in.Summary
	if len(in.Records.Expenses) == 0 {
		return "You haven't recorded any expenses yet. Start tracking your spending for a few weeks so we can spot where to cut back."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your largest expense category is %s at %s. ", s.LargestExpenseCategory, money(s.LargestExpenseAmount))

	cat := strings.ToLower(s.LargestExpenseCategory)
	switch {
	case hasAny(cat, "food", "dining", "restaurant", "grocer"):
		b.WriteString("Try planning meals for the week, cooking in batches, and limiting restaurant visits to special occasions. ")
	case hasAny(cat, "entertainment", "fun", "subscription"):
		b.WriteString("Audit your subscriptions and cancel the ones you haven't used in the last month, and look for free local events. ")
	case hasAny(cat, "transport", "car", "gas", "fuel"):
		b.WriteString("Consider carpooling, public transit, or combining errands into fewer trips to cut transportation costs. ")
	case hasAny(cat, "housing", "rent", "mortgage"):
		b.WriteString("Housing is hard to cut quickly; look at refinancing, negotiating your rent at renewal, or sharing space with a roommate. ")
	default:
		fmt.Fprintf(&b, "Set a monthly cap for %s that is 10%% lower than today (%s) and review it at the end of each month. ", s.LargestExpenseCategory, money(s.LargestExpenseAmount*0.9))
	}

	if s.CashFlow < 0 {
		fmt.Fprintf(&b, "You are currently spending %s more than you earn, so cutting back here should be your first priority.", money(-s.CashFlow))
	} else {
		fmt.Fprintf(&b, "Reducing this category by 10%% would free up %s that you could put toward savings or debt.", money(s.LargestExpenseAmount*0.1))
	}
	return b.String()
}

func assetGrowth(in Input) string {
	s := in.Summary
	if len(in.Records.Assets) == 0 {
		if s.CashFlow > 0 {
			return fmt.Sprintf("You don't have any assets recorded yet. With a positive cash flow of %s, consider starting with an emergency fund and then a low-cost index fund.", money(s.CashFlow))
		}
		return "You don't have any assets recorded yet. Focus first on creating a positive cash flow, then build an emergency fund before investing."
	}

	var realEstate, investment, business bool
	for _, a := range in.Records.Assets {
		cat := strings.ToLower(a.Category)
		switch {
		case hasAny(cat, "real estate", "property", "rental"):
			realEstate = true
		case hasAny(cat, "stock", "investment", "bond", "fund", "etf", "crypto"):
			investment = true
		case has(cat, "business"):
			business = true
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your assets are worth %s and generate %s in income", money(s.TotalAssets), money(s.AssetIncome))
	if s.TotalAssets > 0 {
		fmt.Fprintf(&b, " (a %.1f%% yield)", s.AssetIncome/s.TotalAssets*100)
	}
	b.WriteString(". ")

	if realEstate && investment && business {
		b.WriteString("You already hold real estate, investments, and business assets; focus on rebalancing toward the ones with the best yield. ")
	} else {
		if !investment {
			b.WriteString("Consider adding diversified investments such as index funds or ETFs. ")
		}
		if !realEstate {
			b.WriteString("Real estate, directly or through REITs, can add rental income. ")
		}
		if !business {
			b.WriteString("A small business or side project can become another income-generating asset. ")
		}
	}

	if s.CashFlow > 0 {
		fmt.Fprintf(&b, "Directing part of your %s monthly surplus into these assets will compound over time.", money(s.CashFlow))
	} else {
		b.WriteString("Improve your cash flow first so you have money available to invest.")
	}
	return b.String()
}

func debtReduction(in Input) string {
	s := in.Summary
	if len(in.Records.Liabilities) == 0 {
		return "You have no recorded liabilities. Great job staying debt-free! Keep it that way by paying credit cards in full each month."
	}

	var high []models.Liability
	for _, l := range in.Records.Liabilities {
		if l.InterestRate > HighInterestRate {
			high = append(high, l)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your total debt is %s across %d liabilities. ", money(s.TotalLiabilities), len(in.Records.Liabilities))

	if len(high) > 0 {
		sort.SliceStable(high, func(i, j int) bool { return high[i].InterestRate > high[j].InterestRate })
		top := high[0]
		fmt.Fprintf(&b, "You have %d high-interest debts. Use the avalanche method: pay minimums on everything and put extra money toward %s first (%.2f%% interest, %s). ",
			len(high), top.Description, top.InterestRate, money(top.Amount))
	} else {
		sorted := append([]models.Liability(nil), in.Records.Liabilities...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount < sorted[j].Amount })
		first := sorted[0]
		fmt.Fprintf(&b, "None of your debts carry high interest, so the snowball method works well: pay off %s (%s) first for a quick win, then roll that payment into the next one. ",
			first.Description, money(first.Amount))
	}

	if s.CashFlow > 0 {
		fmt.Fprintf(&b, "Putting half of your %s monthly surplus toward debt adds %s per month to your payments.", money(s.CashFlow), money(s.CashFlow/2))
	} else {
		b.WriteString("Your cash flow is not positive yet, so trim expenses to free up money for extra payments.")
	}
	return b.String()
}

func goalAchievement(in Input) string {
	s := in.Summary
	if len(in.Records.Goals) == 0 {
		return "You haven't set any financial goals yet. Add a goal with a target amount and date so we can plan how to reach it."
	}

	goals := append([]models.Goal(nil), in.Records.Goals...)
	sort.SliceStable(goals, func(i, j int) bool { return goals[i].TargetDate.Before(goals[j].TargetDate.Time) })

	var lines []string
	for _, g := range goals {
		remaining := g.Remaining()
		if remaining <= 0 {
			lines = append(lines, fmt.Sprintf("You've already reached \"%s\". Congratulations!", g.Description))
			continue
		}
		if !g.TargetDate.After(in.Now) {
			lines = append(lines, fmt.Sprintf("The target date for \"%s\" (%s) has passed with %s still to go; consider setting a new date.", g.Description, g.TargetDate, money(remaining)))
			continue
		}

		months := monthsUntil(in.Now, g.TargetDate.Time)
		monthly := remaining / float64(months)
		if months <= 12 {
			line := fmt.Sprintf("To reach \"%s\" by %s you need to save %s per month for %d months.", g.Description, g.TargetDate, money(monthly), months)
			if monthly > s.CashFlow {
				line += fmt.Sprintf(" That is more than your current cash flow of %s, so cut expenses or extend the deadline.", money(s.CashFlow))
			} else {
				line += " Your current cash flow covers this."
			}
			lines = append(lines, line)
		} else {
			lines = append(lines, fmt.Sprintf("\"%s\" is %d months away; saving %s per month gets you there, and investing those savings can shorten the path.", g.Description, months, money(monthly)))
		}
	}
	return strings.Join(lines, " ")
}

func generalOverview(in Input) string {
	s := in.Summary
	r := in.Records

	var b strings.Builder
	b.WriteString("Here's an overview of your finances. ")
	fmt.Fprintf(&b, "Income: %s from %d sources, %s of it passive (%.1f%%). ", money(s.TotalIncome), len(r.Incomes), money(s.PassiveIncome), s.PassiveIncomeRatio)
	fmt.Fprintf(&b, "Expenses: %s across %d records", money(s.TotalExpenses), len(r.Expenses))
	if s.LargestExpenseCategory != "" {
		fmt.Fprintf(&b, ", mostly %s (%s)", s.LargestExpenseCategory, money(s.LargestExpenseAmount))
	}
	b.WriteString(". ")
	fmt.Fprintf(&b, "Cash flow: %s. ", money(s.CashFlow))
	fmt.Fprintf(&b, "Assets: %s across %d items. ", money(s.TotalAssets), len(r.Assets))
	fmt.Fprintf(&b, "Liabilities: %s across %d debts. ", money(s.TotalLiabilities), len(r.Liabilities))
	fmt.Fprintf(&b, "Net worth: %s. ", money(s.NetWorth))
	fmt.Fprintf(&b, "Goals: %d active.", len(r.Goals))

	if s.CashFlow < 0 {
		b.WriteString(" You are spending more than you earn; ask me how to reduce expenses.")
	}
	if s.TotalIncome > 0 && s.PassiveIncomeRatio < 20 {
		b.WriteString(" Less than 20% of your income is passive; ask me how to increase assets.")
	}
	return b.String()
}

// monthsUntil counts whole calendar months from now to target, at least 1.
func monthsUntil(now, target time.Time) int {
	months := (target.Year()-now.Year())*12 + int(target.Month()) - int(now.Month())
	if target.Day() < now.Day() {
		months--
	}
	if months < 1 {
		return 1
	}
	return months
}
