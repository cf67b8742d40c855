package ledger

import (
	"context"
	"sort"

	"dhanrekha/internal/domain"

	"github.com/shopspring/decimal"
)

// MonthlySummary is the composite monthly view: totals plus the
// per-category breakdown restricted to the month.
type MonthlySummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`  // Incomes dated in the month
	TotalExpense decimal.Decimal `json:"totalExpense"` // Expenses dated in the month
	Balance      decimal.Decimal `json:"balance"`      // TotalIncome - TotalExpense
	Categories   []CategoryTotal `json:"categories"`   // Category summary for the month
}

// YearSavings is one row of the joined yearly report. A year appears
// when either series has data; the missing side defaults to zero.
type YearSavings struct {
	Year         int             `json:"year"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Savings      decimal.Decimal `json:"savings"` // TotalIncome - TotalExpense
}

// MonthlySummary assembles the composite view for one calendar month.
// A month with zero transactions yields all-zero totals and an empty
// category list, not an error.
func (e *Engine) MonthlySummary(ctx context.Context, userID uint, month, year int) (MonthlySummary, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return MonthlySummary{}, err
	}
	start, end, err := monthWindow(month, year)
	if err != nil {
		return MonthlySummary{}, err
	}
	// End bound is exclusive of the next month's first day; applyRange
	// adds a day to its inclusive End, so pass end-1d.
	last := end.AddDate(0, 0, -1)
	r := DateRange{Start: &start, End: &last}

	income, err := e.sumAmount(ctx, &domain.Income{}, userID, r)
	if err != nil {
		return MonthlySummary{}, err
	}
	expense, err := e.sumAmount(ctx, &domain.Expense{}, userID, r)
	if err != nil {
		return MonthlySummary{}, err
	}
	categories, err := e.CategorySummary(ctx, userID, r)
	if err != nil {
		return MonthlySummary{}, err
	}
	return MonthlySummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		Categories:   categories,
	}, nil
}

// YearlyReport outer-joins the yearly income and expense series by year,
// defaulting the missing side of a year to zero, and computes per-year
// savings. Years are sorted ascending.
func (e *Engine) YearlyReport(ctx context.Context, userID uint) ([]YearSavings, error) {
	incomeSeries, err := e.YearlyIncome(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenseSeries, err := e.YearlyExpense(ctx, userID)
	if err != nil {
		return nil, err
	}
	return JoinYearlySeries(incomeSeries, expenseSeries), nil
}

// JoinYearlySeries merges two independent yearly series into one report.
// The join is keyed by year, never by array index: the series may cover
// different year sets.
func JoinYearlySeries(income, expense []YearTotal) []YearSavings {
	byYear := make(map[int]*YearSavings)
	for _, row := range income {
		byYear[row.Year] = &YearSavings{Year: row.Year, TotalIncome: row.Total}
	}
	for _, row := range expense {
		ys, ok := byYear[row.Year]
		if !ok {
			ys = &YearSavings{Year: row.Year}
			byYear[row.Year] = ys
		}
		ys.TotalExpense = row.Total
	}
	out := make([]YearSavings, 0, len(byYear))
	for _, ys := range byYear {
		ys.Savings = ys.TotalIncome.Sub(ys.TotalExpense)
		out = append(out, *ys)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
