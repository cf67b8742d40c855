package ledger

import (
	"context" // Context for store operations
	"errors"
	"fmt"
	"sort"
	"time"

	"dhanrekha/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Decimal money arithmetic
	"gorm.io/gorm"                  // GORM ORM library
)

// defaultWeeklyDays is the documented default window of Weekly: the last
// 7 calendar days up to now.
const defaultWeeklyDays = 7

// Engine computes read-only summaries over a user's ledger. Every method
// is a self-contained query with no shared aggregation state; results are
// pure functions of the store at call time.
type Engine struct {
	db         *gorm.DB // Ledger store handle
	weeklyDays int      // Weekly view window in calendar days
}

// NewEngine creates an aggregation engine over the given store.
// weeklyDays configures the Weekly default window; values <= 0 fall back
// to the documented default of 7 days.
func NewEngine(db *gorm.DB, weeklyDays int) *Engine {
	if weeklyDays <= 0 {
		weeklyDays = defaultWeeklyDays
	}
	return &Engine{db: db, weeklyDays: weeklyDays}
}

// BalanceSummary is the all-time balance view of a user's ledger.
// RemainingBalance may legitimately be negative.
type BalanceSummary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`      // Sum of all income amounts
	TotalExpense     decimal.Decimal `json:"totalExpense"`     // Sum of all expense amounts
	RemainingBalance decimal.Decimal `json:"remainingBalance"` // TotalIncome - TotalExpense
}

// CategoryTotal is one row of the per-category expense summary.
type CategoryTotal struct {
	Category domain.Category `json:"category"` // Category label
	Total    decimal.Decimal `json:"total"`    // Sum of matching expense amounts
	Count    int64           `json:"count"`    // Number of matching expenses
}

// YearTotal is one row of a yearly series. Years without any transaction
// of the series' kind are absent, not zero-filled.
type YearTotal struct {
	Year  int             `json:"year"`  // Calendar year
	Total decimal.Decimal `json:"total"` // Sum of amounts dated in that year
}

// DateRange is an optional inclusive [Start, End] calendar-date filter.
// A nil bound leaves that side open.
type DateRange struct {
	Start *time.Time // Inclusive lower bound
	End   *time.Time // Inclusive upper bound
}

// ParseDateRange parses optional YYYY-MM-DD bounds into a DateRange.
// Malformed input fails with ErrBadRequest rather than silently
// defaulting.
func ParseDateRange(startStr, endStr string) (DateRange, error) {
	var r DateRange
	if startStr != "" {
		t, err := time.Parse(time.DateOnly, startStr)
		if err != nil {
			return r, fmt.Errorf("%w: invalid start date %q", ErrBadRequest, startStr)
		}
		r.Start = &t
	}
	if endStr != "" {
		t, err := time.Parse(time.DateOnly, endStr)
		if err != nil {
			return r, fmt.Errorf("%w: invalid end date %q", ErrBadRequest, endStr)
		}
		r.End = &t
	}
	if r.Start != nil && r.End != nil && r.End.Before(*r.Start) {
		return DateRange{}, fmt.Errorf("%w: end date before start date", ErrBadRequest)
	}
	return r, nil
}

// IsZero reports whether no bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// applyRange narrows q to the inclusive date range. End-inclusivity is
// implemented as date < end+1d so records carrying an intra-day time
// still match.
func applyRange(q *gorm.DB, r DateRange) *gorm.DB {
	if r.Start != nil {
		q = q.Where("date >= ?", *r.Start)
	}
	if r.End != nil {
		q = q.Where("date < ?", r.End.AddDate(0, 0, 1))
	}
	return q
}

// monthWindow resolves a month/year pair into the [start, end) window of
// that calendar month, validating the inputs.
func monthWindow(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d out of range", ErrBadRequest, month)
	}
	if year < 1900 || year > time.Now().Year() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year %d out of range", ErrBadRequest, year)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// resolveUser checks the caller resolves to an existing user. Every
// aggregation fails with ErrUnauthorized otherwise.
func (e *Engine) resolveUser(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	var user domain.User
	if err := e.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("%w: resolve user: %v", ErrInternal, err)
	}
	return nil
}

// sumAmount sums the amount column of model (an Expense or Income set)
// for one user, optionally narrowed to a date range.
func (e *Engine) sumAmount(ctx context.Context, model any, userID uint, r DateRange) (decimal.Decimal, error) {
	q := e.db.WithContext(ctx).Model(model).Where("user_id = ?", userID)
	q = applyRange(q, r)
	row := q.Select("COALESCE(SUM(amount), 0)").Row()
	var total decimal.Decimal
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%w: sum amounts: %v", ErrInternal, err)
	}
	return total, nil
}

// Balance produces the all-time balance summary for one user. There is
// deliberately no date filter: the dashboard balance covers the whole
// ledger.
func (e *Engine) Balance(ctx context.Context, userID uint) (BalanceSummary, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return BalanceSummary{}, err
	}
	income, err := e.sumAmount(ctx, &domain.Income{}, userID, DateRange{})
	if err != nil {
		return BalanceSummary{}, err
	}
	expense, err := e.sumAmount(ctx, &domain.Expense{}, userID, DateRange{})
	if err != nil {
		return BalanceSummary{}, err
	}
	return BalanceSummary{
		TotalIncome:      income,
		TotalExpense:     expense,
		RemainingBalance: income.Sub(expense),
	}, nil
}

// CategorySummary groups the user's expenses by category within the
// optional inclusive date range (all-time when both bounds are absent).
// Rows are sorted by total descending; the result is empty when no
// expense qualifies.
func (e *Engine) CategorySummary(ctx context.Context, userID uint, r DateRange) ([]CategoryTotal, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	q := e.db.WithContext(ctx).Model(&domain.Expense{}).Where("user_id = ?", userID)
	q = applyRange(q, r)
	rows := make([]CategoryTotal, 0)
	err := q.Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: category summary: %v", ErrInternal, err)
	}
	return rows, nil
}

// Weekly returns the raw expense transactions within the window, ordered
// by date descending for display. This is a filter, not a reduction;
// bucketing by weekday is a presentation concern. Without an explicit
// range the window is the last weeklyDays calendar days up to now.
func (e *Engine) Weekly(ctx context.Context, userID uint, r DateRange) ([]domain.Expense, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	if r.IsZero() {
		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start := today.AddDate(0, 0, -(e.weeklyDays - 1)) // Window includes today
		r = DateRange{Start: &start, End: &today}
	}
	q := e.db.WithContext(ctx).Where("user_id = ?", userID)
	q = applyRange(q, r)
	expenses := make([]domain.Expense, 0)
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("%w: weekly expenses: %v", ErrInternal, err)
	}
	return expenses, nil
}

// MonthExpenses returns every expense dated in the given calendar month,
// for day-level drill-down. Ordering is date ascending; consumers bucket
// by day as they see fit.
func (e *Engine) MonthExpenses(ctx context.Context, userID uint, month, year int) ([]domain.Expense, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	start, end, err := monthWindow(month, year)
	if err != nil {
		return nil, err
	}
	expenses := make([]domain.Expense, 0)
	err = e.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("%w: month expenses: %v", ErrInternal, err)
	}
	return expenses, nil
}

// Expenses returns every expense owned by the user, date descending.
func (e *Engine) Expenses(ctx context.Context, userID uint) ([]domain.Expense, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	expenses := make([]domain.Expense, 0)
	err := e.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list expenses: %v", ErrInternal, err)
	}
	return expenses, nil
}

// Incomes returns the user's income records, date descending. month and
// year, when both non-zero, narrow the result to that calendar month.
func (e *Engine) Incomes(ctx context.Context, userID uint, month, year int) ([]domain.Income, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	q := e.db.WithContext(ctx).Where("user_id = ?", userID)
	if month != 0 || year != 0 {
		start, end, err := monthWindow(month, year)
		if err != nil {
			return nil, err
		}
		q = q.Where("date >= ? AND date < ?", start, end)
	}
	incomes := make([]domain.Income, 0)
	if err := q.Order("date DESC").Find(&incomes).Error; err != nil {
		return nil, fmt.Errorf("%w: list incomes: %v", ErrInternal, err)
	}
	return incomes, nil
}

// YearlyIncome groups the user's all-time incomes by calendar year.
func (e *Engine) YearlyIncome(ctx context.Context, userID uint) ([]YearTotal, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	var incomes []domain.Income
	if err := e.db.WithContext(ctx).Where("user_id = ?", userID).Find(&incomes).Error; err != nil {
		return nil, fmt.Errorf("%w: yearly income: %v", ErrInternal, err)
	}
	byYear := make(map[int]decimal.Decimal)
	for i := range incomes {
		y := incomes[i].Date.Year()
		byYear[y] = byYear[y].Add(incomes[i].Amount)
	}
	return sortedYearTotals(byYear), nil
}

// YearlyExpense groups the user's all-time expenses by calendar year.
func (e *Engine) YearlyExpense(ctx context.Context, userID uint) ([]YearTotal, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	var expenses []domain.Expense
	if err := e.db.WithContext(ctx).Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("%w: yearly expense: %v", ErrInternal, err)
	}
	byYear := make(map[int]decimal.Decimal)
	for i := range expenses {
		y := expenses[i].Date.Year()
		byYear[y] = byYear[y].Add(expenses[i].Amount)
	}
	return sortedYearTotals(byYear), nil
}

// sortedYearTotals flattens a year map into a series sorted by year
// ascending.
func sortedYearTotals(byYear map[int]decimal.Decimal) []YearTotal {
	out := make([]YearTotal, 0, len(byYear))
	for y, total := range byYear {
		out = append(out, YearTotal{Year: y, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
