package ledger_test

import (
	"context"
	"testing"
	"time"

	"dhanrekha/internal/domain"
	"dhanrekha/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySummary_ConcreteScenario(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db, "scenario@example.com")
	seedIncome(t, db, userID, "500", "Salary", date(2024, time.January, 1))
	seedExpense(t, db, userID, "100", domain.CategoryFood, date(2024, time.January, 5))
	seedExpense(t, db, userID, "50", domain.CategoryTransport, date(2024, time.January, 20))
	engine := ledger.NewEngine(db, 7)

	got, err := engine.MonthlySummary(context.Background(), userID, 1, 2024)
	require.NoError(t, err)

	assertDecimalEqual(t, "500", got.TotalIncome)
	assertDecimalEqual(t, "150", got.TotalExpense)
	assertDecimalEqual(t, "350", got.Balance)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, domain.CategoryFood, got.Categories[0].Category)
	assertDecimalEqual(t, "100", got.Categories[0].Total)
	assert.Equal(t, int64(1), got.Categories[0].Count)
	assert.Equal(t, domain.CategoryTransport, got.Categories[1].Category)
	assertDecimalEqual(t, "50", got.Categories[1].Total)
	assert.Equal(t, int64(1), got.Categories[1].Count)
}

func TestMonthlySummary_BalanceIdentity(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db, "identity@example.com")
	seedIncome(t, db, userID, "123.45", "Salary", date(2024, time.March, 3))
	seedIncome(t, db, userID, "10", "Gift", date(2024, time.March, 9))
	seedExpense(t, db, userID, "77.40", domain.CategoryGroceries, date(2024, time.March, 12))
	engine := ledger.NewEngine(db, 7)

	got, err := engine.MonthlySummary(context.Background(), userID, 3, 2024)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(got.TotalIncome.Sub(got.TotalExpense)))
}

func TestMonthlySummary_EmptyMonth(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db, "emptymonth@example.com")
	seedIncome(t, db, userID, "500", "Salary", date(2024, time.January, 1))
	engine := ledger.NewEngine(db, 7)

	// A month with zero transactions is not an error
	got, err := engine.MonthlySummary(context.Background(), userID, 6, 2024)
	require.NoError(t, err)
	assertDecimalEqual(t, "0", got.TotalIncome)
	assertDecimalEqual(t, "0", got.TotalExpense)
	assertDecimalEqual(t, "0", got.Balance)
	assert.Empty(t, got.Categories)
}

func TestMonthlySummary_ExcludesNeighborMonths(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db, "neighbors@example.com")
	seedExpense(t, db, userID, "10", domain.CategoryFood, date(2024, time.January, 31))
	seedExpense(t, db, userID, "20", domain.CategoryFood, date(2024, time.February, 1))
	seedExpense(t, db, userID, "40", domain.CategoryFood, date(2024, time.February, 29)) // leap day
	seedExpense(t, db, userID, "80", domain.CategoryFood, date(2024, time.March, 1))
	engine := ledger.NewEngine(db, 7)

	got, err := engine.MonthlySummary(context.Background(), userID, 2, 2024)
	require.NoError(t, err)
	assertDecimalEqual(t, "60", got.TotalExpense)
}

func TestJoinYearlySeries_OuterJoinWithZeroFill(t *testing.T) {
	income := []ledger.YearTotal{
		{Year: 2022, Total: decimal.RequireFromString("1000")},
		{Year: 2024, Total: decimal.RequireFromString("1500")},
	}
	expense := []ledger.YearTotal{
		{Year: 2023, Total: decimal.RequireFromString("400")},
		{Year: 2024, Total: decimal.RequireFromString("600")},
	}

	got := ledger.JoinYearlySeries(income, expense)
	require.Len(t, got, 3)

	assert.Equal(t, 2022, got[0].Year)
	assertDecimalEqual(t, "1000", got[0].TotalIncome)
	assertDecimalEqual(t, "0", got[0].TotalExpense)
	assertDecimalEqual(t, "1000", got[0].Savings)

	assert.Equal(t, 2023, got[1].Year)
	assertDecimalEqual(t, "0", got[1].TotalIncome)
	assertDecimalEqual(t, "400", got[1].TotalExpense)
	assertDecimalEqual(t, "-400", got[1].Savings)

	assert.Equal(t, 2024, got[2].Year)
	assertDecimalEqual(t, "900", got[2].Savings)
}

func TestJoinYearlySeries_Empty(t *testing.T) {
	got := ledger.JoinYearlySeries(nil, nil)
	assert.Empty(t, got)
}

func TestYearlyReport(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db, "report@example.com")
	seedIncome(t, db, userID, "1200", "Salary", date(2023, time.June, 1))
	seedExpense(t, db, userID, "200", domain.CategoryRent, date(2023, time.June, 2))
	seedExpense(t, db, userID, "300", domain.CategoryRent, date(2024, time.June, 2))
	engine := ledger.NewEngine(db, 7)

	got, err := engine.YearlyReport(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assertDecimalEqual(t, "1000", got[0].Savings)
	assertDecimalEqual(t, "-300", got[1].Savings)
}
