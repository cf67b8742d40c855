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

func TestExportImport_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	source := seedUser(t, db, "source@example.com")
	target := seedUser(t, db, "target@example.com")
	seedIncome(t, db, source, "500", "Salary", date(2024, time.January, 1))
	seedExpense(t, db, source, "100", domain.CategoryFood, date(2024, time.January, 5))
	seedExpense(t, db, source, "50", domain.CategoryTransport, date(2024, time.January, 20))
	engine := ledger.NewEngine(db, 7)
	ctx := context.Background()

	snap, err := engine.Export(ctx, source)
	require.NoError(t, err)
	require.Len(t, snap.Expenses, 2)
	require.Len(t, snap.Incomes, 1)

	added, err := engine.Import(ctx, target, snap)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	// The importer's aggregations must match the exporter's
	srcBalance, err := engine.Balance(ctx, source)
	require.NoError(t, err)
	dstBalance, err := engine.Balance(ctx, target)
	require.NoError(t, err)
	assert.True(t, srcBalance.TotalIncome.Equal(dstBalance.TotalIncome))
	assert.True(t, srcBalance.TotalExpense.Equal(dstBalance.TotalExpense))
	assert.True(t, srcBalance.RemainingBalance.Equal(dstBalance.RemainingBalance))

	srcCats, err := engine.CategorySummary(ctx, source, ledger.DateRange{})
	require.NoError(t, err)
	dstCats, err := engine.CategorySummary(ctx, target, ledger.DateRange{})
	require.NoError(t, err)
	require.Len(t, dstCats, len(srcCats))
	for i := range srcCats {
		assert.Equal(t, srcCats[i].Category, dstCats[i].Category)
		assert.True(t, srcCats[i].Total.Equal(dstCats[i].Total))
		assert.Equal(t, srcCats[i].Count, dstCats[i].Count)
	}
}

func TestImport_StrictlyAdditive(t *testing.T) {
	db := openTestDB(t)
	source := seedUser(t, db, "additive-src@example.com")
	target := seedUser(t, db, "additive-dst@example.com")
	seedExpense(t, db, source, "100", domain.CategoryFood, date(2024, time.January, 5))
	engine := ledger.NewEngine(db, 7)
	ctx := context.Background()

	snap, err := engine.Export(ctx, source)
	require.NoError(t, err)

	// No deduplication: importing twice doubles the ledger
	_, err = engine.Import(ctx, target, snap)
	require.NoError(t, err)
	_, err = engine.Import(ctx, target, snap)
	require.NoError(t, err)

	balance, err := engine.Balance(ctx, target)
	require.NoError(t, err)
	assertDecimalEqual(t, "200", balance.TotalExpense)
}

func TestImport_RejectsInvalidRecords(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db, "invalid@example.com")
	engine := ledger.NewEngine(db, 7)
	ctx := context.Background()

	tests := []struct {
		name string
		snap ledger.Snapshot
	}{
		{
			name: "non-positive expense amount",
			snap: ledger.Snapshot{Expenses: []ledger.ExportedExpense{{
				Amount:   decimal.Zero,
				Category: domain.CategoryFood,
				Date:     date(2024, time.January, 1),
			}}},
		},
		{
			name: "unknown category",
			snap: ledger.Snapshot{Expenses: []ledger.ExportedExpense{{
				Amount:   decimal.RequireFromString("10"),
				Category: domain.Category("Gambling"),
				Date:     date(2024, time.January, 1),
			}}},
		},
		{
			name: "missing expense date",
			snap: ledger.Snapshot{Expenses: []ledger.ExportedExpense{{
				Amount:   decimal.RequireFromString("10"),
				Category: domain.CategoryFood,
			}}},
		},
		{
			name: "non-positive income amount",
			snap: ledger.Snapshot{Incomes: []ledger.ExportedIncome{{
				Amount: decimal.RequireFromString("-5"),
				Source: "Salary",
				Date:   date(2024, time.January, 1),
			}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Import(ctx, userID, &tt.snap)
			assert.ErrorIs(t, err, ledger.ErrBadRequest)

			// Nothing may be applied partially
			balance, berr := engine.Balance(ctx, userID)
			require.NoError(t, berr)
			assertDecimalEqual(t, "0", balance.TotalExpense)
			assertDecimalEqual(t, "0", balance.TotalIncome)
		})
	}
}

func TestExport_OwnershipStripped(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db, "strip@example.com")
	seedExpense(t, db, userID, "42", domain.CategoryOther, date(2024, time.August, 1))
	engine := ledger.NewEngine(db, 7)

	snap, err := engine.Export(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, snap.Expenses, 1)
	// The export record carries no id or owner, only the transaction data
	assertDecimalEqual(t, "42", snap.Expenses[0].Amount)
	assert.Equal(t, domain.CategoryOther, snap.Expenses[0].Category)
}
