package ledger

import (
	"context"
	"fmt"
	"time"

	"dhanrekha/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExportedExpense is one expense in an export document. Identity and
// ownership fields are deliberately absent: import reassigns records to
// the importing user.
type ExportedExpense struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    domain.Category `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// ExportedIncome is one income in an export document.
type ExportedIncome struct {
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// Snapshot is a full export of one user's ledger: every transaction,
// exactly once. Importing a snapshot into an empty account reproduces
// the same aggregation results.
type Snapshot struct {
	ExportedAt time.Time         `json:"exported_at"`
	Expenses   []ExportedExpense `json:"expenses"`
	Incomes    []ExportedIncome  `json:"incomes"`
}

// Export produces a snapshot of the user's complete ledger.
func (e *Engine) Export(ctx context.Context, userID uint) (*Snapshot, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	var expenses []domain.Expense
	if err := e.db.WithContext(ctx).Where("user_id = ?", userID).Order("date ASC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("%w: export expenses: %v", ErrInternal, err)
	}
	var incomes []domain.Income
	if err := e.db.WithContext(ctx).Where("user_id = ?", userID).Order("date ASC").Find(&incomes).Error; err != nil {
		return nil, fmt.Errorf("%w: export incomes: %v", ErrInternal, err)
	}
	snap := &Snapshot{
		ExportedAt: time.Now(),
		Expenses:   make([]ExportedExpense, 0, len(expenses)),
		Incomes:    make([]ExportedIncome, 0, len(incomes)),
	}
	for i := range expenses {
		snap.Expenses = append(snap.Expenses, ExportedExpense{
			Amount:      expenses[i].Amount,
			Category:    expenses[i].Category,
			Date:        expenses[i].Date,
			Description: expenses[i].Description,
		})
	}
	for i := range incomes {
		snap.Incomes = append(snap.Incomes, ExportedIncome{
			Amount:      incomes[i].Amount,
			Source:      incomes[i].Source,
			Date:        incomes[i].Date,
			Description: incomes[i].Description,
		})
	}
	return snap, nil
}

// Import adds every record of a snapshot to the importing user's ledger.
// Ownership is reassigned to userID; incoming records are validated but
// never deduplicated against existing ones, an import is strictly
// additive. All records are written in one store transaction. Returns
// the number of records added.
func (e *Engine) Import(ctx context.Context, userID uint, snap *Snapshot) (int, error) {
	if err := e.resolveUser(ctx, userID); err != nil {
		return 0, err
	}
	for i := range snap.Expenses {
		rec := &snap.Expenses[i]
		if !rec.Amount.IsPositive() {
			return 0, fmt.Errorf("%w: expense %d: amount must be positive", ErrBadRequest, i)
		}
		if !rec.Category.Valid() {
			return 0, fmt.Errorf("%w: expense %d: unknown category %q", ErrBadRequest, i, rec.Category)
		}
		if rec.Date.IsZero() {
			return 0, fmt.Errorf("%w: expense %d: missing date", ErrBadRequest, i)
		}
	}
	for i := range snap.Incomes {
		rec := &snap.Incomes[i]
		if !rec.Amount.IsPositive() {
			return 0, fmt.Errorf("%w: income %d: amount must be positive", ErrBadRequest, i)
		}
		if rec.Date.IsZero() {
			return 0, fmt.Errorf("%w: income %d: missing date", ErrBadRequest, i)
		}
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range snap.Expenses {
			rec := &snap.Expenses[i]
			exp := domain.Expense{
				UserID:      userID,
				Amount:      rec.Amount,
				Category:    rec.Category,
				Date:        rec.Date,
				Description: rec.Description,
			}
			if err := tx.Create(&exp).Error; err != nil {
				return err // Return error to rollback
			}
		}
		for i := range snap.Incomes {
			rec := &snap.Incomes[i]
			inc := domain.Income{
				UserID:      userID,
				Amount:      rec.Amount,
				Source:      rec.Source,
				Date:        rec.Date,
				Description: rec.Description,
			}
			if err := tx.Create(&inc).Error; err != nil {
				return err // Return error to rollback
			}
		}
		return nil // Commit transaction
	})
	if err != nil {
		return 0, fmt.Errorf("%w: import: %v", ErrInternal, err)
	}
	return len(snap.Expenses) + len(snap.Incomes), nil
}
