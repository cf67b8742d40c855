package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Date parsing

	"dhanrekha/internal/domain" // Importing domain models
	"dhanrekha/internal/ledger" // Aggregation core

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal money arithmetic
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// ExpenseRequest represents one expense to record
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`   // Positive amount
	Category    domain.Category `json:"category" binding:"required"` // Fixed category label
	Date        string          `json:"date" binding:"required"`     // Calendar date, YYYY-MM-DD
	Description string          `json:"description"`                 // Optional free text
}

// parseTransactionDate parses a transaction date and rejects dates in
// the future: the ledger records what happened, not what is planned.
func parseTransactionDate(s string) (time.Time, bool) {
	var t time.Time
	var err error
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		t, err = time.Parse(layout, s)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, false
	}
	if t.Format(time.DateOnly) > time.Now().Format(time.DateOnly) {
		return time.Time{}, false
	}
	return t, true
}

// buildExpense validates one expense request into a model row
func buildExpense(userID uint, req *ExpenseRequest) (domain.Expense, string) {
	if !req.Amount.IsPositive() {
		return domain.Expense{}, "Amount must be positive"
	}
	if !req.Category.Valid() {
		return domain.Expense{}, "Unknown category"
	}
	date, ok := parseTransactionDate(req.Date)
	if !ok {
		return domain.Expense{}, "Invalid date: expected YYYY-MM-DD, not in the future"
	}
	return domain.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
	}, ""
}

// CategoriesHandler returns the fixed expense category set
func CategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": domain.Categories()})
	}
}

// CreateExpenseHandler records one expense for the authenticated user
func CreateExpenseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		expense, msg := buildExpense(userID, &req)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		if err := db.Create(&expense).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to record expense")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record expense"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"amount":   expense.Amount.String(),
			"category": expense.Category,
			"date":     expense.Date.Format(time.DateOnly),
		}).Info("Expense recorded")
		c.JSON(http.StatusCreated, gin.H{"data": expense})
	}
}

// BulkExpensesHandler records a batch of expenses in one store
// transaction; the batch is all-or-nothing.
func BulkExpensesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var reqs []ExpenseRequest
		if err := c.ShouldBindJSON(&reqs); err != nil || len(reqs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		expenses := make([]domain.Expense, 0, len(reqs))
		for i := range reqs {
			expense, msg := buildExpense(userID, &reqs[i])
			if msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": msg, "index": i})
				return
			}
			expenses = append(expenses, expense)
		}
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&expenses).Error
		}); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"count":   len(expenses),
				"error":   err.Error(),
			}).Error("Bulk expense insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record expenses"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"count":   len(expenses),
		}).Info("Bulk expenses recorded")
		c.JSON(http.StatusCreated, gin.H{"count": len(expenses)})
	}
}

// ListExpensesHandler returns every expense of the authenticated user
func ListExpensesHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, err := engine.Expenses(c.Request.Context(), currentUserID(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": expenses})
	}
}

// DeleteExpenseHandler deletes one expense by id. Only the owner can
// delete it.
func DeleteExpenseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Expense{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"expense_id": id,
		}).Info("Expense deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
	}
}

// BalanceHandler returns the all-time balance summary
func BalanceHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := engine.Balance(c.Request.Context(), currentUserID(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": summary})
	}
}

// CategorySummaryHandler returns per-category expense totals, optionally
// narrowed by an inclusive ?start=YYYY-MM-DD&end=YYYY-MM-DD range.
func CategorySummaryHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := ledger.ParseDateRange(c.Query("start"), c.Query("end"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		summary, err := engine.CategorySummary(c.Request.Context(), currentUserID(c), r)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": summary})
	}
}

// WeeklyHandler returns the expenses of the recent window (default: the
// last 7 calendar days), or of an explicit ?start/?end range.
func WeeklyHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := ledger.ParseDateRange(c.Query("start"), c.Query("end"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		expenses, err := engine.Weekly(c.Request.Context(), currentUserID(c), r)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": expenses})
	}
}

// parseMonthYear reads the ?month and ?year query parameters
func parseMonthYear(c *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}

// MonthlySummaryHandler returns the composite monthly view
func MonthlySummaryHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		month, year, ok := parseMonthYear(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month and year are required"})
			return
		}
		summary, err := engine.MonthlySummary(c.Request.Context(), currentUserID(c), month, year)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": summary})
	}
}

// MonthExpensesHandler returns every expense of one calendar month for
// day-level drill-down
func MonthExpensesHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		month, year, ok := parseMonthYear(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month and year are required"})
			return
		}
		expenses, err := engine.MonthExpenses(c.Request.Context(), currentUserID(c), month, year)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": expenses})
	}
}

// YearlyExpenseHandler returns the expense-by-year series
func YearlyExpenseHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		series, err := engine.YearlyExpense(c.Request.Context(), currentUserID(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		rows := make([]gin.H, 0, len(series))
		for _, row := range series {
			rows = append(rows, gin.H{"year": row.Year, "totalExpense": row.Total})
		}
		c.JSON(http.StatusOK, gin.H{"data": rows})
	}
}

// YearlyReportHandler returns the joined per-year income/expense/savings
// report
func YearlyReportHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := engine.YearlyReport(c.Request.Context(), currentUserID(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": report})
	}
}
