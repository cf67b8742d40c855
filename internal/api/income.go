package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Date formatting

	"dhanrekha/internal/domain" // Importing domain models
	"dhanrekha/internal/ledger" // Aggregation core

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal money arithmetic
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// IncomeRequest represents one income to record
type IncomeRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"` // Positive amount
	Source      string          `json:"source" binding:"required"` // Free-text income source
	Date        string          `json:"date" binding:"required"`   // Calendar date, YYYY-MM-DD
	Description string          `json:"description"`               // Optional free text
}

// CreateIncomeHandler records one income for the authenticated user
func CreateIncomeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req IncomeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !req.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
			return
		}
		date, ok := parseTransactionDate(req.Date)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: expected YYYY-MM-DD, not in the future"})
			return
		}
		income := domain.Income{
			UserID:      userID,
			Amount:      req.Amount,
			Source:      req.Source,
			Date:        date,
			Description: req.Description,
		}
		if err := db.Create(&income).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to record income")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record income"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  income.Amount.String(),
			"source":  income.Source,
			"date":    income.Date.Format(time.DateOnly),
		}).Info("Income recorded")
		c.JSON(http.StatusCreated, gin.H{"data": income})
	}
}

// ListIncomesHandler returns the user's income records; ?month and
// ?year, when both present, narrow the result to that calendar month.
func ListIncomesHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var month, year int
		if c.Query("month") != "" || c.Query("year") != "" {
			m, err := strconv.Atoi(c.Query("month"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
				return
			}
			y, err := strconv.Atoi(c.Query("year"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
				return
			}
			month, year = m, y
		}
		incomes, err := engine.Incomes(c.Request.Context(), currentUserID(c), month, year)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": incomes})
	}
}

// YearlyIncomeHandler returns the income-by-year series
func YearlyIncomeHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		series, err := engine.YearlyIncome(c.Request.Context(), currentUserID(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		rows := make([]gin.H, 0, len(series))
		for _, row := range series {
			rows = append(rows, gin.H{"year": row.Year, "totalIncome": row.Total})
		}
		c.JSON(http.StatusOK, gin.H{"data": rows})
	}
}
