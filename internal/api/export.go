package api

import (
	"fmt"      // Cell references and filenames
	"net/http" // HTTP status codes
	"time"     // Date formatting

	"dhanrekha/internal/ledger" // Aggregation core

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/sirupsen/logrus"   // Logging library
	"github.com/xuri/excelize/v2"  // XLSX writer
)

// ExportHandler returns the user's complete ledger as a JSON snapshot.
// The snapshot re-imports into any account and reproduces the same
// aggregation results.
func ExportHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := engine.Export(c.Request.Context(), currentUserID(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s.json\"",
			time.Now().Format("20060102")))
		c.JSON(http.StatusOK, snap)
	}
}

// ImportHandler adds every record of an uploaded snapshot to the
// authenticated user's ledger. Identity and ownership of incoming
// records are discarded; the import is strictly additive.
func ImportHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var snap ledger.Snapshot
		if err := c.ShouldBindJSON(&snap); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid snapshot"})
			return
		}
		added, err := engine.Import(c.Request.Context(), currentUserID(c), &snap)
		if err != nil {
			abortWithError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": currentUserID(c),
			"added":   added,
		}).Info("Ledger imported")
		c.JSON(http.StatusOK, gin.H{"added": added})
	}
}

// ExportXLSXHandler writes the user's ledger as a two-sheet workbook
func ExportXLSXHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := engine.Export(c.Request.Context(), currentUserID(c))
		if err != nil {
			abortWithError(c, err)
			return
		}

		f := excelize.NewFile()
		expSheet := "Expenses"
		index, err := f.NewSheet(expSheet)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
			return
		}
		f.SetActiveSheet(index)

		headers := []string{"Amount", "Category", "Date", "Description"}
		for i, h := range headers {
			cell := fmt.Sprintf("%c1", 'A'+i)
			f.SetCellValue(expSheet, cell, h)
		}
		for idx, e := range snap.Expenses {
			row := idx + 2
			f.SetCellValue(expSheet, fmt.Sprintf("A%d", row), e.Amount.String())
			f.SetCellValue(expSheet, fmt.Sprintf("B%d", row), string(e.Category))
			f.SetCellValue(expSheet, fmt.Sprintf("C%d", row), e.Date.Format(time.DateOnly))
			f.SetCellValue(expSheet, fmt.Sprintf("D%d", row), e.Description)
		}

		incSheet := "Incomes"
		if _, err := f.NewSheet(incSheet); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
			return
		}
		incHeaders := []string{"Amount", "Source", "Date", "Description"}
		for i, h := range incHeaders {
			cell := fmt.Sprintf("%c1", 'A'+i)
			f.SetCellValue(incSheet, cell, h)
		}
		for idx, in := range snap.Incomes {
			row := idx + 2
			f.SetCellValue(incSheet, fmt.Sprintf("A%d", row), in.Amount.String())
			f.SetCellValue(incSheet, fmt.Sprintf("B%d", row), in.Source)
			f.SetCellValue(incSheet, fmt.Sprintf("C%d", row), in.Date.Format(time.DateOnly))
			f.SetCellValue(incSheet, fmt.Sprintf("D%d", row), in.Description)
		}

		f.SetColWidth(expSheet, "A", "A", 12)
		f.SetColWidth(expSheet, "B", "B", 15)
		f.SetColWidth(expSheet, "C", "C", 12)
		f.SetColWidth(expSheet, "D", "D", 30)

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s.xlsx\"",
			time.Now().Format("20060102")))
		if err := f.Write(c.Writer); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": currentUserID(c),
				"error":   err.Error(),
			}).Error("XLSX export failed")
		}
	}
}
