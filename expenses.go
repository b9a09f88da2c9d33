package main

import (
	"log"
	"net/http"

	"github.com/franck-yvetot/expenses2/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func findExpense(id string, preloads ...string) (*models.Expense, error) {
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var expense models.Expense
	if err := q.First(&expense, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// createExpenseHandler adds an expense to an existing report and refreshes
// the report total. The two writes are sequential, not transactional: a
// failed recalculation leaves the expense committed.
func createExpenseHandler(c *gin.Context) {
	var req struct {
		ReportID    string          `json:"reportId" binding:"required"`
		Category    string          `json:"category" binding:"required"`
		Amount      decimal.Decimal `json:"amount"`
		ExpenseName string          `json:"expenseName"`
		Description string          `json:"description"`
		ExpenseDate string          `json:"expenseDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// The parent report must exist; its status does not gate expense creation.
	if _, err := findReport(req.ReportID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense report not found"})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense category"})
		return
	}
	if err := validateAmount(req.Amount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expenseDate, err := parseDate(req.ExpenseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense := models.Expense{
		ReportID:    req.ReportID,
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseName: req.ExpenseName,
		Description: req.Description,
		ExpenseDate: expenseDate,
		Status:      models.ExpenseCreated,
	}
	if err := db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	if err := recalculateReportTotal(req.ReportID); err != nil {
		log.Printf("recalculate total for report %s: %v", req.ReportID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "total recalculation failed"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// listExpensesHandler lists non-deleted expenses, optionally scoped to one
// report, newest expense date first.
func listExpensesHandler(c *gin.Context) {
	q := db.Preload("Attachments").Order("expense_date DESC")
	if reportID := c.Query("reportId"); reportID != "" {
		q = q.Where("report_id = ?", reportID)
	}
	expenses := make([]models.Expense, 0)
	if err := q.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func getExpenseHandler(c *gin.Context) {
	expense, err := findExpense(c.Param("id"), "Attachments", "Report")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// updateExpenseHandler merges the provided fields; the report total is only
// recalculated when the amount actually changed.
func updateExpenseHandler(c *gin.Context) {
	expense, err := findExpense(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	var req struct {
		Category    *string          `json:"category"`
		Amount      *decimal.Decimal `json:"amount"`
		ExpenseName *string          `json:"expenseName"`
		Description *string          `json:"description"`
		ExpenseDate *string          `json:"expenseDate"`
		Status      *string          `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	oldAmount := expense.Amount
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense category"})
			return
		}
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		expense.Amount = *req.Amount
	}
	if req.ExpenseName != nil {
		expense.ExpenseName = *req.ExpenseName
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.ExpenseDate != nil {
		expenseDate, err := parseDate(*req.ExpenseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		expense.ExpenseDate = expenseDate
	}
	if req.Status != nil {
		status := models.ExpenseStatus(*req.Status)
		if !models.ValidExpenseStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense status"})
			return
		}
		expense.Status = status
	}
	if err := db.Save(expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if req.Amount != nil && !expense.Amount.Equal(oldAmount) {
		if err := recalculateReportTotal(expense.ReportID); err != nil {
			log.Printf("recalculate total for report %s: %v", expense.ReportID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "total recalculation failed"})
			return
		}
	}
	c.JSON(http.StatusOK, expense)
}

// deleteExpenseHandler soft-deletes the expense, then refreshes the total of
// the report it belonged to.
func deleteExpenseHandler(c *gin.Context) {
	expense, err := findExpense(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	reportID := expense.ReportID
	if err := db.Delete(expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if err := recalculateReportTotal(reportID); err != nil {
		log.Printf("recalculate total for report %s: %v", reportID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "total recalculation failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
