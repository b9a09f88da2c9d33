package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/franck-yvetot/expenses2/models"
	"github.com/franck-yvetot/expenses2/pkg/reportfilter"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// findReport fetches a non-deleted report by id. Preload paths let callers
// pull in the expense tree when they need it.
func findReport(id string, preloads ...string) (*models.ExpenseReport, error) {
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var report models.ExpenseReport
	if err := q.First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// createReportHandler creates an expense report owned by the current user.
func createReportHandler(c *gin.Context) {
	var req struct {
		Purpose    string `json:"purpose" binding:"required"`
		ReportDate string `json:"reportDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Purpose = strings.TrimSpace(req.Purpose)
	if req.Purpose == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purpose must not be empty"})
		return
	}
	if len(req.Purpose) > 255 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purpose must be at most 255 characters"})
		return
	}
	reportDate, err := parseDate(req.ReportDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := models.ExpenseReport{
		Purpose:     req.Purpose,
		ReportDate:  reportDate,
		Status:      models.ReportCreated,
		TotalAmount: decimal.Zero,
		UserID:      currentUserID(c),
	}
	if err := db.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// listReportsHandler returns the filtered, sorted, paginated report listing.
func listReportsHandler(c *gin.Context) {
	filter, err := reportfilter.Parse(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := filter.Run(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func getReportHandler(c *gin.Context) {
	report, err := findReport(c.Param("id"), "Expenses", "Expenses.Attachments")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// updateReportHandler merges the provided fields over the stored report.
// Status is a pass-through here: any known status value is accepted without
// transition checks, only submit enforces the lifecycle rule.
func updateReportHandler(c *gin.Context) {
	report, err := findReport(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense report not found"})
		return
	}
	var req struct {
		Purpose    *string `json:"purpose"`
		ReportDate *string `json:"reportDate"`
		Status     *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Purpose != nil {
		purpose := strings.TrimSpace(*req.Purpose)
		if purpose == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purpose must not be empty"})
			return
		}
		if len(purpose) > 255 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purpose must be at most 255 characters"})
			return
		}
		report.Purpose = purpose
	}
	if req.ReportDate != nil {
		reportDate, err := parseDate(*req.ReportDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		report.ReportDate = reportDate
	}
	if req.Status != nil {
		status := models.ReportStatus(*req.Status)
		if !models.ValidReportStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report status"})
			return
		}
		report.Status = status
	}
	if err := db.Save(report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// deleteReportHandler soft-deletes the report. Child expenses keep their
// deleted_at untouched and stay fetchable by id.
func deleteReportHandler(c *gin.Context) {
	report, err := findReport(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense report not found"})
		return
	}
	if err := db.Delete(report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// submitReportHandler moves a report from Created to Submitted, the only
// modeled transition.
func submitReportHandler(c *gin.Context) {
	report, err := findReport(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense report not found"})
		return
	}
	if report.Status != models.ReportCreated {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only reports with Created status can be submitted"})
		return
	}
	report.Status = models.ReportSubmitted
	if err := db.Save(report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submit failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// recalculateReportTotal recomputes total_amount from the report's live
// expenses. Idempotent: rerunning it without an intervening expense change
// writes the same value.
func recalculateReportTotal(reportID string) error {
	var report models.ExpenseReport
	if err := db.Preload("Expenses").First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // report deleted since the expense mutation, nothing to update
		}
		return err
	}
	total := decimal.Zero
	for _, e := range report.Expenses {
		total = total.Add(e.Amount)
	}
	return db.Model(&models.ExpenseReport{}).
		Where("id = ?", reportID).
		Update("total_amount", total).Error
}
