// Package reportfilter builds the filtered, sorted, paginated expense-report
// listing. All filter fields are optional and combine with logical AND;
// soft-deleted reports are excluded by the store's default scope.
package reportfilter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/franck-yvetot/expenses2/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// sortColumns whitelists sortBy values and maps them onto column names.
var sortColumns = map[string]string{
	"reportDate":  "report_date",
	"totalAmount": "total_amount",
	"createdAt":   "created_at",
	"purpose":     "purpose",
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Filter is a parsed report listing request.
type Filter struct {
	Statuses  []models.ReportStatus
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Pagination describes the window of the matching set a Result covers.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Result is one page of matching reports plus the pre-pagination count.
type Result struct {
	Data       []models.ExpenseReport `json:"data"`
	Pagination Pagination             `json:"pagination"`
}

// Parse builds a Filter from listing query parameters, applying the
// documented defaults and rejecting out-of-range or unknown values.
func Parse(values url.Values) (Filter, error) {
	f := Filter{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    "createdAt",
		SortOrder: "DESC",
	}

	// Both status[]=A&status[]=B and status=A&status=B are accepted.
	statuses := append(values["status[]"], values["status"]...)
	for _, s := range statuses {
		status := models.ReportStatus(s)
		if !models.ValidReportStatus(status) {
			return f, fmt.Errorf("invalid status %q", s)
		}
		f.Statuses = append(f.Statuses, status)
	}

	var err error
	if f.AmountMin, err = parseAmount(values.Get("amountMin"), "amountMin"); err != nil {
		return f, err
	}
	if f.AmountMax, err = parseAmount(values.Get("amountMax"), "amountMax"); err != nil {
		return f, err
	}
	if f.DateFrom, err = parseDate(values.Get("dateFrom"), "dateFrom"); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDate(values.Get("dateTo"), "dateTo"); err != nil {
		return f, err
	}
	f.Search = values.Get("search")

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return f, fmt.Errorf("page must be a positive integer")
		}
		f.Page = page
	}
	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return f, fmt.Errorf("limit must be a positive integer")
		}
		f.Limit = limit
	}
	if v := values.Get("sortBy"); v != "" {
		if _, ok := sortColumns[v]; !ok {
			return f, fmt.Errorf("invalid sortBy %q", v)
		}
		f.SortBy = v
	}
	if v := values.Get("sortOrder"); v != "" {
		order := strings.ToUpper(v)
		if order != "ASC" && order != "DESC" {
			return f, fmt.Errorf("invalid sortOrder %q", v)
		}
		f.SortOrder = order
	}
	return f, nil
}

func parseAmount(v, field string) (*decimal.Decimal, error) {
	if v == "" {
		return nil, nil
	}
	amt, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", field, v)
	}
	if amt.IsNegative() {
		return nil, fmt.Errorf("%s must not be negative", field)
	}
	return &amt, nil
}

func parseDate(v, field string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid %s %q (want YYYY-MM-DD)", field, v)
}

// apply adds the filter conditions to a report query.
func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.AmountMin != nil {
		q = q.Where("total_amount >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		q = q.Where("total_amount <= ?", *f.AmountMax)
	}
	if f.DateFrom != nil {
		q = q.Where("report_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("report_date <= ?", *f.DateTo)
	}
	if f.Search != "" {
		q = q.Where("LOWER(purpose) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	return q
}

func (f Filter) orderClause() string {
	return sortColumns[f.SortBy] + " " + f.SortOrder
}

// Run executes the filter: one count over the full matching set, then one
// windowed fetch with expenses preloaded. No secondary sort key is applied;
// ties keep store order.
func (f Filter) Run(db *gorm.DB) (Result, error) {
	var total int64
	if err := f.apply(db.Model(&models.ExpenseReport{})).Count(&total).Error; err != nil {
		return Result{}, err
	}

	reports := make([]models.ExpenseReport, 0)
	q := f.apply(db.Model(&models.ExpenseReport{})).
		Preload("Expenses").
		Order(f.orderClause()).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit)
	if err := q.Find(&reports).Error; err != nil {
		return Result{}, err
	}

	return Result{
		Data: reports,
		Pagination: Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: TotalPages(total, f.Limit),
		},
	}, nil
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
