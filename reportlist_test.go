package main

import (
	"fmt"
	"net/http"
	"testing"
)

func listReports(t *testing.T, r http.Handler, query string) (data []map[string]any, pagination map[string]any) {
	t.Helper()
	rec := performRequest(r, http.MethodGet, "/api/expense-reports"+query, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	rawData, _ := body["data"].([]any)
	for _, item := range rawData {
		m, _ := item.(map[string]any)
		data = append(data, m)
	}
	pagination, _ = body["pagination"].(map[string]any)
	return data, pagination
}

func TestListPagination(t *testing.T) {
	r := setupTestServer(t)
	for i := 1; i <= 25; i++ {
		createTestReport(t, r, fmt.Sprintf("Report %02d", i), "2024-01-01")
	}

	data, pagination := listReports(t, r, "")
	if len(data) != 10 {
		t.Errorf("default page size = %d, want 10", len(data))
	}
	if pagination["total"] != float64(25) || pagination["totalPages"] != float64(3) {
		t.Errorf("pagination = %v, want total 25 totalPages 3", pagination)
	}

	data, pagination = listReports(t, r, "?page=3&limit=10")
	if len(data) != 5 {
		t.Errorf("page 3 size = %d, want 5", len(data))
	}
	if pagination["total"] != float64(25) {
		t.Errorf("page 3 total = %v, want 25", pagination["total"])
	}

	// past the end: empty window, unchanged total
	data, pagination = listReports(t, r, "?page=4&limit=10")
	if len(data) != 0 {
		t.Errorf("page 4 size = %d, want 0", len(data))
	}
	if pagination["total"] != float64(25) {
		t.Errorf("page 4 total = %v, want 25", pagination["total"])
	}
}

// seedReportWithTotal creates a report whose total is driven to the given
// amount through one expense.
func seedReportWithTotal(t *testing.T, r http.Handler, purpose, date, amount string) string {
	t.Helper()
	id := createTestReport(t, r, purpose, date)
	createTestExpense(t, r, id, "Travel", amount, date)
	return id
}

func TestListAmountRangeFilter(t *testing.T) {
	r := setupTestServer(t)
	seedReportWithTotal(t, r, "Fifty", "2024-01-01", "50.00")
	seedReportWithTotal(t, r, "Hundred", "2024-01-01", "100.00")
	seedReportWithTotal(t, r, "OneFifty", "2024-01-01", "150.00")
	seedReportWithTotal(t, r, "TwoHundred", "2024-01-01", "200.00")
	seedReportWithTotal(t, r, "TwoFifty", "2024-01-01", "250.00")

	// bounds are inclusive on both ends
	data, pagination := listReports(t, r, "?amountMin=100&amountMax=200")
	if len(data) != 3 {
		t.Fatalf("matched %d reports, want 3 (got %v)", len(data), data)
	}
	if pagination["total"] != float64(3) {
		t.Errorf("total = %v, want 3", pagination["total"])
	}
	for _, item := range data {
		switch item["purpose"] {
		case "Hundred", "OneFifty", "TwoHundred":
		default:
			t.Errorf("unexpected report in range: %v", item["purpose"])
		}
	}
}

func TestListStatusFilter(t *testing.T) {
	r := setupTestServer(t)
	createTestReport(t, r, "Draft A", "2024-01-01")
	createTestReport(t, r, "Draft B", "2024-01-01")
	submitted := createTestReport(t, r, "Sent", "2024-01-01")
	performRequest(r, http.MethodPost, "/api/expense-reports/"+submitted+"/submit", nil, "")

	data, _ := listReports(t, r, "?status[]=Submitted")
	if len(data) != 1 || data[0]["purpose"] != "Sent" {
		t.Errorf("status filter returned %v", data)
	}

	data, _ = listReports(t, r, "?status[]=Created&status[]=Submitted")
	if len(data) != 3 {
		t.Errorf("two-status filter matched %d, want 3", len(data))
	}

	rec := performRequest(r, http.MethodGet, "/api/expense-reports?status[]=Bogus", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status filter: status = %d, want 400", rec.Code)
	}
}

func TestListSearchCaseInsensitive(t *testing.T) {
	r := setupTestServer(t)
	createTestReport(t, r, "Berlin Trip", "2024-01-01")
	createTestReport(t, r, "Client visit", "2024-01-01")

	data, _ := listReports(t, r, "?search=trip")
	if len(data) != 1 || data[0]["purpose"] != "Berlin Trip" {
		t.Errorf("search returned %v", data)
	}

	data, _ = listReports(t, r, "?search=TRIP")
	if len(data) != 1 {
		t.Errorf("uppercase search matched %d, want 1", len(data))
	}
}

func TestListDateRangeFilter(t *testing.T) {
	r := setupTestServer(t)
	createTestReport(t, r, "January", "2024-01-15")
	createTestReport(t, r, "March", "2024-03-15")
	createTestReport(t, r, "June", "2024-06-15")

	data, _ := listReports(t, r, "?dateFrom=2024-02-01&dateTo=2024-04-01")
	if len(data) != 1 || data[0]["purpose"] != "March" {
		t.Errorf("date range returned %v", data)
	}

	// inclusive on the boundary date itself
	data, _ = listReports(t, r, "?dateFrom=2024-03-15&dateTo=2024-03-15")
	if len(data) != 1 {
		t.Errorf("boundary date matched %d, want 1", len(data))
	}
}

func TestListSortByTotalAmount(t *testing.T) {
	r := setupTestServer(t)
	seedReportWithTotal(t, r, "Mid", "2024-01-01", "20.00")
	seedReportWithTotal(t, r, "Low", "2024-01-01", "10.00")
	seedReportWithTotal(t, r, "High", "2024-01-01", "30.00")

	data, _ := listReports(t, r, "?sortBy=totalAmount&sortOrder=ASC")
	if len(data) != 3 {
		t.Fatalf("matched %d reports, want 3", len(data))
	}
	if data[0]["purpose"] != "Low" || data[1]["purpose"] != "Mid" || data[2]["purpose"] != "High" {
		t.Errorf("ascending order = [%v %v %v]", data[0]["purpose"], data[1]["purpose"], data[2]["purpose"])
	}

	data, _ = listReports(t, r, "?sortBy=totalAmount&sortOrder=DESC")
	if data[0]["purpose"] != "High" {
		t.Errorf("descending order starts with %v, want High", data[0]["purpose"])
	}
}

func TestListExcludesSoftDeleted(t *testing.T) {
	r := setupTestServer(t)
	keep := createTestReport(t, r, "Keep", "2024-01-01")
	drop := createTestReport(t, r, "Drop", "2024-01-01")

	rec := performRequest(r, http.MethodDelete, "/api/expense-reports/"+drop, nil, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	data, pagination := listReports(t, r, "")
	if len(data) != 1 || data[0]["id"] != keep {
		t.Errorf("list after delete = %v", data)
	}
	if pagination["total"] != float64(1) {
		t.Errorf("total = %v, want 1", pagination["total"])
	}
}

func TestListIncludesExpenses(t *testing.T) {
	r := setupTestServer(t)
	id := createTestReport(t, r, "Trip", "2024-01-01")
	createTestExpense(t, r, id, "Meals", "12.00", "2024-01-02")

	data, _ := listReports(t, r, "")
	if len(data) != 1 {
		t.Fatalf("matched %d reports, want 1", len(data))
	}
	expenses, _ := data[0]["expenses"].([]any)
	if len(expenses) != 1 {
		t.Errorf("list item carries %d expenses, want 1", len(expenses))
	}
}
