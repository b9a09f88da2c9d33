package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// setupTestServer wires the routes against a throwaway sqlite database.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("UPLOAD_BASE", t.TempDir())
	initDB()
	r := gin.New()
	setupRoutes(r)
	return r
}

// helper to perform requests, optionally with a JSON body
func performRequest(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func performJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	return performRequest(r, method, path, bytes.NewBuffer(b), "application/json")
}

func performJSONAuth(r http.Handler, method, path string, payload any, token string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func mustUnmarshal(t *testing.T, data []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode response %q: %v", string(data), err)
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// createTestReport creates a report through the API and returns its id.
func createTestReport(t *testing.T, r http.Handler, purpose, reportDate string) string {
	t.Helper()
	rec := performJSON(r, http.MethodPost, "/api/expense-reports", map[string]string{
		"purpose":    purpose,
		"reportDate": reportDate,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create report failed status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("create report returned no id: %s", rec.Body.String())
	}
	return id
}

// createTestExpense adds an expense to a report through the API and returns its id.
func createTestExpense(t *testing.T, r http.Handler, reportID, category, amount, expenseDate string) string {
	t.Helper()
	rec := performJSON(r, http.MethodPost, "/api/expenses", map[string]any{
		"reportId":    reportID,
		"category":    category,
		"amount":      amount,
		"expenseDate": expenseDate,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("create expense returned no id: %s", rec.Body.String())
	}
	return id
}

// reportTotal fetches a report and returns its totalAmount.
func reportTotal(t *testing.T, r http.Handler, reportID string) decimal.Decimal {
	t.Helper()
	rec := performRequest(r, http.MethodGet, "/api/expense-reports/"+reportID, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get report failed status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	total, ok := body["totalAmount"].(string)
	if !ok {
		t.Fatalf("totalAmount missing or not a string: %s", rec.Body.String())
	}
	return decimal.RequireFromString(total)
}

func wantTotal(t *testing.T, r http.Handler, reportID, want string) {
	t.Helper()
	got := reportTotal(t, r, reportID)
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("report %s totalAmount = %s, want %s", reportID, got, want)
	}
}
