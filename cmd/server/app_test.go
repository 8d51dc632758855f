package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/garage-estimates/internal/models"
	"github.com/diewo77/garage-estimates/internal/storage"
)

func newTestApp(t *testing.T) *App {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.DraftRecord{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewApp(storage.NewStore(db))
}

func TestHealthRoute(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestDraftRoundTripThroughRouter(t *testing.T) {
	app := newTestApp(t)

	put := httptest.NewRequest(http.MethodPut, "/api/draft",
		strings.NewReader(`{"clientDetails":{"name":"Route Test"}}`))
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, put)
	if rr.Code != http.StatusOK {
		t.Fatalf("PUT /api/draft = %d: %s", rr.Code, rr.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/api/draft", nil)
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, get)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /api/draft = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Route Test") {
		t.Errorf("stored draft missing from response: %s", rr.Body.String())
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/draft", nil)
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, del)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("DELETE /api/draft = %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/draft", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}
