package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func watchlistContext(t *testing.T, method, payload, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	c, rec := newTestContext(t, method, "/api/users/:id/watchlist", payload)
	c.SetParamNames("id")
	c.SetParamValues(userID)
	return c, rec
}

func TestAddToWatchlist_RejectsInvalidUserID(t *testing.T) {
	c, rec := watchlistContext(t, http.MethodPost, `{"symbol": "AAPL"}`, "not-a-number")

	if err := AddToWatchlist(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAddToWatchlist_RejectsMissingSymbol(t *testing.T) {
	c, rec := watchlistContext(t, http.MethodPost, `{"company": "Apple Inc."}`, "1")

	if err := AddToWatchlist(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Success {
		t.Fatal("expected success=false for missing symbol")
	}
}

func TestAddToWatchlist_RejectsMalformedJSON(t *testing.T) {
	c, rec := watchlistContext(t, http.MethodPost, `{not json`, "1")

	if err := AddToWatchlist(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRemoveFromWatchlist_RejectsInvalidUserID(t *testing.T) {
	c, rec := newTestContext(t, http.MethodDelete, "/api/users/:id/watchlist/:symbol", "")
	c.SetParamNames("id", "symbol")
	c.SetParamValues("abc", "AAPL")

	if err := RemoveFromWatchlist(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
