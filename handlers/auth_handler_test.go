package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewRequestValidator()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) AuthResponse {
	t.Helper()

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestSignUp_RejectsMalformedJSON(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/sign-up", `{not json`)

	if err := SignUp(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Success {
		t.Fatal("expected success=false for malformed payload")
	}
}

func TestSignUp_RejectsShortPassword(t *testing.T) {
	payload := `{
		"email": "a@b.com",
		"password": "short",
		"fullName": "Ann",
		"country": "RO",
		"investmentGoals": "Growth",
		"riskTolerance": "Medium",
		"preferredIndustry": "Technology"
	}`
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/sign-up", payload)

	if err := SignUp(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Success {
		t.Fatal("expected success=false for short password")
	}
}

func TestSignUp_RejectsMissingProfileFields(t *testing.T) {
	payload := `{"email": "a@b.com", "password": "longenough", "fullName": "Ann"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/sign-up", payload)

	if err := SignUp(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSignIn_RejectsInvalidEmail(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/sign-in", `{"email": "not-an-email", "password": "whatever"}`)

	if err := SignIn(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Success {
		t.Fatal("expected success=false for invalid email")
	}
}

func TestSignOut_ReturnsSuccess(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/sign-out", `{}`)

	if err := SignOut(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); !resp.Success {
		t.Fatal("expected success=true for sign-out")
	}
}
