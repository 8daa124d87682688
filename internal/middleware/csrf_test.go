package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func csrfHandler() http.Handler {
	return NewCSRFMiddleware(CSRFConfig{})(okHandler())
}

// TestCSRFMiddleware_GETRequest_PassesThroughWithoutToken は安全なメソッドが
// トークンなしで通過することを検証する。
func TestCSRFMiddleware_GETRequest_PassesThroughWithoutToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// TestCSRFMiddleware_GETRequest_SetsCSRFCookie は安全なメソッドで
// CSRFトークンCookieが設定されることを検証する。
func TestCSRFMiddleware_GETRequest_SetsCSRFCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "csrf_token" && c.Value != "" {
			return
		}
	}
	t.Error("csrf_token cookie was not set")
}

// TestCSRFMiddleware_POSTRequest_NoToken_Returns403 は状態変更メソッドが
// トークンなしで403になることを検証する。
func TestCSRFMiddleware_POSTRequest_NoToken_Returns403(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/jobs", nil)
		rec := httptest.NewRecorder()
		csrfHandler().ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: status = %d, want %d", method, rec.Code, http.StatusForbidden)
		}
	}
}

// TestCSRFMiddleware_POSTRequest_MismatchToken_Returns403 はCookieとヘッダーの
// トークン不一致が403になることを検証する。
func TestCSRFMiddleware_POSTRequest_MismatchToken_Returns403(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-a"})
	req.Header.Set("X-CSRF-Token", "token-b")
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

// TestCSRFMiddleware_POSTRequest_ValidToken_PassesThrough はトークン一致で
// 通過することを検証する。
func TestCSRFMiddleware_POSTRequest_ValidToken_PassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/job-1/apply", nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-a"})
	req.Header.Set("X-CSRF-Token", "token-a")
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// TestCSRFTokenHandler_SetsTokenCookieAndReturnsJSON はトークン取得
// エンドポイントがCookie設定とJSON応答を行うことを検証する。
func TestCSRFTokenHandler_SetsTokenCookieAndReturnsJSON(t *testing.T) {
	handler := NewCSRFTokenHandler(CSRFConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["token"] == "" {
		t.Error("token is empty")
	}

	var cookieToken string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "csrf_token" {
			cookieToken = c.Value
		}
	}
	if cookieToken != body["token"] {
		t.Errorf("cookie token %q != body token %q", cookieToken, body["token"])
	}
}

// TestCSRFTokenHandler_ExistingCookie_ReturnsSameToken は既存トークンが
// 再利用されることを検証する。
func TestCSRFTokenHandler_ExistingCookie_ReturnsSameToken(t *testing.T) {
	handler := NewCSRFTokenHandler(CSRFConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "existing-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["token"] != "existing-token" {
		t.Errorf("token = %q, want %q", body["token"], "existing-token")
	}
}
