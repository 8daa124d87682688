package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/jobboard/internal/access"
)

// NewRouteGuard は指定されたルート種別のアクセスポリシーを適用するミドルウェアを返す。
// コンテキストの主体に対してaccess.Decideを評価し、判定結果をHTTPに変換する:
//   - RedirectToLogin → 401 + Location: /login
//   - RedirectToHome  → 403 + Location: /
//
// SessionMiddlewareの後に配置する。主体が解決できていない場合も
// Decideが未認証として扱うため、このミドルウェア自体は認証を前提としない。
func NewRouteGuard(route access.RouteKind) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := PrincipalFromContext(r.Context())

			switch decision := access.Decide(principal, route); decision {
			case access.Allow:
				next.ServeHTTP(w, r)

			case access.RedirectToLogin:
				writeGuardResponse(w, http.StatusUnauthorized, "/login",
					"UNAUTHORIZED", "auth", "認証が必要です。")

			case access.RedirectToHome:
				slog.Warn("route access denied",
					slog.String("route", string(route)),
					slog.String("decision", decision.String()),
					slog.String("user_id", userIDOf(principal)),
				)
				writeGuardResponse(w, http.StatusForbidden, "/",
					"ROLE_FORBIDDEN", "permission", "この操作を実行する権限がありません。")

			default:
				// 未知の判定は拒否側に倒す
				writeGuardResponse(w, http.StatusForbidden, "/",
					"ROLE_FORBIDDEN", "permission", "この操作を実行する権限がありません。")
			}
		})
	}
}

// writeGuardResponse はポリシー拒否のJSONレスポンスを書き込む。
// Locationヘッダーはクライアント側の遷移先のヒント。
func writeGuardResponse(w http.ResponseWriter, status int, location, code, category, message string) {
	w.Header().Set("Location", location)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(map[string]string{
		"code":     code,
		"message":  message,
		"category": category,
		"action":   "適切なアカウントでログインしてください。",
	})
}

func userIDOf(p *access.Principal) string {
	if p == nil {
		return ""
	}
	return p.UserID
}
