package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/jobboard/internal/access"
	"github.com/hitoshi/jobboard/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	CSRFConfig        middleware.CSRFConfig
	RateLimiter       *middleware.RateLimiter

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 求人
	JobService JobServiceInterface

	// 応募
	ApplicationService ApplicationServiceInterface

	// プロフィール
	ProfileService ProfileServiceInterface

	// メトリクスエンドポイント
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → SecurityHeadersMiddleware
//	（認証ルートのみ）→ SessionMiddleware → CSRFMiddleware → RateLimitMiddleware → RouteGuard
//
// 求人一覧・詳細と認証エンドポイントは認証チェーンの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルートに効くミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	jobHandler := NewJobHandler(deps.JobService)
	appHandler := NewApplicationHandler(deps.ApplicationService)
	profileHandler := NewProfileHandler(deps.ProfileService)

	// --- 認証不要のルート ---

	// ヘルスチェック
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// メトリクス
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// CSRFトークン取得
	r.Method(http.MethodGet, "/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

	// 認証ルート（SignOut/MeはCookieから直接セッションを読む）
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// 求人一覧・詳細は誰でも閲覧できる
	r.Get("/api/jobs", jobHandler.List)
	r.Get("/api/jobs/{id}", jobHandler.Get)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → CSRF → RateLimit(General) → RouteGuard
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder, deps.UserFinder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		mutation := deps.RateLimiter.MutationMiddleware()

		// プロフィール管理（両役割共通、認証のみ必須）
		r.Route("/api/profile", func(r chi.Router) {
			r.Get("/", profileHandler.Get)
			r.Put("/", profileHandler.Update)
			r.Delete("/", profileHandler.Withdraw)
		})

		// 求人管理（採用担当者専用）
		r.With(middleware.NewRouteGuard(access.RouteCreatePosting), mutation).
			Post("/api/jobs", jobHandler.Create)
		r.With(middleware.NewRouteGuard(access.RouteRecruiterDashboard)).
			Get("/api/jobs/mine", jobHandler.ListMine)
		r.With(middleware.NewRouteGuard(access.RouteCreatePosting), mutation).
			Delete("/api/jobs/{id}", jobHandler.Delete)
		r.With(middleware.NewRouteGuard(access.RouteViewApplicants)).
			Get("/api/jobs/{id}/applicants", appHandler.ListByJob)

		// 応募管理（求職者専用）
		r.With(middleware.NewRouteGuard(access.RouteApply), mutation).
			Post("/api/jobs/{id}/apply", appHandler.Apply)
		r.With(middleware.NewRouteGuard(access.RouteApply), mutation).
			Delete("/api/jobs/{id}/apply", appHandler.Withdraw)
		r.With(middleware.NewRouteGuard(access.RouteJobSeekerDashboard)).
			Get("/api/applications", appHandler.ListMine)
		r.With(middleware.NewRouteGuard(access.RouteJobSeekerDashboard)).
			Get("/api/applications/job-ids", appHandler.AppliedJobIDs)
	})

	return r
}
