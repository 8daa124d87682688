// Package access はロールベースのアクセスポリシーを定義する。
//
// Decideは(役割, ルート種別)の組に対する純粋な判定関数で、
// HTTPレイヤーはこの判定結果をステータスコードとリダイレクト先に変換する。
// 役割の照合はmodel.Roleの閉じた列挙に対して網羅的に行い、
// 未知の役割文字列が暗黙に「許可」へ落ちることはない。
package access

import "github.com/hitoshi/jobboard/internal/model"

// RouteKind は保護対象となるルートの種別を表す。
type RouteKind string

const (
	// 認証不要のルート
	RouteHome       RouteKind = "home"
	RouteJobList    RouteKind = "job-list"
	RouteJobDetail  RouteKind = "job-detail"
	RouteLogin      RouteKind = "login"
	RouteSignup     RouteKind = "signup"

	// 採用担当者専用のルート
	RouteCreatePosting      RouteKind = "create-posting"
	RouteRecruiterDashboard RouteKind = "recruiter-dashboard"
	RouteRecruiterProfile   RouteKind = "recruiter-profile"
	RouteViewApplicants     RouteKind = "view-applicants"

	// 求職者専用のルート
	RouteApply              RouteKind = "apply"
	RouteJobSeekerDashboard RouteKind = "jobseeker-dashboard"
	RouteJobSeekerProfile   RouteKind = "jobseeker-profile"
)

// Decision はアクセスポリシーの判定結果を表す。
type Decision int

const (
	// Allow はアクセスを許可する。
	Allow Decision = iota
	// RedirectToLogin は未認証のためログイン画面へ誘導する。
	RedirectToLogin
	// RedirectToHome は役割不一致のためホームへ誘導する。
	RedirectToHome
)

// String はDecisionの文字列表現を返す。
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToHome:
		return "redirect-to-home"
	default:
		return "unknown"
	}
}

// Principal は認証済みの主体を表す。役割とは独立した概念。
// 役割が解決できなかった場合（プロファイル未検出等）はRoleがゼロ値のまま保持され、
// 役割を要求するルートでは不一致として扱われる。
type Principal struct {
	UserID string
	Role   model.Role
}

// requiredRole はルート種別ごとに要求される役割を返す。
// 役割を要求しないルートはok=falseを返す。
func requiredRole(route RouteKind) (model.Role, bool) {
	switch route {
	case RouteCreatePosting, RouteRecruiterDashboard, RouteRecruiterProfile, RouteViewApplicants:
		return model.RoleRecruiter, true
	case RouteApply, RouteJobSeekerDashboard, RouteJobSeekerProfile:
		return model.RoleJobSeeker, true
	default:
		return "", false
	}
}

// requiresAuth はルート種別が認証を要求するかどうかを返す。
func requiresAuth(route RouteKind) bool {
	switch route {
	case RouteHome, RouteJobList, RouteJobDetail, RouteLogin, RouteSignup:
		return false
	default:
		return true
	}
}

// Decide は(主体, ルート種別)に対するアクセス可否を判定する。
// 判定は次の順で行う:
//  1. 認証必須のルートで主体が存在しない → RedirectToLogin
//  2. 特定役割必須のルートで役割が一致しない → RedirectToHome
//  3. それ以外 → Allow
func Decide(p *Principal, route RouteKind) Decision {
	if requiresAuth(route) && (p == nil || p.UserID == "") {
		return RedirectToLogin
	}

	required, ok := requiredRole(route)
	if ok && (p == nil || p.Role != required) {
		return RedirectToHome
	}

	return Allow
}

// OwnsJob は主体が求人の作成者かどうかを判定する。
// 応募者一覧の閲覧など、役割だけでなく所有権が必要な操作で使用する。
func OwnsJob(p *Principal, job *model.Job) bool {
	if p == nil || job == nil {
		return false
	}
	return p.UserID == job.CreatedBy
}
