// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの役割を表す閉じた列挙型。
// アカウント作成時に一度だけ決定され、以後変更されない。
type Role string

const (
	// RoleJobSeeker は求職者。
	RoleJobSeeker Role = "jobseeker"
	// RoleRecruiter は採用担当者。
	RoleRecruiter Role = "recruiter"
)

// ParseRole は文字列からRoleを解析する。
// 未知の文字列は役割として解釈せず、falseを返す。
// 未知の役割がいずれかの役割の権限に落ちることを防ぐため、デフォルト値は存在しない。
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleJobSeeker:
		return RoleJobSeeker, true
	case RoleRecruiter:
		return RoleRecruiter, true
	default:
		return "", false
	}
}

// IsValid はRoleが定義済みの値かどうかを返す。
func (r Role) IsValid() bool {
	return r == RoleJobSeeker || r == RoleRecruiter
}

// User はサービス利用ユーザーを表す。
// 役割固有の項目（大学・CGPA・履歴書リンクは求職者、会社名・LinkedInリンクは採用担当者）は
// 他方の役割では空文字列のまま保持される。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	Name         string
	Phone        string

	// 求職者固有
	University string
	CGPA       string
	ResumeURL  string

	// 採用担当者固有
	Company     string
	LinkedInURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
