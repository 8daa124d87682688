// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, permission, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeEmailInUse          = "EMAIL_IN_USE"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeJobNotFound         = "JOB_NOT_FOUND"
	ErrCodeApplicationNotFound = "APPLICATION_NOT_FOUND"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeRoleForbidden       = "ROLE_FORBIDDEN"
	ErrCodeNotJobOwner         = "NOT_JOB_OWNER"
	ErrCodeInvalidRole         = "INVALID_ROLE"
	ErrCodeInvalidType         = "INVALID_EMPLOYMENT_TYPE"
	ErrCodeInvalidCategory     = "INVALID_CATEGORY"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeInvalidURL          = "INVALID_URL"
)

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// 未登録メールアドレスとパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewEmailInUseError はメールアドレス重複エラーを生成する。
func NewEmailInUseError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailInUse,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "auth",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewJobNotFoundError は求人未検出エラーを生成する。
func NewJobNotFoundError(jobID string) *APIError {
	return &APIError{
		Code:     ErrCodeJobNotFound,
		Message:  fmt.Sprintf("指定された求人が見つかりません: %s", jobID),
		Category: "validation",
		Action:   "求人IDを確認してください。削除済みの可能性があります。",
	}
}

// NewApplicationNotFoundError は応募未検出エラーを生成する。
func NewApplicationNotFoundError(jobID string) *APIError {
	return &APIError{
		Code:     ErrCodeApplicationNotFound,
		Message:  fmt.Sprintf("指定された求人への応募が見つかりません: %s", jobID),
		Category: "validation",
		Action:   "応募済みの求人に対してのみ取り下げできます。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewRoleForbiddenError は役割不一致による操作拒否エラーを生成する。
func NewRoleForbiddenError(required Role) *APIError {
	return &APIError{
		Code:     ErrCodeRoleForbidden,
		Message:  fmt.Sprintf("この操作には%sの役割が必要です。", roleLabel(required)),
		Category: "permission",
		Action:   "お使いのアカウントではこの操作は実行できません。",
	}
}

// NewNotJobOwnerError は求人の所有権不一致エラーを生成する。
// 役割が一致していても、求人の作成者以外には許可されない操作に使用する。
func NewNotJobOwnerError(jobID string) *APIError {
	return &APIError{
		Code:     ErrCodeNotJobOwner,
		Message:  fmt.Sprintf("この求人を操作する権限がありません: %s", jobID),
		Category: "permission",
		Action:   "自分が作成した求人に対してのみ実行できます。",
	}
}

// NewInvalidRoleError は無効な役割エラーを生成する。
func NewInvalidRoleError(role string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRole,
		Message:  fmt.Sprintf("無効な役割です: %s", role),
		Category: "validation",
		Action:   "役割にはjobseekerまたはrecruiterを指定してください。",
	}
}

// NewInvalidEmploymentTypeError は無効な雇用形態エラーを生成する。
func NewInvalidEmploymentTypeError(t string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidType,
		Message:  fmt.Sprintf("無効な雇用形態です: %s", t),
		Category: "validation",
		Action:   "雇用形態にはFull-time、Part-time、Internship、Contractのいずれかを指定してください。",
	}
}

// NewInvalidCategoryError は無効なカテゴリエラーを生成する。
func NewInvalidCategoryError(c string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCategory,
		Message:  fmt.Sprintf("無効なカテゴリです: %s", c),
		Category: "validation",
		Action:   "定義済みの6カテゴリのいずれかを指定してください。",
	}
}

// NewMissingFieldError は必須項目未入力エラーを生成する。
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("必須項目が入力されていません: %s", field),
		Category: "validation",
		Action:   "すべての必須項目を入力してください。",
	}
}

// NewInvalidURLError は無効なURLエラーを生成する。
func NewInvalidURLError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidURL,
		Message:  fmt.Sprintf("無効なURLです: %s", field),
		Category: "validation",
		Action:   "http:// または https:// で始まるURLを入力してください。",
	}
}

// roleLabel は役割の表示名を返す。
func roleLabel(r Role) string {
	switch r {
	case RoleJobSeeker:
		return "求職者"
	case RoleRecruiter:
		return "採用担当者"
	default:
		return string(r)
	}
}
