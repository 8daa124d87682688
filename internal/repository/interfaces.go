// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/jobboard/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスが既に使用されている場合はErrDuplicateを返す。
	Create(ctx context.Context, user *model.User) error

	// UpdateProfile はプロフィール項目を更新する。
	// 役割とメールアドレスは更新対象に含まれない（役割はアカウント作成後不変）。
	UpdateProfile(ctx context.Context, user *model.User) error

	// DeleteByID は指定IDのユーザーを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
	// DeleteExpired は期限切れの全セッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// JobRepository は求人データの永続化インターフェース。
type JobRepository interface {
	// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Job, error)

	// Create は求人を作成する。
	Create(ctx context.Context, job *model.Job) error

	// List は全求人を作成日時の降順で返す。
	List(ctx context.Context) ([]*model.Job, error)

	// ListByCreator は指定ユーザーが作成した求人を作成日時の降順で返す。
	ListByCreator(ctx context.Context, userID string) ([]*model.Job, error)

	// Delete は指定IDの求人を削除する。
	// 関連するapplicationsはCASCADE削除される。
	Delete(ctx context.Context, id string) error
}

// ApplicationRepository は応募データの永続化インターフェース。
type ApplicationRepository interface {
	// FindByID は指定IDの応募を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Application, error)

	// Create は応募を冪等に作成する。
	// 複合IDが既に存在する場合は何も書き込まず、created=falseを返す。
	Create(ctx context.Context, app *model.Application) (created bool, err error)

	// DeleteByID は指定IDの応募を削除する。
	// 削除対象が存在した場合はtrueを返す。
	DeleteByID(ctx context.Context, id string) (deleted bool, err error)

	// DeleteByApplicantID は指定応募者の全応募を削除する。
	DeleteByApplicantID(ctx context.Context, applicantID string) error

	// ListByApplicant は指定応募者の応募一覧を応募日時の降順で返す。
	ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error)

	// ListByJob は指定求人への応募一覧を応募日時の降順で返す。
	ListByJob(ctx context.Context, jobID string) ([]*model.Application, error)

	// ListJobIDsByApplicant は指定応募者が応募中の求人IDを返す。
	// UI側の応募済み判定に使用し、常に永続ストアを正とする。
	ListJobIDsByApplicant(ctx context.Context, applicantID string) ([]string, error)

	// DeleteOrphaned は参照先の求人が存在しない応募を削除し、削除件数を返す。
	DeleteOrphaned(ctx context.Context) (int64, error)
}
