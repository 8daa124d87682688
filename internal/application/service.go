// Package application は応募ライフサイクルのドメインロジックを提供する。
//
// 応募はレコードの存在そのものが状態を表す2状態モデル（未応募/応募済み）で、
// 応募は決定的な複合IDによる冪等な挿入、取り下げはレコードの削除とする。
// 同一の(求人, 応募者)ペアに対する応募は高々1件に保たれる。
package application

import (
	"context"
	"fmt"

	"github.com/hitoshi/jobboard/internal/access"
	"github.com/hitoshi/jobboard/internal/model"
	"github.com/hitoshi/jobboard/internal/repository"
)

// Service は応募管理のサービス層。
type Service struct {
	appRepo  repository.ApplicationRepository
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
) *Service {
	return &Service{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
	}
}

// Apply は求人に応募する。求職者のみ実行できる。
// 既に応募済みの場合は新しいレコードを作成せず、既存の応募を返す（冪等）。
// 応募時点の求人タイトル・会社名・採用担当者IDを非正規化して保存する。
func (s *Service) Apply(ctx context.Context, p *access.Principal, jobID string) (*model.Application, error) {
	if p == nil || p.UserID == "" {
		return nil, model.NewUnauthorizedError()
	}
	if p.Role != model.RoleJobSeeker {
		return nil, model.NewRoleForbiddenError(model.RoleJobSeeker)
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if job == nil {
		return nil, model.NewJobNotFoundError(jobID)
	}

	applicant, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("応募者プロフィールの取得に失敗しました: %w", err)
	}
	if applicant == nil {
		return nil, model.NewUserNotFoundError()
	}

	app := &model.Application{
		ID:             model.ApplicationID(job.ID, applicant.ID),
		JobID:          job.ID,
		JobTitle:       job.Title,
		Company:        job.Company,
		RecruiterID:    job.CreatedBy,
		ApplicantID:    applicant.ID,
		ApplicantEmail: applicant.Email,
		Status:         model.StatusApplied,
	}

	created, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("応募の作成に失敗しました: %w", err)
	}

	// 既に応募済みの場合は永続済みのレコードを正として返す
	if !created {
		existing, err := s.appRepo.FindByID(ctx, app.ID)
		if err != nil {
			return nil, fmt.Errorf("応募の取得に失敗しました: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	return app, nil
}

// Withdraw は応募を取り下げる。求職者のみ実行できる。
// 取り下げはレコードの削除であり、求人は再応募可能な状態に戻る。
// 応募レコードが存在しない場合はAPPLICATION_NOT_FOUNDを返す。
func (s *Service) Withdraw(ctx context.Context, p *access.Principal, jobID string) error {
	if p == nil || p.UserID == "" {
		return model.NewUnauthorizedError()
	}
	if p.Role != model.RoleJobSeeker {
		return model.NewRoleForbiddenError(model.RoleJobSeeker)
	}

	deleted, err := s.appRepo.DeleteByID(ctx, model.ApplicationID(jobID, p.UserID))
	if err != nil {
		return fmt.Errorf("応募の取り下げに失敗しました: %w", err)
	}
	if !deleted {
		return model.NewApplicationNotFoundError(jobID)
	}

	return nil
}

// ListByApplicant は主体の応募一覧を応募日時の降順で返す。
// 求職者のダッシュボードで使用する。
func (s *Service) ListByApplicant(ctx context.Context, p *access.Principal) ([]*model.Application, error) {
	if p == nil || p.UserID == "" {
		return nil, model.NewUnauthorizedError()
	}
	if p.Role != model.RoleJobSeeker {
		return nil, model.NewRoleForbiddenError(model.RoleJobSeeker)
	}

	apps, err := s.appRepo.ListByApplicant(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("応募一覧の取得に失敗しました: %w", err)
	}
	return apps, nil
}

// AppliedJobIDs は主体が応募中の求人IDの集合を返す。
// UI側の応募済み表示に使用し、常に永続ストアの状態を正とする。
func (s *Service) AppliedJobIDs(ctx context.Context, p *access.Principal) (map[string]bool, error) {
	if p == nil || p.UserID == "" {
		return nil, model.NewUnauthorizedError()
	}
	if p.Role != model.RoleJobSeeker {
		return nil, model.NewRoleForbiddenError(model.RoleJobSeeker)
	}

	ids, err := s.appRepo.ListJobIDsByApplicant(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("応募済み求人IDの取得に失敗しました: %w", err)
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// ListByJob は指定求人への応募一覧を応募日時の降順で返す。
// 採用担当者のみ実行でき、かつ求人の作成者でなければならない。
// 役割が一致していても他の採用担当者の求人の応募者は閲覧できない。
func (s *Service) ListByJob(ctx context.Context, p *access.Principal, jobID string) ([]*model.Application, error) {
	if p == nil || p.UserID == "" {
		return nil, model.NewUnauthorizedError()
	}
	if p.Role != model.RoleRecruiter {
		return nil, model.NewRoleForbiddenError(model.RoleRecruiter)
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if job == nil {
		return nil, model.NewJobNotFoundError(jobID)
	}
	if !access.OwnsJob(p, job) {
		return nil, model.NewNotJobOwnerError(jobID)
	}

	apps, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("応募一覧の取得に失敗しました: %w", err)
	}
	return apps, nil
}
