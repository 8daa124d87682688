// Package job は求人管理のドメインロジックを提供する。
package job

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hitoshi/jobboard/internal/access"
	"github.com/hitoshi/jobboard/internal/model"
	"github.com/hitoshi/jobboard/internal/repository"
	"github.com/hitoshi/jobboard/internal/security"
)

// CreateInput は求人作成の入力パラメータ。
// 会社名は入力に含まれず、作成者のプロフィールから常に補完される。
type CreateInput struct {
	Title          string
	Location       string
	EmploymentType string
	Category       string
	Salary         string
	Description    string
}

// Service は求人管理のサービス層。
// 求人の作成、一覧取得、削除のビジネスロジックを提供する。
type Service struct {
	jobRepo   repository.JobRepository
	userRepo  repository.UserRepository
	sanitizer security.DescriptionSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	sanitizer security.DescriptionSanitizerService,
) *Service {
	return &Service{
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		sanitizer: sanitizer,
	}
}

// Create は新しい求人を作成する。採用担当者のみ実行できる。
// 会社名はリクエストではなく作成者のプロフィールの会社名を使用する。
// 説明文は保存前にサニタイズされる。
func (s *Service) Create(ctx context.Context, p *access.Principal, input CreateInput) (*model.Job, error) {
	if p == nil || p.UserID == "" {
		return nil, model.NewUnauthorizedError()
	}
	if p.Role != model.RoleRecruiter {
		return nil, model.NewRoleForbiddenError(model.RoleRecruiter)
	}

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	creator, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("作成者プロフィールの取得に失敗しました: %w", err)
	}
	if creator == nil {
		return nil, model.NewUserNotFoundError()
	}

	job := &model.Job{
		ID:             uuid.New().String(),
		Title:          strings.TrimSpace(input.Title),
		Company:        creator.Company,
		Location:       strings.TrimSpace(input.Location),
		EmploymentType: model.EmploymentType(input.EmploymentType),
		Category:       model.Category(input.Category),
		Salary:         strings.TrimSpace(input.Salary),
		Description:    s.sanitizer.Sanitize(input.Description),
		CreatedBy:      creator.ID,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("求人の作成に失敗しました: %w", err)
	}

	return job, nil
}

// List は全求人を作成日時の降順で返し、条件で絞り込む。
// 一致する求人がない場合は空スライスを返す。
func (s *Service) List(ctx context.Context, criteria FilterCriteria) ([]*model.Job, error) {
	jobs, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
	}
	return Filter(jobs, criteria), nil
}

// Get は指定IDの求人を取得する。誰でも閲覧できる。
func (s *Service) Get(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if job == nil {
		return nil, model.NewJobNotFoundError(jobID)
	}
	return job, nil
}

// ListByCreator は主体が作成した求人を作成日時の降順で返す。
// 採用担当者のダッシュボードで使用する。
func (s *Service) ListByCreator(ctx context.Context, p *access.Principal) ([]*model.Job, error) {
	if p == nil || p.UserID == "" {
		return nil, model.NewUnauthorizedError()
	}
	if p.Role != model.RoleRecruiter {
		return nil, model.NewRoleForbiddenError(model.RoleRecruiter)
	}

	jobs, err := s.jobRepo.ListByCreator(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
	}
	return jobs, nil
}

// Delete は求人を削除する。求人の作成者のみ実行できる。
// 他の採用担当者であっても作成者以外には許可されない。
// 求人への応募はデータベースのCASCADE制約により同時に削除される。
func (s *Service) Delete(ctx context.Context, p *access.Principal, jobID string) error {
	if p == nil || p.UserID == "" {
		return model.NewUnauthorizedError()
	}
	if p.Role != model.RoleRecruiter {
		return model.NewRoleForbiddenError(model.RoleRecruiter)
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if job == nil {
		return model.NewJobNotFoundError(jobID)
	}
	if !access.OwnsJob(p, job) {
		return model.NewNotJobOwnerError(jobID)
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("求人の削除に失敗しました: %w", err)
	}

	return nil
}

// validateCreateInput は求人作成の入力を検証する。
func validateCreateInput(input CreateInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return model.NewMissingFieldError("title")
	}
	if strings.TrimSpace(input.Location) == "" {
		return model.NewMissingFieldError("location")
	}
	if strings.TrimSpace(input.Salary) == "" {
		return model.NewMissingFieldError("salary")
	}
	if strings.TrimSpace(input.Description) == "" {
		return model.NewMissingFieldError("description")
	}
	if !model.EmploymentType(input.EmploymentType).IsValid() {
		return model.NewInvalidEmploymentTypeError(input.EmploymentType)
	}
	if !model.Category(input.Category).IsValid() {
		return model.NewInvalidCategoryError(input.Category)
	}
	return nil
}
