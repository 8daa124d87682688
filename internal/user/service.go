// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/hitoshi/jobboard/internal/access"
	"github.com/hitoshi/jobboard/internal/model"
	"github.com/hitoshi/jobboard/internal/repository"
)

// UpdateProfileInput はプロフィール更新の入力パラメータ。
// 役割とメールアドレスは含まれない（アカウント作成後不変）。
// 役割固有でない項目は両役割で更新できる。
type UpdateProfileInput struct {
	Name  string
	Phone string

	// 求職者固有
	University string
	CGPA       string
	ResumeURL  string

	// 採用担当者固有
	Company     string
	LinkedInURL string
}

// Service はユーザー管理のサービス層。
// プロフィールの取得・更新と退会処理のビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jobRepo     repository.JobRepository
	appRepo     repository.ApplicationRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jobRepo repository.JobRepository,
	appRepo repository.ApplicationRepository,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jobRepo:     jobRepo,
		appRepo:     appRepo,
	}
}

// Profile は主体自身のプロフィールを返す。
func (s *Service) Profile(ctx context.Context, p *access.Principal) (*model.User, error) {
	if p == nil || p.UserID == "" {
		return nil, model.NewUnauthorizedError()
	}

	user, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// UpdateProfile は主体自身のプロフィールを更新する。
// 役割とメールアドレスは変更されず、役割固有の必須項目を検証する。
// 他方の役割の固有項目は入力にあっても無視される。
func (s *Service) UpdateProfile(ctx context.Context, p *access.Principal, input UpdateProfileInput) (*model.User, error) {
	if p == nil || p.UserID == "" {
		return nil, model.NewUnauthorizedError()
	}

	user, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	if err := validateUpdate(user.Role, input); err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Phone = strings.TrimSpace(input.Phone)

	// 役割固有の項目は自分の役割の分だけを反映する
	switch user.Role {
	case model.RoleJobSeeker:
		user.University = strings.TrimSpace(input.University)
		user.CGPA = strings.TrimSpace(input.CGPA)
		user.ResumeURL = strings.TrimSpace(input.ResumeURL)
	case model.RoleRecruiter:
		user.Company = strings.TrimSpace(input.Company)
		user.LinkedInURL = strings.TrimSpace(input.LinkedInURL)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("プロフィールの更新に失敗しました: %w", err)
	}

	return user, nil
}

// Withdraw は主体自身の退会処理を実行する。
// 削除順序: 自分の応募 → (採用担当者の場合)自分の求人とその応募 → セッション → ユーザー
// 求人削除時の応募はデータベースのCASCADE制約で削除される。
func (s *Service) Withdraw(ctx context.Context, p *access.Principal) error {
	if p == nil || p.UserID == "" {
		return model.NewUnauthorizedError()
	}

	user, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	slog.Info("退会処理を開始します",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	// 1. 自分の応募を削除
	if err := s.appRepo.DeleteByApplicantID(ctx, user.ID); err != nil {
		return fmt.Errorf("応募の削除に失敗しました: %w", err)
	}

	// 2. 採用担当者の場合は自分の求人を削除（応募はCASCADE削除）
	if user.Role == model.RoleRecruiter {
		jobs, err := s.jobRepo.ListByCreator(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
		}
		for _, job := range jobs {
			if err := s.jobRepo.Delete(ctx, job.ID); err != nil {
				return fmt.Errorf("求人の削除に失敗しました: %w", err)
			}
		}
	}

	// 3. セッションを削除
	if err := s.sessionRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("セッションの削除に失敗しました: %w", err)
	}

	// 4. ユーザーを削除
	if err := s.userRepo.DeleteByID(ctx, user.ID); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("退会処理が完了しました",
		slog.String("user_id", user.ID),
	)

	return nil
}

// validateUpdate はプロフィール更新の入力を役割に応じて検証する。
func validateUpdate(role model.Role, input UpdateProfileInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return model.NewMissingFieldError("name")
	}

	switch role {
	case model.RoleJobSeeker:
		if strings.TrimSpace(input.University) == "" {
			return model.NewMissingFieldError("university")
		}
		if strings.TrimSpace(input.CGPA) == "" {
			return model.NewMissingFieldError("cgpa")
		}
		if u := strings.TrimSpace(input.ResumeURL); u != "" && !isHTTPURL(u) {
			return model.NewInvalidURLError("resume_url")
		}
	case model.RoleRecruiter:
		if strings.TrimSpace(input.Company) == "" {
			return model.NewMissingFieldError("company")
		}
		if u := strings.TrimSpace(input.LinkedInURL); u != "" && !isHTTPURL(u) {
			return model.NewInvalidURLError("linkedin_url")
		}
	}

	return nil
}

// isHTTPURL はhttpまたはhttpsスキームの絶対URLかどうかを判定する。
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
