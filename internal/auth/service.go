// Package auth はメールアドレス・パスワード認証とセッション管理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/jobboard/internal/model"
	"github.com/hitoshi/jobboard/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      *PasswordHasher
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	hasher *PasswordHasher,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		config:      config,
	}
}

// SignUpInput はアカウント作成の入力を表す。
// 役割はここで一度だけ指定され、以後変更するフローは存在しない。
type SignUpInput struct {
	Email    string
	Password string
	Role     string
	Name     string
	Phone    string

	// 求職者固有
	University string
	CGPA       string
	ResumeURL  string

	// 採用担当者固有
	Company     string
	LinkedInURL string
}

// SignUp はアカウントを作成しセッションを発行する。
// メールアドレスが既に使用されている場合はEmailInUseエラーを返す。
// 役割固有の必須項目が不足している場合はバリデーションエラーを返す。
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (*model.Session, error) {
	role, ok := model.ParseRole(input.Role)
	if !ok {
		return nil, model.NewInvalidRoleError(input.Role)
	}

	if err := validateSignUp(role, input); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
		Name:         input.Name,
		Phone:        input.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 役割固有の項目は当該役割の場合のみ保存し、他方は空文字列のままとする
	switch role {
	case model.RoleJobSeeker:
		user.University = input.University
		user.CGPA = input.CGPA
		user.ResumeURL = input.ResumeURL
	case model.RoleRecruiter:
		user.Company = input.Company
		user.LinkedInURL = input.LinkedInURL
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewEmailInUseError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new user created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// SignIn はメールアドレスとパスワードで認証しセッションを発行する。
// 未登録メールアドレスとパスワード不一致は同一のエラーとして返す。
func (s *Service) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !s.hasher.Verify(user.PasswordHash, password) {
		return nil, model.NewInvalidCredentialsError()
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user signed in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return session, nil
}

// SignOut はセッションを破棄する。
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user signed out", slog.String("session_id", sessionID))
	return nil
}

// CurrentUser はセッションから現在のユーザーを取得する。
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or expired")
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return user, nil
}

// validateSignUp はアカウント作成入力の共通項目と役割固有項目を検証する。
func validateSignUp(role model.Role, input SignUpInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return model.NewMissingFieldError("email")
	}
	if len(input.Password) < 6 {
		return model.NewMissingFieldError("password（6文字以上）")
	}
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
		if input.ResumeURL != "" && !isHTTPURL(input.ResumeURL) {
			return model.NewInvalidURLError("resume_url")
		}
	case model.RoleRecruiter:
		if strings.TrimSpace(input.Company) == "" {
			return model.NewMissingFieldError("company")
		}
		if input.LinkedInURL != "" && !isHTTPURL(input.LinkedInURL) {
			return model.NewInvalidURLError("linkedin_url")
		}
	}

	return nil
}

// isHTTPURL は文字列がhttp/httpsのURLかどうかを返す。
// 外部参照リンクは保存するだけで取得は行わないため、スキームのみ確認する。
func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
