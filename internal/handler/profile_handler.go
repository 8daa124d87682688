package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/jobboard/internal/access"
	"github.com/hitoshi/jobboard/internal/middleware"
	"github.com/hitoshi/jobboard/internal/model"
	"github.com/hitoshi/jobboard/internal/user"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// Profile は主体自身のプロフィールを返す。
	Profile(ctx context.Context, p *access.Principal) (*model.User, error)
	// UpdateProfile は主体自身のプロフィールを更新する。役割とメールアドレスは不変。
	UpdateProfile(ctx context.Context, p *access.Principal, input user.UpdateProfileInput) (*model.User, error)
	// Withdraw は主体自身の退会処理を実行する。
	Withdraw(ctx context.Context, p *access.Principal) error
}

// ProfileHandler はプロフィール管理のHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// updateProfileRequest はプロフィール更新リクエストのボディ。
// 役割とメールアドレスは受け付けない。
type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`

	University string `json:"university"`
	CGPA       string `json:"cgpa"`
	ResumeURL  string `json:"resume_url"`

	Company     string `json:"company"`
	LinkedInURL string `json:"linkedin_url"`
}

// Get は自分のプロフィールを返す。
// GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	u, err := h.service.Profile(r.Context(), principal)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Update は自分のプロフィールを更新する。
// PUT /api/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), principal, user.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		University:  req.University,
		CGPA:        req.CGPA,
		ResumeURL:   req.ResumeURL,
		Company:     req.Company,
		LinkedInURL: req.LinkedInURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Withdraw は自分のアカウントを削除する。
// DELETE /api/profile
func (h *ProfileHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Withdraw(r.Context(), principal); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
