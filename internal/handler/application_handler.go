package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/jobboard/internal/access"
	"github.com/hitoshi/jobboard/internal/middleware"
	"github.com/hitoshi/jobboard/internal/model"
)

// ApplicationServiceInterface は応募ハンドラーが必要とするサービスインターフェース。
type ApplicationServiceInterface interface {
	// Apply は求人に応募する。冪等で、二重応募は既存の応募を返す。
	Apply(ctx context.Context, p *access.Principal, jobID string) (*model.Application, error)
	// Withdraw は応募を取り下げる（レコードの削除）。
	Withdraw(ctx context.Context, p *access.Principal, jobID string) error
	// ListByApplicant は主体の応募一覧を返す。
	ListByApplicant(ctx context.Context, p *access.Principal) ([]*model.Application, error)
	// AppliedJobIDs は主体が応募中の求人IDの集合を返す。
	AppliedJobIDs(ctx context.Context, p *access.Principal) (map[string]bool, error)
	// ListByJob は求人への応募一覧を返す。求人の作成者のみ。
	ListByJob(ctx context.Context, p *access.Principal, jobID string) ([]*model.Application, error)
}

// ApplicationHandler は応募管理のHTTPハンドラー。
type ApplicationHandler struct {
	service ApplicationServiceInterface
}

// NewApplicationHandler はApplicationHandlerを生成する。
func NewApplicationHandler(service ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
	}
}

// Apply は求人への応募を処理する。求職者のみ。
// POST /api/jobs/{id}/apply
// 冪等: 既に応募済みの場合も200で既存の応募を返す。
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	jobID := chi.URLParam(r, "id")
	app, err := h.service.Apply(r.Context(), principal, jobID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

// Withdraw は応募の取り下げを処理する。求職者のみ。
// DELETE /api/jobs/{id}/apply
func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	jobID := chi.URLParam(r, "id")
	if err := h.service.Withdraw(r.Context(), principal, jobID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMine は主体の応募一覧を返す。求職者のダッシュボード用。
// GET /api/applications
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	apps, err := h.service.ListByApplicant(r.Context(), principal)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponses(apps))
}

// AppliedJobIDs は主体が応募中の求人IDを返す。UI側の応募済み判定用。
// GET /api/applications/job-ids
func (h *ApplicationHandler) AppliedJobIDs(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	set, err := h.service.AppliedJobIDs(r.Context(), principal)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	writeJSON(w, http.StatusOK, map[string][]string{"job_ids": ids})
}

// ListByJob は求人への応募者一覧を返す。求人の作成者のみ。
// GET /api/jobs/{id}/applicants
func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	jobID := chi.URLParam(r, "id")
	apps, err := h.service.ListByJob(r.Context(), principal, jobID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponses(apps))
}
