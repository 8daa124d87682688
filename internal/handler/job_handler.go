package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/jobboard/internal/access"
	"github.com/hitoshi/jobboard/internal/job"
	"github.com/hitoshi/jobboard/internal/middleware"
	"github.com/hitoshi/jobboard/internal/model"
)

// JobServiceInterface は求人ハンドラーが必要とするサービスインターフェース。
type JobServiceInterface interface {
	// Create は新しい求人を作成する。採用担当者のみ。
	Create(ctx context.Context, p *access.Principal, input job.CreateInput) (*model.Job, error)
	// List は全求人を作成日時の降順で返し、条件で絞り込む。
	List(ctx context.Context, criteria job.FilterCriteria) ([]*model.Job, error)
	// Get は指定IDの求人を取得する。
	Get(ctx context.Context, jobID string) (*model.Job, error)
	// ListByCreator は主体が作成した求人を返す。
	ListByCreator(ctx context.Context, p *access.Principal) ([]*model.Job, error)
	// Delete は求人を削除する。作成者のみ。
	Delete(ctx context.Context, p *access.Principal, jobID string) error
}

// JobHandler は求人管理のHTTPハンドラー。
type JobHandler struct {
	service JobServiceInterface
}

// NewJobHandler はJobHandlerを生成する。
func NewJobHandler(service JobServiceInterface) *JobHandler {
	return &JobHandler{
		service: service,
	}
}

// createJobRequest は求人作成リクエストのボディ。
// 会社名は受け付けず、作成者のプロフィールから補完される。
type createJobRequest struct {
	Title          string `json:"title"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	Category       string `json:"category"`
	Salary         string `json:"salary"`
	Description    string `json:"description"`
}

// List は求人一覧を返す。認証不要。
// GET /api/jobs?text=&location=&type=&category=
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := job.FilterCriteria{
		Text:     q.Get("text"),
		Location: q.Get("location"),
		Type:     q.Get("type"),
		Category: q.Get("category"),
	}

	jobs, err := h.service.List(r.Context(), criteria)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobResponses(jobs))
}

// Get は求人詳細を返す。認証不要。
// GET /api/jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	j, err := h.service.Get(r.Context(), jobID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobResponse(j))
}

// Create は求人作成を処理する。採用担当者のみ。
// POST /api/jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	j, err := h.service.Create(r.Context(), principal, job.CreateInput{
		Title:          req.Title,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Category:       req.Category,
		Salary:         req.Salary,
		Description:    req.Description,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJobResponse(j))
}

// ListMine は主体が作成した求人一覧を返す。採用担当者のダッシュボード用。
// GET /api/jobs/mine
func (h *JobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	jobs, err := h.service.ListByCreator(r.Context(), principal)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobResponses(jobs))
}

// Delete は求人削除を処理する。作成者のみ。
// DELETE /api/jobs/{id}
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	jobID := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), principal, jobID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
