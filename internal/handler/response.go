// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/jobboard/internal/model"
)

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// userResponse はユーザー情報のAPIレスポンス。
// パスワードハッシュは含まない。役割固有の項目は空の場合省略する。
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`

	University string `json:"university,omitempty"`
	CGPA       string `json:"cgpa,omitempty"`
	ResumeURL  string `json:"resume_url,omitempty"`

	Company     string `json:"company,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
}

// jobResponse は求人情報のAPIレスポンス。
type jobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Category       string    `json:"category"`
	Salary         string    `json:"salary"`
	Description    string    `json:"description"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// applicationResponse は応募情報のAPIレスポンス。
type applicationResponse struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	JobTitle       string    `json:"job_title"`
	Company        string    `json:"company"`
	ApplicantID    string    `json:"applicant_id"`
	ApplicantEmail string    `json:"applicant_email"`
	Status         string    `json:"status"`
	AppliedAt      time.Time `json:"applied_at"`
}

// --- 変換ヘルパー ---

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		Role:        string(user.Role),
		Name:        user.Name,
		Phone:       user.Phone,
		University:  user.University,
		CGPA:        user.CGPA,
		ResumeURL:   user.ResumeURL,
		Company:     user.Company,
		LinkedInURL: user.LinkedInURL,
	}
}

// toJobResponse はmodel.JobからAPIレスポンスに変換する。
func toJobResponse(job *model.Job) jobResponse {
	return jobResponse{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.Company,
		Location:       job.Location,
		EmploymentType: string(job.EmploymentType),
		Category:       string(job.Category),
		Salary:         job.Salary,
		Description:    job.Description,
		CreatedBy:      job.CreatedBy,
		CreatedAt:      job.CreatedAt,
	}
}

// toJobResponses は求人スライスをAPIレスポンスに変換する。
// ゼロ件の場合もnullではなく[]としてシリアライズされる。
func toJobResponses(jobs []*model.Job) []jobResponse {
	results := make([]jobResponse, len(jobs))
	for i, job := range jobs {
		results[i] = toJobResponse(job)
	}
	return results
}

// toApplicationResponse はmodel.ApplicationからAPIレスポンスに変換する。
func toApplicationResponse(app *model.Application) applicationResponse {
	return applicationResponse{
		ID:             app.ID,
		JobID:          app.JobID,
		JobTitle:       app.JobTitle,
		Company:        app.Company,
		ApplicantID:    app.ApplicantID,
		ApplicantEmail: app.ApplicantEmail,
		Status:         string(app.Status),
		AppliedAt:      app.AppliedAt,
	}
}

// toApplicationResponses は応募スライスをAPIレスポンスに変換する。
func toApplicationResponses(apps []*model.Application) []applicationResponse {
	results := make([]applicationResponse, len(apps))
	for i, app := range apps {
		results[i] = toApplicationResponse(app)
	}
	return results
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeJSON(w, statusCode, apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// writeInvalidRequest はリクエストボディの解析失敗を400で書き込む。
func writeInvalidRequest(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	})
}

// writeUnauthorized は未認証エラーを401で書き込む。
func writeUnauthorized(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeEmailInUse:
		return http.StatusConflict
	case model.ErrCodeJobNotFound, model.ErrCodeApplicationNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeRoleForbidden, model.ErrCodeNotJobOwner:
		return http.StatusForbidden
	case model.ErrCodeInvalidRole, model.ErrCodeInvalidType, model.ErrCodeInvalidCategory,
		model.ErrCodeMissingField, model.ErrCodeInvalidURL:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
