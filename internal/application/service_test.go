package application

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/jobboard/internal/access"
	"github.com/hitoshi/jobboard/internal/model"
)

// --- モック定義 ---

type mockApplicationRepo struct {
	findByIDFn              func(ctx context.Context, id string) (*model.Application, error)
	createFn                func(ctx context.Context, app *model.Application) (bool, error)
	deleteByIDFn            func(ctx context.Context, id string) (bool, error)
	listByApplicantFn       func(ctx context.Context, applicantID string) ([]*model.Application, error)
	listByJobFn             func(ctx context.Context, jobID string) ([]*model.Application, error)
	listJobIDsByApplicantFn func(ctx context.Context, applicantID string) ([]string, error)
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id string) (*model.Application, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *model.Application) (bool, error) {
	if m.createFn != nil {
		return m.createFn(ctx, app)
	}
	return true, nil
}

func (m *mockApplicationRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return false, nil
}

func (m *mockApplicationRepo) DeleteByApplicantID(_ context.Context, _ string) error {
	return nil
}

func (m *mockApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	if m.listByApplicantFn != nil {
		return m.listByApplicantFn(ctx, applicantID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	if m.listByJobFn != nil {
		return m.listByJobFn(ctx, jobID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) ListJobIDsByApplicant(ctx context.Context, applicantID string) ([]string, error) {
	if m.listJobIDsByApplicantFn != nil {
		return m.listJobIDsByApplicantFn(ctx, applicantID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) DeleteOrphaned(_ context.Context) (int64, error) {
	return 0, nil
}

type mockJobRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Job, error)
}

func (m *mockJobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockJobRepo) Create(_ context.Context, _ *model.Job) error { return nil }

func (m *mockJobRepo) List(_ context.Context) ([]*model.Job, error) { return nil, nil }

func (m *mockJobRepo) ListByCreator(_ context.Context, _ string) ([]*model.Job, error) {
	return nil, nil
}

func (m *mockJobRepo) Delete(_ context.Context, _ string) error { return nil }

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (m *mockUserRepo) UpdateProfile(_ context.Context, _ *model.User) error { return nil }

func (m *mockUserRepo) DeleteByID(_ context.Context, _ string) error { return nil }

// --- テストヘルパー ---

func seekerPrincipal() *access.Principal {
	return &access.Principal{UserID: "seeker-1", Role: model.RoleJobSeeker}
}

func recruiterPrincipal() *access.Principal {
	return &access.Principal{UserID: "recruiter-1", Role: model.RoleRecruiter}
}

func sampleJob() *model.Job {
	return &model.Job{
		ID:        "job-1",
		Title:     "Backend Engineer",
		Company:   "Acme",
		CreatedBy: "recruiter-1",
	}
}

func jobRepoWithSampleJob() *mockJobRepo {
	return &mockJobRepo{
		findByIDFn: func(_ context.Context, id string) (*model.Job, error) {
			if id == "job-1" {
				return sampleJob(), nil
			}
			return nil, nil
		},
	}
}

func userRepoWithSeeker() *mockUserRepo {
	return &mockUserRepo{
		findByIDFn: func(_ context.Context, id string) (*model.User, error) {
			if id == "seeker-1" {
				return &model.User{ID: id, Email: "seeker@example.com", Role: model.RoleJobSeeker}, nil
			}
			return nil, nil
		},
	}
}

func assertAPIErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want code %s", wantCode)
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *model.APIError with code %s", err, wantCode)
	}
	if apiErr.Code != wantCode {
		t.Errorf("error code = %s, want %s", apiErr.Code, wantCode)
	}
}

// --- Apply ---

// TestService_Apply_Success は求職者の応募で複合IDと非正規化項目が
// 正しく組み立てられることを検証する。
func TestService_Apply_Success(t *testing.T) {
	var saved *model.Application
	appRepo := &mockApplicationRepo{
		createFn: func(_ context.Context, app *model.Application) (bool, error) {
			saved = app
			return true, nil
		},
	}
	svc := NewService(appRepo, jobRepoWithSampleJob(), userRepoWithSeeker())

	app, err := svc.Apply(context.Background(), seekerPrincipal(), "job-1")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if app.ID != "job-1_seeker-1" {
		t.Errorf("ID = %q, want composite %q", app.ID, "job-1_seeker-1")
	}
	if app.JobTitle != "Backend Engineer" || app.Company != "Acme" {
		t.Errorf("denormalized fields = (%q, %q), want job snapshot", app.JobTitle, app.Company)
	}
	if app.RecruiterID != "recruiter-1" {
		t.Errorf("RecruiterID = %q, want %q", app.RecruiterID, "recruiter-1")
	}
	if app.ApplicantEmail != "seeker@example.com" {
		t.Errorf("ApplicantEmail = %q, want %q", app.ApplicantEmail, "seeker@example.com")
	}
	if app.Status != model.StatusApplied {
		t.Errorf("Status = %q, want %q", app.Status, model.StatusApplied)
	}
	if saved == nil {
		t.Fatal("application was not persisted")
	}
}

// TestService_Apply_Idempotent は二重応募が新しいレコードを作成せず、
// 既存の応募を返すことを検証する。
func TestService_Apply_Idempotent(t *testing.T) {
	existing := &model.Application{
		ID:          "job-1_seeker-1",
		JobID:       "job-1",
		ApplicantID: "seeker-1",
		Status:      model.StatusApplied,
	}
	createCalls := 0
	appRepo := &mockApplicationRepo{
		createFn: func(_ context.Context, _ *model.Application) (bool, error) {
			createCalls++
			// 2回目以降は既存行により書き込まれない
			return createCalls == 1, nil
		},
		findByIDFn: func(_ context.Context, id string) (*model.Application, error) {
			if id == existing.ID {
				return existing, nil
			}
			return nil, nil
		},
	}
	svc := NewService(appRepo, jobRepoWithSampleJob(), userRepoWithSeeker())

	first, err := svc.Apply(context.Background(), seekerPrincipal(), "job-1")
	if err != nil {
		t.Fatalf("first Apply returned error: %v", err)
	}
	second, err := svc.Apply(context.Background(), seekerPrincipal(), "job-1")
	if err != nil {
		t.Fatalf("second Apply returned error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("IDs differ: %q vs %q", first.ID, second.ID)
	}
	if createCalls != 2 {
		t.Errorf("createCalls = %d, want 2 (both reach the store)", createCalls)
	}
}

// TestService_Apply_RecruiterForbidden は採用担当者の応募が
// 拒否されることを検証する。
func TestService_Apply_RecruiterForbidden(t *testing.T) {
	svc := NewService(&mockApplicationRepo{}, jobRepoWithSampleJob(), userRepoWithSeeker())

	_, err := svc.Apply(context.Background(), recruiterPrincipal(), "job-1")
	assertAPIErrorCode(t, err, model.ErrCodeRoleForbidden)
}

// TestService_Apply_JobNotFound は存在しない求人への応募が
// エラーになることを検証する。
func TestService_Apply_JobNotFound(t *testing.T) {
	svc := NewService(&mockApplicationRepo{}, &mockJobRepo{}, userRepoWithSeeker())

	_, err := svc.Apply(context.Background(), seekerPrincipal(), "no-such-job")
	assertAPIErrorCode(t, err, model.ErrCodeJobNotFound)
}

// TestService_Apply_NoPrincipal は未認証の応募が拒否されることを検証する。
func TestService_Apply_NoPrincipal(t *testing.T) {
	svc := NewService(&mockApplicationRepo{}, jobRepoWithSampleJob(), userRepoWithSeeker())

	_, err := svc.Apply(context.Background(), nil, "job-1")
	assertAPIErrorCode(t, err, model.ErrCodeUnauthorized)
}

// --- Withdraw ---

// TestService_Withdraw_DeletesRecord は取り下げが正しい複合IDの
// レコードを削除することを検証する。
func TestService_Withdraw_DeletesRecord(t *testing.T) {
	var deletedID string
	appRepo := &mockApplicationRepo{
		deleteByIDFn: func(_ context.Context, id string) (bool, error) {
			deletedID = id
			return true, nil
		},
	}
	svc := NewService(appRepo, jobRepoWithSampleJob(), userRepoWithSeeker())

	if err := svc.Withdraw(context.Background(), seekerPrincipal(), "job-1"); err != nil {
		t.Fatalf("Withdraw returned error: %v", err)
	}
	if deletedID != "job-1_seeker-1" {
		t.Errorf("deleted ID = %q, want %q", deletedID, "job-1_seeker-1")
	}
}

// TestService_Withdraw_NotApplied は未応募の求人の取り下げが
// エラーになることを検証する。
func TestService_Withdraw_NotApplied(t *testing.T) {
	svc := NewService(&mockApplicationRepo{}, jobRepoWithSampleJob(), userRepoWithSeeker())

	err := svc.Withdraw(context.Background(), seekerPrincipal(), "job-1")
	assertAPIErrorCode(t, err, model.ErrCodeApplicationNotFound)
}

// TestService_Withdraw_RecruiterForbidden は採用担当者の取り下げが
// 拒否されることを検証する。
func TestService_Withdraw_RecruiterForbidden(t *testing.T) {
	svc := NewService(&mockApplicationRepo{}, jobRepoWithSampleJob(), userRepoWithSeeker())

	err := svc.Withdraw(context.Background(), recruiterPrincipal(), "job-1")
	assertAPIErrorCode(t, err, model.ErrCodeRoleForbidden)
}

// TestService_ApplyWithdrawApply は応募→取り下げ→再応募のループが
// 成立することを検証する。
func TestService_ApplyWithdrawApply(t *testing.T) {
	store := map[string]*model.Application{}
	appRepo := &mockApplicationRepo{
		createFn: func(_ context.Context, app *model.Application) (bool, error) {
			if _, ok := store[app.ID]; ok {
				return false, nil
			}
			store[app.ID] = app
			return true, nil
		},
		deleteByIDFn: func(_ context.Context, id string) (bool, error) {
			if _, ok := store[id]; !ok {
				return false, nil
			}
			delete(store, id)
			return true, nil
		},
		findByIDFn: func(_ context.Context, id string) (*model.Application, error) {
			return store[id], nil
		},
	}
	svc := NewService(appRepo, jobRepoWithSampleJob(), userRepoWithSeeker())
	ctx := context.Background()
	p := seekerPrincipal()

	if _, err := svc.Apply(ctx, p, "job-1"); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if err := svc.Withdraw(ctx, p, "job-1"); err != nil {
		t.Fatalf("Withdraw returned error: %v", err)
	}
	if len(store) != 0 {
		t.Fatalf("store has %d records after withdraw, want 0", len(store))
	}
	if _, err := svc.Apply(ctx, p, "job-1"); err != nil {
		t.Fatalf("re-Apply returned error: %v", err)
	}
	if len(store) != 1 {
		t.Fatalf("store has %d records after re-apply, want 1", len(store))
	}
}

// --- 一覧取得 ---

// TestService_ListByApplicant は求職者の応募一覧取得を検証する。
func TestService_ListByApplicant(t *testing.T) {
	appRepo := &mockApplicationRepo{
		listByApplicantFn: func(_ context.Context, applicantID string) ([]*model.Application, error) {
			if applicantID != "seeker-1" {
				t.Errorf("applicantID = %q, want %q", applicantID, "seeker-1")
			}
			return []*model.Application{{ID: "job-1_seeker-1"}}, nil
		},
	}
	svc := NewService(appRepo, &mockJobRepo{}, &mockUserRepo{})

	apps, err := svc.ListByApplicant(context.Background(), seekerPrincipal())
	if err != nil {
		t.Fatalf("ListByApplicant returned error: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("ListByApplicant returned %d applications, want 1", len(apps))
	}

	_, err = svc.ListByApplicant(context.Background(), recruiterPrincipal())
	assertAPIErrorCode(t, err, model.ErrCodeRoleForbidden)
}

// TestService_AppliedJobIDs は応募済み求人IDの集合が永続ストアから
// 構築されることを検証する。
func TestService_AppliedJobIDs(t *testing.T) {
	appRepo := &mockApplicationRepo{
		listJobIDsByApplicantFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{"job-1", "job-3"}, nil
		},
	}
	svc := NewService(appRepo, &mockJobRepo{}, &mockUserRepo{})

	set, err := svc.AppliedJobIDs(context.Background(), seekerPrincipal())
	if err != nil {
		t.Fatalf("AppliedJobIDs returned error: %v", err)
	}
	if !set["job-1"] || !set["job-3"] {
		t.Errorf("set = %v, want job-1 and job-3", set)
	}
	if set["job-2"] {
		t.Errorf("set = %v, should not contain job-2", set)
	}
}

// TestService_ListByJob_OwnershipGate は応募者一覧の閲覧が求人の
// 作成者に限定されることを検証する。役割の一致だけでは不十分。
func TestService_ListByJob_OwnershipGate(t *testing.T) {
	appRepo := &mockApplicationRepo{
		listByJobFn: func(_ context.Context, _ string) ([]*model.Application, error) {
			return []*model.Application{{ID: "job-1_seeker-1"}}, nil
		},
	}
	svc := NewService(appRepo, jobRepoWithSampleJob(), &mockUserRepo{})

	// 作成者は閲覧できる
	apps, err := svc.ListByJob(context.Background(), recruiterPrincipal(), "job-1")
	if err != nil {
		t.Fatalf("ListByJob returned error: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("ListByJob returned %d applications, want 1", len(apps))
	}

	// 別の採用担当者は拒否される
	other := &access.Principal{UserID: "recruiter-2", Role: model.RoleRecruiter}
	_, err = svc.ListByJob(context.Background(), other, "job-1")
	assertAPIErrorCode(t, err, model.ErrCodeNotJobOwner)

	// 求職者は役割で拒否される
	_, err = svc.ListByJob(context.Background(), seekerPrincipal(), "job-1")
	assertAPIErrorCode(t, err, model.ErrCodeRoleForbidden)

	// 存在しない求人
	_, err = svc.ListByJob(context.Background(), recruiterPrincipal(), "no-such-job")
	assertAPIErrorCode(t, err, model.ErrCodeJobNotFound)
}
