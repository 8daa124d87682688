package cleanup

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// --- モック定義 ---

type mockSessionPurger struct {
	deleteExpiredFn func(ctx context.Context) (int64, error)
	calls           int
}

func (m *mockSessionPurger) DeleteExpired(ctx context.Context) (int64, error) {
	m.calls++
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

type mockApplicationPurger struct {
	deleteOrphanedFn func(ctx context.Context) (int64, error)
	calls            int
}

func (m *mockApplicationPurger) DeleteOrphaned(ctx context.Context) (int64, error) {
	m.calls++
	if m.deleteOrphanedFn != nil {
		return m.deleteOrphanedFn(ctx)
	}
	return 0, nil
}

type mockRecorder struct {
	sessionsPurged int64
	orphansPurged  int64
	failures       int
}

func (m *mockRecorder) RecordSessionsPurged(count int64)           { m.sessionsPurged += count }
func (m *mockRecorder) RecordOrphanApplicationsPurged(count int64) { m.orphansPurged += count }
func (m *mockRecorder) RecordCleanupFailure()                      { m.failures++ }

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// TestCleanupJob_Run_PurgesSessionsAndOrphans は両方の削除が実行され、
// 件数がメトリクスに記録されることを検証する。
func TestCleanupJob_Run_PurgesSessionsAndOrphans(t *testing.T) {
	var buf bytes.Buffer
	sessions := &mockSessionPurger{
		deleteExpiredFn: func(_ context.Context) (int64, error) { return 3, nil },
	}
	apps := &mockApplicationPurger{
		deleteOrphanedFn: func(_ context.Context) (int64, error) { return 2, nil },
	}
	recorder := &mockRecorder{}
	job := NewCleanupJob(sessions, apps, recorder, newTestLogger(&buf))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if sessions.calls != 1 || apps.calls != 1 {
		t.Errorf("calls = (%d, %d), want (1, 1)", sessions.calls, apps.calls)
	}
	if recorder.sessionsPurged != 3 {
		t.Errorf("sessionsPurged = %d, want 3", recorder.sessionsPurged)
	}
	if recorder.orphansPurged != 2 {
		t.Errorf("orphansPurged = %d, want 2", recorder.orphansPurged)
	}
	if recorder.failures != 0 {
		t.Errorf("failures = %d, want 0", recorder.failures)
	}

	if !strings.Contains(buf.String(), "クリーンアップジョブが完了しました") {
		t.Error("completion log should be written")
	}
}

// TestCleanupJob_Run_NothingToDelete_Succeeds は削除対象なしでも
// エラーにならないことを検証する。
func TestCleanupJob_Run_NothingToDelete_Succeeds(t *testing.T) {
	var buf bytes.Buffer
	job := NewCleanupJob(&mockSessionPurger{}, &mockApplicationPurger{}, nil, newTestLogger(&buf))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

// TestCleanupJob_Run_SessionError_ContinuesWithOrphans はセッション削除の
// 失敗後も孤児応募の突き合わせが続行されることを検証する。
func TestCleanupJob_Run_SessionError_ContinuesWithOrphans(t *testing.T) {
	var buf bytes.Buffer
	sessions := &mockSessionPurger{
		deleteExpiredFn: func(_ context.Context) (int64, error) {
			return 0, errors.New("connection lost")
		},
	}
	apps := &mockApplicationPurger{
		deleteOrphanedFn: func(_ context.Context) (int64, error) { return 1, nil },
	}
	recorder := &mockRecorder{}
	job := NewCleanupJob(sessions, apps, recorder, newTestLogger(&buf))

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if apps.calls != 1 {
		t.Errorf("orphan purge calls = %d, want 1", apps.calls)
	}
	if recorder.failures != 1 {
		t.Errorf("failures = %d, want 1", recorder.failures)
	}
	if recorder.orphansPurged != 1 {
		t.Errorf("orphansPurged = %d, want 1", recorder.orphansPurged)
	}
}

// TestCleanupJob_Run_OrphanError_ReturnsError は孤児応募削除の失敗が
// エラーとして返ることを検証する。
func TestCleanupJob_Run_OrphanError_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	apps := &mockApplicationPurger{
		deleteOrphanedFn: func(_ context.Context) (int64, error) {
			return 0, errors.New("query failed")
		},
	}
	recorder := &mockRecorder{}
	job := NewCleanupJob(&mockSessionPurger{}, apps, recorder, newTestLogger(&buf))

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if recorder.failures != 1 {
		t.Errorf("failures = %d, want 1", recorder.failures)
	}
}

// TestCleanupJob_RunLoop_StopsOnContextCancel はコンテキストのキャンセルで
// ループが停止することを検証する。
func TestCleanupJob_RunLoop_StopsOnContextCancel(t *testing.T) {
	var buf bytes.Buffer
	var runs atomic.Int64
	sessions := &mockSessionPurger{
		deleteExpiredFn: func(_ context.Context) (int64, error) {
			runs.Add(1)
			return 0, nil
		},
	}
	job := NewCleanupJob(sessions, &mockApplicationPurger{}, nil, newTestLogger(&buf))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		job.RunLoop(ctx, time.Hour)
		close(done)
	}()

	// 初回実行の完了を待ってからキャンセル
	deadline := time.After(2 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("initial run did not happen")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunLoop did not stop after context cancel")
	}

	if got := runs.Load(); got != 1 {
		t.Errorf("session purge runs = %d, want 1", got)
	}
}
