// Package cleanup は定期実行のデータ整理ジョブを提供する。
// 期限切れセッションと、参照先の求人が削除された孤児応募を削除する。
// 通常の削除経路はCASCADE制約で整合するため、本ジョブは
// 外部要因で残った不整合を回収する突き合わせ処理として動く。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionPurger は期限切れセッションの削除に必要なインターフェース。
// repository.SessionRepositoryの部分集合として定義する。
type SessionPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// ApplicationPurger は孤児応募の削除に必要なインターフェース。
// repository.ApplicationRepositoryの部分集合として定義する。
type ApplicationPurger interface {
	DeleteOrphaned(ctx context.Context) (int64, error)
}

// Recorder はクリーンアップ結果のメトリクス記録インターフェース。
// metrics.CleanupRecorderを満たす。
type Recorder interface {
	RecordSessionsPurged(count int64)
	RecordOrphanApplicationsPurged(count int64)
	RecordCleanupFailure()
}

// noopRecorder はメトリクス未設定時のフォールバック。
type noopRecorder struct{}

func (noopRecorder) RecordSessionsPurged(int64)           {}
func (noopRecorder) RecordOrphanApplicationsPurged(int64) {}
func (noopRecorder) RecordCleanupFailure()                {}

// CleanupJob は期限切れセッションと孤児応募の削除ジョブ。
// 定期実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	sessions     SessionPurger
	applications ApplicationPurger
	recorder     Recorder
	logger       *slog.Logger
}

// NewCleanupJob は新しいCleanupJobを生成する。
// recorderがnilの場合はメトリクスを記録しない。
func NewCleanupJob(sessions SessionPurger, applications ApplicationPurger, recorder Recorder, logger *slog.Logger) *CleanupJob {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &CleanupJob{
		sessions:     sessions,
		applications: applications,
		recorder:     recorder,
		logger:       logger,
	}
}

// Run は期限切れセッションと孤児応募を削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
// セッション削除に失敗しても応募の突き合わせは続行し、エラーはまとめて返す。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	var firstErr error

	sessionCount, err := j.sessions.DeleteExpired(ctx)
	if err != nil {
		j.logger.Error("期限切れセッションの削除に失敗しました",
			slog.String("error", err.Error()),
		)
		j.recorder.RecordCleanupFailure()
		firstErr = fmt.Errorf("期限切れセッションの削除に失敗: %w", err)
	} else {
		j.recorder.RecordSessionsPurged(sessionCount)
	}

	orphanCount, err := j.applications.DeleteOrphaned(ctx)
	if err != nil {
		j.logger.Error("孤児応募の削除に失敗しました",
			slog.String("error", err.Error()),
		)
		j.recorder.RecordCleanupFailure()
		if firstErr == nil {
			firstErr = fmt.Errorf("孤児応募の削除に失敗: %w", err)
		}
	} else {
		j.recorder.RecordOrphanApplicationsPurged(orphanCount)
	}

	if firstErr != nil {
		return firstErr
	}

	duration := time.Since(start)
	j.logger.Info("クリーンアップジョブが完了しました",
		slog.Int64("sessions_purged", sessionCount),
		slog.Int64("orphan_applications_purged", orphanCount),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// RunLoop は指定間隔でRunを繰り返す。コンテキストのキャンセルで停止する。
// 起動直後に一度実行し、その後はintervalごとに実行する。
func (j *CleanupJob) RunLoop(ctx context.Context, interval time.Duration) {
	if err := j.Run(ctx); err != nil {
		j.logger.Error("クリーンアップの初回実行に失敗しました",
			slog.String("error", err.Error()),
		)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("クリーンアップループを停止します")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("クリーンアップの実行に失敗しました",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
