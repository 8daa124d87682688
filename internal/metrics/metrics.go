// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CleanupRecorder はクリーンアップワーカーが利用するメトリクス収集のインターフェース。
type CleanupRecorder interface {
	RecordSessionsPurged(count int64)
	RecordOrphanApplicationsPurged(count int64)
	RecordCleanupFailure()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration prometheus.Histogram
	sessionsPurged  prometheus.Counter
	orphansPurged   prometheus.Counter
	cleanupFailures prometheus.Counter
}

var _ CleanupRecorder = (*Collector)(nil)

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		sessionsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobboard_sessions_purged_total",
			Help: "クリーンアップで削除された期限切れセッションの合計数",
		}),
		orphansPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobboard_orphan_applications_purged_total",
			Help: "クリーンアップで削除された孤児応募の合計数",
		}),
		cleanupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobboard_cleanup_failures_total",
			Help: "クリーンアップ実行失敗の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.sessionsPurged,
		c.orphansPurged,
		c.cleanupFailures,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordSessionsPurged は削除された期限切れセッション数を記録する。
func (c *Collector) RecordSessionsPurged(count int64) {
	c.sessionsPurged.Add(float64(count))
}

// RecordOrphanApplicationsPurged は削除された孤児応募数を記録する。
func (c *Collector) RecordOrphanApplicationsPurged(count int64) {
	c.orphansPurged.Add(float64(count))
}

// RecordCleanupFailure はクリーンアップの実行失敗を記録する。
func (c *Collector) RecordCleanupFailure() {
	c.cleanupFailures.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
// ルーターの/metricsエンドポイントに接続する。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
