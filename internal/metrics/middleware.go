package metrics

import (
	"net/http"
	"time"
)

// statusRecorder はレスポンスのステータスコードを捕捉するResponseWriterラッパー。
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewMiddleware は全リクエストのステータスコードとレイテンシを記録する
// HTTPミドルウェアを返す。
func NewMiddleware(c *Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			c.RecordHTTPStatus(recorder.status)
			c.RecordRequestDuration(time.Since(start))
		})
	}
}
