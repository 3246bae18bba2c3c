package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"encryption-service/internal/pkg/logger"
)

// AddLoggerToContextMiddleware помещает logger в context
func AddLoggerToContextMiddleware(sugarLogger *zap.SugaredLogger) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.ToContext(r.Context(), sugarLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// RequestMiddleware middleware для логирования запросов
func RequestMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			defer func() {
				logger.Infof(r.Context(), "request: url: %s; method: %s; processing time: %s",
					r.URL.String(), r.Method, time.Since(start).String())
			}()

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// ResponseMiddleware middleware для логирования ответов
func ResponseMiddleware() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			updatedWriter := NewWriterWithLogging(w)
			defer func() {
				logger.Infof(r.Context(), "response: status code: %d, datasize: %d bytes",
					updatedWriter.statusCode,
					updatedWriter.responseSize)
			}()

			next.ServeHTTP(updatedWriter, r)
		}

		return http.HandlerFunc(fn)
	}
}

// WriterWithLogging перехватывает код и размер ответа
type WriterWithLogging struct {
	statusCode   int
	responseSize int

	baseWriter http.ResponseWriter
}

func NewWriterWithLogging(baseWriter http.ResponseWriter) *WriterWithLogging {
	return &WriterWithLogging{
		statusCode: http.StatusOK,
		baseWriter: baseWriter,
	}
}

func (w *WriterWithLogging) Write(b []byte) (int, error) {
	n, err := w.baseWriter.Write(b)
	w.responseSize += n
	return n, err
}

func (w *WriterWithLogging) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.baseWriter.WriteHeader(statusCode)
}

func (w *WriterWithLogging) Header() http.Header {
	return w.baseWriter.Header()
}
