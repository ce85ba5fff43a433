package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Rirush/RTest/internal/logger"
)

// responseWriter отслеживает, был ли уже отправлен ответ,
// чтобы после паники не писать заголовки поверх частичного ответа.
type responseWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *responseWriter) WriteHeader(code int) {
	if w.wrote {
		return
	}
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

// RecoverJSON при панике в handler логирует её и отдаёт клиенту конверт
// с ошибкой 500 (если ответ ещё не начат). Процесс не падает на ошибке
// уровня запроса.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrap := &responseWriter{ResponseWriter: w}
		defer func() {
			if err := recover(); err != nil {
				logger.Errorf("panic recovered %s %s: %v", r.Method, r.URL.Path, err)
				if !wrap.wrote {
					wrap.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
					wrap.ResponseWriter.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(wrap.ResponseWriter).Encode(map[string]any{
						"success": false,
						"reason":  "Internal server error",
					})
				}
			}
		}()
		next.ServeHTTP(wrap, r)
	})
}
