package middleware

import (
	"net/http"
	"time"

	"github.com/Rirush/RTest/internal/logger"
)

// RequestLog логирует каждый HTTP-запрос: method, path и длительность
// (асинхронно, обработку не задерживает).
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer logger.DeferLogDuration("http "+r.Method+" "+r.URL.Path, time.Now())()
		next.ServeHTTP(w, r)
	})
}
