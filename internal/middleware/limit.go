package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// LimitBytes ограничивает размер тела запроса (загрузки каталогов).
// Заявленный Content-Length сверх лимита отсекается сразу, остальное режет chi RequestSize.
func LimitBytes(n int64) func(http.Handler) http.Handler {
	limit := chimw.RequestSize(n)
	return func(next http.Handler) http.Handler {
		limited := limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > n {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
