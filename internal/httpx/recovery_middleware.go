package httpx

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applog "bookshop/internal/platform/logger"

	"github.com/sirupsen/logrus"
)

func RecoveryMiddleware(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					applog.LogError(logger, "panic recovered", fmt.Errorf("%v", err), logrus.Fields{
						"request_id": RequestIDFrom(r),
						"stack":      string(debug.Stack()),
					})

					var wroteHeader bool
					if rw, ok := w.(*responseWriter); ok {
						wroteHeader = rw.wroteHeader()
					}

					if !wroteHeader {
						JSONMessage(w, http.StatusInternalServerError, "Internal server error")
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
