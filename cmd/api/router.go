package main

import (
	"context"
	"net/http"
	"time"

	"bookshop/internal/catalog"
	"bookshop/internal/config"
	"bookshop/internal/httpx"
	"bookshop/internal/retrieval"
	"bookshop/internal/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type routerDeps struct {
	cfg         *config.Config
	log         logrus.FieldLogger
	store       *catalog.Store
	users       user.Repository
	upstream    retrieval.Upstream
	registry    *prometheus.Registry
	rateLimiter *httpx.RateLimitMiddleware
	ready       func(ctx context.Context) error
}

func newRouter(d routerDeps) http.Handler {
	catalogService := catalog.NewService(d.store)
	userService := user.NewService(d.users,
		user.WithHashCost(d.cfg.HashCost),
		user.WithTokens(d.cfg.JWTSecret, d.cfg.JWTTTL),
	)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.store.Len() == 0 {
			http.Error(w, "catalog empty", http.StatusServiceUnavailable)
			return
		}
		if d.ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := d.ready(ctx); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

	catalog.NewHTTPHandler(catalogService).RegisterRoutes(router)
	user.NewHTTPHandler(userService).RegisterRoutes(router, httpx.AuthMiddleware(d.cfg.JWTSecret))
	retrieval.NewHTTPHandler(
		retrieval.NewLocal(catalogService, d.cfg.RetrievalDelay),
		retrieval.NewDelegated(d.upstream),
	).RegisterRoutes(router)

	metrics := httpx.NewMetrics(d.registry)

	middleware := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.log),
		httpx.RecoveryMiddleware(d.log),
		httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS),
		httpx.CORSMiddleware(d.cfg.CORSOrigins()),
	}
	if d.rateLimiter != nil {
		middleware = append(middleware, d.rateLimiter.Middleware)
	}
	middleware = append(middleware,
		httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes),
		metrics.Middleware,
	)
	return httpx.Chain(router, middleware...)
}
