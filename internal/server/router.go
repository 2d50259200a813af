package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"restaurante/internal/customer"
	"restaurante/internal/order/controller"
)

type RouterConfig struct {
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	customerCtrl *customer.Controller,
	orderCtrl *controller.OrderController,
	db Pinger,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(traceID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", traceIDHeader},
		ExposedHeaders: []string{traceIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler(db, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/customers", func(r chi.Router) {
		r.Post("/register", customerCtrl.HandleRegister)
		r.Post("/login", customerCtrl.HandleLogin)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderCtrl.HandleCreate)
		r.Get("/{customerId}", orderCtrl.HandleList)
		r.Put("/{id}/status", orderCtrl.HandleAdvance)
		r.Get("/{id}/history", orderCtrl.HandleHistory)
	})

	return r
}
