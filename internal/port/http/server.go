// Package http exposes the REST surface: chi router, JWT auth middleware,
// and handlers translating service results into the shared JSON envelope.
package http

import (
	"context"
	"net/http"

	"github.com/Taraansh/e-commerce/internal/app/config"
	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	httpServer *http.Server
	log        logger.Logger
}

type Deps struct {
	Users    *service.UserService
	Products *service.ProductService
	Orders   *service.OrderService
	Verifier TokenVerifier
	Log      logger.Logger
}

func NewServer(cfg config.HTTPServerConfig, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	registerRoutes(r, deps)

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: deps.Log,
	}
}

func registerRoutes(r *chi.Mux, deps Deps) {
	userHandler := NewUserHandler(deps.Users, deps.Log)
	productHandler := NewProductHandler(deps.Products, deps.Log)
	orderHandler := NewOrderHandler(deps.Orders, deps.Log)

	authn := Authenticator(deps.Verifier, deps.Users, deps.Log)
	adminOnly := RequireTypes(entity.UserTypeAdmin)
	customerOnly := RequireTypes(entity.UserTypeCustomer)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Patch("/verify-email", userHandler.VerifyEmail)
		r.Get("/resend-otp/{email}", userHandler.ResendOtp)
		r.Get("/forgot-password/{email}", userHandler.ForgotPassword)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Put("/logout", userHandler.Logout)
			r.Patch("/update-name-password/{id}", userHandler.UpdateProfile)
			r.With(adminOnly).Get("/", userHandler.List)
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{id}", productHandler.GetOne)

		r.Group(func(r chi.Router) {
			r.Use(authn, adminOnly)
			r.Post("/", productHandler.Create)
			r.Patch("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
			r.Post("/{id}/image", productHandler.UploadImage)
			r.Post("/{id}/skus", productHandler.AddSkus)
			r.Put("/{id}/skus/{skuId}", productHandler.UpdateSku)
			r.Delete("/{id}/skus/{skuId}", productHandler.DeleteSku)
			r.Post("/{id}/skus/{skuId}/licenses", productHandler.AddLicense)
			r.Get("/{id}/skus/{skuId}/licenses", productHandler.ListLicenses)
			r.Put("/{id}/skus/{skuId}/licenses/{licenseId}", productHandler.UpdateLicense)
			r.Delete("/{id}/skus/{skuId}/licenses/{licenseId}", productHandler.DeleteLicense)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn, customerOnly)
			r.Post("/{id}/reviews", productHandler.AddReview)
		})
		r.With(authn, adminOnly).Delete("/{id}/reviews/{reviewId}", productHandler.RemoveReview)
	})

	r.Route("/api/orders", func(r chi.Router) {
		// Signature-verified, no session auth.
		r.Post("/webhook", orderHandler.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/", orderHandler.List)
			r.Get("/{id}", orderHandler.GetOne)
			r.Post("/checkout", orderHandler.Checkout)
		})
	})
}

func (s *Server) Start() error {
	s.log.Infof("http server listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
