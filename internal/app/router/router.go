// Package router assembles the gin engine.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"jobboard_backend/internal/app/di"
	authmw "jobboard_backend/internal/feature/auth/transport/middleware"
	"jobboard_backend/internal/platform/http/handler"
	"jobboard_backend/internal/platform/http/middleware"
	jwtmw "jobboard_backend/internal/platform/jwt"
)

// Options tunes the router-level middleware.
type Options struct {
	RequestTimeout time.Duration
	LoginRPS       float64
	LoginBurst     int
}

const limiterIdleTTL = 10 * time.Minute

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(c *di.Container, opts Options, l *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		middleware.RequestID(),
		middleware.AccessLog(l),
		middleware.Metrics(),
	)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// No authentication
	r.GET("/healthz", handler.Health(c.Ready))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/auth/register", c.AuthHandler.Register)
		api.POST("/auth/login",
			middleware.RateLimitPerIP(rate.Limit(opts.LoginRPS), opts.LoginBurst, limiterIdleTTL),
			c.AuthHandler.Login)
		api.POST("/payments", c.PaymentHandler.Submit)

		api.GET("/jobs", c.JobHandler.Search)
		api.GET("/jobs/featured", c.JobHandler.Featured)
		api.GET("/jobs/:id", c.JobHandler.Detail)
		api.GET("/categories", c.CatalogHandler.Categories)
		api.GET("/categories/:name/jobs", c.JobHandler.ByCategory)
		api.GET("/companies", c.CatalogHandler.Companies)
		api.GET("/stats", c.CatalogHandler.Stats)
	}

	// Signed token plus a live session whose user is still allowed in.
	user := api.Group("/")
	user.Use(jwtmw.AuthRequired(c.Tokens), authmw.RequireSession(c.Auth, l))
	{
		user.POST("/auth/logout", c.AuthHandler.Logout)
		user.GET("/auth/me", c.AuthHandler.Me)
		user.PATCH("/auth/me", c.AuthHandler.UpdateMe)

		user.POST("/jobs/:id/applications", c.ApplicationHandler.Apply)
		user.GET("/jobs/:id/applications/me", c.ApplicationHandler.Applied)
		user.GET("/me/applications", c.ApplicationHandler.Mine)
		user.GET("/me/payments", c.PaymentHandler.Mine)
	}

	admin := user.Group("/admin")
	admin.Use(authmw.RequireAdmin())
	{
		admin.GET("/users", c.AuthHandler.ListUsers)
		admin.POST("/users/:id/activate", c.AuthHandler.ActivateUser)
		admin.POST("/users/:id/suspend", c.AuthHandler.SuspendUser)
		admin.DELETE("/users/:id", c.AuthHandler.DeleteUser)

		admin.GET("/jobs", c.JobHandler.List)
		admin.POST("/jobs", c.JobHandler.Create)
		admin.PATCH("/jobs/:id", c.JobHandler.Update)
		admin.DELETE("/jobs/:id", c.JobHandler.Delete)
		admin.POST("/jobs/reconcile", c.JobHandler.Reconcile)
		admin.GET("/jobs/:id/applications", c.ApplicationHandler.ByJob)

		admin.GET("/applications", c.ApplicationHandler.List)
		admin.PATCH("/applications/:id", c.ApplicationHandler.SetStatus)

		admin.GET("/payments", c.PaymentHandler.List)
		admin.GET("/payments/:id", c.PaymentHandler.Get)
		admin.POST("/payments/:id/confirm", c.PaymentHandler.Confirm)
		admin.POST("/payments/:id/reject", c.PaymentHandler.Reject)

		admin.POST("/categories", c.CatalogHandler.CreateCategory)
		admin.PATCH("/categories/:id", c.CatalogHandler.UpdateCategory)
		admin.DELETE("/categories/:id", c.CatalogHandler.DeleteCategory)
		admin.POST("/categories/by-name/:name/job-count", c.CatalogHandler.AdjustJobCount)

		admin.POST("/companies", c.CatalogHandler.CreateCompany)
		admin.PATCH("/companies/:id", c.CatalogHandler.UpdateCompany)
		admin.DELETE("/companies/:id", c.CatalogHandler.DeleteCompany)

		admin.PATCH("/stats", c.CatalogHandler.UpdateStats)
		admin.POST("/stats/:key/increment", c.CatalogHandler.IncrementStat)
	}

	return r
}
