package http

import (
	"github.com/gin-gonic/gin"

	"github.com/finflow/identity/internal/api/http/middleware"
	"github.com/finflow/identity/internal/logger"
)

// NewRouter wires the identity routes onto a gin engine.
func NewRouter(h *Handler, logger *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.NewLogging(logger).Handle)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/verify-token", h.VerifyToken)
		auth.GET("/user/:id", h.GetUser)
		auth.PUT("/user/:id", h.UpdateProfile)
		auth.POST("/user/:id/kyc", h.UpdateKYCStatus)
		auth.PUT("/user/:id/status", h.UpdateStatus)
	}

	r.GET("/health", h.Health)

	return r
}
