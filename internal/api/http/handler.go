package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finflow/identity/internal/logger"
	"github.com/finflow/identity/internal/model"
	"github.com/finflow/identity/internal/service"
)

// AuthService defines the identity operations the HTTP edge binds.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (model.User, error)
	Login(ctx context.Context, email, password string) (string, model.User, error)
	Logout(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string) (model.Claims, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update service.ProfileUpdate) (model.User, error)
	UpdateKYCStatus(ctx context.Context, id uuid.UUID, status model.KYCStatus) (model.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (model.User, error)
}

// Pinger reports collaborator liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler binds the facade's exposed operations to HTTP routes. It only
// parses requests and translates errors; all decisions live in the core.
type Handler struct {
	auth   AuthService
	dbPing Pinger
	kvPing Pinger
	ttl    time.Duration
	logger *logger.Logger
}

// NewHandler creates the HTTP handler set. ttl is the token lifetime
// reported in login responses.
func NewHandler(auth AuthService, dbPing, kvPing Pinger, ttl time.Duration, logger *logger.Logger) *Handler {
	return &Handler{
		auth:   auth,
		dbPing: dbPing,
		kvPing: kvPing,
		ttl:    ttl,
		logger: logger,
	}
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	KYCStatus string    `json:"kyc_status"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(user model.User) userResponse {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Status:    string(user.Status),
		KYCStatus: string(user.KYCStatus),
		Roles:     roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        userResponse `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.ttl.Seconds()),
		User:        toUserResponse(user),
	})
}

// Logout handles POST /api/auth/logout. The token to revoke comes from the
// Authorization header; repeated logout of the same token succeeds.
func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing bearer token"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// VerifyToken handles GET /api/auth/verify-token. Any verification failure
// collapses to {"valid": false} at this boundary.
func (h *Handler) VerifyToken(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing bearer token"})
		return
	}

	claims, err := h.auth.VerifyToken(c.Request.Context(), token)
	if err != nil {
		h.logger.Debug("http: token rejected", "error", err.Error())
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"user_id":    claims.UserID,
		"email":      claims.Email,
		"kyc_status": claims.KYCStatus,
	})
}

// GetUser handles GET /api/auth/user/:id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// UpdateProfile handles PUT /api/auth/user/:id. Absent fields are untouched.
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), id, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type kycRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateKYCStatus handles POST /api/auth/user/:id/kyc, the internal hook
// the KYC service calls.
func (h *Handler) UpdateKYCStatus(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req kycRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := model.ParseKYCStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown kyc status"})
		return
	}

	user, err := h.auth.UpdateKYCStatus(c.Request.Context(), id, status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /api/auth/user/:id/status, the administrative
// account status overwrite.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	user, err := h.auth.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Health handles GET /health, pinging storage and the key/value store.
func (h *Handler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	for name, p := range map[string]Pinger{"database": h.dbPing, "redis": h.kvPing} {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			h.logger.Error("http: health check failed",
				"collaborator", name,
				"error", err.Error())
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "failing": name})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

func (h *Handler) userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
