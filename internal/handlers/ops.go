package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"landing-api/internal/api"
	"landing-api/internal/config"
	"landing-api/internal/db"
)

// OpsHandler serves the operational endpoints: health, one-time database
// initialization, and the production-only admin password reset.
type OpsHandler struct {
	store Store
	cfg   config.Config
	log   *zap.Logger
}

func NewOpsHandler(store Store, cfg config.Config, log *zap.Logger) *OpsHandler {
	return &OpsHandler{store: store, cfg: cfg, log: log}
}

type healthDatabase struct {
	Connected bool   `json:"connected"`
	Users     int    `json:"users,omitempty"`
	BlogPosts int    `json:"blogPosts,omitempty"`
	Error     string `json:"error,omitempty"`
}

type healthResponse struct {
	Success     bool           `json:"success"`
	Status      string         `json:"status"`
	Database    healthDatabase `json:"database"`
	Environment string         `json:"environment"`
	Timestamp   string         `json:"timestamp"`
}

func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	users, blogPosts, err := h.store.Counts(r.Context())
	if err != nil {
		h.log.Error("health check failed", zap.Error(err))
		api.JSON(w, http.StatusInternalServerError, healthResponse{
			Success:     false,
			Status:      "unhealthy",
			Database:    healthDatabase{Connected: false, Error: err.Error()},
			Environment: h.cfg.Environment,
			Timestamp:   timestamp,
		})
		return
	}

	api.JSON(w, http.StatusOK, healthResponse{
		Success:     true,
		Status:      "healthy",
		Database:    healthDatabase{Connected: true, Users: users, BlogPosts: blogPosts},
		Environment: h.cfg.Environment,
		Timestamp:   timestamp,
	})
}

type initDBResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	AdminExists bool           `json:"adminExists,omitempty"`
	Created     *initDBCreated `json:"created,omitempty"`
}

type initDBCreated struct {
	AdminUser   bool `json:"adminUser"`
	SamplePosts int  `json:"samplePosts"`
}

// InitDB creates the admin user and sample posts on first call, and is a
// no-op afterwards.
func (h *OpsHandler) InitDB(w http.ResponseWriter, r *http.Request) {
	hash, err := bcrypt.GenerateFromPassword([]byte(h.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("admin password hash failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeInternalError, "Failed to initialize database")
		return
	}

	adminCreated, postsCreated, err := h.store.Initialize(r.Context(), string(hash))
	if err != nil {
		h.log.Error("database initialization failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeInternalError, "Failed to initialize database")
		return
	}

	if !adminCreated {
		api.JSON(w, http.StatusOK, initDBResponse{
			Success:     true,
			Message:     "Database already initialized",
			AdminExists: true,
		})
		return
	}
	api.JSON(w, http.StatusOK, initDBResponse{
		Success: true,
		Message: "Database initialized successfully",
		Created: &initDBCreated{AdminUser: true, SamplePosts: postsCreated},
	})
}

// ResetAdmin rewrites the admin password hash. Emergency use only, and
// refused outside production.
func (h *OpsHandler) ResetAdmin(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.IsProduction() {
		api.Error(w, http.StatusForbidden, api.CodeForbidden, "This endpoint is only available in production")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(h.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("admin password hash failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeInternalError, "Failed to reset admin password")
		return
	}

	user, err := h.store.UpsertUserPassword(r.Context(), db.AdminUsername, string(hash))
	if err != nil {
		h.log.Error("admin password reset failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeInternalError, "Failed to reset admin password")
		return
	}

	api.OK(w, map[string]any{
		"message": "Admin password reset successfully",
		"adminUser": map[string]any{
			"id":        user.ID,
			"username":  user.Username,
			"updatedAt": user.CreatedAt,
		},
	})
}
