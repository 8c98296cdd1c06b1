package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/container"
	handlers "github.com/devlinkhq/devlink/internal/interface/http"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/helpers"
)

// ProfileModule wires profile routes.
// Public: GET /api/profiles, GET /api/profiles/user/:user_id,
// GET /api/profiles/github/:username
// Protected: everything that mutates, plus /me and /search.

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/profiles", publicLimiter, m.Handler.List)
	rg.GET("/profiles/user/:user_id", publicLimiter, m.Handler.ByUserID)
	rg.GET("/profiles/github/:username", publicLimiter, m.Handler.Github)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profiles/me", m.Handler.Me)
		auth.POST("/profiles", m.Handler.Upsert)
		auth.PUT("/profiles/experience", m.Handler.AddExperience)
		auth.DELETE("/profiles/experience/:exp_id", m.Handler.RemoveExperience)
		auth.PUT("/profiles/education", m.Handler.AddEducation)
		auth.DELETE("/profiles/education/:edu_id", m.Handler.RemoveEducation)
		auth.GET("/profiles/search", m.Handler.Search)
	}
}
