package router

import (
	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/internal/container"
	"github.com/devlinkhq/devlink/internal/infrastructure/github"
	pginfra "github.com/devlinkhq/devlink/internal/infrastructure/postgres"
	handlers "github.com/devlinkhq/devlink/internal/interface/http"
	"github.com/devlinkhq/devlink/internal/router/modules"
)

// InitModules builds all feature modules from the container singletons and
// registers them with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	authSvc := application.NewAuthService(
		users, profiles, posts,
		container.GetJWT(),
		logger,
		container.GetRabbitPub(),
		container.GetGCS(),
		cfg.GCSBucket,
	)
	profileSvc := application.NewProfileService(
		profiles,
		logger,
		container.GetES(),
		cfg.ESProfilesIndex,
		github.NewClient(cfg.GithubAPIBase, cfg.GithubToken),
	)
	postSvc := application.NewPostService(posts, users, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), container.GetJWT()))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, logger), container.GetJWT()))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
