package router

import (
	"github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/internal/container"
	repouser "github.com/oksasatya/go-user-management/internal/domain/repository"
	"github.com/oksasatya/go-user-management/internal/infrastructure/cache"
	"github.com/oksasatya/go-user-management/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-user-management/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-management/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-user-management/internal/interface/http"
	"github.com/oksasatya/go-user-management/internal/router/modules"
	"github.com/oksasatya/go-user-management/pkg/helpers"
	mailtpl "github.com/oksasatya/go-user-management/pkg/mailer/templates"
)

type UserModuleDeps struct {
	Repo        repouser.UserRepository
	Service     *application.UserService
	Auth        *application.AuthService
	Handler     *handlers.UserHandler
	AuthHandler *handlers.AuthHandler
}

func buildUserRepo() repouser.UserRepository {
	cfg := container.GetConfig()

	var repo repouser.UserRepository
	if cfg.StoreDriver == "memory" || container.GetPGPool() == nil {
		repo = memory.NewUserRepository()
	} else {
		repo = pginfra.NewUserRepository(container.GetPGPool())
	}
	if rdb := container.GetRedis(); rdb != nil {
		repo = cache.NewUserRepository(repo, rdb, cfg.UserCacheTTL, container.GetLogger())
	}
	return repo
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repo := buildUserRepo()
	hasher := helpers.NewBcryptHasher(cfg.BcryptCost)

	service := application.NewUserService(repo, hasher, logger)
	service.Branding = mailtpl.Branding{
		AppName:     cfg.AppName,
		CompanyName: cfg.CompanyName,
		SupportURL:  cfg.SupportURL,
		LoginURL:    cfg.LoginURL,
	}
	if es := container.GetES(); es != nil {
		service.Index = search.NewUserIndex(es, cfg.ESUsersIndex)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		service.Emails = pub
	}

	auth := application.NewAuthService(service, hasher, container.GetJWT(), logger)

	return UserModuleDeps{
		Repo:        repo,
		Service:     service,
		Auth:        auth,
		Handler:     handlers.NewUserHandler(service, logger),
		AuthHandler: handlers.NewAuthHandler(auth, logger, cfg.CookieDomain, cfg.CookieSecure),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(userDeps.AuthHandler, jwt))
	r.Add(modules.NewUserModule(userDeps.Handler, jwt))
	if reg := container.GetMetrics(); reg != nil {
		r.Add(modules.NewMetricsModule(reg))
	}
}
