package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/pkg/helpers"
	"github.com/oksasatya/go-user-management/pkg/response"
)

// Registry collects modules and mounts them on the /api group in the order
// they were added.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	Logger      logrus.FieldLogger
	middlewares []gin.HandlerFunc
	modules     []Module
	mounted     bool
}

func NewRegistry(engine *gin.Engine, logger logrus.FieldLogger) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api"), Logger: helpers.OrDiscard(logger)}
}

// Use adds middleware that runs for every module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// Modules lists the registered module names.
func (r *Registry) Modules() []string {
	names := make([]string, 0, len(r.modules))
	for _, m := range r.modules {
		names = append(names, m.Name())
	}
	return names
}

// RegisterAll mounts every module once and installs the enveloped 404.
// Later calls are no-ops.
func (r *Registry) RegisterAll() {
	if r.mounted {
		return
	}
	r.mounted = true

	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
		r.Logger.WithField("module", m.Name()).Debug("module registered")
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "route not found", nil)
	})
}
