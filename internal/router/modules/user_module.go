package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-management/internal/interface/http"
	"github.com/oksasatya/go-user-management/internal/interface/middleware"
)

// UserModule wires the user management handlers.
// Public: POST /user-management/register-user
// Everything else requires a valid access token.
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  middleware.TokenParser
}

func NewUserModule(h *handlers.UserHandler, tokens middleware.TokenParser) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/user-management")
	g.POST("/register-user", m.Handler.Register)

	auth := g.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET("/users", m.Handler.List)
		auth.GET("/users/search", m.Handler.Search)
		auth.GET("/users/:userId", m.Handler.Get)
		auth.PUT("/update-user/:userId", m.Handler.Update)
		auth.PUT("/add-role/:userId", m.Handler.AddRole)
		auth.DELETE("/delete-user/:userId", m.Handler.Delete)
	}
}
