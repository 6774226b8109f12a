package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-management/internal/interface/http"
	"github.com/oksasatya/go-user-management/internal/interface/middleware"
)

// AuthModule exposes login and logout.
// Public: POST /auth/login
// Protected: POST /auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  middleware.TokenParser
}

func NewAuthModule(h *handlers.AuthHandler, tokens middleware.TokenParser) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/logout", middleware.Auth(m.Tokens), m.Handler.Logout)
}
