package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/pkg/helpers"
	"github.com/oksasatya/go-user-management/pkg/response"
	"github.com/oksasatya/go-user-management/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Logger  logrus.FieldLogger
	Cookies *helpers.Manager
}

func NewAuthHandler(auth *application.AuthService, logger logrus.FieldLogger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: helpers.OrDiscard(logger), Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues an access token. The token is returned in the body and also
// stored in an HttpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	tok, err := h.Auth.Login(c.Request.Context(), application.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccessToken(c, tok.AccessToken, tok.ExpiresAt)
	response.Success(c, http.StatusOK, tok, "login successful", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}
