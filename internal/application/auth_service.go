package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/pkg/apperror"
	"github.com/oksasatya/go-user-management/pkg/helpers"
)

// MsgInvalidCredentials is the single message for every failed login, so
// callers cannot tell an unknown email from a wrong password.
const MsgInvalidCredentials = "Invalid email or password"

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AuthService struct {
	Users  *UserService
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger logrus.FieldLogger
}

func NewAuthService(users *UserService, hasher PasswordHasher, tokens TokenIssuer, logger logrus.FieldLogger) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, Tokens: tokens, Logger: helpers.OrDiscard(logger)}
}

// Login checks the credentials and issues a token bound to the email.
func (s *AuthService) Login(ctx context.Context, in Credentials) (Token, error) {
	if err := validateCredentials(in); err != nil {
		return Token{}, err
	}

	u, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return Token{}, err
	}
	if u == nil || !s.Hasher.Verify(in.Password, u.PasswordHash) {
		s.Logger.Info("login rejected")
		return Token{}, apperror.Unauthorized(MsgInvalidCredentials)
	}

	tok, exp, err := s.Tokens.Issue(u.Email)
	if err != nil {
		return Token{}, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user authenticated")
	return Token{AccessToken: tok, ExpiresAt: exp}, nil
}
