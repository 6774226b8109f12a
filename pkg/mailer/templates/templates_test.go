package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	b := Branding{AppName: "Users", CompanyName: "Acme", SupportURL: "https://acme.test/help", LoginURL: "https://acme.test/login"}
	data := NewWelcomeData(b, "Ann", "a@x.com", WithRoles("User", "Admin"))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Users", subject)
	assert.Contains(t, text, "Hi Ann,")
	assert.Contains(t, text, "a@x.com")
	assert.Contains(t, text, "User, Admin role(s)")
	assert.Contains(t, text, "https://acme.test/login")
	assert.Contains(t, html, `<a href="https://acme.test/help">`)
}

func TestRender_WelcomeFallbacks(t *testing.T) {
	subject, text, _, err := Render(Welcome, NewWelcomeData(Branding{}, "", "a@x.com"))
	require.NoError(t, err)

	assert.Equal(t, "Welcome to our service", subject)
	assert.Contains(t, text, "Hi there,")
	assert.NotContains(t, text, "Sign in")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestNewWelcomeData(t *testing.T) {
	data := NewWelcomeData(Branding{CompanyName: "Acme"}, "Ann", "a@x.com", WithLoginURL("  "))

	assert.Equal(t, Welcome, data["Type"])
	assert.Equal(t, "a@x.com", data["RecipientEmail"])
	assert.Equal(t, "Acme", data["CompanyName"])
	assert.Equal(t, "", data["LoginURL"])
}
