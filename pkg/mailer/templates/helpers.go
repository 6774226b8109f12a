package templates

import "strings"

// Branding holds the company details every email is rendered with.
type Branding struct {
	AppName     string
	CompanyName string
	SupportURL  string
	LoginURL    string
}

// Option pattern
type Option func(*EmailData)

func WithRoles(roles ...string) Option {
	return func(d *EmailData) { d.Roles = append([]string(nil), roles...) }
}

func WithLoginURL(url string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(url); s != "" {
			d.LoginURL = s
		}
	}
}

// NewBaseEmailData fills the common fields from b, then applies opts.
func NewBaseEmailData(b Branding, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName: b.CompanyName,
		AppName:     b.AppName,

		SupportURL: b.SupportURL,
		LoginURL:   b.LoginURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(b Branding, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, Welcome, name, email, opts...))
}
