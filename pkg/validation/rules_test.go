package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_AggregatesEveryViolation(t *testing.T) {
	err := Check(
		NotBlank("", "Name is required"),
		NotZero(0, "Age is required"),
		NotBlank("a@x.com", "Email is required"),
		Email("not-an-email", "Email is incorrect"),
	)
	require.Error(t, err)

	var v Violations
	require.True(t, errors.As(err, &v))
	assert.Equal(t, Violations{"Name is required", "Age is required", "Email is incorrect"}, v)
	assert.Equal(t, "Name is required\nAge is required\nEmail is incorrect", err.Error())
}

func TestCheck_NoViolations(t *testing.T) {
	err := Check(
		NotBlank("Ann", "Name is required"),
		NotZero(30, "Age is required"),
		Positive(30, "Age should be positive"),
		Email("ann@example.com", "Email is incorrect"),
	)
	assert.NoError(t, err)
}

func TestPositive(t *testing.T) {
	assert.Equal(t, "", Positive(1, "neg")())
	assert.Equal(t, "neg", Positive(0, "neg")())
	assert.Equal(t, "neg", Positive(-4, "neg")())
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ann@example.com", ""},
		{"A@X.com", ""},
		{"ann@", "bad"},
		{"ann.example.com", "bad"},
		{"ann @example.com", "bad"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.in, "bad")())
		})
	}
}

func TestEach(t *testing.T) {
	rule := Each([]string{"ok", "x", "ok", "y"}, func(s string) string {
		if s != "ok" {
			return "invalid " + s
		}
		return ""
	})
	assert.Equal(t, "invalid x\ninvalid y", rule())

	err := Check(rule)
	var v Violations
	require.ErrorAs(t, err, &v)
	assert.Len(t, v, 1)
	assert.Equal(t, "invalid x\ninvalid y", err.Error())
}

func TestNotBlank_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "required", NotBlank("   ", "required")())
}

func TestMaxBytes(t *testing.T) {
	assert.Equal(t, "", MaxBytes("", 3, "long")())
	assert.Equal(t, "", MaxBytes("abc", 3, "long")())
	assert.Equal(t, "long", MaxBytes("abcd", 3, "long")())
	// multi-byte runes count by bytes
	assert.Equal(t, "long", MaxBytes("éé", 3, "long")())
}
