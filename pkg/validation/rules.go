package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var engine = validator.New()

// Rule checks one constraint. It returns the violation message, or "" when
// the constraint holds.
type Rule func() string

// Violations is the aggregated result of a failed Check. Every violated rule
// contributes one line.
type Violations []string

func (v Violations) Error() string {
	return strings.TrimSpace(strings.Join(v, "\n"))
}

// Check evaluates every rule, not just up to the first failure, and returns
// Violations when any of them is violated.
func Check(rules ...Rule) error {
	var out Violations
	for _, r := range rules {
		if msg := strings.TrimSpace(r()); msg != "" {
			out = append(out, msg)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NotBlank fails when s is empty after trimming whitespace.
func NotBlank(s, msg string) Rule {
	return func() string {
		if strings.TrimSpace(s) == "" {
			return msg
		}
		return ""
	}
}

// NotZero fails when n is zero, the value of an absent number.
func NotZero(n int, msg string) Rule {
	return func() string {
		if n == 0 {
			return msg
		}
		return ""
	}
}

// Positive fails when n is not greater than zero. An absent age therefore
// reports both NotZero and Positive.
func Positive(n int, msg string) Rule {
	return func() string {
		if n <= 0 {
			return msg
		}
		return ""
	}
}

// Email fails when a non-empty s is not a syntactically valid address.
// Emptiness is NotBlank's concern.
func Email(s, msg string) Rule {
	return func() string {
		if strings.TrimSpace(s) == "" {
			return ""
		}
		if !IsEmail(s) {
			return msg
		}
		return ""
	}
}

// MaxBytes fails when s is longer than limit bytes.
func MaxBytes(s string, limit int, msg string) Rule {
	return func() string {
		if len(s) > limit {
			return msg
		}
		return ""
	}
}

// Each applies check to every item and joins the resulting violations.
func Each[T any](items []T, check func(T) string) Rule {
	return func() string {
		var msgs []string
		for _, it := range items {
			if m := check(it); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "\n")
	}
}

// IsEmail reports whether s is an RFC-shaped email address.
func IsEmail(s string) bool {
	return engine.Var(s, "required,email") == nil
}
