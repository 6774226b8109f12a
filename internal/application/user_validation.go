package application

import (
	"fmt"
	"slices"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/pkg/apperror"
	"github.com/oksasatya/go-user-management/pkg/validation"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func validateRegistration(in RegisterUserInput) error {
	return userRules(in.Name, in.Age, in.Email, in.Password, in.Roles)
}

func validateUpdate(in UpdateUserInput) error {
	return userRules(in.Name, in.Age, in.Email, in.Password, in.Roles)
}

func validateCredentials(in Credentials) error {
	return asBadRequest(validation.Check(
		validation.NotBlank(in.Email, "Email is required"),
		validation.Email(in.Email, "Email is incorrect"),
		validation.NotBlank(in.Password, "Password is required"),
	))
}

func userRules(name string, age int, email, password string, roles []string) error {
	return asBadRequest(validation.Check(
		validation.NotBlank(name, "Name is required"),
		validation.NotZero(age, "Age is required"),
		validation.Positive(age, "Age should be positive"),
		validation.NotBlank(email, "Email is required"),
		validation.Email(email, "Email is incorrect"),
		validation.NotBlank(password, "Password is required"),
		validation.MaxBytes(password, maxPasswordBytes, "Password is too long"),
		validation.Each(roles, func(r string) string {
			if _, ok := entity.ParseRole(r); !ok {
				return fmt.Sprintf("Invalid user role %q", r)
			}
			return ""
		}),
	))
}

func asBadRequest(err error) error {
	if err == nil {
		return nil
	}
	return apperror.BadRequest(err.Error())
}

// parseRoles resolves already validated role names, dropping repeats.
func parseRoles(names []string) []entity.Role {
	out := make([]entity.Role, 0, len(names))
	for _, n := range names {
		r, ok := entity.ParseRole(n)
		if !ok {
			continue
		}
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}
