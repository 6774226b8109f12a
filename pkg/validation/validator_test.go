package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type listQuery struct {
	Page  int    `form:"page" binding:"pagenum"`
	Email string `json:"email" validate:"required,email"`
}

func TestToDetails_ValidationErrors(t *testing.T) {
	v := validator.New()
	v.SetTagName("validate")
	configure(v)

	err := v.Struct(listQuery{Email: "nope"})
	details := ToDetails(err)
	assert.Equal(t, map[string]string{"email": "must be a valid email"}, details)
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var out map[string]any
	err := json.Unmarshal([]byte("{]"), &out)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetails_TypeMismatch(t *testing.T) {
	var body struct {
		Age int `json:"age"`
	}
	err := json.Unmarshal([]byte(`{"age":"old"}`), &body)
	assert.Equal(t, map[string]string{"age": "must be a int"}, ToDetails(err))
}

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestToDetails_PageAlias(t *testing.T) {
	v := validator.New()
	v.SetTagName("validate")
	configure(v)

	err := v.Struct(struct {
		Page int `form:"page" validate:"pagenum"`
	}{Page: 0})
	assert.Equal(t, map[string]string{"page": "must be at least 1"}, ToDetails(err))
}
