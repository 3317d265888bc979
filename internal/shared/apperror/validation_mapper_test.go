package apperror_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"go-hrms/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Email      string `json:"email" validate:"email"`
	Password   string `json:"password" validate:"min=8"`
	Level      int    `json:"level" validate:"max=10"`
	Mode       string `json:"mode" validate:"oneof=percent fixed"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	valid := signup{EmployeeID: "e", Email: "a@b.co", Password: "long-enough", Level: 3, Mode: "fixed"}

	tests := []struct {
		name   string
		mutate func(*signup)
		want   string
	}{
		{"required", func(s *signup) { s.EmployeeID = "" }, "Employee Id is required"},
		{"email", func(s *signup) { s.Email = "nope" }, "Email must be a valid email address"},
		{"string min", func(s *signup) { s.Password = "short" }, "Password must be at least 8 characters"},
		{"number max", func(s *signup) { s.Level = 11 }, "Level must be at most 10"},
		{"oneof", func(s *signup) { s.Mode = "bonus" }, "Mode must be one of: percent, fixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			got := apperror.ToHTTP(apperror.MapValidationError(v.Struct(in)))

			assert.Equal(t, 400, got.Status)
			assert.Equal(t, apperror.CodeInvalidInput, got.Code)
			assert.Equal(t, tt.want, got.Message)
		})
	}

	t.Run("non validator error", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.MapValidationError(errors.New("EOF")))
		assert.Equal(t, "Invalid input", got.Message)
	})
}
