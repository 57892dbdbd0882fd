package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationHelper_Sanitize(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("strips markup", func(t *testing.T) {
		assert.Equal(t, "Al Pacino", vh.Sanitize("Al <b>Pacino</b>"))
		assert.Equal(t, "salary", vh.Sanitize("<script>alert(1)</script>salary"))
	})

	t.Run("trims surrounding space", func(t *testing.T) {
		assert.Equal(t, "al@x.com", vh.Sanitize("  al@x.com  "))
	})

	t.Run("plain text survives unchanged", func(t *testing.T) {
		assert.Equal(t, "rent & utilities", vh.Sanitize("rent & utilities"))
	})

	t.Run("markup-only input becomes empty", func(t *testing.T) {
		assert.Equal(t, "", vh.Sanitize("<b></b>"))
	})
}

func TestValidationHelper_ValidateStruct(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid sign-up passes", func(t *testing.T) {
		req := SignUpRequest{Name: "Al Pacino", Email: "al@x.com", Password: "abc123"}
		assert.Nil(t, vh.ValidateStruct(&req))
	})

	t.Run("collects every violation", func(t *testing.T) {
		req := SignUpRequest{}
		messages := vh.ValidateStruct(&req)
		assert.Len(t, messages, 3)
		assert.Contains(t, messages, "name is required")
		assert.Contains(t, messages, "email is required")
		assert.Contains(t, messages, "password is required")
	})

	t.Run("name length bounds", func(t *testing.T) {
		req := SignUpRequest{Name: "Al", Email: "al@x.com", Password: "abc123"}
		messages := vh.ValidateStruct(&req)
		assert.Equal(t, []string{"name length must be at least 3 characters long"}, messages)

		req.Name = strings.Repeat("a", 51)
		messages = vh.ValidateStruct(&req)
		assert.Equal(t, []string{"name length must be less than or equal to 50 characters long"}, messages)
	})

	t.Run("email format", func(t *testing.T) {
		req := LoginRequest{Email: "not-an-email", Password: "abc123"}
		messages := vh.ValidateStruct(&req)
		assert.Equal(t, []string{"email must be a valid email"}, messages)
	})

	t.Run("password must be alphanumeric", func(t *testing.T) {
		req := LoginRequest{Email: "al@x.com", Password: "abc 123!"}
		messages := vh.ValidateStruct(&req)
		assert.Equal(t, []string{"password must only contain alpha-numeric characters"}, messages)
	})

	t.Run("messages carry no literal quotes", func(t *testing.T) {
		req := SignUpRequest{Name: "x", Email: "bad", Password: "!"}
		for _, msg := range vh.ValidateStruct(&req) {
			assert.NotContains(t, msg, `"`)
		}
	})
}
