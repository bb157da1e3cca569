package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordPayload struct {
	Password string `json:"password" binding:"strongpwd"`
}

func TestStrongpwdMatchesCredentialPolicy(t *testing.T) {
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "common symbol", password: "Str0ng!pass", valid: true},
		{name: "symbol outside the usual list", password: "Abc123~x", valid: true},
		{name: "underscore counts as symbol", password: "Abc123_x", valid: true},
		{name: "no symbol", password: "Abcd1234", valid: false},
		{name: "no digit", password: "Abcd!efg", valid: false},
		{name: "no upper", password: "abcd1!ef", valid: false},
		{name: "too short", password: "Ab1!", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(passwordPayload{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestToDetailsFieldNames(t *testing.T) {
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type req struct {
		Email string `json:"email" binding:"required,email"`
	}
	err := v.Struct(req{Email: "nope"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
}
