package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "feder/pkg/domain-errors"
)

type sample struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "ok"}))

	err := Struct(sample{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "name is required")

	err = Struct(sample{Name: "toolong", Email: "nope", Kind: "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must be at most 5 characters")
	assert.Contains(t, err.Error(), "email must be an email address")
	assert.Contains(t, err.Error(), "kind must be one of [a b]")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("a@b.pl", "email"))
	assert.Error(t, Var("not-an-email", "email"))
}
