package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

type signupForm struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
	Note  string `json:"-" validate:"omitempty,min=3"`
}

func (signupForm) FieldMessages() map[string]string {
	return map[string]string{"email": "Please enter a valid email address."}
}

func TestCheckUsesOverridesAndTranslations(t *testing.T) {
	err := Check(New(), signupForm{Name: "   ", Email: "nope"})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Len(t, appErr.Fields, 2)

	msg, ok := appErr.Field("email")
	require.True(t, ok)
	assert.Equal(t, "Please enter a valid email address.", msg)

	msg, ok = appErr.Field("name")
	require.True(t, ok)
	assert.Equal(t, "name cannot be blank", msg)
}

func TestCheckValidForm(t *testing.T) {
	assert.NoError(t, Check(New(), signupForm{Name: "Ada", Email: "ada@example.com"}))
}
