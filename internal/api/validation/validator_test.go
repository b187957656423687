package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name        string `json:"name" validate:"contact_name"`
	Email       string `json:"email" validate:"contact_email"`
	Phone       string `json:"phone,omitempty" validate:"contact_phone"`
	Description string `json:"description" validate:"contact_description"`
}

func TestStruct_Valid(t *testing.T) {
	fieldErrors, err := New().Struct(form{Name: "Jo", Email: "jo@x.com", Description: "Hi there"})
	require.NoError(t, err)
	assert.Nil(t, fieldErrors)
}

func TestStruct_ReportsEveryFieldByJSONName(t *testing.T) {
	fieldErrors, err := New().Struct(form{Phone: "123", Description: strings.Repeat("a", 1001)})
	require.NoError(t, err)

	assert.Equal(t, FieldErrors{
		"name":        "Name is required",
		"email":       "Email is required",
		"phone":       "Phone number must be at least 10 digits",
		"description": "Message cannot exceed 1000 characters",
	}, fieldErrors)
}

func TestStruct_NotAStruct(t *testing.T) {
	_, err := New().Struct("nope")
	assert.Error(t, err)
}

func TestValidateField(t *testing.T) {
	assert.Equal(t, "Name is required", ValidateField(FieldName, "").Error)
	assert.True(t, ValidateField(FieldPhone, "").Valid)
	assert.True(t, ValidateField("company", "anything").Valid)
}
