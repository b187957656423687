package contact

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_DecodesAnyScalar(t *testing.T) {
	var req ContactRequest
	body := `{"name":12345,"email":true,"phone":null,"description":{"x":1},"turnstileToken":"tok"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "12345", req.Name.String())
	assert.Equal(t, "true", req.Email.String())
	assert.Empty(t, req.Phone.String())
	assert.Empty(t, req.Description.String())
	assert.Equal(t, "tok", req.TurnstileToken.String())
}

func TestFlexString_Strings(t *testing.T) {
	var req ContactRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Jo \"J\"","description":["a"]}`), &req))

	assert.Equal(t, `Jo "J"`, req.Name.String())
	assert.Empty(t, req.Description.String())
}

func TestContactRequest_OmitsOptionalFields(t *testing.T) {
	data, err := json.Marshal(ContactRequest{Name: "Jo", Email: "jo@x.com", Description: "Hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jo","email":"jo@x.com","description":"Hi"}`, string(data))
}
