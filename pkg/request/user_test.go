package request

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLogMasksPassword(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Info().Object("login", Login{
		Email:    "buyer@example.com",
		Password: "hunter2secret",
	}).Msg("logging in")

	assert.Contains(t, buf.String(), "buyer@example.com")
	assert.Contains(t, buf.String(), `"password":"***"`)
	assert.NotContains(t, buf.String(), "hunter2secret")
}

func TestRegisterLogMasksPassword(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Info().Object("register", Register{
		FirstName: "An",
		LastName:  "Nguyen",
		Email:     "buyer@example.com",
		Password:  "hunter2secret",
	}).Msg("registering")

	assert.Contains(t, buf.String(), "buyer@example.com")
	assert.NotContains(t, buf.String(), "hunter2secret")
}

func TestLoginJsonCarriesPassword(t *testing.T) {
	encoded, err := json.Marshal(Login{
		Email:    "buyer@example.com",
		Password: "hunter2secret",
	})

	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"password":"hunter2secret"`)
}
