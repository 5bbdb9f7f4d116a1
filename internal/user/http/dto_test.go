package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
)

func TestRegisterRequestValidate(t *testing.T) {
	ok := RegisterRequest{Name: "bob", Password: strings.Repeat("a", user.MaxSecretBytes)}
	assert.NoError(t, ok.Validate())

	multibyte := RegisterRequest{Name: "bob", Password: strings.Repeat("é", 40)}
	assert.ErrorIs(t, multibyte.Validate(), user.ErrSecretTooLong)
}
