package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeenatstore/zeenat-store/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := jwt.Identity{UserID: "u-1", Username: "cashier", Roles: []string{"cashier"}}
	token, err := jwt.Generate("secret", "zeenat-store", 5, id)
	require.NoError(t, err)

	claims, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
	assert.Equal(t, "zeenat-store", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate("secret", "", 5, jwt.Identity{UserID: "u-1"})
	require.NoError(t, err)
	_, err = jwt.Parse("other", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := jwt.Generate("secret", "", -1, jwt.Identity{UserID: "u-1"})
	require.NoError(t, err)
	_, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "", 5, jwt.Identity{UserID: "u-1"})
	assert.Error(t, err)
}
