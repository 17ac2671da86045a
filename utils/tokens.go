package utils

import (
	"os"
	"time"

	"roomease-server/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessToken is the claim set carried by the HS256 access token. Issuance
// lives in the identity provider; this server only verifies and reads it.
type AccessToken struct {
	ID   uint        `json:"ID"`
	Role models.Role `json:"role"`
}

// Identity converts verified claims into the value services consume.
func (t *AccessToken) Identity() models.Identity {
	return models.Identity{ID: t.ID, Role: t.Role}
}

// NewAccessTokenVerifier builds the route middleware that verifies the
// bearer token and stashes *AccessToken claims on the context.
func NewAccessTokenVerifier() iris.Handler {
	verifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	verifier.WithDefaultBlocklist()
	return verifier.Verify(func() interface{} {
		return new(AccessToken)
	})
}

// SignAccessToken mints a short-lived token; used by the seed script and
// tests, never by request handlers.
func SignAccessToken(id uint, role models.Role, ttl time.Duration) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), ttl)
	token, err := signer.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return "", err
	}
	return string(token), nil
}
