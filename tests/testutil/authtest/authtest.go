// Package authtest stands in for the Auth0 token middleware in handler tests.
// It lives apart from testutil because it depends on middleware, which in
// turn depends on stores.
package authtest

import (
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/Azeezfasasi/lasu-mba-cloth/middleware"
)

// Issuer is the issuer stamped on every fake token
const Issuer = "https://test.auth0.com/"

// Claims builds the validated claims EnsureValidToken would leave behind for subject
func Claims(subject, email string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  Issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{Email: email},
	}
}

// SignIn marks the request as carrying a valid token for subject
func SignIn(c *gin.Context, subject, email string) {
	c.Set("user_id", subject)
	c.Set("validated_claims", Claims(subject, email))
}

// Token returns a handler that signs every request in as subject
func Token(subject, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		SignIn(c, subject, email)
		c.Next()
	}
}
