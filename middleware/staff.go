package middleware

import (
	"context"
	"errors"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/gin-gonic/gin"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

const currentUserKey = "current_user"

// UserFinder resolves a token subject to a site account
type UserFinder interface {
	FindByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error)
}

// AccountLinker attaches an unlinked account to a token subject on first sign-in
type AccountLinker interface {
	Link(ctx context.Context, subject, accessToken string) (*models.User, error)
}

// RequireStaff runs after EnsureValidToken and only lets active admins and
// staff members through. The resolved account is stored for CurrentUser.
// linker may be nil, in which case unknown subjects are always forbidden.
func RequireStaff(users UserFinder, linker AccountLinker, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := GetUserID(c)
		if err != nil {
			abortWith(c, utils.NewUnauthorizedError("Could not extract user information"))
			return
		}

		ctx := c.Request.Context()
		user, err := users.FindByAuth0ID(ctx, subject)
		if errors.Is(err, stores.ErrNotFound) && linker != nil {
			user, err = linkOnFirstSignIn(c, linker, subject)
		}
		switch {
		case errors.Is(err, stores.ErrNotFound):
			abortWith(c, utils.NewForbiddenError("No staff account is linked to this identity"))
			return
		case err != nil:
			abortWith(c, utils.NewInternalError(err))
			return
		}

		if !user.IsStaff() || !user.IsActive || user.AccountStatus == models.AccountStatusDeleted {
			log.From(ctx).Warn().
				Str("user_id", user.ID.String()).
				Str("role", user.Role).
				Msg("non-staff account denied admin access")
			abortWith(c, utils.NewForbiddenError("Admin or staff access required"))
			return
		}

		c.Set(currentUserKey, user)
		c.Request = c.Request.WithContext(log.WithUserID(ctx, user.ID.String()))
		c.Next()
	}
}

// CurrentUser returns the staff account resolved by RequireStaff, if any
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

func linkOnFirstSignIn(c *gin.Context, linker AccountLinker, subject string) (*models.User, error) {
	token, err := jwtmiddleware.AuthHeaderTokenExtractor(c.Request)
	if err != nil || token == "" {
		return nil, stores.ErrNotFound
	}
	return linker.Link(c.Request.Context(), subject, token)
}

func abortWith(c *gin.Context, err *utils.AppError) {
	c.AbortWithStatusJSON(err.Status(), err.Response())
}
