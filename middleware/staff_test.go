package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
)

// fakeUserFinder resolves subjects from a fixed map
type fakeUserFinder struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserFinder) FindByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[auth0ID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return user, nil
}

// fakeLinker links any subject it was seeded with, when a bearer token is present
type fakeLinker struct {
	accounts map[string]*models.User
	err      error
	tokens   []string
}

func (f *fakeLinker) Link(ctx context.Context, subject, accessToken string) (*models.User, error) {
	f.tokens = append(f.tokens, accessToken)
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.accounts[subject]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return user, nil
}

func staffAccount(role string, active bool, status string) *models.User {
	return &models.User{
		ID:            uuid.New(),
		FirstName:     "Grace",
		LastName:      "Hopper",
		Role:          role,
		IsActive:      active,
		AccountStatus: status,
	}
}

func TestRequireStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)

	finder := &fakeUserFinder{users: map[string]*models.User{
		"auth0|admin":   staffAccount(models.RoleAdmin, true, models.AccountStatusActive),
		"auth0|staff":   staffAccount(models.RoleStaffMember, true, models.AccountStatusActive),
		"auth0|user":    staffAccount(models.RoleUser, true, models.AccountStatusActive),
		"auth0|idle":    staffAccount(models.RoleAdmin, false, models.AccountStatusActive),
		"auth0|deleted": staffAccount(models.RoleStaffMember, true, models.AccountStatusDeleted),
	}}

	tests := []struct {
		name       string
		subject    string
		finder     UserFinder
		wantStatus int
	}{
		{name: "admin passes", subject: "auth0|admin", finder: finder, wantStatus: http.StatusOK},
		{name: "staff member passes", subject: "auth0|staff", finder: finder, wantStatus: http.StatusOK},
		{name: "plain user is forbidden", subject: "auth0|user", finder: finder, wantStatus: http.StatusForbidden},
		{name: "inactive admin is forbidden", subject: "auth0|idle", finder: finder, wantStatus: http.StatusForbidden},
		{name: "deleted staff is forbidden", subject: "auth0|deleted", finder: finder, wantStatus: http.StatusForbidden},
		{name: "unlinked identity is forbidden", subject: "auth0|stranger", finder: finder, wantStatus: http.StatusForbidden},
		{name: "no subject is unauthorized", subject: "", finder: finder, wantStatus: http.StatusUnauthorized},
		{name: "lookup failure is internal", subject: "auth0|admin", finder: &fakeUserFinder{err: errors.New("db down")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *models.User
			router := gin.New()
			router.GET("/admin",
				func(c *gin.Context) {
					if tt.subject != "" {
						c.Set("user_id", tt.subject)
					}
				},
				RequireStaff(tt.finder, nil, logger.Nop()),
				func(c *gin.Context) {
					seen, _ = CurrentUser(c)
					c.Status(http.StatusOK)
				},
			)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				if assert.NotNil(t, seen) {
					assert.True(t, seen.IsStaff())
				}
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}

func TestRequireStaff_LinksOnFirstSignIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	finder := &fakeUserFinder{users: map[string]*models.User{}}
	newcomer := staffAccount(models.RoleStaffMember, true, models.AccountStatusActive)

	tests := []struct {
		name       string
		header     string
		linker     *fakeLinker
		wantStatus int
		wantTokens []string
	}{
		{
			name:       "pre-provisioned staff is linked",
			header:     "Bearer first-login",
			linker:     &fakeLinker{accounts: map[string]*models.User{"auth0|new": newcomer}},
			wantStatus: http.StatusOK,
			wantTokens: []string{"first-login"},
		},
		{
			name:       "no matching account",
			header:     "Bearer first-login",
			linker:     &fakeLinker{accounts: map[string]*models.User{}},
			wantStatus: http.StatusForbidden,
			wantTokens: []string{"first-login"},
		},
		{
			name:       "missing bearer token skips linking",
			linker:     &fakeLinker{accounts: map[string]*models.User{"auth0|new": newcomer}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "identity provider failure",
			header:     "Bearer first-login",
			linker:     &fakeLinker{err: errors.New("userinfo unavailable")},
			wantStatus: http.StatusInternalServerError,
			wantTokens: []string{"first-login"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *models.User
			router := gin.New()
			router.GET("/admin",
				func(c *gin.Context) { c.Set("user_id", "auth0|new") },
				RequireStaff(finder, tt.linker, logger.Nop()),
				func(c *gin.Context) {
					seen, _ = CurrentUser(c)
					c.Status(http.StatusOK)
				},
			)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantTokens, tt.linker.tokens)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, newcomer, seen)
			}
		})
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	user, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Nil(t, user)
}
