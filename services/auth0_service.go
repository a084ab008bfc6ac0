package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appConfig "github.com/Azeezfasasi/lasu-mba-cloth/config"
	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
)

// Auth0UserInfo represents the user information returned from Auth0's /userinfo endpoint
type Auth0UserInfo struct {
	Sub           string `json:"sub"` // Auth0 user ID
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Auth0Service handles interactions with Auth0 API
type Auth0Service struct {
	domain     string
	httpClient *http.Client
}

// NewAuth0Service creates a new Auth0 service instance
func NewAuth0Service(cfg appConfig.AuthConfig) *Auth0Service {
	return &Auth0Service{
		domain: cfg.Auth0Domain,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetUserInfo fetches the profile behind accessToken from Auth0's /userinfo endpoint
func (s *Auth0Service) GetUserInfo(ctx context.Context, accessToken string) (*Auth0UserInfo, error) {
	// A domain with a scheme is used as-is (tests point it at a local server)
	url := "https://" + s.domain + "/userinfo"
	if strings.HasPrefix(s.domain, "http://") || strings.HasPrefix(s.domain, "https://") {
		url = strings.TrimSuffix(s.domain, "/") + "/userinfo"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var userInfo Auth0UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return &userInfo, nil
}

// IdentityProvider resolves an access token to the signed-in profile
type IdentityProvider interface {
	GetUserInfo(ctx context.Context, accessToken string) (*Auth0UserInfo, error)
}

// StaffLinker ties a staff account created by email to its identity provider
// subject the first time that person signs in
type StaffLinker struct {
	users    *stores.UserStore
	identity IdentityProvider
	log      *logger.Logger
}

func NewStaffLinker(users *stores.UserStore, identity IdentityProvider, log *logger.Logger) *StaffLinker {
	return &StaffLinker{users: users, identity: identity, log: log}
}

// Link finds the unlinked account whose email matches the token's verified
// email and records subject on it. stores.ErrNotFound means there is nothing to link.
func (l *StaffLinker) Link(ctx context.Context, subject, accessToken string) (*models.User, error) {
	info, err := l.identity.GetUserInfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if info.Sub != subject {
		return nil, fmt.Errorf("userinfo subject %q does not match token subject %q", info.Sub, subject)
	}
	if info.Email == "" || !info.EmailVerified {
		l.log.From(ctx).Warn().Str("subject", subject).Msg("identity has no verified email, not linking")
		return nil, stores.ErrNotFound
	}

	user, err := l.users.FindUnlinkedByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if err := l.users.LinkAuth0ID(ctx, user, subject); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return nil, stores.ErrNotFound
		}
		return nil, err
	}

	l.log.From(ctx).Info().
		Str("user_id", user.ID.String()).
		Str("subject", subject).
		Msg("linked staff account to identity")
	return user, nil
}
