package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rush-server/configs"
	"rush-server/models"
	"rush-server/repository"
	"rush-server/utils"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const stateTTL = 10 * time.Minute

// AuthService runs the OAuth authorization-code sign-in and issues session tokens.
type AuthService struct {
	states      repository.StateRepositoryInterface
	oauth       *oauth2.Config
	userInfoURL string
	tokens      *utils.SessionTokens
}

func NewAuthService(states repository.StateRepositoryInterface, cfg configs.OAuthConfig, tokens *utils.SessionTokens) *AuthService {
	return &AuthService{
		states: states,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
		tokens:      tokens,
	}
}

// SessionTTL is how long an issued session token, and the cookie carrying it, stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

// LoginURL records a fresh state and returns the provider URL to redirect to.
func (s *AuthService) LoginURL(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.states.SaveState(ctx, state, stateTTL); err != nil {
		return "", fmt.Errorf("save state: %w", err)
	}
	return s.oauth.AuthCodeURL(state), nil
}

type userInfo struct {
	Sub   string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Complete validates the returned state, exchanges the code and issues a session token.
func (s *AuthService) Complete(ctx context.Context, state, code string) (models.SessionUser, string, error) {
	if state == "" || code == "" {
		return models.SessionUser{}, "", ErrInvalidState
	}
	ok, err := s.states.ConsumeState(ctx, state)
	if err != nil {
		return models.SessionUser{}, "", fmt.Errorf("consume state: %w", err)
	}
	if !ok {
		return models.SessionUser{}, "", ErrInvalidState
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return models.SessionUser{}, "", fmt.Errorf("exchange code: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, tok)
	if err != nil {
		return models.SessionUser{}, "", err
	}

	user := models.SessionUser{ID: info.Sub, Name: info.Name, Email: info.Email}
	session, err := s.tokens.Issue(user)
	if err != nil {
		return models.SessionUser{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, session, nil
}

func (s *AuthService) fetchUserInfo(ctx context.Context, tok *oauth2.Token) (userInfo, error) {
	var info userInfo
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return info, err
	}
	resp, err := s.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return info, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("fetch user info: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, fmt.Errorf("decode user info: %w", err)
	}
	if info.Sub == "" {
		return info, fmt.Errorf("user info without subject")
	}
	return info, nil
}
