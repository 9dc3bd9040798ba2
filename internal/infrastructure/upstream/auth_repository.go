package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// AuthRepository implements ports.AuthRepository against the registry's
// authentication endpoints.
type AuthRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) *AuthRepository {
	return &AuthRepository{client: client}
}

func (r *AuthRepository) CSRFToken(ctx context.Context) (string, error) {
	return r.client.refreshCSRF(ctx)
}

// Login exchanges credentials for a token and the signed-in user. Bad
// credentials surface as domain.ErrInvalidCredentials.
func (r *AuthRepository) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	body, err := r.client.post(ctx, "/auth/login/", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		var uerr *Error
		if errors.As(err, &uerr) && (uerr.StatusCode == http.StatusBadRequest || uerr.StatusCode == http.StatusUnauthorized) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	var payload struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("login decode: %w", err)
	}

	// Some registry builds return the user record bare, without an envelope.
	if payload.User == nil {
		user, err := decodeOne[domain.User](body)
		if err != nil {
			return nil, fmt.Errorf("login decode: %w", err)
		}
		payload.User = user
	}

	return &ports.LoginResult{Token: payload.Token, User: payload.User}, nil
}

func (r *AuthRepository) Logout(ctx context.Context) error {
	_, err := r.client.post(ctx, "/auth/logout/", nil)
	return err
}

func (r *AuthRepository) CurrentUser(ctx context.Context) (*domain.User, error) {
	body, err := r.client.get(ctx, "/auth/user/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.User](body)
}
