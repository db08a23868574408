package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/localizer/dashboard/shared/api"
	internal_errors "github.com/localizer/dashboard/shared/errors"
)

const loginPath = "login"

// Login exchanges credentials for a bearer token. A 401 here means wrong
// credentials, so the caller handles it instead of the session fallback.
func (c *APIClient) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	jsonBody, err := json.Marshal(api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login data: %w", err)
	}

	data, err := c.Do(WithAuthHandled(ctx), http.MethodPost, loginPath, bytes.NewReader(jsonBody), "")
	if err != nil {
		return nil, err
	}

	var resp api.LoginResponse
	if err := json.Unmarshal(data, &resp); err != nil || resp.Token == "" {
		return nil, internal_errors.New(http.StatusBadGateway, "Login response did not contain a token")
	}
	return &resp, nil
}

// Logout ends the session upstream. path is configurable because
// deployments disagree on it. A 401 goes to the OnUnauthorized hook.
func (c *APIClient) Logout(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodPost, path, nil, "")
	return err
}
