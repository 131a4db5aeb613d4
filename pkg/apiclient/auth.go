package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	learnkit "github.com/skillhub/learnkit"
)

// Login exchanges credentials for a session token and user profile.
// A rejected attempt returns ErrInvalidCredentials; network failures
// return ErrTransport.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var result AuthResult
	status, remote, err := c.do(ctx, http.MethodPost, "/login", "", body, &result)
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 200 && status <= 299:
		if result.Token == "" || result.User == nil {
			return nil, fmt.Errorf("%w: login response missing token or user", ErrMalformedResponse)
		}
		return &result, nil
	case status >= 400 && status < 500:
		if remote.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, remote.Message)
		}
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%w: login returned status %d", ErrServer, status)
	}
}

// Register creates an account and returns the session token and profile.
// A 422 response surfaces as learnkit.ValidationError with the remote
// field → messages map intact so callers can render per-field feedback.
func (c *Client) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	body := struct {
		Name                 string `json:"name"`
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
		Role                 Role   `json:"role"`
	}{
		Name:                 params.Name,
		Email:                params.Email,
		Password:             params.Password,
		PasswordConfirmation: params.PasswordConfirmation,
		Role:                 RoleStudent,
	}

	var result AuthResult
	status, remote, err := c.do(ctx, http.MethodPost, "/register", "", body, &result)
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 200 && status <= 299:
		if result.Token == "" || result.User == nil {
			return nil, fmt.Errorf("%w: register response missing token or user", ErrMalformedResponse)
		}
		return &result, nil
	case status == http.StatusUnprocessableEntity:
		verr := learnkit.NewValidationError()
		for field, messages := range remote.Errors {
			for _, msg := range messages {
				verr.Add(field, msg)
			}
		}
		if verr.IsEmpty() {
			// A 422 without a field map is still a rejection.
			verr.Add("base", "registration rejected")
		}
		return nil, verr
	case status >= 400 && status < 500:
		if remote.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, remote.Message)
		}
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%w: register returned status %d", ErrServer, status)
	}
}

// Me fetches the profile behind the token. A rejected token returns
// ErrUnauthorized.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var envelope struct {
		Data *User `json:"data"`
	}

	status, _, err := c.do(ctx, http.MethodGet, "/me", token, nil, &envelope)
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 200 && status <= 299:
		if envelope.Data == nil || envelope.Data.ID == 0 {
			return nil, fmt.Errorf("%w: me response missing profile", ErrMalformedResponse)
		}
		return envelope.Data, nil
	case status == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("%w: me returned status %d", ErrServer, status)
	}
}

// Logout revokes the token server-side. Best effort: callers are expected
// to discard local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	status, _, err := c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: logout returned status %d", ErrServer, status)
	}
	return nil
}

// IsAuthError reports whether the error is a credential-level rejection
// rather than an infrastructure failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUnauthorized)
}
