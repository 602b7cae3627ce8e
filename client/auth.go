package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges the email/password pair for a bearer credential. The
// endpoint expects an OAuth2 password form, so the email travels in the
// "username" field. The caller decides what to do with the credential; this
// method does not touch the session store.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &token)
	if err != nil {
		// A 401 here is a rejected login, not an expired session.
		if errors.Is(err, ErrSessionExpired) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	return token.AccessToken, nil
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Signup registers a new account. It does not log the user in; the service
// expects a follow-up Login call.
func (c *Client) Signup(ctx context.Context, email, password, fullName string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/signup", signupRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, nil)
}
