package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/ratelimit"
)

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, call{
		op:        "login",
		limit:     ratelimit.OpAuth,
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      req,
		failure:   ErrAuthFailed,
		loginCall: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. It returns the user only; the caller logs in
// afterwards to get tokens.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var user models.User
	err := c.do(ctx, call{
		op:        "register",
		limit:     ratelimit.OpAuth,
		method:    http.MethodPost,
		path:      "/auth/register",
		body:      req,
		failure:   ErrAuthFailed,
		loginCall: true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, call{
		op:      "current user",
		limit:   ratelimit.OpAuth,
		method:  http.MethodGet,
		path:    "/auth/me",
		token:   token,
		failure: ErrAuthFailed,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GoogleCallback exchanges an OAuth code for tokens.
func (c *Client) GoogleCallback(ctx context.Context, code, state string) (*models.AuthResponse, error) {
	params := url.Values{}
	params.Set("code", code)
	if state != "" {
		params.Set("state", state)
	}

	var resp models.AuthResponse
	err := c.do(ctx, call{
		op:        "google callback",
		limit:     ratelimit.OpAuth,
		method:    http.MethodGet,
		path:      "/auth/google/callback?" + params.Encode(),
		failure:   ErrAuthFailed,
		loginCall: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
