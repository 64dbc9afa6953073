package backend

import (
	"context"
	"net/url"
	"time"

	"github.com/studenthive/portal/pkg/id"
	"go.uber.org/zap"
)

type AuthClient struct {
	*Client
}

func NewAuthClient(base string, timeout time.Duration, logger *zap.Logger) *AuthClient {
	return &AuthClient{Client: newClient("Auth", base, timeout, logger)}
}

type signInRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func (c *AuthClient) SignIn(ctx context.Context, username, password string) (*JWTToken, error) {
	var out JWTToken
	req := signInRequest{UserName: username, Password: password}
	if err := c.do(ctx, "POST", "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthClient) CreateUser(ctx context.Context, user AuthUser) (*AuthUser, error) {
	var out AuthUser
	if err := c.do(ctx, "POST", "/auth/user", "", user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthClient) Activate(ctx context.Context, activationToken string) (*Message, error) {
	var out Message
	path := "/auth/activation/" + url.PathEscape(activationToken)
	if err := c.do(ctx, "GET", path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthClient) GetUser(ctx context.Context, token string, userID id.UserID) (*AuthUser, error) {
	var out AuthUser
	path := "/auth/user/" + url.PathEscape(string(userID))
	if err := c.do(ctx, "GET", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
