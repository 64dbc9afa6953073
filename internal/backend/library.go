package backend

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"
)

type LibraryClient struct {
	*Client
}

func NewLibraryClient(base string, timeout time.Duration, logger *zap.Logger) *LibraryClient {
	return &LibraryClient{Client: newClient("Library", base, timeout, logger)}
}

func (c *LibraryClient) Books(ctx context.Context, token string) (*BookList, error) {
	var out BookList
	if err := c.do(ctx, "GET", "/library/books", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LibraryClient) Borrow(ctx context.Context, token, isbn string) (*Message, error) {
	var out Message
	path := "/library/student/borrow/" + url.PathEscape(isbn)
	if err := c.do(ctx, "POST", path, token, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LibraryClient) Return(ctx context.Context, token, isbn string) (*Message, error) {
	var out Message
	path := "/library/student/return/" + url.PathEscape(isbn)
	if err := c.do(ctx, "POST", path, token, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
