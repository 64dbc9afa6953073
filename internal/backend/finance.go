package backend

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"
)

type FinanceClient struct {
	*Client
}

func NewFinanceClient(base string, timeout time.Duration, logger *zap.Logger) *FinanceClient {
	return &FinanceClient{Client: newClient("Finance", base, timeout, logger)}
}

func (c *FinanceClient) Account(ctx context.Context, token string) (*InvoiceAccount, error) {
	var out InvoiceAccount
	if err := c.do(ctx, "GET", "/finance/account", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FinanceClient) PayInvoice(ctx context.Context, token, reference string) (*Message, error) {
	var out Message
	path := "/finance/invoice/" + url.PathEscape(reference) + "/pay"
	if err := c.do(ctx, "PUT", path, token, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FinanceClient) CancelInvoice(ctx context.Context, token, reference string) (*Message, error) {
	var out Message
	path := "/finance/invoice/" + url.PathEscape(reference) + "/cancel"
	if err := c.do(ctx, "DELETE", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
