package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/flatauth/internal/netx"
)

// Client is the API contract the CLI depends on.
type Client interface {
	Signup(ctx context.Context, email, password string) (int, string, error)
	Login(ctx context.Context, email, password string) (int, string, error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) (int, string, error) {
	return c.post(ctx, "/signup", email, password)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (int, string, error) {
	return c.post(ctx, "/login", email, password)
}

func (c *HTTPClient) post(ctx context.Context, path, email, password string) (int, string, error) {
	status, reply, err := netx.PostJSON(ctx, c.http, c.baseURL+path, credentials{Email: email, Password: password})
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return status, string(reply), nil
}
