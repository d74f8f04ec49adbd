// Package api implements the HTTP client for the support-case server.
// A Client holds the base URL and, after login, the bearer token that is
// attached to every authenticated request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/supportcase/internal/common"
)

// Case mirrors the server's case representation.
type Case struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs (or with "" clears) the bearer token used for
// authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized {
			return common.ErrorUnauthorized
		}
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return errors.New(e.Error)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Register creates an account. The password travels only inside this request.
func (c *Client) Register(ctx context.Context, email string, password []byte) error {
	body := map[string]string{"email": email, "password": string(password)}
	return c.do(ctx, http.MethodPost, "/api/register", body, nil)
}

// Login authenticates and installs the returned session token on the client.
func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	body := map[string]string{"email": email, "password": string(password)}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return err
	}

	c.SetToken(resp.Token)
	return nil
}

func (c *Client) ListCases(ctx context.Context) ([]Case, error) {
	var result []Case
	if err := c.do(ctx, http.MethodGet, "/api/cases", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateCase(ctx context.Context, title, description string) (*Case, error) {
	body := map[string]string{"title": title, "description": description}

	created := &Case{}
	if err := c.do(ctx, http.MethodPost, "/api/cases", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) UpdateCase(ctx context.Context, id, title, description string) (*Case, error) {
	body := map[string]string{"title": title, "description": description}

	updated := &Case{}
	if err := c.do(ctx, http.MethodPut, "/api/cases/"+id, body, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) DeleteCase(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/cases/"+id, nil, nil)
}
