// Package client is a small HTTP client for the launchboard API, used
// by the terminal client in cmd/client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"launchboard/internal/domain/product"
	"launchboard/internal/domain/vote"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: http.DefaultClient}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

func (c *Client) Products(ctx context.Context) ([]product.Product, error) {
	var products []product.Product
	if err := c.do(ctx, http.MethodGet, "/api/v1/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

type ProductDetail struct {
	Product  product.Product `json:"product"`
	HasVoted bool            `json:"has_voted"`
}

func (c *Client) ProductBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	var detail ProductDetail
	if err := c.do(ctx, http.MethodGet, "/api/v1/products/slug/"+slug, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) Vote(ctx context.Context, productID uuid.UUID, dir vote.Direction) (vote.Result, error) {
	body := map[string]string{"direction": string(dir)}
	var res vote.Result
	if err := c.do(ctx, http.MethodPost, "/api/v1/products/"+productID.String()+"/vote", body, &res); err != nil {
		return vote.Result{}, err
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
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
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s: %s", apiErr.Error, apiErr.Message)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
