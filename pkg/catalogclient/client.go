// Package catalogclient talks to the catalog's JSON API.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("catalog product not found")
	ErrUnavailable = errors.New("catalog unavailable")
)

// APIError is a non-2xx reply that is not a 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog: status=%d: %s", e.Status, e.Message)
}

type Product struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	SPF              float64  `json:"spf"`
	Price            string   `json:"price"`
	Image            string   `json:"image"`
	Features         []string `json:"features"`
	MainIngredients  []string `json:"mainIngredients"`
}

// ProductInput is the body for Create and Update.
type ProductInput struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	SPF              float64  `json:"spf"`
	Price            string   `json:"price"`
	Image            string   `json:"image"`
	Features         []string `json:"features"`
	MainIngredients  []string `json:"mainIngredients"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int) (Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

type envelope struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

func (c *Client) Create(ctx context.Context, in ProductInput) (Product, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/api/products", in, &env); err != nil {
		return Product{}, err
	}
	return env.Product, nil
}

func (c *Client) Update(ctx context.Context, id int, in ProductInput) (Product, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPut, productPath(id), in, &env); err != nil {
		return Product{}, err
	}
	return env.Product, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil)
}

// Ready reports whether /readyz answers 200.
func (c *Client) Ready(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/readyz", nil, nil)
}

func productPath(id int) string {
	return "/api/products/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case resp.StatusCode >= 300:
		return &APIError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
