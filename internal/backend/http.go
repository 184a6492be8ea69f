package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

const serviceTokenTTL = 5 * time.Minute

// HTTPClient is the Client backed by the real REST API.
type HTTPClient struct {
	baseURL     string
	http        *http.Client
	tokenSecret []byte
	subject     string
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokenSecret string) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: timeout},
		tokenSecret: []byte(tokenSecret),
		subject:     "tablero",
	}
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, http.MethodGet, "/usuarios", nil, &users)
	return users, err
}

func (c *HTTPClient) CreateUser(ctx context.Context, user domain.User) error {
	return c.do(ctx, http.MethodPost, "/usuarios/registro", user, nil)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id domain.ID, user domain.User) error {
	return c.do(ctx, http.MethodPut, "/usuarios/"+url.PathEscape(id.String()), user, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, "/usuarios/"+url.PathEscape(id.String()), nil, nil)
}

func (c *HTTPClient) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := c.do(ctx, http.MethodGet, "/roles", nil, &roles)
	return roles, err
}

func (c *HTTPClient) ListSpecSheets(ctx context.Context) ([]domain.SpecSheet, error) {
	var sheets []domain.SpecSheet
	err := c.do(ctx, http.MethodGet, "/fichastecnicas", nil, &sheets)
	return sheets, err
}

func (c *HTTPClient) CreateSpecSheet(ctx context.Context, sheet domain.SpecSheet) error {
	return c.do(ctx, http.MethodPost, "/fichastecnicas", sheet, nil)
}

func (c *HTTPClient) UpdateSpecSheet(ctx context.Context, id domain.ID, sheet domain.SpecSheet) error {
	return c.do(ctx, http.MethodPut, "/fichastecnicas/"+url.PathEscape(id.String()), sheet, nil)
}

func (c *HTTPClient) DeleteSpecSheet(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, "/fichastecnicas/"+url.PathEscape(id.String()), nil, nil)
}

func (c *HTTPClient) SetSpecSheetActive(ctx context.Context, id domain.ID, active bool) error {
	path := "/fichastecnicas/" + url.PathEscape(id.String()) + "/estado"
	return c.do(ctx, http.MethodPatch, path, domain.SpecSheetStatusRequest{Active: active}, nil)
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.do(ctx, http.MethodGet, "/productos", nil, &products)
	return products, err
}

func (c *HTTPClient) ListSupplies(ctx context.Context) ([]domain.Supply, error) {
	var supplies []domain.Supply
	err := c.do(ctx, http.MethodGet, "/insumos", nil, &supplies)
	return supplies, err
}

func (c *HTTPClient) ListSales(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := c.do(ctx, http.MethodGet, "/ventas", nil, &sales)
	return sales, err
}

func (c *HTTPClient) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	err := c.do(ctx, http.MethodGet, "/clientes", nil, &clients)
	return clients, err
}

func (c *HTTPClient) do(ctx context.Context, method string, path string, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.bearer(ctx); err != nil {
		return err
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	startedAt := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	zerolog.Ctx(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(startedAt)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: string(snippet)}
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// bearer forwards the caller's token when there is one. Service contexts
// without one get a short-lived signed token; anything else goes out
// unauthenticated.
func (c *HTTPClient) bearer(ctx context.Context) (string, error) {
	if token, ok := BearerFromContext(ctx); ok {
		return token, nil
	}
	if len(c.tokenSecret) == 0 || !isService(ctx) {
		return "", nil
	}
	now := time.Now().UTC()
	claims := jwtlib.RegisteredClaims{
		Subject:   c.subject,
		Issuer:    "tablero",
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(serviceTokenTTL)),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.tokenSecret)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	return token, nil
}
