// Package backend is the HTTP client of the valuation backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
)

const maxResponseBytes = 8 << 20

// Client talks to the valuation backend. It holds no per-user state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for baseURL, e.g. "http://localhost:8080/api/v1".
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "backend_client")),
	}
}

var _ portsrepo.BackendGatewayFacade = (*Client)(nil)

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type saveHistoryRequest struct {
	ValuationID int64  `json:"valuationId"`
	Name        string `json:"name"`
}

// SignIn calls POST /authentication/sign-in.
func (c *Client) SignIn(ctx context.Context, username, password string) (*domain.Session, error) {
	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/authentication/sign-in", "", signInRequest{username, password}, &session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, fmt.Errorf("sign-in response has no token: %w", apperrors.ErrInvalidServerResponse)
	}
	return &session, nil
}

// SignUp calls POST /authentication/sign-up.
func (c *Client) SignUp(ctx context.Context, username, password string, roles []string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/authentication/sign-up", "", signUpRequest{username, password, roles}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateValuation calls POST /valuations.
func (c *Client) CreateValuation(ctx context.Context, token string, req domain.CreateValuationRequest) (*domain.ValuationResponse, error) {
	var v domain.ValuationResponse
	if err := c.do(ctx, http.MethodPost, "/valuations", token, req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListValuationsByUser calls GET /valuations/user/{userId}.
func (c *Client) ListValuationsByUser(ctx context.Context, token string, userID int64) ([]domain.ValuationResponse, error) {
	vs := []domain.ValuationResponse{}
	if err := c.do(ctx, http.MethodGet, "/valuations/user/"+strconv.FormatInt(userID, 10), token, nil, &vs); err != nil {
		return nil, err
	}
	return vs, nil
}

// GetValuation calls GET /valuations/{id}.
func (c *Client) GetValuation(ctx context.Context, token string, id int64) (*domain.ValuationResponse, error) {
	var v domain.ValuationResponse
	if err := c.do(ctx, http.MethodGet, "/valuations/"+strconv.FormatInt(id, 10), token, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteValuation calls DELETE /valuations/{id}. Any 2xx, including 204, is success.
func (c *Client) DeleteValuation(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/valuations/"+strconv.FormatInt(id, 10), token, nil, nil)
}

// SaveToHistory calls POST /history.
func (c *Client) SaveToHistory(ctx context.Context, token string, valuationID int64, name string) (*domain.HistoryItem, error) {
	var item domain.HistoryItem
	if err := c.do(ctx, http.MethodPost, "/history", token, saveHistoryRequest{valuationID, name}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// do sends the request and decodes a JSON answer into out. out may be nil when no body is expected.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Backend request failed", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return fmt.Errorf("%s %s: %w: %v", method, path, apperrors.ErrServer, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	c.logger.DebugContext(ctx, "Backend request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.ServerError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}
	if out == nil {
		return nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		c.logger.WarnContext(ctx, "Backend returned a non-JSON response",
			slog.String("path", path), slog.String("content_type", resp.Header.Get("Content-Type")))
		return fmt.Errorf("%s %s: %w", method, path, apperrors.ErrInvalidServerResponse)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, apperrors.ErrInvalidServerResponse, err)
	}
	return nil
}

// errorMessage prefers the backend's "message" field. A JSON body without one falls back to
// "Error <status>"; a non-JSON body is used verbatim.
func errorMessage(status int, body []byte) string {
	fallback := fmt.Sprintf("Error %d", status)
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return fallback
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}
