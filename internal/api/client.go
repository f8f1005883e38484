// Package api wraps outbound calls to the remote finance backend and
// normalizes their failures into the client error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fintrack/internal/config"
	"fintrack/internal/dto"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/session"
	"fintrack/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client is the outbound surface every screen fetches through.
type Client interface {
	// Login exchanges credentials for a bearer token and stores it in the
	// session on success.
	Login(ctx context.Context, email, password string) (string, error)

	// Register creates a new account. It does not authenticate; callers
	// log in afterwards.
	Register(ctx context.Context, req dto.RegisterRequest) (*models.Profile, error)

	// CurrentUser returns the authenticated user's profile.
	CurrentUser(ctx context.Context) (*models.Profile, error)

	// ListTransactions fetches the user's transactions, newest first.
	// A limit of 0 means no limit.
	ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error)

	// CreateTransaction submits a new transaction after validating the input.
	CreateTransaction(ctx context.Context, input dto.TransactionInput) (*models.Transaction, error)

	// DeleteTransaction removes a transaction by ID.
	DeleteTransaction(ctx context.Context, id int64) error
}

type httpClient struct {
	baseURL   string
	http      *http.Client
	session   *session.Manager
	limiter   *rate.Limiter
	validator *validation.Validator
}

// NewClient creates the HTTP-backed client. Every request carries the
// session's bearer token when one is present, and outbound calls are
// rate limited as basic politeness toward the backend.
func NewClient(cfg config.APIConfig, sess *session.Manager) Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	return &httpClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      &http.Client{Timeout: cfg.Timeout},
		session:   sess,
		limiter:   rate.NewLimiter(rate.Limit(rps), rps),
		validator: validation.GetValidator(),
	}
}

func (c *httpClient) Login(ctx context.Context, email, password string) (string, error) {
	creds := dto.LoginRequest{Email: email, Password: password}
	if err := c.validator.Struct(creds); err != nil {
		if msg := c.validator.FirstError(err); msg != "" {
			return "", &apperrors.APIError{Code: apperrors.ValidationField, Message: msg}
		}
		return "", err
	}

	// The token endpoint expects OAuth2-style form encoding with the
	// email under the "username" key.
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, "/auth/login", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return "", err
	}

	var token dto.TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.session.SetToken(token.AccessToken)
	slog.Info("login succeeded", "email", email)

	return token.AccessToken, nil
}

func (c *httpClient) Register(ctx context.Context, req dto.RegisterRequest) (*models.Profile, error) {
	if err := c.validator.Struct(req); err != nil {
		if msg := c.validator.FirstError(err); msg != "" {
			return nil, &apperrors.APIError{Code: apperrors.ValidationField, Message: msg}
		}
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode registration: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/auth/register", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	slog.Info("registration succeeded", "email", req.Email)
	return &profile, nil
}

func (c *httpClient) CurrentUser(ctx context.Context) (*models.Profile, error) {
	body, err := c.do(ctx, http.MethodGet, "/users/me", nil, "")
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &profile, nil
}

func (c *httpClient) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	path := "/transactions/"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := json.Unmarshal(body, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	return transactions, nil
}

func (c *httpClient) CreateTransaction(ctx context.Context, input dto.TransactionInput) (*models.Transaction, error) {
	if err := c.validator.Struct(input); err != nil {
		if msg := c.validator.FirstError(err); msg != "" {
			return nil, &apperrors.APIError{Code: apperrors.ValidationField, Message: msg}
		}
		return nil, err
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/transactions/", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	var created models.Transaction
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode created transaction: %w", err)
	}

	slog.Info("transaction created", "id", created.ID, "type", created.Type, "category", created.Category)
	return &created, nil
}

func (c *httpClient) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, "")
	if err != nil {
		return err
	}

	slog.Info("transaction deleted", "id", id)
	return nil
}

// do performs one request and returns the response body, or a classified
// error. A 401 clears the stored credential before the error propagates,
// forcing re-authentication on the next view render.
func (c *httpClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("request failed before a response arrived",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err)
		return nil, apperrors.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.session.Clear()
			slog.Warn("credential rejected, session cleared", "path", path, "request_id", requestID)
		}

		classified := apperrors.Classify(resp.StatusCode, respBody)
		slog.Warn("request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"code", classified.Code,
			"request_id", requestID)
		return nil, classified
	}

	if readErr != nil {
		return nil, fmt.Errorf("failed to read response body: %w", readErr)
	}

	return respBody, nil
}
