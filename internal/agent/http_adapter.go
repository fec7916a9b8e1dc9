package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/motormarket/go-mobile-sync/internal/config"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/utils"
	"github.com/motormarket/go-mobile-sync/models"
)

type httpGatewayAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPGatewayAdapter constructs an HTTP/REST implementation of
// [GatewayAdapter]. It normalises and validates the base URL from
// cfg.ServerAddress and configures the underlying client with the resolved
// base URL and request timeout.
func NewHTTPGatewayAdapter(cfg config.AgentAdapter, logger *logger.Logger) (GatewayAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid agent server address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpGatewayAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [GatewayAdapter].
func (h *httpGatewayAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [GatewayAdapter].
func (h *httpGatewayAdapter) Token() string {
	return h.token
}

// Register implements [GatewayAdapter]. On success the bearer token is
// extracted from the Authorization response header and stored via SetToken.
func (h *httpGatewayAdapter) Register(ctx context.Context, login, password, name string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"login": login, "password": password, "name": name}).
		Post("/api/user/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return nil
}

// Login implements [GatewayAdapter]. On success the bearer token is
// extracted from the Authorization response header and stored via SetToken.
func (h *httpGatewayAdapter) Login(ctx context.Context, login, password string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"login": login, "password": password}).
		Post("/api/user/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return nil
}

// syncResponseBody mirrors the gateway's sync response with the data object
// left as raw JSON so it can be decoded into [SyncData].
type syncResponseBody struct {
	Success         bool            `json:"success"`
	Data            json.RawMessage `json:"data"`
	ServerTimestamp time.Time       `json:"server_timestamp"`
}

// Sync implements [GatewayAdapter].
func (h *httpGatewayAdapter) Sync(ctx context.Context, req models.SyncRequest) (SyncData, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync")
	if err != nil {
		return SyncData{}, fmt.Errorf("sync request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return SyncData{}, err
	}

	var body syncResponseBody
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return SyncData{}, fmt.Errorf("decode sync response: %w", err)
	}

	var data SyncData
	if err = json.Unmarshal(body.Data, &data); err != nil {
		return SyncData{}, fmt.Errorf("decode sync envelope: %w", err)
	}

	if data.Timestamp.IsZero() {
		data.Timestamp = body.ServerTimestamp
	}

	return data, nil
}

// Status implements [GatewayAdapter].
func (h *httpGatewayAdapter) Status(ctx context.Context, deviceID string) (models.SyncStatus, error) {
	req := h.authedRequest(ctx)
	if deviceID != "" {
		req.SetQueryParam("device_id", deviceID)
	}

	resp, err := req.Get("/api/sync")
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncStatus{}, err
	}

	var status models.SyncStatus
	if err = json.Unmarshal(resp.Body(), &status); err != nil {
		return models.SyncStatus{}, fmt.Errorf("decode status response: %w", err)
	}

	return status, nil
}

// ResolveConflicts implements [GatewayAdapter].
func (h *httpGatewayAdapter) ResolveConflicts(ctx context.Context, req models.ConflictRequest) (models.ConflictResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/sync")
	if err != nil {
		return models.ConflictResponse{}, fmt.Errorf("resolve conflicts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ConflictResponse{}, err
	}

	var result models.ConflictResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.ConflictResponse{}, fmt.Errorf("decode conflict response: %w", err)
	}

	return result, nil
}

func (h *httpGatewayAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
