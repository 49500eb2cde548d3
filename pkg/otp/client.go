package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// OfflineCode is the code accepted when the gateway is unreachable and offline fallback is on
const OfflineCode = "123456"

var (
	ErrGatewayUnavailable = errors.New("OTP gateway unavailable")
	ErrGatewayRejected    = errors.New("OTP gateway rejected the request")
)

// Result is the gateway's answer for send/verify
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Offline bool   `json:"offline,omitempty"`
}

// Config holds the configuration for the OTP gateway client
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	OfflineFallback bool

	// Optional client-credentials auth against the gateway
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// Client talks to the external OTP gateway. Delivery is the gateway's job;
// this client only relays send/verify and reports the outcome.
type Client struct {
	baseURL         string
	timeout         time.Duration
	offlineFallback bool
	http            *http.Client
	logger          *zap.Logger
}

// NewClient creates an OTP client. When client credentials are configured the
// underlying HTTP client attaches a bearer token obtained from TokenURL.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.TokenURL != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(context.Background())
		httpClient.Timeout = timeout
	}

	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		timeout:         timeout,
		offlineFallback: cfg.OfflineFallback,
		http:            httpClient,
		logger:          logger,
	}
}

// IsConfigured checks if a gateway URL is set
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// SendOTP asks the gateway to deliver a code to phone
func (c *Client) SendOTP(ctx context.Context, phone string) (*Result, error) {
	res, err := c.post(ctx, "/send-otp", map[string]string{"mobileNumber": phone})
	if err == nil {
		return res, nil
	}
	if errors.Is(err, ErrGatewayUnavailable) && c.offlineFallback {
		c.logger.Warn("OTP gateway unreachable, using offline mode", zap.String("op", "send"), zap.Error(err))
		return &Result{Success: true, Message: "OTP sent (Offline Mode)", Offline: true}, nil
	}
	return nil, err
}

// VerifyOTP checks code for phone. A wrong code is a Result with Success=false, not an error.
func (c *Client) VerifyOTP(ctx context.Context, phone, code string) (*Result, error) {
	res, err := c.post(ctx, "/verify-otp", map[string]string{"mobileNumber": phone, "otp": code})
	if err == nil {
		return res, nil
	}
	if errors.Is(err, ErrGatewayUnavailable) && c.offlineFallback {
		c.logger.Warn("OTP gateway unreachable, using offline mode", zap.String("op", "verify"), zap.Error(err))
		if code == OfflineCode {
			return &Result{Success: true, Message: "Verified (Offline Mode)", Offline: true}, nil
		}
		return &Result{Success: false, Message: "Invalid OTP", Offline: true}, nil
	}
	return nil, err
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*Result, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("%w: no gateway configured", ErrGatewayUnavailable)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrGatewayUnavailable, resp.StatusCode, string(data))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayRejected, err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Message == "" {
			result.Message = fmt.Sprintf("gateway returned status %d", resp.StatusCode)
		}
		result.Success = false
	}

	return &result, nil
}
