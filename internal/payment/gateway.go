package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"futstore-be/internal/logger"

	"go.uber.org/zap"
)

var ErrMissingCredentials = errors.New("payment gateway credentials are not configured")

type httpGateway struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
}

func NewHTTPGateway(baseURL, user, password string) Gateway {
	if user == "" || password == "" {
		logger.L().Warn("payment gateway credentials are empty")
	}

	return &httpGateway{
		baseURL:  baseURL,
		user:     user,
		password: password,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreatePaymentLink authenticates against the gateway and requests a
// hosted payment link. Credentials are checked before any network call.
func (g *httpGateway) CreatePaymentLink(ctx context.Context, req LinkRequest) (*LinkResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("reference", req.Reference),
		zap.Int("amount", req.Amount),
	)

	if g.user == "" || g.password == "" {
		return nil, ErrMissingCredentials
	}

	token, err := g.login(ctx)
	if err != nil {
		log.Error("gateway authentication failed", zap.Error(err))
		return nil, err
	}

	body := map[string]any{
		"amount":       req.Amount,
		"currency":     Currency,
		"order_number": req.Reference,
		"billing": map[string]any{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"email":      req.Email,
		},
		"return_url": req.ReturnURL,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/payment-links", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Add("Content-Type", "application/json")
	httpReq.Header.Add("Authorization", "Bearer "+token)

	log.Info("requesting payment link")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		log.Error("gateway request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("gateway returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("gateway error: %s", string(bodyBytes))
	}

	var res struct {
		URL   string `json:"url"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding gateway response", zap.Error(err))
		return nil, err
	}

	if res.URL == "" {
		return nil, errors.New("gateway response has no payment url")
	}

	log.Info("payment link created", zap.String("token", res.Token))

	return &LinkResponse{URL: res.URL, Token: res.Token}, nil
}

func (g *httpGateway) login(ctx context.Context) (string, error) {
	jsonBody, err := json.Marshal(map[string]string{
		"user":     g.user,
		"password": g.password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/auth/login", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway login error: %s", string(bodyBytes))
	}

	var res struct {
		BearerToken string `json:"bearer_token"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		return "", err
	}
	if res.BearerToken == "" {
		return "", errors.New("gateway login returned empty token")
	}

	return res.BearerToken, nil
}
