package broker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.kite.trade"
	defaultLoginURL = "https://kite.trade/connect/login"
	apiVersion      = "3"
)

// APIError is returned when the brokerage API rejects a request. The
// message is the short description from the response envelope, never the
// raw payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("broker api error (status %d): %s", e.StatusCode, e.Message)
}

// Config holds the brokerage app credentials
type Config struct {
	APIKey      string
	APISecret   string
	RedirectURL string
	BaseURL     string
	LoginURL    string
}

// Client talks to the Kite Connect style brokerage API
type Client struct {
	apiKey      string
	apiSecret   string
	redirectURL string
	baseURL     string
	loginURL    string
	httpClient  *http.Client
}

// NewClient creates a brokerage API client
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	loginURL := cfg.LoginURL
	if loginURL == "" {
		loginURL = defaultLoginURL
	}
	return &Client{
		apiKey:      cfg.APIKey,
		apiSecret:   cfg.APISecret,
		redirectURL: cfg.RedirectURL,
		baseURL:     baseURL,
		loginURL:    loginURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Session is the result of exchanging a request token
type Session struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

// Profile is the authenticated user's brokerage profile
type Profile struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	UserShortname string `json:"user_shortname"`
	Email         string `json:"email"`
}

// DisplayName returns the best available name for the profile
func (p *Profile) DisplayName() string {
	if p.UserName != "" {
		return p.UserName
	}
	return p.UserShortname
}

// envelope is the standard response wrapper used by the brokerage API
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginURL returns the URL the frontend redirects the user to for login
func (c *Client) LoginURL() string {
	login := fmt.Sprintf("%s?v=%s&api_key=%s", c.loginURL, apiVersion, url.QueryEscape(c.apiKey))
	if c.redirectURL != "" && !strings.Contains(login, "redirect_url") {
		login += "&redirect_url=" + url.QueryEscape(c.redirectURL)
	}
	return login
}

// GenerateSession exchanges the post-login request token for an access
// token. The checksum is SHA-256 over api_key + request_token + api_secret,
// as required by the token endpoint.
func (c *Client) GenerateSession(ctx context.Context, requestToken string) (*Session, error) {
	sum := sha256.Sum256([]byte(c.apiKey + requestToken + c.apiSecret))

	form := url.Values{}
	form.Set("api_key", c.apiKey)
	form.Set("request_token", requestToken)
	form.Set("checksum", hex.EncodeToString(sum[:]))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/session/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Kite-Version", apiVersion)

	var session Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Message: "access token not received"}
	}
	return &session, nil
}

// Profile fetches the authenticated user's profile
func (c *Client) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := c.newAuthorizedRequest(ctx, "/user/profile", accessToken)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := c.do(req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Holdings fetches the user's raw equity holdings. Records are returned as
// loose maps since field names and types vary across brokerage endpoints;
// normalization happens downstream.
func (c *Client) Holdings(ctx context.Context, accessToken string) ([]map[string]interface{}, error) {
	req, err := c.newAuthorizedRequest(ctx, "/portfolio/holdings", accessToken)
	if err != nil {
		return nil, err
	}

	var holdings []map[string]interface{}
	if err := c.do(req, &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

func (c *Client) newAuthorizedRequest(ctx context.Context, path, accessToken string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+c.apiKey+":"+accessToken)
	req.Header.Set("X-Kite-Version", apiVersion)
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("broker request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read broker response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "unexpected response from broker"}
	}

	if resp.StatusCode != http.StatusOK || env.Status == "error" {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode broker response: %w", err)
	}
	return nil
}
