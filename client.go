package myweblog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API captures the remote operations implemented by *Client. Integrations
// can depend on it to swap in fakes.
type API interface {
	ObtainAppToken(ctx context.Context, appSecret string) (string, error)
	FetchObjects(ctx context.Context, query ObjectsQuery) (*ObjectsResponse, error)
	FetchBookings(ctx context.Context, query BookingsQuery) (*BookingsResponse, error)
	FetchBalance(ctx context.Context) (*BalanceResponse, error)
	FetchTransactions(ctx context.Context, query TransactionsQuery) (*TransactionsResponse, error)
	FetchFlightLog(ctx context.Context, query FlightLogQuery) (*FlightLogResponse, error)
	FetchFlightLogReversed(ctx context.Context, query FlightLogQuery) (*FlightLogResponse, error)
	CreateBooking(ctx context.Context, booking NewBooking) (*MutationResult, error)
	CutBooking(ctx context.Context, id int64) (*MutationResult, error)
	DeleteBooking(ctx context.Context, id int64) (*MutationResult, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the MyWebLog mobile API.
type Client struct {
	baseURL    *url.URL
	apiVersion string
	username   string
	password   string
	language   string
	userAgent  string
	appToken   string
	appSecret  string
	http       *http.Client

	rawBaseURL string
	timeout    time.Duration
}

const (
	defaultBaseURL   = "https://api.myweblog.se/api_mobile.php?version=2.0.3"
	defaultVersion   = "2.0.3"
	defaultLanguage  = "se"
	defaultUserAgent = "go-myweblog/1.0"
	requestTimeout   = 10 * time.Second
)

// Remote operation names, sent as the qtype parameter and echoed back in
// the response's qType field.
const (
	qtypeGetAppToken          = "getAppToken"
	qtypeGetObjects           = "getObjects"
	qtypeGetBookings          = "getBookings"
	qtypeGetBalance           = "getBalance"
	qtypeGetTransactions      = "getTransactions"
	qtypeGetFlightLog         = "getFlightLog"
	qtypeGetFlightLogReversed = "getFlightLogReversed"
	qtypeCreateBooking        = "createBooking"
	qtypeCutBooking           = "cutBooking"
	qtypeDeleteBooking        = "deleteBooking"
)

// Option configures a Client. Zero or invalid values are ignored and the
// default is kept.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. The expected API version is read
// from the URL's version query parameter.
func WithBaseURL(rawURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(rawURL) != "" {
			c.rawBaseURL = rawURL
		}
	}
}

// WithAppToken seeds the client with a previously issued app token.
func WithAppToken(token string) Option {
	return func(c *Client) { c.appToken = strings.TrimSpace(token) }
}

// WithAppSecret provides the pre-shared secret used to exchange for an app
// token. With a secret set, the exchange happens lazily before the first
// operation that needs a token.
func WithAppSecret(secret string) Option {
	return func(c *Client) { c.appSecret = strings.TrimSpace(secret) }
}

// WithLanguage overrides the language parameter sent on every request.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			c.language = trimmed
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(ua); trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// WithTimeout overrides the fixed per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client entirely; the
// timeout option is ignored when one is provided.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New builds a Client for the given MyWebLog account.
func New(username, password string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	c := &Client{
		username:   username,
		password:   password,
		language:   defaultLanguage,
		userAgent:  defaultUserAgent,
		rawBaseURL: defaultBaseURL,
		timeout:    requestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	base, version, err := parseBaseURL(c.rawBaseURL)
	if err != nil {
		return nil, err
	}
	c.baseURL = base
	c.apiVersion = version
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// AppToken returns the token currently held by the client, empty when no
// exchange has happened and none was seeded.
func (c *Client) AppToken() string {
	if c == nil {
		return ""
	}
	return c.appToken
}

// Close releases idle transport connections. The client must not be used
// afterwards.
func (c *Client) Close() {
	if c != nil && c.http != nil {
		c.http.CloseIdleConnections()
	}
}

// ObtainAppToken exchanges the pre-shared app secret for a short-lived app
// token, stores it on the client, and returns it. A success envelope
// without a token is an authentication failure.
func (c *Client) ObtainAppToken(ctx context.Context, appSecret string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(appSecret) == "" {
		return "", &AuthError{Op: qtypeGetAppToken, Reason: "app secret is empty"}
	}
	params := url.Values{}
	params.Set("app_secret", appSecret)
	var payload tokenResponse
	if err := c.post(ctx, qtypeGetAppToken, params, &payload); err != nil {
		return "", err
	}
	token := strings.TrimSpace(payload.AppToken)
	if token == "" {
		reason := payload.ErrorMessage
		if reason == "" {
			reason = "token exchange returned no app_token"
		}
		return "", &AuthError{Op: qtypeGetAppToken, Reason: reason}
	}
	c.appToken = token
	return token, nil
}

// do runs one authenticated operation: it makes sure a token is held
// (exchanging the configured secret lazily when necessary), then posts the
// parameters and decodes the response into dest.
func (c *Client) do(ctx context.Context, qtype string, params url.Values, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if c.appToken == "" {
		if c.appSecret == "" {
			return &AuthError{Op: qtype, Reason: "no app token held; seed one with WithAppToken or WithAppSecret, or call ObtainAppToken"}
		}
		if _, err := c.ObtainAppToken(ctx, c.appSecret); err != nil {
			return err
		}
	}
	return c.post(ctx, qtype, params, dest)
}

// post sends one form-encoded POST to the API endpoint and decodes the JSON
// body into dest. The session constants are merged into the caller's
// parameters; the response envelope must echo the requested qtype and the
// expected API version.
func (c *Client) post(ctx context.Context, qtype string, params url.Values, dest any) error {
	form := url.Values{}
	for k, vs := range params {
		form[k] = vs
	}
	form.Set("qtype", qtype)
	form.Set("mwl_u", c.username)
	form.Set("mwl_p", c.password)
	form.Set("returnType", "json")
	form.Set("charset", "UTF-8")
	form.Set("app_token", c.appToken)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", qtype, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: qtype, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Op: qtype, Reason: remoteMessage(resp.Body, resp.StatusCode)}
	case resp.StatusCode >= 400:
		return &ProtocolError{Op: qtype, Status: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &ProtocolError{Op: qtype, Detail: fmt.Sprintf("decode response: %v", err)}
	}
	if src, ok := dest.(interface{ envelope() Envelope }); ok {
		// The service is not consistent about qType casing across
		// versions, so the echo check is case-insensitive.
		e := src.envelope()
		if !strings.EqualFold(e.QType, qtype) {
			return &ProtocolError{Op: qtype, Detail: fmt.Sprintf("unexpected qType %q in response", e.QType)}
		}
		if e.APIVersion != c.apiVersion {
			return &ProtocolError{Op: qtype, Detail: fmt.Sprintf("unexpected APIVersion %q, want %q", e.APIVersion, c.apiVersion)}
		}
	}
	return nil
}

// mutate runs a mutating operation and maps a business rejection
// (errorMessage in a success envelope) to *RemoteError.
func (c *Client) mutate(ctx context.Context, qtype string, params url.Values) (*MutationResult, error) {
	var payload MutationResult
	if err := c.do(ctx, qtype, params, &payload); err != nil {
		return nil, err
	}
	if payload.ErrorMessage != "" {
		return nil, &RemoteError{Op: qtype, Message: payload.ErrorMessage}
	}
	return &payload, nil
}

// remoteMessage pulls errorMessage out of an error response body, falling
// back to the HTTP status.
func remoteMessage(body io.Reader, status int) string {
	var e Envelope
	if err := json.NewDecoder(body).Decode(&e); err == nil && e.ErrorMessage != "" {
		return e.ErrorMessage
	}
	return fmt.Sprintf("api returned status %d", status)
}

// parseBaseURL normalizes the configured endpoint and extracts the API
// version carried in its query string.
func parseBaseURL(raw string) (*url.URL, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, "", fmt.Errorf("parse base url %q: %w", raw, err)
	}
	version := u.Query().Get("version")
	if version == "" {
		version = defaultVersion
	}
	u.Fragment = ""
	return u, version, nil
}
