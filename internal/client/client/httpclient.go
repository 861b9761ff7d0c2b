package client

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

	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/logging"
)

// DefaultTimeout bounds every backend call when Options.Timeout is zero.
const DefaultTimeout = 15 * time.Second

const maxResponseBytes = 1 << 20

// Options configures HTTPClient. Tokens and OnUnauthorized only apply to
// calls made through Do and DoBody.
type Options struct {
	// HTTPClient supplies the base transport. Defaults to http.DefaultTransport.
	HTTPClient     *http.Client
	Timeout        time.Duration
	Tokens         TokenSource
	OnUnauthorized UnauthorizedHandler
	Logger         logging.Logger
}

// HTTPClient talks JSON to the backend. Login and Register go out without a
// token; Do and DoBody carry the current session token.
type HTTPClient struct {
	baseURL        string
	public         *http.Client
	authed         *http.Client
	onUnauthorized UnauthorizedHandler
	log            logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// New builds a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8000/api".
func New(baseURL string, opts Options) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := http.DefaultTransport
	if opts.HTTPClient != nil && opts.HTTPClient.Transport != nil {
		base = opts.HTTPClient.Transport
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		public: &http.Client{
			Timeout:   timeout,
			Transport: &tokenTransport{base: base, log: log},
		},
		authed: &http.Client{
			Timeout:   timeout,
			Transport: &tokenTransport{base: base, tokens: opts.Tokens, log: log},
		},
		onUnauthorized: opts.OnUnauthorized,
		log:            log,
	}, nil
}

// Login posts credentials without a session token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp models.AuthResponse
	if err := c.callJSON(ctx, c.public, "login", http.MethodPost, "/users/login/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. The password confirmation is filled in from
// form.Password.
func (c *HTTPClient) Register(ctx context.Context, form models.SignupForm) (*models.AuthResponse, error) {
	req := struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}{
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password,
		Password2: form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}

	var resp models.AuthResponse
	if err := c.callJSON(ctx, c.public, "register", http.MethodPost, "/users/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Do performs an authenticated JSON call. payload and out may be nil.
func (c *HTTPClient) Do(ctx context.Context, method, path string, payload, out any) error {
	body, contentType, err := encodeJSON(payload)
	if err != nil {
		return &Error{Op: opName(method, path), Kind: KindUnknown, Err: err}
	}
	return c.DoBody(ctx, method, path, contentType, body, out)
}

// DoBody performs an authenticated call with a caller-encoded body, e.g. a
// multipart upload. The response is decoded as JSON into out when non-nil.
//
// A rejected token is reported to OnUnauthorized after the response is
// closed, outside the request timeout.
func (c *HTTPClient) DoBody(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	op := opName(method, path)

	ctx, s := withSent(ctx)
	err := c.call(ctx, c.authed, op, method, path, contentType, body, out, true)

	if KindOf(err) == KindUnauthorized && c.onUnauthorized != nil {
		c.log.Info(ctx, "server rejected session token",
			"op", op, "request_id", s.requestID, "token_present", s.token != "")
		// the invalidation must finish even if the caller gives up on the request
		c.onUnauthorized(context.WithoutCancel(ctx), s.token)
	}
	return err
}

// opName labels a call in errors and logs. The query string may carry user
// input and is left out.
func opName(method, path string) string {
	path, _, _ = strings.Cut(path, "?")
	return method + " " + path
}

func encodeJSON(payload any) (io.Reader, string, error) {
	if payload == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *HTTPClient) callJSON(ctx context.Context, hc *http.Client, op, method, path string, payload, out any) error {
	body, contentType, err := encodeJSON(payload)
	if err != nil {
		return &Error{Op: op, Kind: KindUnknown, Err: err}
	}
	ctx, _ = withSent(ctx)
	return c.call(ctx, hc, op, method, path, contentType, body, out, false)
}

// call expects ctx to carry a sent record from withSent.
func (c *HTTPClient) call(ctx context.Context, hc *http.Client, op, method, path, contentType string, body io.Reader, out any, authenticated bool) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return &Error{Op: op, Kind: KindUnknown, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	requestID := ""
	if s, ok := ctx.Value(sentKey{}).(*sent); ok {
		requestID = s.requestID
	}
	c.log.Debug(ctx, "backend call", "op", op, "status", resp.StatusCode, "request_id", requestID)

	// the rejection is decided by the status alone; the body is not needed
	if authenticated && resp.StatusCode == http.StatusUnauthorized {
		return &Error{Op: op, Kind: KindUnauthorized, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Op: op, Kind: KindNetwork, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Op: op, Kind: KindUnknown, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	return classify(op, resp.StatusCode, data)
}

func classify(op string, status int, body []byte) error {
	if status >= 400 && status < 500 && isStructuredJSON(body) {
		return &Error{
			Op:      op,
			Kind:    KindRemoteValidation,
			Status:  status,
			Details: json.RawMessage(bytes.TrimSpace(body)),
		}
	}
	return &Error{Op: op, Kind: KindUnknown, Status: status, Err: fmt.Errorf("unexpected status %d", status)}
}

func isStructuredJSON(body []byte) bool {
	b := bytes.TrimSpace(body)
	if len(b) == 0 || (b[0] != '{' && b[0] != '[') {
		return false
	}
	return json.Valid(b)
}
