package saleshistory

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

	"github.com/sandwichpos/pos-backend/internal/orders"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
)

const (
	orderIDsPath                = "sales-history/order-ids"
	salesPath                   = "sales-history"
	defaultTimeout              = 10 * time.Second
	responseBodyReadLimit int64 = 1024
)

var errBaseURLRequired = errors.New("sales history base url is required")

// Client talks to the remote sales-history backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	timeout    time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The client is used as is;
// WithTimeout does not touch it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBearerToken sends the token in the Authorization header of every request.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout overrides the request timeout of the built-in HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient builds a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL: trimmed,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}
	return client, nil
}

// ListOrderIDs returns every order id known to the backend. Both a bare JSON
// array and a {"data": [...]} envelope are accepted.
func (c *Client) ListOrderIDs(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sales history client not configured")
	}

	req, err := c.newRequest(ctx, http.MethodGet, orderIDsPath, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build order ids request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute order ids request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, statusError(resp), "order ids request failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read order ids response")
	}
	ids, err := decodeOrderIDs(body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order ids response")
	}
	return ids, nil
}

// CreateSale posts a completed sale. A 409 means the order id is already taken.
func (c *Client) CreateSale(ctx context.Context, sale orders.SaleRequest) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "sales history client not configured")
	}

	payload, err := json.Marshal(sale)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal sale request")
	}

	req, err := c.newRequest(ctx, http.MethodPost, salesPath, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build create sale request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute create sale request")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusConflict:
		return pkgerrors.Wrap(pkgerrors.CodeConflict, statusError(resp), "order id already recorded").
			WithDetails(map[string]any{"order_id": sale.OrderID})
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, statusError(resp), "sale rejected by sales history")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, statusError(resp), "create sale request failed")
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}

func decodeOrderIDs(body []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var ids []string
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return nil, err
		}
		return ids, nil
	}

	var envelope struct {
		Data *[]string `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, errors.New("response carries no order ids")
	}
	return *envelope.Data, nil
}

func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}
