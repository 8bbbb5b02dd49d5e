// Package chain provides the JSON-RPC client for the Ethereum gateway a
// Tessera node settles payments through. Nodes either point at a remote
// gateway or manage a local geth process; either way this client is the only
// path to the chain.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tessera-network/tesserad/internal/logging"
	"github.com/tessera-network/tesserad/internal/version"
)

// DefaultTimeout bounds a single gateway call.
const DefaultTimeout = 10 * time.Second

// rpcRequest is a JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

// rpcResponse is a JSON-RPC 2.0 response envelope.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
	ID      int             `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("gateway error %d: %s", e.Code, e.Message)
}

// Client talks JSON-RPC to an Ethereum gateway
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a gateway client for the given base URL
// (e.g. "http://gateway.example.com:8545").
func NewClient(baseURL string) *Client {
	client := resty.New()

	client.
		SetTimeout(DefaultTimeout).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("tesserad/%s", version.Version))

	client.
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Only retry on connection errors, not HTTP errors
			return err != nil
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Gateway request: %s %s", req.Method, req.URL)
		return nil
	})

	return &Client{http: client, baseURL: baseURL}
}

// call performs a single JSON-RPC request and returns the raw result.
func (c *Client) call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	var out rpcResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1}).
		SetResult(&out).
		Post("/")
	if err != nil {
		return nil, fmt.Errorf("gateway call %s failed: %w", method, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway call %s returned HTTP %d", method, resp.StatusCode())
	}

	if out.Error != nil {
		return nil, out.Error
	}

	return out.Result, nil
}

// ClientVersion probes the gateway and returns its reported client version.
// Used at startup to confirm the configured gateway is reachable before the
// payment subsystem depends on it.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	raw, err := c.call(ctx, "web3_clientVersion")
	if err != nil {
		return "", err
	}

	var clientVersion string
	if err := json.Unmarshal(raw, &clientVersion); err != nil {
		return "", fmt.Errorf("failed to parse gateway version: %w", err)
	}

	return clientVersion, nil
}

// BlockNumber returns the gateway's latest block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	raw, err := c.call(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}

	var hexNum string
	if err := json.Unmarshal(raw, &hexNum); err != nil {
		return 0, fmt.Errorf("failed to parse block number: %w", err)
	}

	var n uint64
	if _, err := fmt.Sscanf(hexNum, "0x%x", &n); err != nil {
		return 0, fmt.Errorf("failed to parse block number %q: %w", hexNum, err)
	}

	return n, nil
}
