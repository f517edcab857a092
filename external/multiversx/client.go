// Package multiversx talks to the chain HTTP API: transaction lookups for
// payment confirmation, account balances, and marketplace contract queries.
package multiversx

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/chainfoot/nft-fantasy/internal/domain/market"
	"github.com/chainfoot/nft-fantasy/internal/platform/logging"
	"github.com/chainfoot/nft-fantasy/internal/platform/resilience"
	"github.com/chainfoot/nft-fantasy/internal/usecase"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 4 << 20

	funcGetAllOffers    = "getAllOffers"
	funcGetOfferedCount = "getOfferedTokenCount"
)

var errChainTransient = crerr.New("chain api transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	// BaseURL points at the public chain API, e.g. https://api.multiversx.com.
	BaseURL string
	// MarketplaceContract is the bech32 address of the offers contract.
	MarketplaceContract string
	Timeout             time.Duration
	MaxRetries          int
	Logger              *logging.Logger
	CircuitBreaker      resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	contract       string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		contract:       strings.TrimSpace(cfg.MarketplaceContract),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// GetTransaction fetches one transaction by hash. A 404 maps to
// usecase.ErrNotFound so the confirmation loop can keep polling a hash the
// API has not indexed yet.
func (c *Client) GetTransaction(ctx context.Context, hash string) (usecase.ChainTransaction, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return usecase.ChainTransaction{}, crerr.New("transaction hash is required")
	}

	var payload transactionPayload
	if err := c.getJSON(ctx, "/transactions/"+hash, &payload); err != nil {
		return usecase.ChainTransaction{}, fmt.Errorf("get transaction %s: %w", hash, err)
	}

	value := new(big.Int)
	if payload.Value != "" {
		if _, ok := value.SetString(payload.Value, 10); !ok {
			return usecase.ChainTransaction{}, crerr.Newf("transaction %s has malformed value %q", hash, payload.Value)
		}
	}

	return usecase.ChainTransaction{
		Hash:     payload.TxHash,
		Sender:   payload.Sender,
		Receiver: payload.Receiver,
		Value:    value,
		Status:   strings.ToLower(payload.Status),
	}, nil
}

// GetAccountBalance returns the native balance of an address.
func (c *Client) GetAccountBalance(ctx context.Context, address string) (*big.Int, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, crerr.New("account address is required")
	}

	var payload accountPayload
	if err := c.getJSON(ctx, "/accounts/"+address, &payload); err != nil {
		return nil, fmt.Errorf("get account %s: %w", address, err)
	}

	balance := new(big.Int)
	if payload.Balance != "" {
		if _, ok := balance.SetString(payload.Balance, 10); !ok {
			return nil, crerr.Newf("account %s has malformed balance %q", address, payload.Balance)
		}
	}

	return balance, nil
}

// GetOffers queries the marketplace contract for every live offer.
func (c *Client) GetOffers(ctx context.Context) ([]market.Offer, error) {
	returnData, err := c.queryContract(ctx, funcGetAllOffers, nil)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}

	offers := make([]market.Offer, 0, len(returnData))
	for i, item := range returnData {
		raw, err := base64.StdEncoding.DecodeString(item)
		if err != nil {
			return nil, crerr.Wrapf(err, "decode offer %d payload", i)
		}
		offer, err := decodeOffer(raw)
		if err != nil {
			return nil, crerr.Wrapf(err, "decode offer %d", i)
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

// GetOfferAvailability returns the remaining edition count for one offer.
func (c *Client) GetOfferAvailability(ctx context.Context, offerID uint64) (uint32, error) {
	arg := hex.EncodeToString(new(big.Int).SetUint64(offerID).Bytes())
	if arg == "" {
		arg = "00"
	}

	returnData, err := c.queryContract(ctx, funcGetOfferedCount, []string{arg})
	if err != nil {
		return 0, fmt.Errorf("query offer %d availability: %w", offerID, err)
	}
	if len(returnData) == 0 {
		return 0, nil
	}

	raw, err := base64.StdEncoding.DecodeString(returnData[0])
	if err != nil {
		return 0, crerr.Wrapf(err, "decode offer %d availability", offerID)
	}
	return decodeU32(raw)
}

func (c *Client) queryContract(ctx context.Context, funcName string, args []string) ([]string, error) {
	if c.contract == "" {
		return nil, crerr.New("marketplace contract address is not configured")
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	request := vmQueryRequest{SCAddress: c.contract, FuncName: funcName, Args: args}
	if request.Args == nil {
		request.Args = []string{}
	}
	if err := sonic.ConfigDefault.NewEncoder(body).Encode(request); err != nil {
		return nil, crerr.Wrap(err, "encode vm query")
	}

	var response vmQueryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/vm-values/query", body.Bytes(), &response); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, crerr.Newf("vm query %s rejected: %s", funcName, response.Error)
	}
	if code := response.Data.Data.ReturnCode; code != "" && code != "ok" {
		return nil, crerr.Newf("vm query %s returned code=%s message=%s", funcName, code, response.Data.Data.ReturnMessage)
	}

	return response.Data.Data.ReturnData, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, target)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "chain api circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: chain api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, method, c.baseURL+path, body)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errChainTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode chain api payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var reqBody io.Reader
		if body != nil {
			reqBody = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errChainTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errChainTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: chain api status=404", usecase.ErrNotFound)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: chain api status=%d", errChainTransient, resp.StatusCode)
			default:
				return nil, crerr.Newf("chain api status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("chain api request failed")
	}
	c.logger.WarnContext(ctx, "chain api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
