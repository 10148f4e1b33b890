// Package optimizer is the HTTP client for the remote card optimization
// service.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mozzadell/cc-optimizer/internal/clienterror"
	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/validation"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/semaphore"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// Options configures a Client.
type Options struct {
	Endpoint           string
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// Client posts spending payloads to the optimization service. It allows one
// request in flight at a time and never retries.
type Client struct {
	httpClient *http.Client
	endpoint   string
	cb         *gobreaker.CircuitBreaker
	inflight   *semaphore.Weighted
	logger     logging.Logger
	requestID  func() string
}

// NewClient builds a Client. httpClient carries the transport timeout.
func NewClient(httpClient *http.Client, opts Options, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   opts.Endpoint,
		cb:         newCircuitBreaker(opts, logger),
		inflight:   semaphore.NewWeighted(1),
		logger:     logger.WithField(logging.FieldComponent, "optimizer"),
		requestID:  uuid.NewString,
	}
}

func newCircuitBreaker(opts Options, logger logging.Logger) *gobreaker.CircuitBreaker {
	maxFailures := opts.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}
	openTimeout := opts.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "optimizer",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// The service answering with success=false is not an outage.
		IsSuccessful: func(err error) bool {
			var serviceErr *clienterror.ServiceError
			return err == nil || errors.As(err, &serviceErr)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				logging.F("breaker", name),
				logging.F("from", from.String()),
				logging.F(logging.FieldBreaker, to.String()))
		},
	})
}

// Endpoint returns the service URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// BreakerState reports the circuit breaker state ("closed", "open", "half-open").
func (c *Client) BreakerState() string {
	return c.cb.State().String()
}

// Optimize sends spending and opts to the service and returns its parsed
// response. A call made while another is pending fails with
// clienterror.ErrRequestInFlight.
func (c *Client) Optimize(ctx context.Context, spending models.NumericSpending, opts models.OptimizeOptions) (*models.RecommendationResponse, error) {
	if err := validation.Struct(opts); err != nil {
		return nil, err
	}

	if !c.inflight.TryAcquire(1) {
		return nil, clienterror.ErrRequestInFlight
	}
	defer c.inflight.Release(1)

	requestID := c.requestID()
	log := c.logger.WithFields(
		logging.F(logging.FieldRequestID, requestID),
		logging.F(logging.FieldEndpoint, c.endpoint),
	)
	log.Debug("Sending optimize request", logging.F(logging.FieldCount, len(spending)))
	start := time.Now()

	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.post(ctx, requestID, models.NewOptimizeRequest(spending, opts))
	})

	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &clienterror.TransportError{Endpoint: c.endpoint, Cause: err}
		}
		log.WithError(err).Warn("Optimize request failed", logging.F(logging.FieldDuration, elapsed))
		return nil, err
	}

	resp := result.(*models.RecommendationResponse)
	log.Info("Optimize request completed",
		logging.F(logging.FieldDuration, elapsed),
		logging.F(logging.FieldCount, len(resp.Recommendations)))
	return resp, nil
}

func (c *Client) post(ctx context.Context, requestID string, body models.OptimizeRequest) (*models.RecommendationResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode optimize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &clienterror.TransportError{Endpoint: c.endpoint, Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &clienterror.TransportError{Endpoint: c.endpoint, Cause: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, &clienterror.TransportError{Endpoint: c.endpoint, Cause: err}
	}

	ok := httpResp.StatusCode >= 200 && httpResp.StatusCode < 300

	var decoded models.RecommendationResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		if !ok {
			err = fmt.Errorf("unexpected status %d", httpResp.StatusCode)
		} else {
			err = fmt.Errorf("malformed response body: %w", err)
		}
		return nil, &clienterror.TransportError{Endpoint: c.endpoint, Cause: err}
	}

	if !ok || !decoded.Success {
		return nil, &clienterror.ServiceError{StatusCode: httpResp.StatusCode, Message: decoded.Error}
	}

	return &decoded, nil
}
