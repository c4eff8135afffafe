package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chleo-smith/consent-gateway/internal/model"
)

const userAgent = "ConsentGateway/1.0"

// Kind classifies an upstream failure for fallback decisions
type Kind int

const (
	// KindNetwork means the request never produced a response
	KindNetwork Kind = iota
	// KindTimeout means the configured request budget elapsed
	KindTimeout
	// KindStatus means upstream answered with an unexpected non-2xx status
	KindStatus
	// KindNotFound means upstream authoritatively reported the resource absent
	KindNotFound
	// KindBadJSON means the response body could not be parsed even after repair
	KindBadJSON
	// KindBadShape means parsed JSON misses fields required by the contract
	KindBadShape
)

// Error describes a failed upstream exchange
type Error struct {
	Kind       Kind
	StatusCode int
	message    string
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s - %s", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, status int, msg string, cause error) *Error {
	return &Error{Kind: kind, StatusCode: status, message: msg, cause: cause}
}

// ConsentUpdate is the body sent to the consent update endpoint
type ConsentUpdate struct {
	Status     model.ConsentStatus     `json:"status"`
	StatusType model.ConsentStatusType `json:"statusType"`
}

// Client calls the upstream customer/consent service
type Client interface {
	FetchCustomer(ctx context.Context, id string) (*model.Customer, error)
	FetchConsents(ctx context.Context, id string) (*model.ConsentRecord, error)
	UpdateConsent(ctx context.Context, id string, sequence int, upd ConsentUpdate) (*model.Consent, error)
}

// envelope mirrors the loose response wrapper the upstream service uses.
// Success is a pointer because absence of the field counts as success.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeErr    `json:"error"`
}

type envelopeErr struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (e *envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

type httpClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPClient builds a Client against the given base URL with a per-request timeout
func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		timeout: timeout,
		client:  &http.Client{},
	}
}

func (c *httpClient) FetchCustomer(ctx context.Context, id string) (*model.Customer, error) {
	env, err := c.exchange(ctx, http.MethodGet, fmt.Sprintf("%s/api/customer/%s", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	var cust model.Customer
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &cust); err != nil {
			return nil, newError(KindBadJSON, 0, "customer payload is not valid JSON", err)
		}
	}
	if cust.CustomerID == "" {
		return nil, newError(KindBadShape, 0, "customer payload misses customerId", nil)
	}
	if cust.BusinessUnits == nil {
		cust.BusinessUnits = []string{}
	}
	return &cust, nil
}

func (c *httpClient) FetchConsents(ctx context.Context, id string) (*model.ConsentRecord, error) {
	env, err := c.exchange(ctx, http.MethodGet, fmt.Sprintf("%s/api/consents/%s", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	var record model.ConsentRecord
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &record); err != nil {
			return nil, newError(KindBadJSON, 0, "consents payload is not valid JSON", err)
		}
	}
	if record.BusinessUnits == nil {
		return nil, newError(KindBadShape, 0, "consents payload misses businessUnits", nil)
	}
	record.CustomerID = id
	return &record, nil
}

func (c *httpClient) UpdateConsent(ctx context.Context, id string, sequence int, upd ConsentUpdate) (*model.Consent, error) {
	body, err := json.Marshal(upd)
	if err != nil {
		return nil, newError(KindBadJSON, 0, "failed to encode consent update", err)
	}

	env, err := c.exchange(ctx, http.MethodPut, fmt.Sprintf("%s/api/consents/%s/%d", c.baseURL, id, sequence), body)
	if err != nil {
		return nil, err
	}

	var consent model.Consent
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &consent); err != nil {
			return nil, newError(KindBadJSON, 0, "updated consent payload is not valid JSON", err)
		}
	}
	if consent.Status == "" {
		return nil, newError(KindBadShape, 0, "updated consent payload misses status", nil)
	}
	return &consent, nil
}

// exchange performs one HTTP round-trip, reads the whole body, repairs and
// parses it, and maps transport/status/contract failures onto Error kinds.
func (c *httpClient) exchange(ctx context.Context, method, url string, body []byte) (*envelope, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return nil, newError(KindNetwork, 0, "failed to build upstream request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() != nil {
			return nil, newError(KindTimeout, 0, "upstream request timed out", err)
		}
		return nil, newError(KindNetwork, 0, "upstream request failed", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, newError(KindNetwork, res.StatusCode, "failed to read upstream response", err)
	}

	if res.StatusCode == http.StatusNotFound {
		return nil, newError(KindNotFound, res.StatusCode, "upstream reported resource not found", nil)
	}

	cleaned, repaired := CleanJSON(raw)
	if repaired {
		logrus.Warnf("repaired trailing commas in upstream response for %s %s", method, url)
	}

	var env envelope
	if err := json.Unmarshal(cleaned, &env); err != nil {
		return nil, newError(KindBadJSON, res.StatusCode, "upstream response is not valid JSON", err)
	}

	if env.failed() {
		if env.Error != nil && env.Error.Status == http.StatusNotFound {
			return nil, newError(KindNotFound, http.StatusNotFound, "upstream reported resource not found", nil)
		}
		return nil, newError(KindStatus, res.StatusCode, "upstream reported failure", nil)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, newError(KindStatus, res.StatusCode, fmt.Sprintf("upstream answered with status %d", res.StatusCode), nil)
	}
	return &env, nil
}
