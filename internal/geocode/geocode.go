// Package geocode resolves UK postcodes against a postcodes.io compatible API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// Defaults for the HTTP client.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
)

// minAutocompleteLength is the shortest partial postcode worth looking up.
const minAutocompleteLength = 2

// errServer marks responses that are worth retrying.
var errServer = errors.New("postcode service unavailable")

// Client talks to the postcode API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries uint64

	// newBackOff is swapped in tests to avoid real sleeps
	newBackOff func() backoff.BackOff
}

var _ contract.Geocoder = &Client{} // Compile-time check

// NewClient returns a client for baseURL with the default timeout and retries.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		MaxRetries: DefaultMaxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 15 * time.Second
			return b
		},
	}
}

// apiResponse is the envelope used by every endpoint.
type apiResponse[T any] struct {
	Status int    `json:"status"`
	Result *T     `json:"result"`
	Error  string `json:"error"`
}

type postcodeResult struct {
	Postcode  string   `json:"postcode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// get fetches path and decodes the envelope. found is false for any
// response other than 200 with a non-null result.
func get[T any](ctx context.Context, c *Client, path string) (result T, found bool, err error) {
	var b backoff.BackOff = backoff.WithMaxRetries(c.newBackOff(), c.MaxRetries)
	b = backoff.WithContext(b, ctx)

	resp, err := backoff.RetryWithData(func() (apiResponse[T], error) {
		return fetch[T](ctx, c, path)
	}, b)
	if err != nil {
		return result, false, err
	}
	if resp.Status != http.StatusOK || resp.Result == nil {
		return result, false, nil
	}
	return *resp.Result, true, nil
}

// fetch performs one request. Server errors and transport failures are
// retryable; everything else is permanent.
func fetch[T any](ctx context.Context, c *Client, path string) (apiResponse[T], error) {
	var resp apiResponse[T]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return resp, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return resp, backoff.Permanent(ctx.Err())
		}
		return resp, fmt.Errorf("postcode request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, httpResp.Body)
		return resp, fmt.Errorf("%w: status %d", errServer, httpResp.StatusCode)
	}
	if httpResp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, httpResp.Body)
		resp.Status = httpResp.StatusCode
		return resp, nil
	}

	if err := json.NewDecoder(io.LimitReader(httpResp.Body, 1<<20)).Decode(&resp); err != nil {
		return resp, backoff.Permanent(fmt.Errorf("failed to decode postcode response: %w", err))
	}
	if resp.Status == 0 {
		resp.Status = httpResp.StatusCode
	}
	return resp, nil
}

// Lookup returns the coordinates of a postcode.
func (c *Client) Lookup(ctx context.Context, postcode string) (schema.Coordinates, error) {
	clean := contract.NormalizePostcode(postcode)
	if clean == "" {
		return schema.Coordinates{}, fmt.Errorf("%q: %w", postcode, contract.ErrPostcodeNotFound)
	}

	result, found, err := get[postcodeResult](ctx, c, "/postcodes/"+url.PathEscape(clean))
	if err != nil {
		return schema.Coordinates{}, err
	}
	if !found || result.Latitude == nil || result.Longitude == nil {
		return schema.Coordinates{}, fmt.Errorf("%q: %w", postcode, contract.ErrPostcodeNotFound)
	}
	return schema.Coordinates{Latitude: *result.Latitude, Longitude: *result.Longitude}, nil
}

// Validate reports whether the postcode exists.
func (c *Client) Validate(ctx context.Context, postcode string) (bool, error) {
	clean := contract.NormalizePostcode(postcode)
	if clean == "" {
		return false, nil
	}
	valid, found, err := get[bool](ctx, c, "/postcodes/"+url.PathEscape(clean)+"/validate")
	if err != nil {
		return false, err
	}
	return found && valid, nil
}

// Autocomplete suggests full postcodes for a partial one.
func (c *Client) Autocomplete(ctx context.Context, partial string) ([]string, error) {
	clean := contract.NormalizePostcode(partial)
	if len(clean) < minAutocompleteLength {
		return []string{}, nil
	}
	suggestions, found, err := get[[]string](ctx, c, "/postcodes/"+url.PathEscape(clean)+"/autocomplete")
	if err != nil {
		return nil, err
	}
	if !found || suggestions == nil {
		return []string{}, nil
	}
	return suggestions, nil
}
