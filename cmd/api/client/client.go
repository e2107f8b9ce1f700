// Package client talks to the library API over HTTP. It never retries: a
// failed request is reported to the caller as it happened.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/library-service/cmd/api/book"
	bookhttp "github.com/library-service/cmd/api/http"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TransportError is a request that never got an answer from the server.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is an error answer from the server. It unwraps to the decoded
// book.ErrResponse, so errors.Is works against the book sentinels.
type StatusError struct {
	StatusCode int
	Response   book.ErrResponse
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Response.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Response
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Checkout(ctx context.Context, req book.ConfirmedCheckoutRequest) (bookhttp.BookResponse, error) {
	var resp bookhttp.BookResponse
	err := c.do(ctx, "checkout", http.MethodPut, "/books/checkout", req.Draft(), &resp)
	return resp, err
}

func (c *Client) Checkin(ctx context.Context, bookID uuid.UUID) (bookhttp.BookResponse, error) {
	var resp bookhttp.BookResponse
	err := c.do(ctx, "checkin", http.MethodPut, "/books/checkin", bookhttp.CheckinEntry{BookID: bookID}, &resp)
	return resp, err
}

/* SearchBooks lists one projection of the catalog, filtered by query. */
func (c *Client) SearchBooks(ctx context.Context, availability book.Availability, query string) ([]bookhttp.BookResponse, error) {
	path := "/books"
	if availability != book.AvailabilityAll {
		path += "/" + string(availability)
	}
	if query != "" {
		path += "?" + url.Values{"query": {query}}.Encode()
	}

	var resp []bookhttp.BookResponse
	err := c.do(ctx, "searching books", http.MethodGet, path, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, op, method, path string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		statusErr := &StatusError{StatusCode: res.StatusCode}
		if err := json.NewDecoder(res.Body).Decode(&statusErr.Response); err != nil {
			statusErr.Response = book.ErrResponse{Code: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		}
		return fmt.Errorf("%s: %w", op, statusErr)
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
