package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MsgEmptyInput = "Please enter an Order ID"
	MsgNotFound   = "Order not found"
	MsgMalformed  = "Malformed order response"
)

const maxBody = 1 << 20

type ErrorKind int

const (
	KindEmptyInput ErrorKind = iota + 1
	KindNotFound
	KindTransport
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty_input"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is a failed lookup. Message is what the error banner shows.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

type Fetcher interface {
	Fetch(ctx context.Context, id string) (*Order, error)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Timeout bounds one fetch; zero means no deadline.
	Timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		Timeout: timeout,
	}
}

// Fetch issues GET {BaseURL}/order/{id}. The id goes into the path as is.
func (c *Client) Fetch(ctx context.Context, id string) (*Order, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/order/"+id, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error(), Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := MsgNotFound
		var e struct {
			Error json.RawMessage `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil {
			if s := errorText(e.Error); s != "" {
				msg = s
			}
		}
		return nil, &Error{Kind: KindNotFound, Message: msg, Status: resp.StatusCode}
	}

	var o *Order
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, &Error{Kind: KindMalformed, Message: MsgMalformed, Status: resp.StatusCode, Err: err}
	}
	if o == nil {
		return nil, &Error{Kind: KindMalformed, Message: MsgMalformed, Status: resp.StatusCode,
			Err: fmt.Errorf("empty order body")}
	}
	return o, nil
}
