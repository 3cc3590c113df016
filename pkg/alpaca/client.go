package alpaca

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Global transaction counter
var txCounter atomic.Uint32

// Response is the envelope every Alpaca endpoint answers with. Value is kept
// raw so callers decide its type.
type Response struct {
	ClientTransactionID uint32          `json:"ClientTransactionID"`
	ServerTransactionID uint32          `json:"ServerTransactionID"`
	ErrorNumber         int             `json:"ErrorNumber"`
	ErrorMessage        string          `json:"ErrorMessage"`
	Value               json.RawMessage `json:"Value,omitempty"`

	// Only set by camera image array responses.
	Type int `json:"Type,omitempty"`
	Rank int `json:"Rank,omitempty"`
}

// HasValue reports whether the response carried a non-null Value.
func (r *Response) HasValue() bool {
	return len(r.Value) > 0 && string(r.Value) != "null"
}

// Decode unmarshals the Value field into v.
func (r *Response) Decode(v any) error {
	if !r.HasValue() {
		return ErrNoValue
	}
	return json.Unmarshal(r.Value, v)
}

type options struct {
	scheme     string
	apiVersion int
	httpClient *http.Client
	logger     log.FieldLogger
	clientID   uint32
}

// Option configures a client.
type Option func(*options)

// WithScheme selects http or https.
func WithScheme(scheme string) Option {
	return func(o *options) { o.scheme = scheme }
}

// WithAPIVersion selects the Alpaca API version used in endpoint paths.
func WithAPIVersion(version int) Option {
	return func(o *options) { o.apiVersion = version }
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(logger log.FieldLogger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClientID sets the ClientID sent with every request. Zero disables it.
func WithClientID(id uint32) Option {
	return func(o *options) { o.clientID = id }
}

func buildOptions(opts []Option) options {
	o := options{
		scheme:     DefaultScheme,
		apiVersion: DefaultAPIVersion,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = http.DefaultClient
	}
	if o.logger == nil {
		o.logger = log.StandardLogger()
	}
	return o
}

// Client performs requests against a single device endpoint. It holds no
// state besides its identity, so it is safe for concurrent use.
type Client struct {
	id       Identity
	http     *http.Client
	logger   log.FieldLogger
	clientID uint32
}

// NewClient builds the identity for the given device and returns a client
// bound to it.
func NewClient(address string, deviceType DeviceType, number int, opts ...Option) (*Client, error) {
	o := buildOptions(opts)

	id, err := NewIdentity(address, deviceType, number, o.scheme, o.apiVersion)
	if err != nil {
		return nil, err
	}

	return &Client{
		id:       id,
		http:     o.httpClient,
		logger:   o.logger.WithFields(log.Fields{"device": string(deviceType), "number": number}),
		clientID: o.clientID,
	}, nil
}

func (c *Client) Identity() Identity {
	return c.id
}

// Get reads attribute and returns the decoded Value field untouched.
// Numbers come back as json.Number so integers keep every digit.
func (c *Client) Get(attribute string, params ...Param) (any, error) {
	resp, err := c.Do(http.MethodGet, attribute, params...)
	if err != nil {
		return nil, err
	}
	if !resp.HasValue() {
		return nil, nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(resp.Value))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode %s value: %w", attribute, err)
	}
	return v, nil
}

// Put writes attribute and returns the whole decoded response.
func (c *Client) Put(attribute string, params ...Param) (*Response, error) {
	return c.Do(http.MethodPut, attribute, params...)
}

// Do sends a GET or PUT for attribute. GET parameters go in the query
// string, PUT parameters in a form encoded body.
func (c *Client) Do(method, attribute string, params ...Param) (*Response, error) {
	return roundTrip(c.http, c.logger, method, c.id.URL(attribute), transaction(c.clientID, params))
}

// transaction appends the client and transaction ids without touching the
// caller's slice.
func transaction(clientID uint32, params []Param) []Param {
	out := make([]Param, 0, len(params)+2)
	out = append(out, params...)
	if clientID != 0 {
		out = append(out, P("ClientID", Value{kind: KindInt, i: int64(clientID)}))
	}
	return append(out, P("ClientTransactionID", Value{kind: KindInt, i: int64(txCounter.Add(1))}))
}

func roundTrip(hc *http.Client, logger log.FieldLogger, method, endpoint string, params []Param) (*Response, error) {
	data := encodeParams(params)

	var req *http.Request
	var err error
	switch method {
	case http.MethodGet:
		u := endpoint
		if data != "" {
			u += "?" + data
		}
		req, err = http.NewRequest(method, u, nil)
	case http.MethodPut:
		req, err = http.NewRequest(method, endpoint, strings.NewReader(data))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		return nil, fmt.Errorf("unsupported method: %s", method)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	logger.Debugf("%s %s: %d", method, endpoint, resp.StatusCode)

	r, err := classify(resp.StatusCode, body)
	if err != nil {
		logger.Debugf("%s %s failed: %v", method, endpoint, err)
		return nil, err
	}
	return r, nil
}

// classify is the single rule deciding whether a response is a success, an
// HTTP level failure or a protocol level failure.
func classify(status int, body []byte) (*Response, error) {
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &HTTPError{StatusCode: status, Message: string(body)}
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("invalid response (status %d): %w", status, err)
	}
	if r.ErrorNumber != 0 {
		return nil, &AlpacaError{Number: r.ErrorNumber, Message: r.ErrorMessage}
	}
	return &r, nil
}
