// Package alpacatest provides an in-process Alpaca server for tests. It
// records every request and answers with canned replies.
package alpacatest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"alpacaclient/pkg/alpaca"
)

// Global transaction counter
var txCounter atomic.Int32

type baseResponse struct {
	ClientTransactionID int    `json:"ClientTransactionID"`
	ServerTransactionID int    `json:"ServerTransactionID"`
	ErrorNumber         int    `json:"ErrorNumber"`
	ErrorMessage        string `json:"ErrorMessage"`
	Value               any    `json:"Value,omitempty"`
}

// Request is a request as the server received it.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Form        url.Values
	ContentType string
}

// Params returns the query and form parameters merged.
func (r Request) Params() url.Values {
	merged := url.Values{}
	for k, v := range r.Query {
		merged[k] = append(merged[k], v...)
	}
	for k, v := range r.Form {
		merged[k] = append(merged[k], v...)
	}
	return merged
}

// Get returns the first value of the named parameter, matching the name
// case insensitively like Alpaca servers do.
func (r Request) Get(name string) string {
	for k, v := range r.Params() {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func (r Request) Has(name string) bool {
	for k := range r.Params() {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// Reply is a canned answer.
type Reply struct {
	status int
	body   string
	raw    bool

	errorNumber  int
	errorMessage string
	value        any
	hasValue     bool
	fields       map[string]any
}

// Value answers with a successful envelope carrying v.
func Value(v any) Reply {
	return Reply{value: v, hasValue: true}
}

// Empty answers with a successful envelope and no Value.
func Empty() Reply {
	return Reply{}
}

// Error answers 200 with a protocol error.
func Error(number int, message string) Reply {
	return Reply{errorNumber: number, errorMessage: message}
}

// Status answers with a bare HTTP status and a plain text body.
func Status(code int, body string) Reply {
	return Reply{status: code, body: body}
}

// Raw answers 200 with body written verbatim.
func Raw(body string) Reply {
	return Reply{status: http.StatusOK, body: body, raw: true}
}

// With adds an extra top level field to the envelope, such as the Type and
// Rank of image arrays.
func (r Reply) With(key string, v any) Reply {
	fields := make(map[string]any, len(r.fields)+1)
	for k, fv := range r.fields {
		fields[k] = fv
	}
	fields[key] = v
	r.fields = fields
	return r
}

// HandlerFunc computes a reply from the request.
type HandlerFunc func(Request) Reply

// Server is a fake Alpaca server backed by httptest.
type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	routes      map[string]HandlerFunc
	requests    []Request
	strict      bool
	description alpaca.ServerDescription
	devices     []alpaca.DeviceConfiguration
}

// NewServer starts a server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		routes: make(map[string]HandlerFunc),
		strict: true,
		description: alpaca.ServerDescription{
			Name:                "Alpaca Test Server",
			Manufacturer:        "alpacatest",
			ManufacturerVersion: "1.0",
			Location:            "localhost",
		},
	}
	s.srv = httptest.NewServer(s)
	t.Cleanup(s.srv.Close)

	s.HandleFunc(http.MethodGet, "/management/apiversions", func(Request) Reply {
		return Value([]int{1})
	})
	s.HandleFunc(http.MethodGet, "/management/v1/description", func(Request) Reply {
		s.mu.Lock()
		defer s.mu.Unlock()
		return Value(s.description)
	})
	s.HandleFunc(http.MethodGet, "/management/v1/configureddevices", func(Request) Reply {
		s.mu.Lock()
		defer s.mu.Unlock()
		return Value(append([]alpaca.DeviceConfiguration{}, s.devices...))
	})

	return s
}

// Address returns host:port, suitable for device constructors.
func (s *Server) Address() string {
	return s.srv.Listener.Addr().String()
}

func (s *Server) URL() string {
	return s.srv.URL
}

// Client returns an HTTP client for the server.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// SetStrict controls whether requests without a ClientTransactionID are
// rejected with 400. Strict is the default.
func (s *Server) SetStrict(strict bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strict = strict
}

func (s *Server) SetDescription(desc alpaca.ServerDescription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.description = desc
}

// AddDevice lists a device in the configureddevices response.
func (s *Server) AddDevice(cfg alpaca.DeviceConfiguration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices = append(s.devices, cfg)
}

// Handle answers method requests to path with reply. path is the full path,
// for example /api/v1/telescope/0/rightascension.
func (s *Server) Handle(method, path string, reply Reply) {
	s.HandleFunc(method, path, func(Request) Reply { return reply })
}

func (s *Server) HandleFunc(method, path string, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = fn
}

// DevicePath returns the path of attribute on a device.
func DevicePath(deviceType alpaca.DeviceType, number int, attribute string) string {
	return fmt.Sprintf("/api/v1/%s/%d/%s", deviceType, number, attribute)
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request{}, s.requests...)
}

// LastRequest returns the most recent request. It panics if there is none.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		panic("alpacatest: no requests received")
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	fn, ok := s.routes[r.Method+" "+r.URL.Path]
	strict := s.strict
	s.mu.Unlock()

	if !ok {
		http.Error(w, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path), http.StatusNotFound)
		return
	}

	txID, err := getClientTxID(req)
	if err != nil && strict {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeReply(w, fn(req), txID)
}

func readRequest(r *http.Request) (Request, error) {
	req := Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		Form:        url.Values{},
		ContentType: r.Header.Get("Content-Type"),
	}
	if r.Method != http.MethodPut {
		return req, nil
	}

	form, err := parseBodyParams(r)
	if err != nil {
		return req, err
	}
	req.Form = form
	return req, nil
}

// Helper to read and parse the request body as URL-encoded data.
func parseBodyParams(r *http.Request) (url.Values, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return url.ParseQuery(string(bodyBytes))
}

// getClientTxID obtains the client transaction ID from the request.
func getClientTxID(req Request) (int, error) {
	if strings.HasPrefix(req.Path, "/management") && !req.Has("ClientTransactionID") {
		return 0, nil
	}
	if !req.Has("ClientTransactionID") {
		return 0, errors.New("missing ClientTransactionID")
	}

	id, err := strconv.Atoi(req.Get("ClientTransactionID"))
	if err != nil || id < 0 {
		return 0, errors.New("ClientTransactionID must be a non-negative integer")
	}
	return id, nil
}

func writeReply(w http.ResponseWriter, reply Reply, txID int) {
	if reply.status != 0 && !reply.raw {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(reply.status)
		io.WriteString(w, reply.body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if reply.raw {
		w.WriteHeader(reply.status)
		io.WriteString(w, reply.body)
		return
	}

	response := baseResponse{
		ServerTransactionID: int(txCounter.Add(1)),
		ClientTransactionID: txID,
		ErrorNumber:         reply.errorNumber,
		ErrorMessage:        reply.errorMessage,
	}
	if reply.hasValue {
		response.Value = reply.value
	}

	if len(reply.fields) == 0 {
		json.NewEncoder(w).Encode(response)
		return
	}

	envelope := map[string]any{
		"ClientTransactionID": response.ClientTransactionID,
		"ServerTransactionID": response.ServerTransactionID,
		"ErrorNumber":         response.ErrorNumber,
		"ErrorMessage":        response.ErrorMessage,
	}
	if reply.hasValue {
		envelope["Value"] = reply.value
	}
	for k, v := range reply.fields {
		envelope[k] = v
	}
	json.NewEncoder(w).Encode(envelope)
}
