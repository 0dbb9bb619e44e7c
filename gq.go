// Package gq is a thin client that sends GraphQL documents to a server over HTTP and hands
// back the data member of the response, or the errors the server reported.
//
// The simplest use configures the package-level Default client once at startup:
//
//	gq.Configure("https://api.example.com/graphql", gq.RequestConfig{
//		Header: map[string]string{"Authorization": "Bearer " + token},
//	})
//
//	var resp struct {
//		User struct {
//			Name string `json:"name"`
//		} `json:"user"`
//	}
//	err := gq.Send(ctx, `query GetUser($id: ID!) { user(id: $id) { name } }`, gq.CallOptions{
//		Variables: map[string]interface{}{"id": 1},
//	}, &resp)
package gq

import (
	"context"
	"sync"
)

// ErrorMapper is a type that is used for error mapping functions. The status code and Errors
// are sent as parameters and it is the functions responsibility to map the Errors into a type
// that implements the error interface.
type ErrorMapper func(int, Errors) error

// Config is the endpoint and request settings a Client applies to every call.
type Config struct {
	Endpoint string
	RequestConfig
}

// Client sends GraphQL documents to a configured endpoint. It is safe for concurrent use,
// including calls to Configure while requests are in flight.
type Client struct {
	mu     sync.RWMutex
	config Config

	transport   Transport
	errorMapper ErrorMapper
}

// ClientOptions is the type passed to NewClient that allows for configuration of the client.
//
// RequestConfig holds the headers, mode, and options applied to every request.
//
// Transport performs the requests. If omitted or nil an HTTPTransport around
// http.DefaultClient is used.
//
// ErrorMapper allows the Errors returned from the GraphQL server to be mapped to a different
// type that implements the error interface. The status code of the response is passed along
// with them. If omitted or nil the Errors type is returned as is.
type ClientOptions struct {
	RequestConfig RequestConfig
	Transport     Transport
	ErrorMapper   ErrorMapper
}

// DefaultClientOptions is a variable that can be passed for the ClientOptions when calling
// NewClient that will trigger use of all of the default options.
var DefaultClientOptions = ClientOptions{}

// defaultErrorMapper shallow returns the Errors type that came from the response of a GraphQL
// server invocation.
var defaultErrorMapper = func(_ int, errs Errors) error {
	return errs
}

// NewClient returns a Client that sends requests to endpoint.
func NewClient(endpoint string, options ClientOptions) *Client {
	if options.Transport == nil {
		options.Transport = &HTTPTransport{}
	}

	if options.ErrorMapper == nil {
		options.ErrorMapper = defaultErrorMapper
	}

	return &Client{
		config: Config{
			Endpoint:      endpoint,
			RequestConfig: options.RequestConfig.clone(),
		},
		transport:   options.Transport,
		errorMapper: options.ErrorMapper,
	}
}

// Configure replaces the endpoint and request settings of c. Requests already in flight
// keep the configuration they started with.
func (c *Client) Configure(endpoint string, rc RequestConfig) {
	cfg := Config{
		Endpoint:      endpoint,
		RequestConfig: rc.clone(),
	}

	c.mu.Lock()
	c.config = cfg
	c.mu.Unlock()
}

// Config returns a copy of the current configuration of c.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Config{
		Endpoint:      c.config.Endpoint,
		RequestConfig: c.config.RequestConfig.clone(),
	}
}

// snapshot returns the configuration of c without copying it. The maps it holds are never
// written after Configure stores them.
func (c *Client) snapshot() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Default is the process-wide client used by the package-level Configure and Send. It
// starts with an empty endpoint.
var Default = NewClient("", DefaultClientOptions)

// Configure sets the endpoint and request settings of the Default client. It is meant to be
// called once at startup.
func Configure(endpoint string, rc RequestConfig) {
	Default.Configure(endpoint, rc)
}

// Send sends document with the Default client. See (*Client).Send.
func Send(ctx context.Context, document string, opts CallOptions, out interface{}) error {
	return Default.Send(ctx, document, opts, out)
}
