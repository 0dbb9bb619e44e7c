package gq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getoutreach/gobox/pkg/log"
)

// Location is a position in a GraphQL document that an Error refers to.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is the type that contains the structure of an error returned from a GraphQL server. The
// Extensions key is intentionally left as a json.RawMessage so that it can optionally be handled
// and marshaled into whatever type necessary by the ErrorMapper passed to the client.
type Error struct {
	Message    string          `json:"message"`
	Locations  []Location      `json:"locations,omitempty"`
	Path       []interface{}   `json:"path,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
}

// Errors is the ordered list of errors returned in the response of a request to a GraphQL
// server. It implements the error interface, so it is what Send returns when the server
// reports errors and no ErrorMapper is configured.
type Errors []Error

// Error is a value receiver function on the Errors type which implements the error interface for
// its receiver. This allows the type to be returned as a normal error, but it can also be asserted
// to it's original type if desired.
func (e Errors) Error() string {
	errs := make([]string, 0, len(e))
	for i := range e {
		errs = append(errs, e[i].Message)
	}
	return strings.Join(errs, ", ")
}

// response is the type that contains the structure of a response from a GraphQL server.
type response struct {
	// Data uses json.RawMessage to delay decoding of itself since we don't
	// know the type of it at compile time.
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors,omitempty"`
}

// Send sends document to the GraphQL server and unmarshals the data member of the response
// into out, which should be a pointer. If out is nil the data is discarded.
//
// If the server reports any errors, they are returned through the client's ErrorMapper even
// when data is present as well. A response with a status outside 2xx and no errors is
// rejected with an error carrying the status and body, even if it holds a valid data member.
// Errors from the Transport are returned unchanged. Exactly one request is made.
func (c *Client) Send(ctx context.Context, document string, opts CallOptions, out interface{}) error {
	req, err := Assemble(c.snapshot(), document, opts)
	if err != nil {
		return err
	}

	data, err := c.do(ctx, req)
	if err != nil {
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Do is a generic wrapper around (*Client).Send that returns the data member of the
// response as a T.
func Do[T any](ctx context.Context, c *Client, document string, opts CallOptions) (T, error) {
	var out T
	err := c.Send(ctx, document, opts, &out)
	return out, err
}

// do performs an assembled request. The "data" key of the GraphQL response is returned as a
// json.RawMessage for the caller to unmarshal. The errors returned in the response, if any,
// are dealt with in this function and returned as an error type, using c.errorMapper.
func (c *Client) do(ctx context.Context, req *Request) (json.RawMessage, error) {
	log.Debug(ctx, "sending graphql request", log.F{
		"graphql.endpoint":      req.Endpoint,
		"graphql.method":        req.Method,
		"graphql.operationName": req.OperationName,
	})

	status, body, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var gqlResp response
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, fmt.Errorf("unknown response format with status %d received from graphql server: %s",
			status, body)
	}

	// Errors take precedence over data, there is no partial success.
	if len(gqlResp.Errors) > 0 {
		return nil, c.errorMapper(status, gqlResp.Errors)
	}

	if status < 200 || status > 299 {
		return nil, fmt.Errorf("unexpected status %d received from graphql server: %s", status, body)
	}

	return gqlResp.Data, nil
}
