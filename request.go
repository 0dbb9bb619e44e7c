package gq

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// DefaultMode is the request mode marker applied to every request unless the client or
// call configuration overrides it.
const DefaultMode = "cors"

// RequestConfig is the set of request settings that can be configured once on a Client
// and overridden per call.
//
// Header holds HTTP headers. Mode is a request mode marker (e.g. "cors") that travels
// alongside the headers but is never sent as one. Options holds any other top-level
// request options, such as "credentials", which are handed to the Transport as-is.
type RequestConfig struct {
	Header  map[string]string `yaml:"headers"`
	Mode    string            `yaml:"mode"`
	Options map[string]string `yaml:"options"`
}

// clone returns a deep copy of rc so that a Client never shares maps with its caller.
func (rc RequestConfig) clone() RequestConfig {
	out := RequestConfig{Mode: rc.Mode}
	if rc.Header != nil {
		out.Header = make(map[string]string, len(rc.Header))
		for k, v := range rc.Header {
			out.Header[k] = v
		}
	}
	if rc.Options != nil {
		out.Options = make(map[string]string, len(rc.Options))
		for k, v := range rc.Options {
			out.Options[k] = v
		}
	}
	return out
}

// CallOptions are the per-call settings passed to Send.
type CallOptions struct {
	// Variables are the GraphQL variables sent with the document. A nil map is sent as an
	// empty object.
	Variables map[string]interface{}

	// RequestConfig overrides the client's RequestConfig for this call only.
	RequestConfig RequestConfig

	// Endpoint, if set, is used instead of the client's configured endpoint.
	Endpoint string

	// Method is the HTTP method of the request, http.MethodPost when empty.
	Method string
}

// Request is a fully assembled GraphQL request, ready to be handed to a Transport.
type Request struct {
	Endpoint string
	Method   string
	Header   http.Header
	Mode     string
	Options  map[string]string

	// OperationName is the name extracted from the document and also present in Body.
	OperationName string

	// Body is the JSON encoded request payload.
	Body []byte
}

// request is the type that contains the structure of a request that a GraphQL server expects.
type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// defaultRequestConfig holds the settings every request starts from.
var defaultRequestConfig = RequestConfig{
	Header: map[string]string{
		"Content-Type": "application/json",
	},
	Mode: DefaultMode,
}

// Assemble builds the Request that Send would issue for document given the configuration
// cfg and the per-call options opts. It performs no I/O.
//
// Settings are merged in the following order, each layer overwriting keys set by the
// layers before it:
//
//  1. cfg headers
//  2. defaults (Content-Type: application/json, mode "cors")
//  3. cfg headers, again
//  4. opts headers
//  5. cfg mode and options
//  6. opts mode and options
//
// The net result is that a per-call setting always wins over a client setting of the same
// name, and a client header wins over the defaults. Header names are case-insensitive.
func Assemble(cfg Config, document string, opts CallOptions) (*Request, error) {
	r := Request{
		Endpoint: cfg.Endpoint,
		Method:   opts.Method,
		Header:   http.Header{},
		Options:  map[string]string{},
	}
	if opts.Endpoint != "" {
		r.Endpoint = opts.Endpoint
	}
	if r.Method == "" {
		r.Method = http.MethodPost
	}

	layers := []RequestConfig{
		{Header: cfg.Header},
		defaultRequestConfig,
		{Header: cfg.Header},
		{Header: opts.RequestConfig.Header},
		{Mode: cfg.Mode, Options: cfg.Options},
		{Mode: opts.RequestConfig.Mode, Options: opts.RequestConfig.Options},
	}
	for i := range layers {
		r.apply(&layers[i])
	}

	variables := opts.Variables
	if variables == nil {
		variables = map[string]interface{}{}
	}
	r.OperationName = OperationName(document)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request{
		Query:         document,
		Variables:     variables,
		OperationName: r.OperationName,
	}); err != nil {
		return nil, errors.Wrap(err, "encode graphql request body")
	}
	r.Body = buf.Bytes()

	return &r, nil
}

// apply overwrites the settings of r with those present in layer.
func (r *Request) apply(layer *RequestConfig) {
	for k, v := range layer.Header {
		r.Header.Set(k, v)
	}
	if layer.Mode != "" {
		r.Mode = layer.Mode
	}
	for k, v := range layer.Options {
		r.Options[k] = v
	}
}
