package gq

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/getoutreach/gobox/pkg/events"
	"github.com/getoutreach/gobox/pkg/log"
	"github.com/go-resty/resty/v2"
)

// Transport performs a single assembled GraphQL request and returns the HTTP status code
// and raw body of the response. Implementations must not retry.
type Transport interface {
	Do(ctx context.Context, req *Request) (int, []byte, error)
}

// HTTPTransport is a Transport backed by a net/http client.
type HTTPTransport struct {
	// Client is the http.Client used to do requests. If nil, http.DefaultClient is used.
	Client *http.Client
}

// Do implements Transport. Request.Mode and Request.Options have no net/http equivalent and
// are only logged.
func (t *HTTPTransport) Do(ctx context.Context, r *Request) (int, []byte, error) {
	httpClient := t.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.Endpoint, bytes.NewReader(r.Body))
	if err != nil {
		return 0, nil, err
	}
	req.Header = r.Header.Clone()
	if req.Header == nil {
		req.Header = http.Header{}
	}

	// We don't want this header to be set because then we won't get the luxury of the transport automatically
	// decoding the response body for us, if it is encoded.
	req.Header.Del("Accept-Encoding")

	logPassThrough(ctx, r)

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}

	// Close the response body once this function returns.
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error(ctx, "close response body", events.NewErrorInfo(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// RestyTransport is a Transport backed by a resty client, for callers that already configure
// resty (proxies, TLS, tracing hooks) elsewhere.
type RestyTransport struct {
	// Client is the resty client used to do requests. If nil, a client wrapping
	// http.DefaultClient is used.
	Client *resty.Client
}

// NewRestyTransport returns a RestyTransport that uses httpClient underneath. If httpClient is
// nil, http.DefaultClient is used.
func NewRestyTransport(httpClient *http.Client) *RestyTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RestyTransport{Client: resty.NewWithClient(httpClient)}
}

// Do implements Transport.
func (t *RestyTransport) Do(ctx context.Context, r *Request) (int, []byte, error) {
	client := t.Client
	if client == nil {
		client = resty.NewWithClient(http.DefaultClient)
	}

	req := client.R().
		SetContext(ctx).
		SetBody(r.Body)
	for k := range r.Header {
		req.Header.Set(k, r.Header.Get(k))
	}

	// Same as HTTPTransport, leave compression to the underlying net/http transport.
	req.Header.Del("Accept-Encoding")

	logPassThrough(ctx, r)

	resp, err := req.Execute(r.Method, r.Endpoint)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}

// logPassThrough logs the settings of r that the transports carry but cannot apply.
func logPassThrough(ctx context.Context, r *Request) {
	if r.Mode == "" && len(r.Options) == 0 {
		return
	}

	f := log.F{"graphql.mode": r.Mode}
	for k, v := range r.Options {
		f["graphql.option."+k] = v
	}
	log.Debug(ctx, "request options not applied by transport", f)
}
