package spanfetch

import (
	"context"
	"io"
	"net/http"

	"golang.org/x/xerrors"
)

/*
Response is the capability surface a transport result must expose to the
dispatch engine. Any transport adapter implements it explicitly; the engine
never probes response objects for fields at runtime.

The body is drained at most once per request.
*/
type Response interface {
	// Status returns the numeric HTTP status code.
	Status() int

	// OK reports whether the response is a success at the transport level.
	OK() bool

	// StatusText returns the reason phrase for the status code.
	StatusText() string

	// URL returns the final URL the response was served from.
	URL() string

	// Header returns the response headers (case-insensitive get).
	Header() http.Header

	// Body returns the response body for a single full read. Never nil.
	Body() io.ReadCloser
}

// Transport performs one network round trip. Cancellation is delegated
// entirely to ctx; errors returned here pass through the engine unclassified.
type Transport func(
	ctx context.Context,
	method string,
	target string,
	header http.Header,
	body io.Reader,
) (Response, error)

// NewHTTPTransport adapts a *http.Client to the Transport contract. A nil
// client falls back to http.DefaultClient.
func NewHTTPTransport(client *http.Client) Transport {
	if client == nil {
		client = http.DefaultClient
	}

	return func(
		ctx context.Context,
		method string,
		target string,
		header http.Header,
		body io.Reader,
	) (Response, error) {
		request, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, xerrors.Errorf("error building request: %w", err)
		}

		for key, values := range header {
			for _, value := range values {
				request.Header.Add(key, value)
			}
		}

		response, err := client.Do(request)
		if err != nil {
			return nil, err
		}

		return &httpResponse{response: response}, nil
	}
}

// process-wide default transport, resolved at module load.
var defaultTransport = NewHTTPTransport(nil)

// httpResponse adapts *http.Response to the Response capability interface.
type httpResponse struct {
	response *http.Response
}

func (adapted *httpResponse) Status() int {
	return adapted.response.StatusCode
}

func (adapted *httpResponse) OK() bool {
	return adapted.response.StatusCode >= 200 && adapted.response.StatusCode < 300
}

func (adapted *httpResponse) StatusText() string {
	return http.StatusText(adapted.response.StatusCode)
}

func (adapted *httpResponse) URL() string {
	if adapted.response.Request != nil && adapted.response.Request.URL != nil {
		return adapted.response.Request.URL.String()
	}
	return ""
}

func (adapted *httpResponse) Header() http.Header {
	return adapted.response.Header
}

func (adapted *httpResponse) Body() io.ReadCloser {
	if adapted.response.Body == nil {
		return http.NoBody
	}
	return adapted.response.Body
}
