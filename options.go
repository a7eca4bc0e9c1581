package spanfetch

import (
	"net/http"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/spanfetch-go/encoding"
)

// Option configures a single dispatch.
type Option func(*requestOptions) error

// Per-call request descriptor. Built fresh for every dispatch.
type requestOptions struct {
	method   string
	headers  map[string]string
	body     interface{}
	receiver interface{}
	debug    bool
	hooks    Hooks

	disableJSON           bool
	disableText           bool
	disableFormData       bool
	disableFormURLEncoded bool

	binaryMode BinaryMode
	transport  Transport
	engine     encoding.ContentEngine
}

func getOpts(args []Option) (*requestOptions, error) {
	opts := &requestOptions{
		method:  http.MethodGet,
		headers: make(map[string]string, 4),
	}

	for index := range args {
		if err := args[index](opts); err != nil {
			return nil, err
		}
	}

	if opts.transport == nil {
		opts.transport = defaultTransport
	}

	return opts, nil
}

// contentEngine picks the engine for this call: an explicit override, or the
// pretty-printing engine when debug mode is active.
func (opts *requestOptions) contentEngine() encoding.ContentEngine {
	if opts.engine != nil {
		return opts.engine
	}
	if opts.debug {
		return debugEngine
	}
	return compactEngine
}

// Headers merges the given mapping into the per-call headers. Keys may use
// canonical HTTP casing ("Content-Type") or camel-cased aliases
// ("contentType"); the composer normalizes them.
func Headers(headers map[string]string) Option {
	return func(opts *requestOptions) error {
		for key, value := range headers {
			opts.headers[key] = value
		}
		return nil
	}
}

// Header sets a single per-call header.
func Header(name string, value string) Option {
	return func(opts *requestOptions) error {
		if name == "" {
			return xerrors.New("header name must not be empty")
		}
		opts.headers[name] = value
		return nil
	}
}

// Accept sets the per-call accept header.
func Accept(value string) Option {
	return Header("accept", value)
}

// Method sets the HTTP method. The default is GET.
func Method(method string) Option {
	return func(opts *requestOptions) error {
		if method == "" {
			return xerrors.New("method must not be empty")
		}
		opts.method = method
		return nil
	}
}

func GET() Option     { return Method(http.MethodGet) }
func POST() Option    { return Method(http.MethodPost) }
func PUT() Option     { return Method(http.MethodPut) }
func PATCH() Option   { return Method(http.MethodPatch) }
func DELETE() Option  { return Method(http.MethodDelete) }
func OPTIONS() Option { return Method(http.MethodOptions) }

/*
Body supplies the outgoing payload. Unless the payload is a *FormData value, a
content-type header must be resolvable or the dispatch fails with
NoRequestContentType before any network I/O. Object payloads are serialized per
the resolved content-type; strings, byte buffers, readers and url.Values pass
through unchanged.
*/
func Body(content interface{}) Option {
	return func(opts *requestOptions) error {
		opts.body = content
		return nil
	}
}

// Into makes object-family response bodies decode into the given receiver
// instead of a generic mapping. The receiver must be a pointer.
func Into(receiver interface{}) Option {
	return func(opts *requestOptions) error {
		if receiver == nil {
			return xerrors.New("receiver must not be nil")
		}
		opts.receiver = receiver
		return nil
	}
}

// Debug switches request body serialization to pretty-printed output.
func Debug() Option {
	return func(opts *requestOptions) error {
		opts.debug = true
		return nil
	}
}

// WithHooks installs before/after observation points around the transport
// call.
func WithHooks(hooks Hooks) Option {
	return func(opts *requestOptions) error {
		opts.hooks = hooks
		return nil
	}
}

// DisableJSON removes the JSON family from the success decoding table.
func DisableJSON() Option {
	return func(opts *requestOptions) error {
		opts.disableJSON = true
		return nil
	}
}

// DisableText removes text/* from the success decoding table.
func DisableText() Option {
	return func(opts *requestOptions) error {
		opts.disableText = true
		return nil
	}
}

// DisableFormData removes multipart/form-data from the success decoding table.
func DisableFormData() Option {
	return func(opts *requestOptions) error {
		opts.disableFormData = true
		return nil
	}
}

// DisableFormURLEncoded removes application/x-www-form-urlencoded from the
// success decoding table.
func DisableFormURLEncoded() Option {
	return func(opts *requestOptions) error {
		opts.disableFormURLEncoded = true
		return nil
	}
}

// HandleBinary enables decoding of binary content families in the given mode.
func HandleBinary(mode BinaryMode) Option {
	return func(opts *requestOptions) error {
		if mode < BinaryOff || mode > BinaryBlob {
			return xerrors.New("unknown binary handling mode")
		}
		opts.binaryMode = mode
		return nil
	}
}

// WithTransport overrides the process-wide transport for this call.
func WithTransport(transport Transport) Option {
	return func(opts *requestOptions) error {
		if transport == nil {
			return xerrors.New("transport must not be nil")
		}
		opts.transport = transport
		return nil
	}
}

// WithEngine overrides the content engine for this call.
func WithEngine(engine encoding.ContentEngine) Option {
	return func(opts *requestOptions) error {
		if engine == nil {
			return xerrors.New("engine must not be nil")
		}
		opts.engine = engine
		return nil
	}
}
