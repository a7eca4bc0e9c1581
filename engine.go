package spanfetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/spanfetch-go/encoding"
	"github.com/illuscio-dev/spanfetch-go/fetcherrors"
	"github.com/illuscio-dev/spanfetch-go/mimetype"
	"github.com/illuscio-dev/spanfetch-go/models"
)

// Shared content engines. Which one a call uses depends on its debug flag;
// both are safe for concurrent use.
var (
	compactEngine encoding.ContentEngine
	debugEngine   encoding.ContentEngine
)

func init() {
	var err error
	if compactEngine, err = encoding.NewContentEngine(false); err != nil {
		panic(xerrors.Errorf("error building compact content engine: %w", err))
	}
	if debugEngine, err = encoding.NewContentEngine(true); err != nil {
		panic(xerrors.Errorf("error building debug content engine: %w", err))
	}
}

/*
Fetch dispatches one request and unwraps the result: the decoded value on
success, or the classified *fetcherrors.FetchError as the returned error.
Transport-level failures (network errors, cancellation) and option errors pass
through unclassified.
*/
func Fetch(ctx context.Context, target string, args ...Option) (interface{}, error) {
	wrapped, err := FetchWrapped(ctx, target, args...)
	if err != nil {
		return nil, err
	}
	return wrapped.Unwrap()
}

/*
FetchWrapped dispatches one request and returns the wrapped result. Classified
failures live inside the MediaResponse; the second return carries only option
errors, transport-level failures and body decode errors.

The dispatch runs: compose headers → validate body content-type → encode body →
before hook → transport → read content-type → after hook → match the ordered
decoding (or error-classification) rule table, first match wins.
*/
func FetchWrapped(ctx context.Context, target string, args ...Option) (*MediaResponse, error) {
	opts, err := getOpts(args)
	if err != nil {
		return nil, err
	}

	if headerValue(opts.headers, "accept") == "" {
		return nil, xerrors.New("headers must include an accept value")
	}

	composed := composeHeaders(opts.headers)
	engine := opts.contentEngine()
	contentType := mimetype.FromString(headerValue(composed, "content-type"))

	var bodyReader io.Reader
	switch body := opts.body.(type) {
	case nil:
	case *FormData:
		// Multipart payloads carry their own boundary content type.
		encoded, formType, encodeErr := body.encode()
		if encodeErr != nil {
			return nil, encodeErr
		}
		bodyReader = bytes.NewReader(encoded)
		setHeaderValue(composed, "content-type", formType)
		contentType = mimetype.FromString(formType)
	default:
		if contentType == mimetype.UNKNOWN {
			// Fail before any network I/O.
			return newErrorResponse(fetcherrors.NewNoRequestContentType(target)), nil
		}
		if bodyReader, err = encodeBody(body, contentType, engine); err != nil {
			return nil, err
		}
	}

	opts.beforeHook(opts.method, target, composed)

	response, err := opts.transport(ctx, opts.method, target, toHTTPHeader(composed), bodyReader)
	if err != nil {
		// Genuine transport exceptions propagate unclassified.
		return nil, err
	}

	meta := &fetcherrors.ResponseMeta{
		Status:     response.Status(),
		StatusText: response.StatusText(),
		URL:        response.URL(),
		Header:     response.Header(),
	}
	if meta.URL == "" {
		meta.URL = target
	}

	rawType := response.Header().Get("Content-Type")
	responseType := mimetype.FromString(rawType)

	body, err := readBody(response)
	if err != nil {
		return nil, xerrors.Errorf("error reading response body: %w", err)
	}

	if response.OK() && response.Status() < http.StatusBadRequest {
		requestedAccept := headerValue(opts.headers, "accept")
		return decodeSuccess(opts, engine, meta, responseType, rawType, body, requestedAccept)
	}

	return classifyFailure(opts, engine, meta, responseType, body)
}

// readBody drains the response body exactly once.
func readBody(response Response) ([]byte, error) {
	body := response.Body()
	defer func() {
		_ = body.Close()
	}()

	return io.ReadAll(body)
}

// decodeSuccess matches the response content type against the ordered decoding
// rule table. Each family is individually disable-able; the first match wins.
func decodeSuccess(
	opts *requestOptions,
	engine encoding.ContentEngine,
	meta *fetcherrors.ResponseMeta,
	responseType mimetype.MimeType,
	rawType string,
	body []byte,
	requestedAccept string,
) (*MediaResponse, error) {
	if responseType == mimetype.UNKNOWN {
		return newErrorResponse(fetcherrors.NewNoResponseContentType(meta)), nil
	}

	opts.afterHook(meta, rawType)

	switch {
	case responseType.IsJSON() && !opts.disableJSON:
		return newObjectResponse(engine, mimetype.JSON, body, opts.receiver, meta)

	case responseType.IsBSON():
		return newObjectResponse(engine, mimetype.BSON, body, opts.receiver, meta)

	case responseType.IsYAML():
		return newObjectResponse(engine, mimetype.YAML, body, opts.receiver, meta)

	case responseType.IsText() && !opts.disableText:
		return newTextResponse(body, meta), nil

	case responseType.IsBinary() && opts.binaryMode == BinaryBytes:
		return newBinDataResponse(body, meta), nil

	case responseType.IsBinary() && opts.binaryMode == BinaryBlob:
		return newBlobResponse(body, rawType, meta), nil

	case responseType.IsFormData() && !opts.disableFormData:
		return newFormResponse(body, rawType, meta)

	case responseType.IsFormURLEncoded() && !opts.disableFormURLEncoded:
		return newValuesResponse(body, meta)
	}

	return newErrorResponse(
		fetcherrors.NewMediaTypeUnsupported(meta, requestedAccept, string(responseType)),
	), nil
}

// classifyFailure matches an error response's content type against the ordered
// classification rule table.
func classifyFailure(
	opts *requestOptions,
	engine encoding.ContentEngine,
	meta *fetcherrors.ResponseMeta,
	responseType mimetype.MimeType,
	body []byte,
) (*MediaResponse, error) {
	if responseType == mimetype.UNKNOWN {
		return newErrorResponse(
			fetcherrors.NewMediaTypeUnsupported(meta, expectedErrorTypes(), ""),
		), nil
	}

	opts.afterHook(meta, string(responseType))

	switch {
	case responseType.IsProblem():
		document := new(models.Problem)
		if err := engine.Decode(mimetype.JSON, document, bytes.NewReader(body)); err != nil {
			return nil, xerrors.Errorf("error decoding problem document: %w", err)
		}
		return newErrorResponse(fetcherrors.NewProblem(meta, document)), nil

	case responseType.IsVendorErrors():
		document := new(models.ErrorsDocument)
		if err := engine.Decode(mimetype.JSON, document, bytes.NewReader(body)); err != nil {
			return nil, xerrors.Errorf("error decoding structured errors: %w", err)
		}
		return newErrorResponse(fetcherrors.NewStructuredErrors(meta, document)), nil

	case responseType.IsPlainJSON():
		payload := make(map[string]interface{})
		if err := engine.Decode(mimetype.JSON, &payload, bytes.NewReader(body)); err != nil {
			return nil, xerrors.Errorf("error decoding json error body: %w", err)
		}

		// Generic JSON errors shaped like a structured-error list reclassify.
		if shapedLikeErrorList(payload) {
			document := new(models.ErrorsDocument)
			if err := engine.Decode(mimetype.JSON, document, bytes.NewReader(body)); err != nil {
				return nil, xerrors.Errorf("error decoding structured errors: %w", err)
			}
			return newErrorResponse(fetcherrors.NewStructuredErrors(meta, document)), nil
		}

		return newErrorResponse(fetcherrors.NewJSONError(meta, payload)), nil

	case responseType.IsText():
		return newErrorResponse(fetcherrors.NewTextError(meta, string(body))), nil
	}

	return newErrorResponse(
		fetcherrors.NewMediaTypeUnsupported(meta, expectedErrorTypes(), string(responseType)),
	), nil
}

// expectedErrorTypes renders the patterns the error-classification table
// recognizes, for unsupported-media diagnostics.
func expectedErrorTypes() string {
	return strings.Join([]string{
		mimetype.RxVendorErrors.String(),
		mimetype.RxVendorProblem.String(),
		mimetype.DefaultProblemAccept,
	}, ", ")
}

// shapedLikeErrorList reports whether a decoded JSON payload is shaped like
// {errors: [...]} with every present element carrying a message field. An
// empty list qualifies.
func shapedLikeErrorList(payload map[string]interface{}) bool {
	list, ok := payload["errors"].([]interface{})
	if !ok {
		return false
	}

	for _, element := range list {
		entry, isMapping := element.(map[string]interface{})
		if !isMapping {
			return false
		}
		if _, hasMessage := entry["message"]; !hasMessage {
			return false
		}
	}

	return true
}
