package fetcherrors

import (
	"net/http"

	uuid "github.com/satori/go.uuid"
)

// Kind enumerates the classification variants. The set is closed: the dispatch
// engine produces no other variants, so switches over Kind can be exhaustive.
type Kind int

const (
	// KindNoRequestContentType: a request body was supplied but no content-type
	// could be resolved. Raised before any network I/O.
	KindNoRequestContentType Kind = iota + 1

	// KindNoResponseContentType: a successful response carried no content-type
	// header.
	KindNoResponseContentType

	// KindMediaTypeUnsupported: the response content-type matched no decoding
	// rule, or an error body's content-type matched no classification rule.
	KindMediaTypeUnsupported

	// KindProblem: an RFC-7807 problem document error body.
	KindProblem

	// KindStructuredErrors: a vendor structured-error list body.
	KindStructuredErrors

	// KindJSONError: a generic JSON error body.
	KindJSONError

	// KindTextError: a plain-text error body.
	KindTextError
)

var kindNames = map[Kind]string{
	KindNoRequestContentType:  "NoRequestContentType",
	KindNoResponseContentType: "NoResponseContentType",
	KindMediaTypeUnsupported:  "MediaTypeUnsupported",
	KindProblem:               "Problem",
	KindStructuredErrors:      "StructuredErrors",
	KindJSONError:             "JsonError",
	KindTextError:             "TextError",
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "UnknownKind"
}

/*
ResponseMeta is a read-only view of the transport response a classified error
refers to. The headers are borrowed from the transport's response object, never
deep-copied.

When the real response object is unusable (for instance the locally constructed
400 produced for a missing request content-type) a minimal synthetic stand-in
is used instead; see SyntheticMeta.
*/
type ResponseMeta struct {
	Status     int
	StatusText string
	URL        string
	Header     http.Header
}

// SyntheticMeta builds a stand-in ResponseMeta for failures raised before a
// real response exists.
func SyntheticMeta(url string, status int) *ResponseMeta {
	return &ResponseMeta{
		Status:     status,
		StatusText: http.StatusText(status),
		URL:        url,
		Header:     make(http.Header),
	}
}

// FetchError is a single classified failure.
type FetchError struct {
	// The classification variant.
	kind Kind

	// A message detailing what caused the error, derived deterministically from
	// the variant's payload.
	Message string

	// Metadata of the offending response (or a synthetic stand-in).
	Response *ResponseMeta

	// The parsed diagnostic payload: a *models.Problem for KindProblem, a
	// *models.ErrorsDocument for KindStructuredErrors, the decoded JSON mapping
	// for KindJSONError, the raw text for KindTextError, nil otherwise.
	Data interface{}

	// An id for the error instance.
	ID uuid.UUID

	// If this error was produced because of another error, the original error
	// is stored here.
	sourceErr error
}

func newFetchError(kind Kind, message string, meta *ResponseMeta, data interface{}) *FetchError {
	return &FetchError{
		kind:     kind,
		Message:  message,
		Response: meta,
		Data:     data,
		ID:       uuid.NewV4(),
	}
}

// Kind returns the classification variant of this error.
func (fetchError *FetchError) Kind() Kind {
	return fetchError.kind
}

// IsKind reports whether this error carries the given variant.
func (fetchError *FetchError) IsKind(kind Kind) bool {
	return fetchError.kind == kind
}

// Error string to conform to builtin error interface.
func (fetchError *FetchError) Error() string {
	return fetchError.kind.String() + " - " + fetchError.Message
}

// Implements the xerrors.Wrapper interface.
func (fetchError *FetchError) Unwrap() error {
	return fetchError.sourceErr
}
