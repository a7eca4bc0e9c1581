package spanfetch

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/url"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/spanfetch-go/encoding"
	"github.com/illuscio-dev/spanfetch-go/fetcherrors"
	"github.com/illuscio-dev/spanfetch-go/mimetype"
	"github.com/illuscio-dev/spanfetch-go/spantypes"
)

// Memory ceiling for parsed multipart response bodies.
const maxFormMemory = 32 << 20

/*
MediaResponse is the wrapped result of one dispatch: an immutable pair of
either a successfully decoded value or a classified *fetcherrors.FetchError,
plus a read-only view of the response metadata. It is constructed exactly once
per request attempt and never mutated afterwards.
*/
type MediaResponse struct {
	value interface{}
	err   *fetcherrors.FetchError
	meta  *fetcherrors.ResponseMeta
}

// Ok reports whether the wrapped result is a decoded value rather than a
// classified error.
func (response *MediaResponse) Ok() bool {
	return response.err == nil
}

// Value returns the decoded result, nil when the dispatch failed.
func (response *MediaResponse) Value() interface{} {
	return response.value
}

// Err returns the classified error, nil when the dispatch succeeded.
func (response *MediaResponse) Err() *fetcherrors.FetchError {
	return response.err
}

// Meta returns the response metadata view. It may be a synthetic stand-in when
// the failure happened before any network call.
func (response *MediaResponse) Meta() *fetcherrors.ResponseMeta {
	return response.meta
}

// Unwrap bridges the wrapped and unwrapped call styles: it returns the decoded
// value, or surfaces the classified error as an ordinary error return.
func (response *MediaResponse) Unwrap() (interface{}, error) {
	if response.err != nil {
		return nil, response.err
	}
	return response.value, nil
}

func newValueResponse(value interface{}, meta *fetcherrors.ResponseMeta) *MediaResponse {
	return &MediaResponse{value: value, meta: meta}
}

func newErrorResponse(fetchError *fetcherrors.FetchError) *MediaResponse {
	return &MediaResponse{err: fetchError, meta: fetchError.Response}
}

// newTextResponse wraps a text body.
func newTextResponse(body []byte, meta *fetcherrors.ResponseMeta) *MediaResponse {
	return newValueResponse(string(body), meta)
}

/*
newObjectResponse decodes an object-family body (JSON / BSON / YAML) through
the content engine. When receiver is non-nil the body is decoded into it and
the receiver itself becomes the wrapped value; otherwise a generic mapping is
produced.
*/
func newObjectResponse(
	engine encoding.ContentEngine,
	family mimetype.MimeType,
	body []byte,
	receiver interface{},
	meta *fetcherrors.ResponseMeta,
) (*MediaResponse, error) {
	if receiver != nil {
		if err := engine.Decode(family, receiver, bytes.NewReader(body)); err != nil {
			return nil, xerrors.Errorf("error decoding response body: %w", err)
		}
		return newValueResponse(receiver, meta), nil
	}

	var decoded interface{}
	if err := engine.Decode(family, &decoded, bytes.NewReader(body)); err != nil {
		return nil, xerrors.Errorf("error decoding response body: %w", err)
	}
	return newValueResponse(decoded, meta), nil
}

// newValuesResponse parses an url-encoded body into url.Values.
func newValuesResponse(body []byte, meta *fetcherrors.ResponseMeta) (*MediaResponse, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, xerrors.Errorf("error parsing url-encoded body: %w", err)
	}
	return newValueResponse(values, meta), nil
}

// newBinDataResponse wraps a binary body as a raw buffer.
func newBinDataResponse(body []byte, meta *fetcherrors.ResponseMeta) *MediaResponse {
	return newValueResponse(spantypes.BinData(body), meta)
}

// newBlobResponse wraps a binary body together with its served content type.
func newBlobResponse(
	body []byte, rawType string, meta *fetcherrors.ResponseMeta,
) *MediaResponse {
	return newValueResponse(&spantypes.Blob{
		MimeType: rawType,
		Data:     spantypes.BinData(body),
	}, meta)
}

// newFormResponse parses a multipart body into *multipart.Form. The boundary is
// taken from the raw content-type header, which must not be case-folded.
func newFormResponse(
	body []byte, rawType string, meta *fetcherrors.ResponseMeta,
) (*MediaResponse, error) {
	_, params, err := mime.ParseMediaType(rawType)
	if err != nil {
		return nil, xerrors.Errorf("error parsing multipart content type: %w", err)
	}

	boundary, ok := params["boundary"]
	if !ok {
		return nil, xerrors.New("multipart response has no boundary parameter")
	}

	form, err := multipart.NewReader(bytes.NewReader(body), boundary).ReadForm(maxFormMemory)
	if err != nil {
		return nil, xerrors.Errorf("error parsing multipart body: %w", err)
	}

	return newValueResponse(form, meta), nil
}
