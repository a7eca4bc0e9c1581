package fetcherrors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/illuscio-dev/spanfetch-go/models"
)

// Placeholder used in messages when the offending content-type is empty.
const missingTypePlaceholder = "<none>"

// Probe order for extracting a message from a generic JSON error body.
var jsonMessageKeys = []string{"message", "error", "details", "title", "errors"}

// NewNoRequestContentType reports a request body with no resolvable
// content-type. No network call has happened; the response metadata is a
// synthetic 400 stand-in.
func NewNoRequestContentType(url string) *FetchError {
	message := fmt.Sprintf(
		"no content-type could be resolved for the request body sent to %s", url,
	)
	return newFetchError(
		KindNoRequestContentType,
		message,
		SyntheticMeta(url, http.StatusBadRequest),
		nil,
	)
}

// NewNoResponseContentType reports a successful response that carried no
// content-type header.
func NewNoResponseContentType(meta *ResponseMeta) *FetchError {
	message := fmt.Sprintf(
		"response from %s has no content-type header (%d %s)",
		meta.URL, meta.Status, meta.StatusText,
	)
	return newFetchError(KindNoResponseContentType, message, meta, nil)
}

// NewMediaTypeUnsupported reports a content-type that matched no rule in the
// relevant table. expectedAccept is the originally requested accept value on
// the success path, or the recognized error patterns on the failure path.
func NewMediaTypeUnsupported(
	meta *ResponseMeta, expectedAccept string, actualType string,
) *FetchError {
	if actualType == "" {
		actualType = missingTypePlaceholder
	}
	message := fmt.Sprintf(
		"unsupported media type from %s (%d %s): expected %q, received %q",
		meta.URL, meta.Status, meta.StatusText, expectedAccept, actualType,
	)
	return newFetchError(KindMediaTypeUnsupported, message, meta, nil)
}

// NewProblem wraps an RFC-7807 problem document. The message is the document's
// detail field only; the legacy title+detail join is deliberately not carried.
func NewProblem(meta *ResponseMeta, document *models.Problem) *FetchError {
	return newFetchError(KindProblem, document.Detail, meta, document)
}

// NewStructuredErrors wraps a vendor structured-error list. The message is the
// comma-joined message field of every entry.
func NewStructuredErrors(
	meta *ResponseMeta, document *models.ErrorsDocument,
) *FetchError {
	message := strings.Join(document.Messages(), ", ")
	return newFetchError(KindStructuredErrors, message, meta, document)
}

// NewJSONError wraps a generic JSON error body. The message is extracted by
// probing, in order, the message / error / details / title / errors keys of the
// payload. Array values are comma-joined. When no key is present the message is
// a diagnostic listing the keys that were found instead.
func NewJSONError(meta *ResponseMeta, payload map[string]interface{}) *FetchError {
	message := jsonErrorMessage(payload)
	return newFetchError(KindJSONError, message, meta, payload)
}

// NewTextError wraps a plain-text error body.
func NewTextError(meta *ResponseMeta, text string) *FetchError {
	message := fmt.Sprintf("[%d] %s: %s", meta.Status, meta.URL, text)
	return newFetchError(KindTextError, message, meta, text)
}

func jsonErrorMessage(payload map[string]interface{}) string {
	for _, key := range jsonMessageKeys {
		value, ok := payload[key]
		if !ok {
			continue
		}

		if list, isList := value.([]interface{}); isList {
			parts := make([]string, len(list))
			for index, item := range list {
				parts[index] = fmt.Sprint(item)
			}
			return strings.Join(parts, ", ")
		}

		return fmt.Sprint(value)
	}

	present := make([]string, 0, len(payload))
	for key := range payload {
		present = append(present, key)
	}
	sort.Strings(present)

	return fmt.Sprintf(
		"no message found in error body; keys present: %s",
		strings.Join(present, ", "),
	)
}
