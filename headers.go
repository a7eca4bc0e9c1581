package spanfetch

import (
	"net/http"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/illuscio-dev/spanfetch-go/mimetype"
)

// Process-wide defaults. Each setter replaces the stored value wholesale (no
// merge) and every request reads one consistent snapshot at header-composition
// time. Replacement is atomic at the reference level; concurrent setters and
// in-flight requests are last-write-wins with no further ordering guarantee.
var (
	defaultAccept  atomic.Value // []string
	defaultHeaders atomic.Value // map[string]string
)

func init() {
	defaultAccept.Store([]string{mimetype.DefaultProblemAccept})
	defaultHeaders.Store(map[string]string{})
}

// SetDefaultAccept replaces the process-wide accept-quality list appended to
// every composed accept header.
func SetDefaultAccept(values ...string) {
	list := make([]string, len(values))
	copy(list, values)
	defaultAccept.Store(list)
}

// SetDefaultHeaders replaces the process-wide default headers merged into
// every request.
func SetDefaultHeaders(headers map[string]string) {
	copied := make(map[string]string, len(headers))
	for key, value := range headers {
		copied[key] = value
	}
	defaultHeaders.Store(copied)
}

func defaultAcceptSnapshot() []string {
	return defaultAccept.Load().([]string)
}

func defaultHeadersSnapshot() map[string]string {
	return defaultHeaders.Load().(map[string]string)
}

/*
remapHeaderKey rewrites camel-cased known-header aliases ("contentType") to
kebab-case ("content-type"). Keys that already start with an upper-case letter
or contain a hyphen are treated as canonical / opaque and pass verbatim.
*/
func remapHeaderKey(key string) string {
	if key == "" {
		return key
	}

	first := []rune(key)[0]
	if unicode.IsUpper(first) || strings.ContainsRune(key, '-') {
		return key
	}

	var builder strings.Builder
	for _, letter := range key {
		if unicode.IsUpper(letter) {
			builder.WriteByte('-')
			builder.WriteRune(unicode.ToLower(letter))
		} else {
			builder.WriteRune(letter)
		}
	}
	return builder.String()
}

/*
composeHeaders merges the process-wide default headers, the composed accept
value and the per-call headers into one flat mapping. Later layers win on key
collision; the composed accept value (per-call accept first, then the default
accept-quality list, comma-joined) is excluded from the last layer so it always
survives. Headers with empty values are dropped.

Pure function of its inputs plus the two global snapshots.
*/
func composeHeaders(callHeaders map[string]string) map[string]string {
	composed := make(map[string]string, len(callHeaders)+2)

	for key, value := range defaultHeadersSnapshot() {
		if value == "" {
			continue
		}
		composed[key] = value
	}

	acceptParts := make([]string, 0, 4)
	if callAccept := headerValue(callHeaders, "accept"); callAccept != "" {
		acceptParts = append(acceptParts, callAccept)
	}
	acceptParts = append(acceptParts, defaultAcceptSnapshot()...)
	if len(acceptParts) > 0 {
		composed["accept"] = strings.Join(acceptParts, ", ")
	}

	for key, value := range callHeaders {
		remapped := remapHeaderKey(key)
		if value == "" || strings.EqualFold(remapped, "accept") {
			continue
		}
		composed[remapped] = value
	}

	return composed
}

// headerValue looks a header up by name, case-insensitively, remapping
// camel-cased aliases first.
func headerValue(headers map[string]string, name string) string {
	for key, value := range headers {
		if strings.EqualFold(remapHeaderKey(key), name) {
			return value
		}
	}
	return ""
}

// setHeaderValue replaces a header by name case-insensitively, removing any
// existing spellings first.
func setHeaderValue(headers map[string]string, name string, value string) {
	for key := range headers {
		if strings.EqualFold(remapHeaderKey(key), name) {
			delete(headers, key)
		}
	}
	headers[name] = value
}

// toHTTPHeader converts a composed flat mapping to the transport header shape.
func toHTTPHeader(headers map[string]string) http.Header {
	converted := make(http.Header, len(headers))
	for key, value := range headers {
		converted.Set(key, value)
	}
	return converted
}
