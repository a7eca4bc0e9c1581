// Enumeration-like type for content mimetypes and the family-matching rules
// used by the fetch dispatch engine.
package mimetype

import (
	"regexp"
	"strings"
)

/*
MimeType is used to enumerate the default representation for content encoding types.
Non default MimeTypes can be used by wrapping a custom string:

	MimeType("text/csv")

A MimeType may carry media-type parameters ("application/json; charset=utf-8").
Family matching always operates on the base type, with parameters stripped.
*/
type MimeType string

const (
	JSON           = MimeType("application/json")
	ProblemJSON    = MimeType("application/problem+json")
	BSON           = MimeType("application/bson")
	YAML           = MimeType("application/yaml")
	TEXT           = MimeType("text/plain")
	FormData       = MimeType("multipart/form-data")
	FormURLEncoded = MimeType("application/x-www-form-urlencoded")
	OctetStream    = MimeType("application/octet-stream")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// DefaultProblemAccept is the low-priority accept entry for RFC-7807 problem
// documents that seeds the process-wide default accept list.
const DefaultProblemAccept = "application/problem+json; q=0.1"

var (
	// RxVendorErrors matches vendor structured-error list types of the form
	// "application/vnd.<name>.errors.v<N>+json" with version >= 1.
	RxVendorErrors = regexp.MustCompile(
		`^application/vnd\.[a-z0-9]+(?:[.-][a-z0-9]+)*\.errors\.v[1-9][0-9]*\+json`,
	)

	// RxVendorProblem matches vendor problem document types of the form
	// "application/vnd.<name>.problem[.v<N>]+json".
	RxVendorProblem = regexp.MustCompile(
		`^application/vnd\.[a-z0-9]+(?:[.-][a-z0-9]+)*\.problem(?:\.v[0-9]+)?\+json`,
	)
)

// Interface for object used to read headers such as http.Request.Header or
// http.Response.Header
type headerFetcher interface {
	Get(string) string
}

// Extract content type from a message / request header.
func FromHeader(headers headerFetcher) MimeType {
	return FromString(headers.Get("Content-Type"))
}

// Convert MimeType from a string. Ignores case. Media-type parameters are kept
// in the value and ignored by the family matchers.
func FromString(incoming string) MimeType {
	incoming = strings.ToLower(strings.TrimSpace(incoming))
	return MimeType(incoming)
}

// Base returns the media type with any parameters ("; charset=...") stripped.
func (mimeType MimeType) Base() string {
	base := string(mimeType)
	if split := strings.IndexByte(base, ';'); split >= 0 {
		base = base[:split]
	}
	return strings.TrimSpace(base)
}

// IsJSON reports whether the type belongs to the JSON family: an exact
// "application/json" prefix or any type with a "+json" suffix.
func (mimeType MimeType) IsJSON() bool {
	base := mimeType.Base()
	return strings.HasPrefix(base, string(JSON)) || strings.HasSuffix(base, "+json")
}

// IsPlainJSON reports an "application/json" prefix only. The error
// classification table uses this narrower match so that structured "+json"
// types do not fall into the generic JSON branch.
func (mimeType MimeType) IsPlainJSON() bool {
	return strings.HasPrefix(mimeType.Base(), string(JSON))
}

// IsBSON reports whether the type is in the BSON object family.
func (mimeType MimeType) IsBSON() bool {
	base := mimeType.Base()
	return strings.HasPrefix(base, string(BSON)) || strings.HasSuffix(base, "+bson")
}

// IsYAML reports whether the type is in the YAML object family.
func (mimeType MimeType) IsYAML() bool {
	base := mimeType.Base()
	return strings.HasPrefix(base, string(YAML)) || strings.HasSuffix(base, "+yaml")
}

// IsText matches any "text/*" type.
func (mimeType MimeType) IsText() bool {
	return strings.HasPrefix(mimeType.Base(), "text/")
}

// IsBinary matches the image / audio / video / generic-binary families.
func (mimeType MimeType) IsBinary() bool {
	base := mimeType.Base()
	return strings.HasPrefix(base, "image/") ||
		strings.HasPrefix(base, "audio/") ||
		strings.HasPrefix(base, "video/") ||
		base == string(OctetStream)
}

// IsFormData matches "multipart/form-data".
func (mimeType MimeType) IsFormData() bool {
	return strings.HasPrefix(mimeType.Base(), string(FormData))
}

// IsFormURLEncoded matches "application/x-www-form-urlencoded".
func (mimeType MimeType) IsFormURLEncoded() bool {
	return strings.HasPrefix(mimeType.Base(), string(FormURLEncoded))
}

// IsProblem matches RFC-7807 problem documents, either the canonical
// "application/problem+json" type or a vendor problem type.
func (mimeType MimeType) IsProblem() bool {
	base := mimeType.Base()
	return strings.HasPrefix(base, string(ProblemJSON)) ||
		RxVendorProblem.MatchString(base)
}

// IsVendorErrors matches vendor structured-error list types.
func (mimeType MimeType) IsVendorErrors() bool {
	return RxVendorErrors.MatchString(mimeType.Base())
}
