package spanfetch

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/spanfetch-go/mimetype"
)

// Restores the process-wide defaults after a test that mutates them.
func resetDefaults(test *testing.T) {
	test.Cleanup(func() {
		SetDefaultAccept(mimetype.DefaultProblemAccept)
		SetDefaultHeaders(map[string]string{})
	})
}

func TestRemapHeaderKey(test *testing.T) {
	assert := assert.New(test)

	// camelCase aliases are rewritten to kebab-case.
	assert.Equal("content-type", remapHeaderKey("contentType"))
	assert.Equal("x-request-id", remapHeaderKey("xRequestId"))
	assert.Equal("accept", remapHeaderKey("accept"))

	// Keys starting upper-case or containing a hyphen pass verbatim.
	assert.Equal("Content-Type", remapHeaderKey("Content-Type"))
	assert.Equal("x-api-key", remapHeaderKey("x-api-key"))
	assert.Equal("Authorization", remapHeaderKey("Authorization"))
}

func TestComposeAcceptCallValueFirst(test *testing.T) {
	assert := assert.New(test)

	composed := composeHeaders(map[string]string{"accept": "application/json"})

	assert.Equal(
		"application/json, "+mimetype.DefaultProblemAccept,
		composed["accept"],
	)
}

func TestComposeMergesDefaultHeaders(test *testing.T) {
	assert := assert.New(test)
	resetDefaults(test)

	SetDefaultHeaders(map[string]string{"x-client": "spanfetch"})

	composed := composeHeaders(map[string]string{
		"accept":      "application/json",
		"contentType": "application/json",
	})

	assert.Equal("spanfetch", composed["x-client"])
	assert.Equal("application/json", composed["content-type"])
}

// Per-call headers win over defaults on key collision.
func TestComposeCallHeadersWin(test *testing.T) {
	resetDefaults(test)

	SetDefaultHeaders(map[string]string{"x-client": "default"})

	composed := composeHeaders(map[string]string{
		"accept":   "application/json",
		"x-client": "per-call",
	})

	assert.Equal(test, "per-call", composed["x-client"])
}

func TestComposeDropsEmptyValues(test *testing.T) {
	composed := composeHeaders(map[string]string{
		"accept":      "application/json",
		"contentType": "",
	})

	_, present := composed["content-type"]
	assert.False(test, present)
}

func TestDefaultAcceptReplacedWholesale(test *testing.T) {
	assert := assert.New(test)
	resetDefaults(test)

	SetDefaultAccept("application/hal+json; q=0.5", "application/problem+json; q=0.1")

	composed := composeHeaders(map[string]string{"accept": "application/json"})

	assert.Equal(
		"application/json, application/hal+json; q=0.5, application/problem+json; q=0.1",
		composed["accept"],
	)
}

// Calling SetDefaultHeaders twice with the same mapping must produce identical
// composed headers across calls.
func TestSetDefaultHeadersIdempotent(test *testing.T) {
	assert := assert.New(test)
	resetDefaults(test)

	mapping := map[string]string{"x-client": "spanfetch"}
	callHeaders := map[string]string{"accept": "application/json"}

	SetDefaultHeaders(mapping)
	first := composeHeaders(callHeaders)

	SetDefaultHeaders(mapping)
	second := composeHeaders(callHeaders)

	assert.Equal(first, second)
}

func TestHeaderValueLookup(test *testing.T) {
	assert := assert.New(test)

	headers := map[string]string{"Content-Type": "application/json"}
	assert.Equal("application/json", headerValue(headers, "content-type"))

	headers = map[string]string{"contentType": "application/json"}
	assert.Equal("application/json", headerValue(headers, "content-type"))

	assert.Equal("", headerValue(map[string]string{}, "content-type"))
}

func TestSetHeaderValueReplacesSpellings(test *testing.T) {
	assert := assert.New(test)

	headers := map[string]string{"Content-Type": "text/plain"}
	setHeaderValue(headers, "content-type", "multipart/form-data; boundary=xyz")

	assert.Len(headers, 1)
	assert.Equal("multipart/form-data; boundary=xyz", headers["content-type"])
}
