package fetcherrors_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"net/http"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/spanfetch-go/fetcherrors"
	"github.com/illuscio-dev/spanfetch-go/models"
)

func testMeta(status int) *fetcherrors.ResponseMeta {
	return &fetcherrors.ResponseMeta{
		Status:     status,
		StatusText: http.StatusText(status),
		URL:        "https://api.example.com/things",
		Header:     make(http.Header),
	}
}

func TestNoRequestContentType(test *testing.T) {
	assert := assert.New(test)

	fetchErr := fetcherrors.NewNoRequestContentType("https://api.example.com/things")

	assert.True(fetchErr.IsKind(fetcherrors.KindNoRequestContentType))
	assert.Contains(fetchErr.Message, "https://api.example.com/things")
	assert.NotEqual(uuid.Nil, fetchErr.ID)

	// No network call happened, the response is a synthetic 400 stand-in.
	assert.Equal(400, fetchErr.Response.Status)
	assert.Equal("Bad Request", fetchErr.Response.StatusText)
	assert.Equal("https://api.example.com/things", fetchErr.Response.URL)
}

func TestNoResponseContentType(test *testing.T) {
	assert := assert.New(test)

	fetchErr := fetcherrors.NewNoResponseContentType(testMeta(200))

	assert.True(fetchErr.IsKind(fetcherrors.KindNoResponseContentType))
	assert.Contains(fetchErr.Message, "https://api.example.com/things")
	assert.Contains(fetchErr.Message, "200 OK")
}

func TestMediaTypeUnsupported(test *testing.T) {
	assert := assert.New(test)

	fetchErr := fetcherrors.NewMediaTypeUnsupported(
		testMeta(200), "application/json", "application/xml",
	)

	assert.True(fetchErr.IsKind(fetcherrors.KindMediaTypeUnsupported))
	assert.Contains(fetchErr.Message, `expected "application/json"`)
	assert.Contains(fetchErr.Message, `received "application/xml"`)
}

func TestMediaTypeUnsupportedEmptyActual(test *testing.T) {
	fetchErr := fetcherrors.NewMediaTypeUnsupported(testMeta(500), "application/json", "")

	assert.Contains(test, fetchErr.Message, `received "<none>"`)
}

// Message comes from the detail field only; the legacy title+detail join is not
// carried.
func TestProblemMessageIsDetailOnly(test *testing.T) {
	assert := assert.New(test)

	document := &models.Problem{
		Title:  "Not Found",
		Status: 404,
		Detail: "not found",
	}
	fetchErr := fetcherrors.NewProblem(testMeta(404), document)

	assert.True(fetchErr.IsKind(fetcherrors.KindProblem))
	assert.Equal("not found", fetchErr.Message)
	assert.Equal(document, fetchErr.Data)
}

func TestStructuredErrorsMessage(test *testing.T) {
	assert := assert.New(test)

	document := &models.ErrorsDocument{Errors: []models.ErrorItem{
		{Message: "bad"},
		{Message: "worse"},
	}}
	fetchErr := fetcherrors.NewStructuredErrors(testMeta(422), document)

	assert.True(fetchErr.IsKind(fetcherrors.KindStructuredErrors))
	assert.Equal("bad, worse", fetchErr.Message)
}

func TestStructuredErrorsEmptyList(test *testing.T) {
	fetchErr := fetcherrors.NewStructuredErrors(
		testMeta(500), &models.ErrorsDocument{},
	)

	assert.Equal(test, "", fetchErr.Message)
}

func TestJSONErrorMessageProbeOrder(test *testing.T) {
	assert := assert.New(test)

	fetchErr := fetcherrors.NewJSONError(testMeta(500), map[string]interface{}{
		"error":   "ignored",
		"message": "boom",
	})
	assert.Equal("boom", fetchErr.Message)

	fetchErr = fetcherrors.NewJSONError(testMeta(500), map[string]interface{}{
		"error": "boom",
	})
	assert.Equal("boom", fetchErr.Message)

	fetchErr = fetcherrors.NewJSONError(testMeta(500), map[string]interface{}{
		"title": "boom",
	})
	assert.Equal("boom", fetchErr.Message)
}

func TestJSONErrorArrayValueJoined(test *testing.T) {
	fetchErr := fetcherrors.NewJSONError(testMeta(500), map[string]interface{}{
		"details": []interface{}{"first", "second"},
	})

	assert.Equal(test, "first, second", fetchErr.Message)
}

func TestJSONErrorNoMessageKey(test *testing.T) {
	assert := assert.New(test)

	fetchErr := fetcherrors.NewJSONError(testMeta(500), map[string]interface{}{
		"reason": "boom",
		"code":   "X100",
	})

	assert.Contains(fetchErr.Message, "no message found in error body")
	assert.Contains(fetchErr.Message, "code, reason")
}

func TestTextErrorMessage(test *testing.T) {
	assert := assert.New(test)

	fetchErr := fetcherrors.NewTextError(testMeta(500), "oops")

	assert.True(fetchErr.IsKind(fetcherrors.KindTextError))
	assert.Contains(fetchErr.Message, "[500]")
	assert.Contains(fetchErr.Message, "https://api.example.com/things")
	assert.Contains(fetchErr.Message, "oops")
}

func TestErrorStringCarriesKindName(test *testing.T) {
	assert := assert.New(test)

	fetchErr := fetcherrors.NewTextError(testMeta(500), "oops")

	assert.Contains(fetchErr.Error(), "TextError - ")
	assert.Equal("TextError", fetchErr.Kind().String())
}
