package encoding_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/spanfetch-go/encoding"
	"github.com/illuscio-dev/spanfetch-go/mimetype"
	"github.com/illuscio-dev/spanfetch-go/spantypes"
)

type Name struct {
	First string `json:"first" bson:"first" yaml:"first"`
	Last  string `json:"last" bson:"last" yaml:"last"`
}

type PanickyEncoder struct{}

func (encoder *PanickyEncoder) Encode(
	engine encoding.ContentEngine, writer io.Writer, content interface{},
) error {
	panic(xerrors.New("encode panicked"))
}

func (encoder *PanickyEncoder) Decode(
	engine encoding.ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	panic(xerrors.New("decode panicked"))
}

func createEngine(test *testing.T) encoding.ContentEngine {
	engine, err := encoding.NewContentEngine(false)
	if err != nil {
		test.Fatal(err)
	}
	return engine
}

func TestCreateEngineDefault(test *testing.T) {
	assert := assert.New(test)

	engine, err := encoding.NewContentEngine(false)

	assert.Nil(err)
	assert.NotNil(engine)

	// Test that all the defaults registered appropriately.
	assert.True(engine.Handles(mimetype.JSON))
	assert.True(engine.Handles(mimetype.BSON))
	assert.True(engine.Handles(mimetype.YAML))
	assert.True(engine.Handles(mimetype.TEXT))

	assert.False(engine.Handles(mimetype.MimeType("text/csv")))

	assert.False(engine.Pretty())
}

// Generic round trip of a basic name object for a given mimeType.
func RoundTripName(test *testing.T, mimeType mimetype.MimeType) {
	assert := assert.New(test)
	engine := createEngine(test)

	testName := Name{
		First: "Harry",
		Last:  "Potter",
	}

	buffer := bytes.Buffer{}

	err := engine.Encode(mimeType, testName, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	loaded := Name{}
	err = engine.Decode(mimeType, &loaded, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	assert.Equal(testName, loaded)
}

func TestJSONBasicRoundTrip(test *testing.T) {
	RoundTripName(test, mimetype.JSON)
}

func TestBSONBasicRoundTrip(test *testing.T) {
	RoundTripName(test, mimetype.BSON)
}

func TestYAMLBasicRoundTrip(test *testing.T) {
	RoundTripName(test, mimetype.YAML)
}

func TestTextRoundTrip(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	stringPayload := "Test String."
	buffer := bytes.Buffer{}

	err := engine.Encode(mimetype.TEXT, stringPayload, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	loaded := ""
	err = engine.Decode(mimetype.TEXT, &loaded, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	assert.Equal(stringPayload, loaded)
}

// Pretty and compact JSON serializations must differ only in whitespace.
func TestPrettyDiffersOnlyInWhitespace(test *testing.T) {
	assert := assert.New(test)

	compact := createEngine(test)
	pretty, err := encoding.NewContentEngine(true)
	if err != nil {
		test.Fatal(err)
	}
	assert.True(pretty.Pretty())

	payload := map[string]interface{}{"a": "1", "b": "2"}

	compactBuffer := bytes.Buffer{}
	prettyBuffer := bytes.Buffer{}

	if err = compact.Encode(mimetype.JSON, payload, &compactBuffer); err != nil {
		test.Fatal(err)
	}
	if err = pretty.Encode(mimetype.JSON, payload, &prettyBuffer); err != nil {
		test.Fatal(err)
	}

	assert.NotEqual(compactBuffer.String(), prettyBuffer.String())

	stripWhitespace := func(serialized string) string {
		return strings.Map(func(letter rune) rune {
			switch letter {
			case ' ', '\t', '\n', '\r':
				return -1
			}
			return letter
		}, serialized)
	}

	assert.Equal(
		stripWhitespace(compactBuffer.String()),
		stripWhitespace(prettyBuffer.String()),
	)
}

// BinData fields are hexified on the wire and restored on decode.
func TestBinDataJSONRoundTrip(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	type hasData struct {
		Data spantypes.BinData `json:"data"`
	}

	original := hasData{Data: spantypes.BinData{0xDE, 0xAD, 0xBE, 0xEF}}

	buffer := bytes.Buffer{}
	if err := engine.Encode(mimetype.JSON, original, &buffer); err != nil {
		test.Fatal(err)
	}

	assert.Contains(buffer.String(), "deadbeef")

	loaded := hasData{}
	if err := engine.Decode(mimetype.JSON, &loaded, &buffer); err != nil {
		test.Fatal(err)
	}

	assert.Equal(original, loaded)
}

func TestNoEncoderErr(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	err := engine.Encode(mimetype.MimeType("text/csv"), "a,b", &bytes.Buffer{})
	assert.EqualError(err, "no encoder for text/csv")

	receiver := ""
	err = engine.Decode(
		mimetype.MimeType("text/csv"), &receiver, strings.NewReader("a,b"),
	)
	assert.EqualError(err, "no decoder for text/csv")
}

// Encoder panics must surface as errors, not crash the dispatch.
func TestPanicsAreRecovered(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	panicky := mimetype.MimeType("application/panic")
	engine.SetEncoder(panicky, &PanickyEncoder{})
	engine.SetDecoder(panicky, &PanickyEncoder{})

	err := engine.Encode(panicky, "content", &bytes.Buffer{})
	assert.Error(err)
	assert.Contains(err.Error(), "panic during encode")

	receiver := ""
	err = engine.Decode(panicky, &receiver, strings.NewReader("content"))
	assert.Error(err)
	assert.Contains(err.Error(), "panic during decode")
}
