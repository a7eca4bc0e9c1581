package spanfetch

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/spanfetch-go/encoding"
	"github.com/illuscio-dev/spanfetch-go/mimetype"
	"github.com/illuscio-dev/spanfetch-go/spantypes"
)

// BinaryMode selects how binary response bodies (image / audio / video /
// octet-stream families) are materialized.
type BinaryMode int

const (
	// BinaryOff leaves binary content types unhandled; they classify as
	// unsupported media.
	BinaryOff BinaryMode = iota

	// BinaryBytes materializes binary bodies as spantypes.BinData.
	BinaryBytes

	// BinaryBlob materializes binary bodies as *spantypes.Blob, preserving the
	// served content type.
	BinaryBlob
)

/*
FormData is a multipart form payload. When a FormData value is used as the
request body, the engine assembles the multipart message and sets the
content-type header (including the boundary) itself; no content-type needs to
be supplied by the caller.
*/
type FormData struct {
	fields map[string][]string
	files  map[string][]*formFile
}

type formFile struct {
	name string
	mime string
	data []byte
}

// NewFormData returns an empty multipart form payload.
func NewFormData() *FormData {
	return &FormData{
		fields: make(map[string][]string, 4),
		files:  make(map[string][]*formFile, 4),
	}
}

// AddField appends a plain form field.
func (form *FormData) AddField(name string, value string) *FormData {
	form.fields[name] = append(form.fields[name], value)
	return form
}

// AddFile appends a file part. An empty mime falls back to the generic binary
// type.
func (form *FormData) AddFile(field string, name string, mime string, data []byte) *FormData {
	if mime == "" {
		mime = string(mimetype.OctetStream)
	}
	form.files[field] = append(form.files[field], &formFile{
		name: name,
		mime: mime,
		data: data,
	})
	return form
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encode assembles the multipart message, returning the body and the
// boundary-carrying content type.
func (form *FormData) encode() ([]byte, string, error) {
	buffer := new(bytes.Buffer)
	writer := multipart.NewWriter(buffer)

	for field, values := range form.fields {
		for _, value := range values {
			fieldWriter, err := writer.CreateFormField(field)
			if err != nil {
				return nil, "", xerrors.Errorf("error creating form field: %w", err)
			}
			if _, err = io.WriteString(fieldWriter, value); err != nil {
				return nil, "", xerrors.Errorf("error writing form field: %w", err)
			}
		}
	}

	for field, files := range form.files {
		for _, file := range files {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", fmt.Sprintf(
				`form-data; name="%s"; filename="%s"`,
				quoteEscaper.Replace(field),
				quoteEscaper.Replace(file.name),
			))
			header.Set("Content-Type", file.mime)

			partWriter, err := writer.CreatePart(header)
			if err != nil {
				return nil, "", xerrors.Errorf("error creating form part: %w", err)
			}
			if _, err = partWriter.Write(file.data); err != nil {
				return nil, "", xerrors.Errorf("error writing form part: %w", err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", xerrors.Errorf("error finalizing form body: %w", err)
	}

	return buffer.Bytes(), writer.FormDataContentType(), nil
}

/*
encodeBody serializes an outgoing payload based on the resolved content type.
Object families (JSON / BSON / YAML) are serialized through the content engine;
the JSON output is pretty printed when the engine was built in debug mode.
Everything else passes through unchanged and is expected to already be in
transport-acceptable form.
*/
func encodeBody(
	content interface{},
	contentType mimetype.MimeType,
	engine encoding.ContentEngine,
) (io.Reader, error) {
	if content == nil {
		return nil, nil
	}

	var family mimetype.MimeType
	switch {
	case contentType.IsJSON():
		family = mimetype.JSON
	case contentType.IsBSON():
		family = mimetype.BSON
	case contentType.IsYAML():
		family = mimetype.YAML
	default:
		return passthroughBody(content)
	}

	buffer := new(bytes.Buffer)
	if err := engine.Encode(family, content, buffer); err != nil {
		return nil, xerrors.Errorf("error encoding request body: %w", err)
	}
	return buffer, nil
}

// passthroughBody converts pre-encoded payload shapes to a reader without
// re-serializing them.
func passthroughBody(content interface{}) (io.Reader, error) {
	switch body := content.(type) {
	case io.Reader:
		return body, nil
	case string:
		return strings.NewReader(body), nil
	case []byte:
		return bytes.NewReader(body), nil
	case spantypes.BinData:
		return bytes.NewReader(body), nil
	case url.Values:
		return strings.NewReader(body.Encode()), nil
	}

	return nil, xerrors.Errorf(
		"body of type %T cannot pass through unencoded", content,
	)
}
