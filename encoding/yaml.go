package encoding

import (
	"io"

	yaml "gopkg.in/yaml.v2"
)

// YAML encoder / decoder for SpanEngine.
type yamlEncoder struct{}

func (encoder *yamlEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	yamlWriter := yaml.NewEncoder(writer)
	if err := yamlWriter.Encode(content); err != nil {
		return err
	}
	return yamlWriter.Close()
}

func (encoder *yamlEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	return yaml.NewDecoder(reader).Decode(contentReceiver)
}
