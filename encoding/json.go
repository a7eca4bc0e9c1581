package encoding

import (
	"encoding/hex"
	"io"
	"reflect"

	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/spanfetch-go/spantypes"
)

// JSONExtensionOpts holds options for a JSON handle extension to add to the
// engine's handle at setup.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	ExtInterface codec.InterfaceExt
}

// defaultJSONExtensions holds all the JSONExtensionOpts added to the JSON
// handle at engine setup.
var defaultJSONExtensions = []*JSONExtensionOpts{
	{
		ValueType:    reflect.TypeOf(spantypes.BinData(nil)),
		ExtInterface: &jsonExtBinData{},
	},
}

// Hexifies BinData fields for JSON transport and restores them on decode.
type jsonExtBinData struct{}

func (ext *jsonExtBinData) ConvertExt(value interface{}) interface{} {
	switch data := value.(type) {
	case spantypes.BinData:
		return hex.EncodeToString(data)
	case *spantypes.BinData:
		return hex.EncodeToString(*data)
	}

	panic(xerrors.New("unsupported BinData value"))
}

func (ext *jsonExtBinData) UpdateExt(dest interface{}, value interface{}) {
	hexed, ok := value.(string)
	if !ok {
		panic(xerrors.New("BinData fields must be hex strings"))
	}

	decoded, err := hex.DecodeString(hexed)
	if err != nil {
		panic(xerrors.Errorf("error decoding BinData hex: %w", err))
	}

	receiver := dest.(*spantypes.BinData)
	*receiver = decoded
}

// default JSON encoder for SpanEngine.
type jsonEncoder struct{}

func (encoder *jsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	spanEngine := engine.(*SpanEngine)
	return codec.NewEncoder(writer, spanEngine.jsonHandle).Encode(content)
}

func (encoder *jsonEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	spanEngine := engine.(*SpanEngine)
	return codec.NewDecoder(reader, spanEngine.jsonHandle).Decode(contentReceiver)
}
