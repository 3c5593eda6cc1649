package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vvka-141/kvload/internal/record"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// JSONLinesDecoder reads concatenated JSON objects.
// Numbers are kept as json.Number so integer keys and values survive intact.
type JSONLinesDecoder struct {
	dec *json.Decoder
}

// NewJSONLinesDecoder wraps r in a buffered JSON stream decoder.
func NewJSONLinesDecoder(r io.Reader) *JSONLinesDecoder {
	dec := json.NewDecoder(bufio.NewReader(r))
	dec.UseNumber()
	return &JSONLinesDecoder{dec: dec}
}

// Next decodes the next JSON object.
func (d *JSONLinesDecoder) Next() (record.Record, error) {
	var v interface{}
	if err := d.dec.Decode(&v); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, malformed("jsonl", err)
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("jsonl: top-level value is %T, want object: %w", v, kvload.ErrMalformedInput)
	}
	return record.Record(obj), nil
}

// JSONEncoder writes a record as compact JSON with sorted keys.
type JSONEncoder struct{}

// Encode serializes r without a trailing newline.
func (JSONEncoder) Encode(r record.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]interface{}(r)); err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
