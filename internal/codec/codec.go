package codec

import (
	"fmt"
	"io"

	"github.com/vvka-141/kvload/internal/record"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// Decoder yields records from a byte stream one at a time.
type Decoder interface {
	// Next returns the next record, or io.EOF when the stream is exhausted.
	Next() (record.Record, error)
}

// Encoder serializes a single record.
type Encoder interface {
	Encode(r record.Record) ([]byte, error)
}

// NewDecoder returns a streaming decoder for format reading from r.
func NewDecoder(format kvload.Format, r io.Reader) (Decoder, error) {
	switch format {
	case kvload.FormatMsgPack:
		return NewMsgPackDecoder(r), nil
	case kvload.FormatJSONLines:
		return NewJSONLinesDecoder(r), nil
	default:
		return nil, fmt.Errorf("decoder for %q: %w", format, kvload.ErrUnsupportedFormat)
	}
}

// NewEncoder returns the encoder matching format.
func NewEncoder(format kvload.Format) (Encoder, error) {
	switch format {
	case kvload.FormatMsgPack:
		return MsgPackEncoder{}, nil
	case kvload.FormatJSONLines:
		return JSONEncoder{}, nil
	default:
		return nil, fmt.Errorf("encoder for %q: %w", format, kvload.ErrUnsupportedFormat)
	}
}

func malformed(format string, err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%s: %w: %w", format, kvload.ErrMalformedInput, err)
}
