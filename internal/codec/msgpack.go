package codec

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tinylib/msgp/msgp"
	"github.com/vvka-141/kvload/internal/record"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// MsgPackDecoder reads concatenated MessagePack maps.
type MsgPackDecoder struct {
	r *msgp.Reader
}

// NewMsgPackDecoder wraps r in a buffered MessagePack reader.
func NewMsgPackDecoder(r io.Reader) *MsgPackDecoder {
	return &MsgPackDecoder{r: msgp.NewReader(r)}
}

// Next decodes the next top-level map.
func (d *MsgPackDecoder) Next() (record.Record, error) {
	typ, err := d.r.NextType()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, malformed("msgpack", err)
	}
	if typ != msgp.MapType {
		return nil, fmt.Errorf("msgpack: top-level value is %s, want map: %w", typ, kvload.ErrMalformedInput)
	}

	rec, err := d.readMap()
	if err != nil {
		return nil, malformed("msgpack", err)
	}
	return record.Record(rec), nil
}

// readMap reads a map whose keys may be str or bin. Bin keys become strings.
func (d *MsgPackDecoder) readMap() (map[string]interface{}, error) {
	n, err := d.r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	m := make(map[string]interface{}, n)
	for i := uint32(0); i < n; i++ {
		key, err := d.readKey()
		if err != nil {
			return nil, err
		}
		if m[key], err = d.readValue(); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
	}
	return m, nil
}

func (d *MsgPackDecoder) readKey() (string, error) {
	typ, err := d.r.NextType()
	if err != nil {
		return "", err
	}
	switch typ {
	case msgp.StrType:
		return d.r.ReadString()
	case msgp.BinType:
		k, err := d.r.ReadBytes(nil)
		return string(k), err
	default:
		return "", fmt.Errorf("map key is %s, want str or bin", typ)
	}
}

func (d *MsgPackDecoder) readValue() (interface{}, error) {
	typ, err := d.r.NextType()
	if err != nil {
		return nil, err
	}
	switch typ {
	case msgp.MapType:
		return d.readMap()
	case msgp.ArrayType:
		n, err := d.r.ReadArrayHeader()
		if err != nil {
			return nil, err
		}
		items := make([]interface{}, n)
		for i := range items {
			if items[i], err = d.readValue(); err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
		}
		return items, nil
	default:
		return d.r.ReadIntf()
	}
}

// MsgPackEncoder writes a record as a MessagePack map with sorted keys.
type MsgPackEncoder struct{}

// Encode serializes r.
func (MsgPackEncoder) Encode(r record.Record) ([]byte, error) {
	b, err := appendMsgPackMap(nil, r)
	if err != nil {
		return nil, fmt.Errorf("msgpack encode: %w", err)
	}
	return b, nil
}

func appendMsgPackMap(b []byte, m map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b = msgp.AppendMapHeader(b, uint32(len(m)))
	var err error
	for _, k := range keys {
		b = msgp.AppendString(b, k)
		if b, err = appendMsgPackValue(b, m[k]); err != nil {
			return b, fmt.Errorf("field %q: %w", k, err)
		}
	}
	return b, nil
}

func appendMsgPackValue(b []byte, v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case record.Record:
		return appendMsgPackMap(b, t)
	case map[string]interface{}:
		return appendMsgPackMap(b, t)
	case []interface{}:
		b = msgp.AppendArrayHeader(b, uint32(len(t)))
		var err error
		for i, item := range t {
			if b, err = appendMsgPackValue(b, item); err != nil {
				return b, fmt.Errorf("index %d: %w", i, err)
			}
		}
		return b, nil
	case time.Time:
		// Standard timestamp extension (-1), not msgp's own ext 5.
		return msgp.AppendTimeExt(b, t), nil
	default:
		return msgp.AppendIntf(b, v)
	}
}
