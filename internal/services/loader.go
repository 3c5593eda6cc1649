package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/kvload/internal/codec"
	"github.com/vvka-141/kvload/internal/record"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// LoadRecords writes every record from dec into st, one at a time, in order,
// and returns the number of records written.
//
// The first failure ends the load. Records before the failing one have been
// written when it returns; the failing record and everything after it have
// not. Per-record failures are returned as *kvload.RecordError. Nothing is
// retried. logger may be nil.
func LoadRecords(ctx context.Context, dec codec.Decoder, keys record.KeyExtractor, enc codec.Encoder, st kvload.Store, logger kvload.Logger) (int, error) {
	written := 0
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("load interrupted before record %d: %w", index, err)
		}

		rec, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return written, nil
		}
		if err != nil {
			return written, &kvload.RecordError{Index: index, Err: err}
		}

		key, err := keys.Key(rec)
		if err != nil {
			return written, &kvload.RecordError{Index: index, Err: err}
		}

		value, err := enc.Encode(rec)
		if err != nil {
			return written, &kvload.RecordError{
				Index: index,
				Key:   key,
				Err:   fmt.Errorf("%w: re-encoding: %w", kvload.ErrMalformedInput, err),
			}
		}

		if err := st.Set(ctx, key, value); err != nil {
			return written, &kvload.RecordError{Index: index, Key: key, Err: err}
		}
		written++

		if logger != nil {
			logger.Verbose("SET %s (%d bytes)", key, len(value))
		}
	}
}
