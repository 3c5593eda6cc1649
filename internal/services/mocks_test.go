package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vvka-141/kvload/internal/codec"
	"github.com/vvka-141/kvload/internal/record"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// memoryStore records writes in memory. Writing rejectKey fails.
type memoryStore struct {
	mu        sync.Mutex
	data      map[string][]byte
	writes    []string
	rejectKey string
	closed    bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejectKey != "" && key == m.rejectKey {
		return fmt.Errorf("%w: %q rejected", kvload.ErrStoreWrite, key)
	}
	m.data[key] = value
	m.writes = append(m.writes, key)
	return nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *memoryStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	return out
}

// decoded returns the stored value for key decoded as MessagePack.
func (m *memoryStore) decoded(t *testing.T, key string) record.Record {
	t.Helper()
	m.mu.Lock()
	value, ok := m.data[key]
	m.mu.Unlock()
	require.True(t, ok, "key %q not stored", key)
	r, err := codec.NewMsgPackDecoder(bytes.NewReader(value)).Next()
	require.NoError(t, err)
	return r
}

func packRecords(t *testing.T, records ...record.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, r := range records {
		b, err := codec.MsgPackEncoder{}.Encode(r)
		require.NoError(t, err)
		buf.Write(b)
	}
	return buf.Bytes()
}

func load(t *testing.T, input []byte, st kvload.Store) (int, error) {
	t.Helper()
	return LoadRecords(context.Background(),
		codec.NewMsgPackDecoder(bytes.NewReader(input)),
		record.FieldKey{Field: kvload.DefaultKeyField},
		codec.MsgPackEncoder{},
		st,
		nil,
	)
}
